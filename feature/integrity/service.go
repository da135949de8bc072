package integrity

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"crm-sync/core/crm"
	"crm-sync/core/storage"
	"crm-sync/feature/history"

	"go.uber.org/zap"
)

// Check statuses.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Result is the outcome of one check.
type Result struct {
	Status  string   `json:"status"`
	Error   string   `json:"error,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// Report maps check names to results.
type Report map[string]Result

// Healthy reports whether no check failed.
func (r Report) Healthy() bool {
	for _, res := range r {
		if res.Status == StatusError {
			return false
		}
	}
	return true
}

// Service runs the checks. ledger and archiver may be nil.
type Service struct {
	ledger   *history.Repository
	archiver *storage.Archiver
	crm      crm.Config
	logger   *zap.Logger

	// archiveDepth is how many recent runs CheckArchive inspects.
	archiveDepth int
}

// NewService creates a new integrity service.
func NewService(ledger *history.Repository, archiver *storage.Archiver, crmCfg crm.Config, logger *zap.Logger) *Service {
	return &Service{ledger: ledger, archiver: archiver, crm: crmCfg, logger: logger, archiveDepth: 20}
}

// CheckLedger verifies the ledger schema without altering it.
func (s *Service) CheckLedger(ctx context.Context) Result {
	if s.ledger == nil {
		return Result{Status: StatusSkipped}
	}
	if err := s.ledger.Migrate(ctx, false); err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}
	return Result{Status: StatusOK}
}

// CheckStorage verifies that the archive bucket exists.
func (s *Service) CheckStorage(ctx context.Context) Result {
	if s.archiver == nil {
		return Result{Status: StatusSkipped}
	}
	exists, err := s.archiver.BucketExists(ctx)
	if err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}
	if !exists {
		return Result{Status: StatusError, Error: fmt.Sprintf("bucket %s does not exist", s.archiver.Bucket())}
	}
	return Result{Status: StatusOK}
}

// CheckArchive lists recent non-dry runs whose report is missing from the archive.
func (s *Service) CheckArchive(ctx context.Context) Result {
	if s.ledger == nil || s.archiver == nil {
		return Result{Status: StatusSkipped}
	}
	runs, err := s.ledger.ListRuns(ctx, history.ListOptions{Limit: s.archiveDepth})
	if err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}

	var missing []string
	for _, run := range runs {
		if run.DryRun || run.FinishedAt == nil {
			continue
		}
		keys, err := s.archiver.ListRunFiles(ctx, run.ID)
		if err != nil {
			return Result{Status: StatusError, Error: err.Error(), Missing: missing}
		}
		if !hasReport(keys, s.archiver.RunKey(run.ID, "report.json")) {
			missing = append(missing, run.ID)
		}
	}
	if len(missing) > 0 {
		return Result{Status: StatusError, Error: "runs without archived report", Missing: missing}
	}
	return Result{Status: StatusOK}
}

func hasReport(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}

// CheckCRM validates the CRM client configuration without calling the API.
func (s *Service) CheckCRM() Result {
	var errs []error
	if s.crm.Token == "" {
		errs = append(errs, errors.New("crm.token is not set"))
	}
	if u, err := url.Parse(s.crm.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("crm.base_url %q is not an absolute URL", s.crm.BaseURL))
	}
	if err := errors.Join(errs...); err != nil {
		return Result{Status: StatusError, Error: err.Error()}
	}
	return Result{Status: StatusOK}
}

// RunAll runs every check.
func (s *Service) RunAll(ctx context.Context) Report {
	return Report{
		"ledger":  s.CheckLedger(ctx),
		"storage": s.CheckStorage(ctx),
		"archive": s.CheckArchive(ctx),
		"crm":     s.CheckCRM(),
	}
}
