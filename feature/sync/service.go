package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"crm-sync/core/metrics"
	"crm-sync/core/reconcile"
	"crm-sync/core/record"
	"crm-sync/core/storage"
	"crm-sync/feature/history"
	"crm-sync/feature/ingest"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	reportName = "report.json"

	statusRunning   = "running"
	statusCancelled = "cancelled"
)

// Engine plans and applies descriptors.
type Engine interface {
	Plan(ctx context.Context, d reconcile.Descriptor, table *record.Table) (*reconcile.Plan, error)
	Apply(ctx context.Context, plan *reconcile.Plan, opts reconcile.Options) (*reconcile.Report, error)
}

// Service executes runs.
type Service struct {
	engine   Engine
	cfg      reconcile.Config
	ledger   *history.Repository
	archiver *storage.Archiver
	metrics  *metrics.Collector
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLedger records runs in repo.
func WithLedger(repo *history.Repository) Option {
	return func(s *Service) { s.ledger = repo }
}

// WithArchiver uploads inputs and reports through a.
func WithArchiver(a *storage.Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

// WithMetrics records run metrics on m.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a sync service.
func NewService(engine Engine, cfg reconcile.Config, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{engine: engine, cfg: cfg, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request is one run.
type Request struct {
	Kind   string
	Source *ingest.Source
	DryRun bool
	// Confirmed authorizes remote writes.
	Confirmed bool
	// Confirm, when set and Confirmed is false, is asked after planning. A run
	// that ends unconfirmed returns reconcile.ErrNotConfirmed.
	Confirm func(*reconcile.Plan) bool
}

// Result is the outcome of a run.
type Result struct {
	RunID  string            `json:"run_id"`
	Kind   string            `json:"kind"`
	Status string            `json:"status"`
	Plan   *reconcile.Plan   `json:"plan,omitempty"`
	Report *reconcile.Report `json:"report,omitempty"`
	// Archived lists the object keys written to storage.
	Archived []string `json:"archived,omitempty"`
}

// Plan validates and plans req without touching the ledger or storage.
func (s *Service) Plan(ctx context.Context, req Request) (*reconcile.Plan, error) {
	d, err := Descriptor(req.Kind, s.cfg)
	if err != nil {
		return nil, err
	}
	return s.engine.Plan(ctx, d, req.Source.Table)
}

// Run plans and applies req, recording the run. The returned result is never nil.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), Kind: req.Kind, Status: reconcile.StatusFailed}
	log := s.logger.With(zap.String("run_id", res.RunID), zap.String("kind", req.Kind))

	run := &history.Run{
		ID:        res.RunID,
		Kind:      req.Kind,
		Source:    req.Source.Name,
		Encoding:  req.Source.Encoding,
		Status:    statusRunning,
		DryRun:    req.DryRun,
		RowCount:  len(req.Source.Table.Rows),
		StartedAt: s.now().UTC(),
	}
	if s.ledger != nil {
		if err := s.ledger.CreateRun(ctx, run); err != nil {
			return res, fmt.Errorf("record run: %w", err)
		}
	}
	for _, w := range req.Source.Warnings {
		log.Warn("Source row irregular", zap.Int("line", w.Line), zap.String("detail", w.Message))
	}

	if s.archiver != nil {
		key, err := s.archiver.PutRunFile(ctx, res.RunID, req.Source.Name, req.Source.Raw, "text/csv")
		if err != nil {
			log.Warn("Archiving input failed", zap.Error(err))
		} else {
			res.Archived = append(res.Archived, key)
		}
	}

	err := s.execute(ctx, req, res, run, log)
	switch {
	case errors.Is(err, reconcile.ErrNotConfirmed):
		run.Status = statusCancelled
	case err != nil:
		run.Status = reconcile.StatusFailed
		run.Error = err.Error()
	}
	res.Status = run.Status
	finished := s.now().UTC()
	run.FinishedAt = &finished

	if s.ledger != nil {
		// the caller's context may already be cancelled
		if saveErr := s.ledger.SaveRun(context.WithoutCancel(ctx), run); saveErr != nil {
			log.Error("Recording run outcome failed", zap.Error(saveErr))
		}
	}
	if s.archiver != nil {
		if key, archErr := s.archiveReport(context.WithoutCancel(ctx), res); archErr != nil {
			log.Warn("Archiving report failed", zap.Error(archErr))
		} else {
			res.Archived = append(res.Archived, key)
		}
	}
	s.metrics.ObserveRun(req.Kind, run.Status, finished)

	if err != nil {
		if run.Status == statusCancelled {
			log.Warn("Run not confirmed, nothing submitted")
		} else {
			log.Error("Run failed", zap.Error(err))
		}
		return res, err
	}
	log.Info("Run finished",
		zap.String("status", run.Status),
		zap.Int("written", run.Written),
		zap.Int("archived", run.Archived),
		zap.Int("failed_batches", run.FailedBatches),
		zap.Duration("elapsed", finished.Sub(run.StartedAt)),
	)
	return res, nil
}

func (s *Service) execute(ctx context.Context, req Request, res *Result, run *history.Run, log *zap.Logger) error {
	d, err := Descriptor(req.Kind, s.cfg)
	if err != nil {
		return err
	}
	plan, err := s.engine.Plan(ctx, d, req.Source.Table)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	res.Plan = plan
	run.ApplyPlan(plan.Summary)

	confirmed := req.Confirmed
	if !req.DryRun && !confirmed && req.Confirm != nil {
		confirmed = req.Confirm(plan)
	}

	report, err := s.engine.Apply(ctx, plan, reconcile.Options{
		DryRun:    req.DryRun,
		Confirmed: confirmed,
		OnBatch: func(r reconcile.BatchResult) {
			s.recordBatch(ctx, run.ID, r, log)
		},
	})
	if report != nil {
		res.Report = report
		run.ApplyReport(report)
	}
	if err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return nil
}

func (s *Service) recordBatch(ctx context.Context, runID string, r reconcile.BatchResult, log *zap.Logger) {
	if s.ledger == nil {
		return
	}
	b := history.NewBatchRecord(runID, r)
	if err := s.ledger.AddBatch(context.WithoutCancel(ctx), &b); err != nil {
		log.Error("Recording batch failed", zap.Int("ordinal", r.Ordinal), zap.Error(err))
	}
}

func (s *Service) archiveReport(ctx context.Context, res *Result) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}
	return s.archiver.PutRunFile(ctx, res.RunID, reportName, data, "application/json")
}
