package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crm-sync/core/database"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

// Repository persists runs and batches.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

var requiredColumns = map[string][]string{
	Run{}.TableName(): {
		"id", "kind", "source", "encoding", "status", "dry_run", "row_count", "translated", "skipped",
		"invalid_values", "archived", "written", "batches", "failed_batches", "error", "started_at", "finished_at",
	},
	BatchRecord{}.TableName(): {
		"id", "run_id", "ordinal", "operation", "object_type", "size", "status_code", "error_count",
		"error_text", "first_key", "last_key", "duration_ms", "created_at",
	},
}

// DB returns the underlying connection.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// Migrate creates the ledger tables, or with auto false verifies that they exist with
// every expected column.
func (r *Repository) Migrate(ctx context.Context, auto bool) error {
	if auto {
		return r.db.WithContext(ctx).AutoMigrate(&Run{}, &BatchRecord{})
	}
	var problems []string
	for _, table := range []string{Run{}.TableName(), BatchRecord{}.TableName()} {
		missing, err := database.MissingColumns(r.db.WithContext(ctx), table, requiredColumns[table])
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("%s: %s", table, strings.Join(missing, ", ")))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("ledger schema incomplete: %s", strings.Join(problems, "; "))
	}
	return nil
}

// CreateRun inserts a new run.
func (r *Repository) CreateRun(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Omit("BatchRecords").Create(run).Error
}

// AddBatch appends a batch record.
func (r *Repository) AddBatch(ctx context.Context, b *BatchRecord) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// SaveRun writes every field of run.
func (r *Repository) SaveRun(ctx context.Context, run *Run) error {
	return r.db.WithContext(ctx).Omit("BatchRecords").Save(run).Error
}

// ListOptions filters ListRuns.
type ListOptions struct {
	Kind   string
	Status string
	Limit  int
	Offset int
}

// ListRuns returns runs newest first, without batches.
func (r *Repository) ListRuns(ctx context.Context, opts ListOptions) ([]Run, error) {
	limit := opts.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&Run{})
	if opts.Kind != "" {
		q = q.Where("kind = ?", opts.Kind)
	}
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	var runs []Run
	if err := q.Order("started_at DESC").Limit(limit).Offset(max(opts.Offset, 0)).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a run with its batches in ordinal order.
func (r *Repository) GetRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := r.db.WithContext(ctx).
		Preload("BatchRecords", func(db *gorm.DB) *gorm.DB { return db.Order("ordinal ASC") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return &run, nil
}
