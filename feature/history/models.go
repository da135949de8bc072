package history

import (
	"time"

	"crm-sync/core/reconcile"
)

// Run is one execution of one kind over one source file.
type Run struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	Kind     string `gorm:"size:32;index" json:"kind"`
	Source   string `gorm:"size:255" json:"source"`
	Encoding string `gorm:"size:16" json:"encoding"`
	Status   string `gorm:"size:16;index" json:"status"`
	DryRun   bool   `json:"dry_run"`

	RowCount      int `json:"row_count"`
	Translated    int `json:"translated"`
	Skipped       int `json:"skipped"`
	InvalidValues int `json:"invalid_values"`
	Archived      int `json:"archived"`
	Written       int `json:"written"`
	Batches       int `json:"batches"`
	FailedBatches int `json:"failed_batches"`

	Error      string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt  time.Time  `gorm:"index" json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	BatchRecords []BatchRecord `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"batch_records,omitempty"`
}

// TableName overrides the table name used by Run.
func (Run) TableName() string {
	return "sync_runs"
}

// BatchRecord is one submitted batch of a run.
type BatchRecord struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	RunID      string `gorm:"size:36;index" json:"run_id"`
	Ordinal    int    `json:"ordinal"`
	Operation  string `gorm:"size:16" json:"operation"`
	ObjectType string `gorm:"size:32" json:"object_type"`
	Size       int    `json:"size"`
	StatusCode int    `json:"status_code"`
	ErrorCount int    `json:"error_count"`
	ErrorText  string `gorm:"type:text" json:"error_text,omitempty"`
	FirstKey   string `gorm:"size:64" json:"first_key"`
	LastKey    string `gorm:"size:64" json:"last_key"`
	DurationMS int64  `json:"duration_ms"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name used by BatchRecord.
func (BatchRecord) TableName() string {
	return "sync_batches"
}

// NewBatchRecord converts a batch result into a ledger row.
func NewBatchRecord(runID string, r reconcile.BatchResult) BatchRecord {
	return BatchRecord{
		RunID:      runID,
		Ordinal:    r.Ordinal,
		Operation:  string(r.Operation),
		ObjectType: r.ObjectType,
		Size:       r.Size,
		StatusCode: r.StatusCode,
		ErrorCount: r.Errors,
		ErrorText:  r.ErrorText(),
		FirstKey:   r.FirstKey,
		LastKey:    r.LastKey,
		DurationMS: r.Duration.Milliseconds(),
	}
}

// ApplyPlan copies plan counters onto the run.
func (r *Run) ApplyPlan(s reconcile.PlanSummary) {
	r.RowCount = s.Rows
	r.Translated = s.Translated
	r.Skipped = s.Skipped
	r.InvalidValues = s.InvalidValues
	r.Batches = s.Batches
}

// ApplyReport copies apply counters onto the run and sets its status.
func (r *Run) ApplyReport(rep *reconcile.Report) {
	r.Archived = rep.Archived
	r.Written = rep.Written
	r.FailedBatches = rep.Failed
	r.Status = rep.Status()
}
