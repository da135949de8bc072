package reconcile

import "crm-sync/core/schema"

// Config holds the sync settings shared by every kind.
type Config struct {
	// BatchSize bounds the objects of one remote call.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// UTCOffsetHours is the offset of local timestamps in the source export.
	// Nil means schema.DefaultOffsetHours; an explicit 0 means UTC.
	UTCOffsetHours *int `mapstructure:"utc_offset_hours" default:"9"`
	// StageLabels extends the built-in deal stage label table.
	StageLabels map[string]string `mapstructure:"stage_labels"`
	// PipelineLabels extends the built-in pipeline label table.
	PipelineLabels map[string]string `mapstructure:"pipeline_labels"`
}

// MaxBatchSize is the largest batch the CRM accepts.
const MaxBatchSize = 100

func (c Config) batchSize() int {
	if c.BatchSize < 1 || c.BatchSize > MaxBatchSize {
		return MaxBatchSize
	}
	return c.BatchSize
}

// OffsetHours returns the configured source offset.
func (c Config) OffsetHours() int {
	if c.UTCOffsetHours == nil {
		return schema.DefaultOffsetHours
	}
	return *c.UTCOffsetHours
}
