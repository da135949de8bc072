package reconcile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"crm-sync/core/crm"
)

var (
	// ErrConfiguration marks problems detected before any remote call: unknown kinds,
	// missing columns, inconsistent descriptors.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotConfirmed is returned by Apply without Options.Confirmed.
	ErrNotConfirmed = errors.New("apply not confirmed")
)

// Batch is one planned remote call.
type Batch struct {
	// Ordinal is the 1-based position of the batch in the plan.
	Ordinal    int       `json:"ordinal"`
	Operation  Operation `json:"operation"`
	ObjectType string    `json:"object_type"`

	// Keys holds the business key of each object, parallel to the payload.
	Keys []string `json:"keys,omitempty"`

	ArchiveIDs []string          `json:"archive_ids,omitempty"`
	Creates    []crm.CreateInput `json:"-"`
	Updates    []crm.UpdateInput `json:"-"`
}

// Size returns the number of objects in the batch.
func (b Batch) Size() int {
	switch b.Operation {
	case OperationArchive:
		return len(b.ArchiveIDs)
	case OperationCreate:
		return len(b.Creates)
	default:
		return len(b.Updates)
	}
}

// FirstKey returns the key of the first object.
func (b Batch) FirstKey() string {
	if len(b.Keys) == 0 {
		return ""
	}
	return b.Keys[0]
}

// LastKey returns the key of the last object.
func (b Batch) LastKey() string {
	if len(b.Keys) == 0 {
		return ""
	}
	return b.Keys[len(b.Keys)-1]
}

// Skipped is a row left out of the plan.
type Skipped struct {
	Line   int    `json:"line"`
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// Plan is the ordered list of batches for one table.
type Plan struct {
	Kind    Kind        `json:"kind"`
	Batches []Batch     `json:"batches"`
	Skipped []Skipped   `json:"skipped,omitempty"`
	Summary PlanSummary `json:"summary"`

	// Warnings records lookups that failed part way; the plan uses what was found.
	Warnings []string `json:"warnings,omitempty"`
}

// WriteBatches returns the number of create or update batches.
func (p *Plan) WriteBatches() int {
	n := 0
	for _, b := range p.Batches {
		if b.Operation != OperationArchive {
			n++
		}
	}
	return n
}

// PlanSummary provides aggregate counts for a plan.
type PlanSummary struct {
	Rows          int `json:"rows"`
	Translated    int `json:"translated"`
	Skipped       int `json:"skipped"`
	InvalidValues int `json:"invalid_values"`
	ToArchive     int `json:"to_archive"`
	Batches       int `json:"batches"`
}

// Options controls Apply.
type Options struct {
	// DryRun makes Apply return without submitting anything.
	DryRun bool

	// Confirmed must be set for Apply to submit batches.
	Confirmed bool

	// OnBatch, when set, is called after every batch completes.
	OnBatch func(BatchResult)
}

// BatchResult is the outcome of one submitted batch.
type BatchResult struct {
	Ordinal    int           `json:"ordinal"`
	Operation  Operation     `json:"operation"`
	ObjectType string        `json:"object_type"`
	Size       int           `json:"size"`
	StatusCode int           `json:"status_code"`
	Errors     int           `json:"errors"`
	Messages   []string      `json:"messages,omitempty"`
	Err        error         `json:"-"`
	FirstKey   string        `json:"first_key"`
	LastKey    string        `json:"last_key"`
	Duration   time.Duration `json:"duration"`
}

// Failed reports whether the call failed or any item in it was rejected.
func (r BatchResult) Failed() bool {
	return r.Err != nil || r.Errors > 0
}

// ErrorText summarizes the failure for logs and the ledger.
func (r BatchResult) ErrorText() string {
	var parts []string
	if r.Err != nil {
		parts = append(parts, r.Err.Error())
	}
	if r.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d item errors", r.Errors))
		parts = append(parts, r.Messages...)
	}
	return strings.Join(parts, "; ")
}

// Run statuses.
const (
	StatusSucceeded = "succeeded"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
	StatusPlanned   = "planned"
)

// Report aggregates the results of Apply.
type Report struct {
	Kind     Kind          `json:"kind"`
	Batches  []BatchResult `json:"batches"`
	Archived int           `json:"archived"`
	Written  int           `json:"written"`
	Failed   int           `json:"failed_batches"`
	DryRun   bool          `json:"dry_run"`
}

func (r *Report) add(res BatchResult) {
	r.Batches = append(r.Batches, res)
	if res.Failed() {
		r.Failed++
	}
	if res.Err != nil {
		return
	}
	ok := max(res.Size-res.Errors, 0)
	if res.Operation == OperationArchive {
		r.Archived += ok
	} else {
		r.Written += ok
	}
}

// Status classifies the report.
func (r *Report) Status() string {
	switch {
	case r.DryRun:
		return StatusPlanned
	case r.Failed == 0:
		return StatusSucceeded
	case r.Failed == len(r.Batches):
		return StatusFailed
	default:
		return StatusPartial
	}
}
