package reconcile

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crm-sync/core/crm"

	"go.uber.org/zap"
)

// Apply submits the batches of a plan in order.
// It returns ErrNotConfirmed unless opts.Confirmed is set, and an empty dry-run report
// when opts.DryRun is set. A failed batch does not stop the run; its result is recorded
// and the next batch is submitted. Cancellation of ctx stops before the next batch.
func (e *Engine) Apply(ctx context.Context, plan *Plan, opts Options) (*Report, error) {
	report := &Report{Kind: plan.Kind}
	if opts.DryRun {
		report.DryRun = true
		return report, nil
	}
	if !opts.Confirmed {
		return nil, ErrNotConfirmed
	}

	log := e.logger.With(zap.String("kind", string(plan.Kind)))
	for _, b := range plan.Batches {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("apply %s stopped before batch %d: %w", plan.Kind, b.Ordinal, err)
		}

		res := e.submit(ctx, b)
		report.add(res)
		e.metrics.ObserveBatch(string(plan.Kind), string(res.Operation), res.Failed())
		if res.Operation == OperationArchive && !res.Failed() {
			e.metrics.ObserveArchived(string(plan.Kind), res.Size)
		}

		fields := []zap.Field{
			zap.Int("batch", res.Ordinal),
			zap.String("operation", string(res.Operation)),
			zap.Int("size", res.Size),
			zap.Int("status", res.StatusCode),
			zap.String("first_key", res.FirstKey),
			zap.String("last_key", res.LastKey),
			zap.Duration("duration", res.Duration),
		}
		if res.Failed() {
			log.Error("Batch failed", append(fields, zap.String("error", res.ErrorText()))...)
		} else {
			log.Info("Batch submitted", fields...)
		}
		if opts.OnBatch != nil {
			opts.OnBatch(res)
		}
	}
	return report, nil
}

func (e *Engine) submit(ctx context.Context, b Batch) BatchResult {
	res := BatchResult{
		Ordinal:    b.Ordinal,
		Operation:  b.Operation,
		ObjectType: b.ObjectType,
		Size:       b.Size(),
		FirstKey:   b.FirstKey(),
		LastKey:    b.LastKey(),
	}
	start := time.Now()

	var (
		resp *crm.BatchResponse
		err  error
	)
	switch b.Operation {
	case OperationArchive:
		err = e.client.BatchArchive(ctx, b.ObjectType, b.ArchiveIDs)
		if err == nil {
			res.StatusCode = http.StatusNoContent
		}
	case OperationCreate:
		resp, err = e.client.BatchCreate(ctx, b.ObjectType, b.Creates)
	case OperationUpdate:
		resp, err = e.client.BatchUpdate(ctx, b.ObjectType, b.Updates)
	default:
		err = fmt.Errorf("unsupported operation %q", b.Operation)
	}

	if resp != nil {
		res.StatusCode = resp.StatusCode
		res.Errors = resp.ErrorCount()
		for _, item := range resp.Errors {
			res.Messages = append(res.Messages, item.Message)
		}
	}
	if err != nil {
		res.Err = err
		if code := crm.StatusCode(err); code != 0 {
			res.StatusCode = code
		}
	}
	res.Duration = time.Since(start)
	return res
}
