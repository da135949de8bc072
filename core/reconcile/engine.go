package reconcile

import (
	"context"
	"fmt"

	"crm-sync/core/crm"
	"crm-sync/core/metrics"
	"crm-sync/core/record"
	"crm-sync/core/schema"
	"crm-sync/core/utils"

	"go.uber.org/zap"
)

// Resolver is the lookup side of the remote store.
type Resolver interface {
	ResolveIDs(ctx context.Context, objectType, idProperty string, keys []string) (map[string]string, error)
	FindMatching(ctx context.Context, objectType, property string, values []string) ([]string, error)
}

// Engine plans and applies batches for any descriptor.
type Engine struct {
	client   crm.Client
	resolver Resolver
	cfg      Config
	logger   *zap.Logger
	metrics  *metrics.Collector
}

// NewEngine creates an engine. logger and m may be nil.
func NewEngine(client crm.Client, resolver Resolver, cfg Config, logger *zap.Logger, m *metrics.Collector) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{client: client, resolver: resolver, cfg: cfg, logger: logger, metrics: m}
}

// Plan validates the table, runs the read-only lookups and builds the batches.
// Configuration problems are returned wrapped in ErrConfiguration before any remote call.
// Failed lookups do not fail the plan; what was found is used and a warning recorded.
func (e *Engine) Plan(ctx context.Context, d Descriptor, table *record.Table) (*Plan, error) {
	if err := d.Check(table.Header); err != nil {
		return nil, err
	}
	if d.Fingerprint != nil {
		table = d.Fingerprint.Stamp(table)
	}

	log := e.logger.With(zap.String("kind", string(d.Kind)))
	plan := &Plan{Kind: d.Kind, Summary: PlanSummary{Rows: len(table.Rows)}}
	size := e.cfg.batchSize()

	if rule := d.ArchiveChildren; rule != nil {
		keys := utils.Unique(table.Column(d.KeyColumn))
		ids, err := e.resolver.FindMatching(ctx, rule.ObjectType, rule.KeyProperty, keys)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			plan.warn(log, fmt.Sprintf("search %s to archive: %v", rule.ObjectType, err))
		}
		for _, chunk := range utils.Chunk(ids, size) {
			plan.Batches = append(plan.Batches, Batch{
				Ordinal:    len(plan.Batches) + 1,
				Operation:  OperationArchive,
				ObjectType: rule.ObjectType,
				ArchiveIDs: chunk,
			})
		}
		plan.Summary.ToArchive = len(ids)
	}

	var parents map[string]string
	if rule := d.Association; rule != nil {
		keys := utils.Unique(table.Column(rule.ParentKeyColumn))
		found, err := e.resolver.ResolveIDs(ctx, rule.ParentObjectType, rule.ParentIDProperty, keys)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			plan.warn(log, fmt.Sprintf("resolve %s: %v", rule.ParentObjectType, err))
		}
		parents = found
		log.Debug("Resolved parents", zap.Int("keys", len(keys)), zap.Int("found", len(parents)))
	}

	translator := schema.NewTranslator(
		schema.WithOffsetHours(e.cfg.OffsetHours()),
		schema.WithInvalidValueHandler(func(v schema.InvalidValue) {
			plan.Summary.InvalidValues++
			e.metrics.ObserveInvalidValue(string(d.Kind), v.Target)
			log.Debug("Value dropped by transform",
				zap.Int("line", v.Line),
				zap.String("source", v.Source),
				zap.String("target", v.Target),
				zap.String("value", v.Value),
				zap.Stringer("transform", v.Transform))
		}),
	)

	var (
		keys    []string
		creates []crm.CreateInput
		updates []crm.UpdateInput
	)
	for i, props := range translator.TranslateAll(table.Rows, d.Mapping) {
		row := table.Rows[i]
		key := row.Value(d.KeyColumn)

		var assoc []crm.Association
		if rule := d.Association; rule != nil {
			parentKey := row.Value(rule.ParentKeyColumn)
			id, ok := parents[parentKey]
			if !ok {
				plan.skip(log, Skipped{Line: row.Line, Key: parentKey, Reason: "parent " + rule.ParentObjectType + " not found"})
				continue
			}
			assoc = []crm.Association{{
				To:    crm.AssociationTarget{ID: id},
				Types: []crm.AssociationType{{Category: rule.Category, TypeID: rule.TypeID}},
			}}
		}

		switch d.Operation {
		case OperationUpdate:
			if key == "" {
				plan.skip(log, Skipped{Line: row.Line, Reason: "empty " + d.KeyColumn})
				continue
			}
			updates = append(updates, crm.UpdateInput{ID: key, IDProperty: d.IDProperty, Properties: props})
		default:
			creates = append(creates, crm.CreateInput{Properties: props, Associations: assoc})
		}
		keys = append(keys, key)
		plan.Summary.Translated++
	}

	keyChunks := utils.Chunk(keys, size)
	switch d.Operation {
	case OperationUpdate:
		for i, chunk := range utils.Chunk(updates, size) {
			plan.addWrite(d, keyChunks[i], Batch{Updates: chunk})
		}
	default:
		for i, chunk := range utils.Chunk(creates, size) {
			plan.addWrite(d, keyChunks[i], Batch{Creates: chunk})
		}
	}

	plan.Summary.Skipped = len(plan.Skipped)
	plan.Summary.Batches = len(plan.Batches)
	e.metrics.ObserveRows(string(d.Kind), "translated", plan.Summary.Translated)
	e.metrics.ObserveRows(string(d.Kind), "skipped", plan.Summary.Skipped)

	log.Info("Plan built",
		zap.Int("rows", plan.Summary.Rows),
		zap.Int("translated", plan.Summary.Translated),
		zap.Int("skipped", plan.Summary.Skipped),
		zap.Int("to_archive", plan.Summary.ToArchive),
		zap.Int("batches", plan.Summary.Batches))
	return plan, nil
}

func (p *Plan) addWrite(d Descriptor, keys []string, b Batch) {
	b.Ordinal = len(p.Batches) + 1
	b.Operation = d.Operation
	b.ObjectType = d.ObjectType
	b.Keys = keys
	p.Batches = append(p.Batches, b)
}

func (p *Plan) skip(log *zap.Logger, s Skipped) {
	p.Skipped = append(p.Skipped, s)
	log.Warn("Row skipped", zap.Int("line", s.Line), zap.String("key", s.Key), zap.String("reason", s.Reason))
}

func (p *Plan) warn(log *zap.Logger, msg string) {
	p.Warnings = append(p.Warnings, msg)
	log.Warn("Lookup incomplete", zap.String("detail", msg))
}
