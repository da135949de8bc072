package resolver

import (
	"context"
	"fmt"

	"crm-sync/core/crm"
	"crm-sync/core/utils"

	"go.uber.org/zap"
)

// Resolver finds remote objects for source keys.
type Resolver struct {
	client     crm.Client
	readLimit  int
	valueLimit int
	pageSize   int
	logger     *zap.Logger
}

// New creates a resolver. Limits below 1 fall back to 100.
func New(client crm.Client, cfg crm.Config, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		client:     client,
		readLimit:  orDefault(cfg.ReadLimit),
		valueLimit: orDefault(cfg.SearchValueLimit),
		pageSize:   orDefault(cfg.SearchPageSize),
		logger:     logger,
	}
}

func orDefault(n int) int {
	if n < 1 {
		return 100
	}
	return n
}

// ResolveIDs maps each key to the record id of the object whose idProperty equals it.
// Keys without a live object are absent from the result.
func (r *Resolver) ResolveIDs(ctx context.Context, objectType, idProperty string, keys []string) (map[string]string, error) {
	keys = utils.Unique(keys)
	out := make(map[string]string, len(keys))

	for _, chunk := range utils.Chunk(keys, r.readLimit) {
		inputs := make([]crm.ObjectID, len(chunk))
		for i, k := range chunk {
			inputs[i] = crm.ObjectID{ID: k}
		}
		resp, err := r.client.BatchRead(ctx, objectType, crm.BatchReadRequest{
			IDProperty: idProperty,
			Inputs:     inputs,
			Properties: []string{idProperty},
		})
		if err != nil {
			return out, fmt.Errorf("resolve %s by %s: %w", objectType, idProperty, err)
		}
		for _, obj := range resp.Results {
			if key := obj.Property(idProperty); key != "" {
				out[key] = obj.ID
			}
		}
		r.logger.Debug("Resolved keys",
			zap.String("object_type", objectType),
			zap.Int("requested", len(chunk)),
			zap.Int("found", len(resp.Results)))
	}
	return out, nil
}

// FindMatching returns the ids of objects whose property is any of values, in the
// order the API returns them, without duplicates.
func (r *Resolver) FindMatching(ctx context.Context, objectType, property string, values []string) ([]string, error) {
	values = utils.Unique(values)
	var ids []string
	seen := make(map[string]struct{})

	for _, group := range utils.Chunk(values, r.valueLimit) {
		req := crm.SearchRequest{
			FilterGroups: []crm.FilterGroup{{
				Filters: []crm.Filter{{PropertyName: property, Operator: crm.OperatorIn, Values: group}},
			}},
			Properties: []string{property},
			Limit:      r.pageSize,
		}
		for {
			page, err := r.client.Search(ctx, objectType, req)
			if err != nil {
				return ids, fmt.Errorf("search %s by %s: %w", objectType, property, err)
			}
			for _, obj := range page.Results {
				if _, ok := seen[obj.ID]; ok {
					continue
				}
				seen[obj.ID] = struct{}{}
				ids = append(ids, obj.ID)
			}
			next := page.NextCursor()
			if next == "" {
				break
			}
			req.After = next
		}
	}
	return ids, nil
}
