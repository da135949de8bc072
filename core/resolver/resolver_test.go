package resolver_test

import (
	"context"
	"errors"
	"testing"

	"crm-sync/core/crm"
	"crm-sync/core/crm/mocks"
	"crm-sync/core/resolver"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func object(id, prop, val string) crm.Object {
	return crm.Object{ID: id, Properties: map[string]any{prop: val}}
}

func TestResolveIDs(t *testing.T) {
	t.Run("DeduplicatesAndMapsKeys", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BatchRead", mock.Anything, crm.ObjectDeals, crm.BatchReadRequest{
			IDProperty: "no_____",
			Inputs:     []crm.ObjectID{{ID: "A1"}, {ID: "A2"}},
			Properties: []string{"no_____"},
		}).Return(&crm.BatchResponse{Results: []crm.Object{object("900", "no_____", "A1")}}, nil).Once()

		r := resolver.New(client, crm.Config{}, nil)
		got, err := r.ResolveIDs(context.Background(), crm.ObjectDeals, "no_____", []string{"A1", "A2", "A1", ""})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A1": "900"}, got)
		client.AssertExpectations(t)
	})

	t.Run("ChunksReads", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BatchRead", mock.Anything, crm.ObjectDeals, mock.MatchedBy(func(req crm.BatchReadRequest) bool {
			return len(req.Inputs) == 2
		})).Return(&crm.BatchResponse{Results: []crm.Object{object("1", "no_____", "A")}}, nil).Once()
		client.On("BatchRead", mock.Anything, crm.ObjectDeals, mock.MatchedBy(func(req crm.BatchReadRequest) bool {
			return len(req.Inputs) == 1
		})).Return(&crm.BatchResponse{Results: []crm.Object{object("3", "no_____", "C")}}, nil).Once()

		r := resolver.New(client, crm.Config{ReadLimit: 2}, nil)
		got, err := r.ResolveIDs(context.Background(), crm.ObjectDeals, "no_____", []string{"A", "B", "C"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"A": "1", "C": "3"}, got)
		client.AssertNumberOfCalls(t, "BatchRead", 2)
	})

	t.Run("PartialResultOnError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BatchRead", mock.Anything, crm.ObjectDeals, mock.MatchedBy(func(req crm.BatchReadRequest) bool {
			return req.Inputs[0].ID == "A"
		})).Return(&crm.BatchResponse{Results: []crm.Object{object("1", "no_____", "A")}}, nil).Once()
		client.On("BatchRead", mock.Anything, crm.ObjectDeals, mock.Anything).
			Return(nil, &crm.APIError{StatusCode: 502}).Once()

		r := resolver.New(client, crm.Config{ReadLimit: 1}, nil)
		got, err := r.ResolveIDs(context.Background(), crm.ObjectDeals, "no_____", []string{"A", "B"})
		require.Error(t, err)
		assert.Equal(t, 502, crm.StatusCode(err))
		assert.Equal(t, map[string]string{"A": "1"}, got)
	})
}

func TestFindMatching(t *testing.T) {
	t.Run("FollowsCursor", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.MatchedBy(func(req crm.SearchRequest) bool {
			return req.After == ""
		})).Return(&crm.SearchResponse{
			Results: []crm.Object{{ID: "1"}, {ID: "2"}},
			Paging:  &crm.Paging{Next: &crm.NextPage{After: "2"}},
		}, nil).Once()
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.MatchedBy(func(req crm.SearchRequest) bool {
			return req.After == "2"
		})).Return(&crm.SearchResponse{Results: []crm.Object{{ID: "3"}}}, nil).Once()

		r := resolver.New(client, crm.Config{}, nil)
		ids, err := r.FindMatching(context.Background(), crm.ObjectLineItems, "bugyo_denpyo_no", []string{"A1", "A2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2", "3"}, ids)
		client.AssertExpectations(t)
	})

	t.Run("SplitsValuesAndDeduplicates", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.MatchedBy(func(req crm.SearchRequest) bool {
			f := req.FilterGroups[0].Filters[0]
			return f.Operator == crm.OperatorIn && f.PropertyName == "bugyo_denpyo_no" && len(f.Values) == 1 && f.Values[0] == "A1"
		})).Return(&crm.SearchResponse{Results: []crm.Object{{ID: "1"}}}, nil).Once()
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.MatchedBy(func(req crm.SearchRequest) bool {
			return req.FilterGroups[0].Filters[0].Values[0] == "A2"
		})).Return(&crm.SearchResponse{Results: []crm.Object{{ID: "1"}, {ID: "4"}}}, nil).Once()

		r := resolver.New(client, crm.Config{SearchValueLimit: 1}, nil)
		ids, err := r.FindMatching(context.Background(), crm.ObjectLineItems, "bugyo_denpyo_no", []string{"A1", "A2"})
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "4"}, ids)
	})

	t.Run("PartialResultOnError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.MatchedBy(func(req crm.SearchRequest) bool {
			return req.After == ""
		})).Return(&crm.SearchResponse{
			Results: []crm.Object{{ID: "1"}},
			Paging:  &crm.Paging{Next: &crm.NextPage{After: "1"}},
		}, nil).Once()
		client.On("Search", mock.Anything, crm.ObjectLineItems, mock.Anything).
			Return(nil, errors.New("boom")).Once()

		r := resolver.New(client, crm.Config{}, nil)
		ids, err := r.FindMatching(context.Background(), crm.ObjectLineItems, "bugyo_denpyo_no", []string{"A1"})
		require.Error(t, err)
		assert.Equal(t, []string{"1"}, ids)
	})
}
