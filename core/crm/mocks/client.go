package mocks

import (
	"context"

	"crm-sync/core/crm"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of crm.Client.
type Client struct {
	mock.Mock
}

func (m *Client) BatchCreate(ctx context.Context, objectType string, inputs []crm.CreateInput) (*crm.BatchResponse, error) {
	args := m.Called(ctx, objectType, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.BatchResponse), args.Error(1)
}

func (m *Client) BatchUpdate(ctx context.Context, objectType string, inputs []crm.UpdateInput) (*crm.BatchResponse, error) {
	args := m.Called(ctx, objectType, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.BatchResponse), args.Error(1)
}

func (m *Client) BatchArchive(ctx context.Context, objectType string, ids []string) error {
	args := m.Called(ctx, objectType, ids)
	return args.Error(0)
}

func (m *Client) Search(ctx context.Context, objectType string, req crm.SearchRequest) (*crm.SearchResponse, error) {
	args := m.Called(ctx, objectType, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.SearchResponse), args.Error(1)
}

func (m *Client) BatchRead(ctx context.Context, objectType string, req crm.BatchReadRequest) (*crm.BatchResponse, error) {
	args := m.Called(ctx, objectType, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.BatchResponse), args.Error(1)
}
