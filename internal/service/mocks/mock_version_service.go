package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"legalapi/internal/model"
	"legalapi/internal/service"
)

type MockVersionService struct {
	mock.Mock
}

func (m *MockVersionService) Create(ctx context.Context, documentID string, in service.CreateVersionInput) (*model.DocumentVersion, error) {
	args := m.Called(ctx, documentID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentVersion), args.Error(1)
}

func (m *MockVersionService) Get(ctx context.Context, id string) (*model.DocumentVersion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentVersion), args.Error(1)
}

func (m *MockVersionService) ListByDocument(ctx context.Context, documentID string) ([]model.DocumentVersion, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentVersion), args.Error(1)
}

func (m *MockVersionService) Update(ctx context.Context, versionID string, in service.UpdateVersionInput) (*model.DocumentVersion, error) {
	args := m.Called(ctx, versionID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentVersion), args.Error(1)
}

func (m *MockVersionService) ResolveAcceptanceLabel(v *model.DocumentVersion, doc *model.Document) string {
	args := m.Called(v, doc)
	return args.String(0)
}
