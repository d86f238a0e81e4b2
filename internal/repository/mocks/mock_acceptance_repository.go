package mocks

import (
	"context"

	"legalapi/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAcceptanceRepository struct {
	mock.Mock
}

func (m *MockAcceptanceRepository) Create(ctx context.Context, a *model.Acceptance) (*model.Acceptance, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceRepository) ListByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error) {
	args := m.Called(ctx, versionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceRepository) ListByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error) {
	args := m.Called(ctx, documentID, userID, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceRepository) ExistsForVersion(ctx context.Context, versionID, userID string) (bool, error) {
	args := m.Called(ctx, versionID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAcceptanceRepository) ExistsForDocument(ctx context.Context, documentID string) (bool, error) {
	args := m.Called(ctx, documentID)
	return args.Bool(0), args.Error(1)
}
