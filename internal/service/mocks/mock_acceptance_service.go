package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"legalapi/internal/model"
)

type MockAcceptanceService struct {
	mock.Mock
}

func (m *MockAcceptanceService) Record(ctx context.Context, versionID, userID string, at time.Time) (*model.Acceptance, error) {
	args := m.Called(ctx, versionID, userID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceService) AcceptCurrent(ctx context.Context, documentID string, account model.Account) (*model.Acceptance, error) {
	args := m.Called(ctx, documentID, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceService) FindByVersion(ctx context.Context, versionID, userID string) ([]model.Acceptance, error) {
	args := m.Called(ctx, versionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceService) FindByDocument(ctx context.Context, documentID, userID string, publishedOnly bool) (map[string][]model.Acceptance, error) {
	args := m.Called(ctx, documentID, userID, publishedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]model.Acceptance), args.Error(1)
}

func (m *MockAcceptanceService) HasAccepted(ctx context.Context, documentID, userID string) (bool, error) {
	args := m.Called(ctx, documentID, userID)
	return args.Bool(0), args.Error(1)
}
