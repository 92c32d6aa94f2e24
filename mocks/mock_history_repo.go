package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clausegenie/internal/domain"
)

// MockHistoryRepo is a mock implementation of port.HistoryRepository.
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Upsert(ctx context.Context, rec *domain.HistoryRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockHistoryRepo) ListRecent(ctx context.Context, identity string, limit int) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, identity, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}
