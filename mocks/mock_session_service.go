package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"clausegenie/internal/domain"
	"clausegenie/internal/export"
	"clausegenie/internal/render"
)

// MockSessionService is a mock implementation of service.SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context, identity string) (*domain.Session, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Get(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) LoadDocument(ctx context.Context, sessionID uuid.UUID, identity string, doc domain.Document) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, identity, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) LoadSampleDocument(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionService) Analyze(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, sessionID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockSessionService) Render(ctx context.Context, sessionID uuid.UUID, identity string, format render.Format) (*render.DisplayModel, error) {
	args := m.Called(ctx, sessionID, identity, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.DisplayModel), args.Error(1)
}

func (m *MockSessionService) Ask(ctx context.Context, sessionID uuid.UUID, identity string, question string) (*domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID, identity, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatMessage), args.Error(1)
}

func (m *MockSessionService) Transcript(ctx context.Context, sessionID uuid.UUID, identity string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockSessionService) Export(ctx context.Context, sessionID uuid.UUID, identity string, format export.Format, w io.Writer) (string, error) {
	args := m.Called(ctx, sessionID, identity, format, w)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Reset(ctx context.Context, sessionID uuid.UUID, identity string) error {
	args := m.Called(ctx, sessionID, identity)
	return args.Error(0)
}

func (m *MockSessionService) History(ctx context.Context, identity string) ([]domain.HistoryRecord, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryRecord), args.Error(1)
}
