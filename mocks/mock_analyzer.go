package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"clausegenie/internal/domain"
	"clausegenie/internal/port"
)

// MockAnalyzer is a mock implementation of port.Analyzer.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, input port.AnalyzeInput) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *MockAnalyzer) Answer(ctx context.Context, input port.AnswerInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
