package port

import (
	"context"

	"clausegenie/internal/domain"
)

// AnalyzeInput carries the document submitted for structured analysis.
type AnalyzeInput struct {
	DocumentName string
	DocumentText string
}

// AnswerInput carries one grounded follow-up question. The full document
// text is resent with every question; there is no conversational memory.
type AnswerInput struct {
	DocumentText string
	Question     string
}

// Analyzer abstracts the remote LLM analysis and question-answering calls.
type Analyzer interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisResult, error)
	Answer(ctx context.Context, input AnswerInput) (string, error)
}
