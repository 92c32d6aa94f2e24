package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrNoDocumentLoaded  = errors.New("no document loaded")
	ErrEmptyDocument     = errors.New("document content is empty")
	ErrNotAnalyzed       = errors.New("document has not been analyzed yet")
	ErrEmptyQuestion     = errors.New("question is empty")
	ErrQuestionInFlight  = errors.New("a question is already awaiting an answer")
	ErrStaleAnalysis     = errors.New("analysis response superseded by a newer document")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
