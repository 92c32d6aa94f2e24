package analyzer

import (
	"encoding/json"

	"clausegenie/internal/domain"
)

// envelope models the generateContent response body. Only
// candidates[0].content.parts[0].text is read.
type envelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

// rawResult mirrors the response contract with pointer fields so missing
// keys can be told apart from zero values.
type rawResult struct {
	Summary             *string     `json:"summary"`
	SimplificationLevel *string     `json:"simplification_level"`
	AnalysisResults     *[]rawClause `json:"analysis_results"`
}

type rawClause struct {
	ClauseTitle       *string          `json:"clause_title"`
	SimplifiedContent *string          `json:"simplified_content"`
	RiskLevel         *string          `json:"risk_level"`
	Entities          *[]domain.Entity `json:"entities"`
}

// ExtractText pulls the model's text payload out of the transport envelope.
// A body that is not valid JSON yields MalformedPayloadError; a valid
// envelope without a text part yields ErrEmptyResponse.
func ExtractText(body []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &MalformedPayloadError{Err: err, Raw: string(body)}
	}
	if len(env.Candidates) == 0 || len(env.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := env.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// InterpretAnalysis validates the raw response body against the response
// contract and produces an immutable AnalysisResult. The schema constraint
// sent with the request is a best-effort guarantee, so every required field
// is re-checked here before the payload is accepted.
func InterpretAnalysis(body []byte) (*domain.AnalysisResult, error) {
	text, err := ExtractText(body)
	if err != nil {
		return nil, err
	}

	var raw rawResult
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &MalformedPayloadError{Err: err, Raw: text}
	}

	switch {
	case raw.Summary == nil:
		return nil, &SchemaViolationError{Field: "summary", ClauseIndex: -1}
	case raw.SimplificationLevel == nil:
		return nil, &SchemaViolationError{Field: "simplification_level", ClauseIndex: -1}
	case raw.AnalysisResults == nil:
		return nil, &SchemaViolationError{Field: "analysis_results", ClauseIndex: -1}
	}

	clauses := make([]domain.Clause, 0, len(*raw.AnalysisResults))
	for i, rc := range *raw.AnalysisResults {
		switch {
		case rc.ClauseTitle == nil:
			return nil, &SchemaViolationError{Field: "clause_title", ClauseIndex: i}
		case rc.SimplifiedContent == nil:
			return nil, &SchemaViolationError{Field: "simplified_content", ClauseIndex: i}
		case rc.RiskLevel == nil:
			return nil, &SchemaViolationError{Field: "risk_level", ClauseIndex: i}
		case rc.Entities == nil:
			return nil, &SchemaViolationError{Field: "entities", ClauseIndex: i}
		}

		risk := domain.RiskLevel(*rc.RiskLevel)
		if !risk.IsValid() {
			return nil, &SchemaViolationError{Field: "risk_level", ClauseIndex: i}
		}

		entities := *rc.Entities
		if entities == nil {
			entities = []domain.Entity{}
		}

		clauses = append(clauses, domain.Clause{
			Title:             *rc.ClauseTitle,
			SimplifiedContent: *rc.SimplifiedContent,
			RiskLevel:         risk,
			Entities:          entities,
		})
	}

	return &domain.AnalysisResult{
		Summary:             *raw.Summary,
		SimplificationLevel: *raw.SimplificationLevel,
		Clauses:             clauses,
	}, nil
}

// InterpretAnswer extracts the plain-text answer. An absent payload
// degrades to a local fallback message instead of failing the caller.
func InterpretAnswer(body []byte) string {
	text, err := ExtractText(body)
	if err != nil {
		return AnswerFallback
	}
	return text
}
