package analyzer_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clausegenie/internal/analyzer"
	"clausegenie/internal/domain"
)

func envelopeWith(text string) []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"role": "model",
					"parts": []map[string]interface{}{
						{"text": text},
					},
				},
				"finishReason": "STOP",
			},
		},
	})
	return body
}

func TestExtractText_Success(t *testing.T) {
	text, err := analyzer.ExtractText(envelopeWith("hello"))

	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestExtractText_NoCandidates(t *testing.T) {
	_, err := analyzer.ExtractText([]byte(`{"candidates":[]}`))

	assert.ErrorIs(t, err, analyzer.ErrEmptyResponse)
}

func TestExtractText_EmptyText(t *testing.T) {
	_, err := analyzer.ExtractText(envelopeWith(""))

	assert.ErrorIs(t, err, analyzer.ErrEmptyResponse)
}

func TestExtractText_InvalidJSON(t *testing.T) {
	_, err := analyzer.ExtractText([]byte("<html>backend error</html>"))

	var malformed *analyzer.MalformedPayloadError
	assert.ErrorAs(t, err, &malformed)
}

func TestInterpretAnalysis_Success(t *testing.T) {
	payload := `{
		"summary": "A loan agreement between a trust and a bank.",
		"simplification_level": "Moderate",
		"analysis_results": [
			{
				"clause_title": "Events of Default",
				"simplified_content": "If a large judgment stands for 60 days, the loan defaults.",
				"risk_level": "High",
				"entities": []
			}
		]
	}`

	result, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	require.NoError(t, err)
	assert.Equal(t, "A loan agreement between a trust and a bank.", result.Summary)
	assert.Equal(t, "Moderate", result.SimplificationLevel)
	require.Len(t, result.Clauses, 1)
	assert.Equal(t, "Events of Default", result.Clauses[0].Title)
	assert.Equal(t, domain.RiskHigh, result.Clauses[0].RiskLevel)
	assert.NotNil(t, result.Clauses[0].Entities)
	assert.Empty(t, result.Clauses[0].Entities)
}

func TestInterpretAnalysis_WithEntities(t *testing.T) {
	payload := `{
		"summary": "s",
		"simplification_level": "Eli5",
		"analysis_results": [
			{
				"clause_title": "Parties",
				"simplified_content": "Who signed.",
				"risk_level": "Low",
				"entities": [
					{"type": "ORGANIZATION", "name": "Amarillo National Bank"},
					{"type": "DATE", "name": "December 31, 2002"}
				]
			}
		]
	}`

	result, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	require.NoError(t, err)
	require.Len(t, result.Clauses, 1)
	assert.Equal(t, []domain.Entity{
		{Type: "ORGANIZATION", Name: "Amarillo National Bank"},
		{Type: "DATE", Name: "December 31, 2002"},
	}, result.Clauses[0].Entities)
}

func TestInterpretAnalysis_EmptyClauseList(t *testing.T) {
	payload := `{"summary":"s","simplification_level":"Moderate","analysis_results":[]}`

	result, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	require.NoError(t, err)
	assert.Empty(t, result.Clauses)
}

func TestInterpretAnalysis_MissingSummary(t *testing.T) {
	payload := `{"simplification_level":"Moderate","analysis_results":[]}`

	_, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	var schemaErr *analyzer.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "summary", schemaErr.Field)
	assert.Equal(t, -1, schemaErr.ClauseIndex)
}

func TestInterpretAnalysis_MissingRiskLevel(t *testing.T) {
	payload := `{
		"summary": "s",
		"simplification_level": "Moderate",
		"analysis_results": [
			{"clause_title": "t", "simplified_content": "c", "entities": []}
		]
	}`

	_, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	var schemaErr *analyzer.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "risk_level", schemaErr.Field)
	assert.Equal(t, 0, schemaErr.ClauseIndex)
}

func TestInterpretAnalysis_InvalidRiskValue(t *testing.T) {
	payload := `{
		"summary": "s",
		"simplification_level": "Moderate",
		"analysis_results": [
			{"clause_title": "t", "simplified_content": "c", "risk_level": "Severe", "entities": []}
		]
	}`

	_, err := analyzer.InterpretAnalysis(envelopeWith(payload))

	var schemaErr *analyzer.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "risk_level", schemaErr.Field)
}

func TestInterpretAnalysis_TextNotJSON(t *testing.T) {
	_, err := analyzer.InterpretAnalysis(envelopeWith("I am sorry, I cannot do that."))

	var malformed *analyzer.MalformedPayloadError
	require.ErrorAs(t, err, &malformed)
	assert.NotNil(t, errors.Unwrap(malformed))
}

func TestInterpretAnswer_Success(t *testing.T) {
	answer := analyzer.InterpretAnswer(envelopeWith("The collateral requirement is 110%."))

	assert.Equal(t, "The collateral requirement is 110%.", answer)
}

func TestInterpretAnswer_FallbackOnEmpty(t *testing.T) {
	answer := analyzer.InterpretAnswer([]byte(`{"candidates":[]}`))

	assert.Equal(t, analyzer.AnswerFallback, answer)
}
