package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clausegenie/internal/analyzer"
	"clausegenie/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain and analyzer errors to HTTP status
// codes and error codes. Upstream model failures map to 502: they are
// not the caller's fault and not ours either.
func MapDomainError(err error) (status int, code, msg string) {
	var credErr *analyzer.CredentialError
	var transportErr *analyzer.TransportError
	var malformedErr *analyzer.MalformedPayloadError
	var schemaErr *analyzer.SchemaViolationError
	var rateErr *analyzer.RateLimitError

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrNoDocumentLoaded):
		return http.StatusBadRequest, "NO_DOCUMENT", "no document loaded; upload a document first"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "EMPTY_DOCUMENT", "document content must not be empty"
	case errors.Is(err, domain.ErrNotAnalyzed):
		return http.StatusBadRequest, "NOT_ANALYZED", "document has not been analyzed yet"
	case errors.Is(err, domain.ErrEmptyQuestion):
		return http.StatusBadRequest, "EMPTY_QUESTION", "question must not be empty"
	case errors.Is(err, domain.ErrQuestionInFlight):
		return http.StatusConflict, "QUESTION_IN_FLIGHT", "a question is already awaiting an answer"
	case errors.Is(err, domain.ErrStaleAnalysis):
		return http.StatusConflict, "STALE_ANALYSIS", "document changed during analysis; result discarded"
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT", "unsupported format"
	case errors.As(err, &credErr):
		return http.StatusBadGateway, "LLM_CREDENTIALS", credErr.Error()
	case errors.As(err, &rateErr):
		return http.StatusBadGateway, "LLM_TRANSPORT", "model request was rate limited; try again shortly"
	case errors.As(err, &transportErr):
		return http.StatusBadGateway, "LLM_TRANSPORT", "model request failed; try again shortly"
	case errors.Is(err, analyzer.ErrEmptyResponse):
		return http.StatusBadGateway, "LLM_EMPTY_RESPONSE", "model returned an empty response"
	case errors.As(err, &malformedErr):
		return http.StatusBadGateway, "LLM_MALFORMED", "model returned an unparseable response"
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, "LLM_SCHEMA_VIOLATION", "model response did not match the expected structure"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] upstream error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}
