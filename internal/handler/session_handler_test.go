package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clausegenie/internal/analyzer"
	"clausegenie/internal/domain"
	"clausegenie/internal/export"
	"clausegenie/internal/handler"
	"clausegenie/internal/middleware"
	"clausegenie/internal/render"
	"clausegenie/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(svc *mocks.MockSessionService) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyIdentity, "anonymous-test")
		c.Next()
	})

	h := handler.NewSessionHandler(svc)
	r.POST("/api/v1/sessions", h.Create)
	r.GET("/api/v1/sessions/:id", h.Get)
	r.DELETE("/api/v1/sessions/:id", h.Reset)
	r.PUT("/api/v1/sessions/:id/document", h.LoadDocument)
	r.POST("/api/v1/sessions/:id/document/sample", h.LoadSample)
	r.POST("/api/v1/sessions/:id/analyze", h.Analyze)
	r.GET("/api/v1/sessions/:id/result", h.Result)
	r.POST("/api/v1/sessions/:id/questions", h.Ask)
	r.GET("/api/v1/sessions/:id/chat", h.Chat)
	r.GET("/api/v1/sessions/:id/export", h.Export)
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testSession() *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		ID:        uuid.New(),
		Identity:  "anonymous-test",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSessionHandler_Create(t *testing.T) {
	svc := new(mocks.MockSessionService)
	sess := testSession()
	svc.On("Create", mock.Anything, "anonymous-test").Return(sess, nil)

	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/v1/sessions", nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, sess.ID.String(), data["id"])
	assert.Equal(t, false, data["analyzed"])
}

func TestSessionHandler_Get_InvalidID(t *testing.T) {
	svc := new(mocks.MockSessionService)

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/v1/sessions/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Get_NotFound(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Get", mock.Anything, mock.Anything, "anonymous-test").Return(nil, domain.ErrSessionNotFound)

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/v1/sessions/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "SESSION_NOT_FOUND", resp.Error.Code)
}

func TestSessionHandler_LoadDocument_MissingContent(t *testing.T) {
	svc := new(mocks.MockSessionService)

	w := doRequest(newTestRouter(svc), http.MethodPut,
		"/api/v1/sessions/"+uuid.NewString()+"/document",
		map[string]string{"name": "a.txt"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "LoadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_LoadDocument_Multipart(t *testing.T) {
	svc := new(mocks.MockSessionService)
	sess := testSession()
	svc.On("LoadDocument", mock.Anything, mock.Anything, "anonymous-test",
		domain.Document{Name: "agreement.txt", RawContent: "full agreement text"}).Return(sess, nil)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "agreement.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("full agreement text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sessions/"+uuid.NewString()+"/document", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Analyze_NoDocument(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Analyze", mock.Anything, mock.Anything, "anonymous-test").Return(nil, domain.ErrNoDocumentLoaded)

	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/v1/sessions/"+uuid.NewString()+"/analyze", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_DOCUMENT", resp.Error.Code)
}

func TestSessionHandler_Analyze_CredentialError(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Analyze", mock.Anything, mock.Anything, "anonymous-test").
		Return(nil, &analyzer.CredentialError{StatusCode: 403})

	w := doRequest(newTestRouter(svc), http.MethodPost, "/api/v1/sessions/"+uuid.NewString()+"/analyze", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "LLM_CREDENTIALS", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "API key is likely invalid")
}

func TestSessionHandler_Result_BadFormat(t *testing.T) {
	svc := new(mocks.MockSessionService)

	w := doRequest(newTestRouter(svc), http.MethodGet,
		"/api/v1/sessions/"+uuid.NewString()+"/result?format=timeline", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionHandler_Result_DefaultsToNarrative(t *testing.T) {
	svc := new(mocks.MockSessionService)
	model := &render.DisplayModel{Format: render.FormatNarrative, Summary: "s"}
	svc.On("Render", mock.Anything, mock.Anything, "anonymous-test", render.FormatNarrative).Return(model, nil)

	w := doRequest(newTestRouter(svc), http.MethodGet, "/api/v1/sessions/"+uuid.NewString()+"/result", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestSessionHandler_Ask_InFlight(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Ask", mock.Anything, mock.Anything, "anonymous-test", "q?").
		Return(nil, domain.ErrQuestionInFlight)

	w := doRequest(newTestRouter(svc), http.MethodPost,
		"/api/v1/sessions/"+uuid.NewString()+"/questions",
		map[string]string{"question": "q?"})

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "QUESTION_IN_FLIGHT", resp.Error.Code)
}

func TestSessionHandler_Ask_Success(t *testing.T) {
	svc := new(mocks.MockSessionService)
	reply := &domain.ChatMessage{Sender: domain.SenderAssistant, Text: "110%.", CreatedAt: time.Now().UTC()}
	svc.On("Ask", mock.Anything, mock.Anything, "anonymous-test", "Collateral?").Return(reply, nil)

	w := doRequest(newTestRouter(svc), http.MethodPost,
		"/api/v1/sessions/"+uuid.NewString()+"/questions",
		map[string]string{"question": "Collateral?"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "assistant", data["sender"])
	assert.Equal(t, "110%.", data["text"])
}

func TestSessionHandler_Export_SetsDownloadHeaders(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Export", mock.Anything, mock.Anything, "anonymous-test", export.FormatCSV, mock.Anything).
		Run(func(args mock.Arguments) {
			w := args.Get(4).(*bytes.Buffer)
			_, _ = w.WriteString("Clause Title,Simplified Content,Risk,Entities\n")
		}).
		Return("ClauseGenie_Analysis_1735689600000.csv", nil)

	w := doRequest(newTestRouter(svc), http.MethodGet,
		"/api/v1/sessions/"+uuid.NewString()+"/export?format=csv", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="ClauseGenie_Analysis_1735689600000.csv"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Clause Title")
}

func TestSessionHandler_Reset(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("Reset", mock.Anything, mock.Anything, "anonymous-test").Return(nil)

	w := doRequest(newTestRouter(svc), http.MethodDelete, "/api/v1/sessions/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
