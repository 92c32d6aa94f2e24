package handler

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clausegenie/internal/domain"
	"clausegenie/internal/export"
	"clausegenie/internal/middleware"
	"clausegenie/internal/render"
	"clausegenie/internal/service"
)

// maxDocumentBytes caps multipart document uploads at 10MB.
const maxDocumentBytes = 10 << 20

// SessionHandler handles session lifecycle, analysis, rendering, Q&A, and
// export endpoints.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// sessionView is the session representation returned to clients.
type sessionView struct {
	ID             uuid.UUID        `json:"id"`
	Document       *domain.Document `json:"document,omitempty"`
	Analyzed       bool             `json:"analyzed"`
	AwaitingAnswer bool             `json:"awaiting_answer"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

func toSessionView(s *domain.Session) sessionView {
	return sessionView{
		ID:             s.ID,
		Document:       s.Document,
		Analyzed:       s.Analyzed(),
		AwaitingAnswer: s.AwaitingAnswer,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "session id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	sess, err := h.sessionService.Create(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, toSessionView(sess))
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessionService.Get(c.Request.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toSessionView(sess))
}

// Reset handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessionService.Reset(c.Request.Context(), id, middleware.GetIdentity(c)); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"reset": true})
}

// LoadDocument handles PUT /api/v1/sessions/:id/document
// Accepts either a JSON body {name, content} or a multipart "file" field.
func (h *SessionHandler) LoadDocument(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	doc, ok := bindDocument(c)
	if !ok {
		return
	}

	sess, err := h.sessionService.LoadDocument(c.Request.Context(), id, middleware.GetIdentity(c), doc)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toSessionView(sess))
}

func bindDocument(c *gin.Context) (domain.Document, bool) {
	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
			return domain.Document{}, false
		}
		defer func() { _ = file.Close() }()

		content, err := io.ReadAll(io.LimitReader(file, maxDocumentBytes+1))
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
			return domain.Document{}, false
		}
		if len(content) > maxDocumentBytes {
			RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "document exceeds maximum allowed size")
			return domain.Document{}, false
		}
		return domain.Document{Name: header.Filename, RawContent: string(content)}, true
	}

	var req struct {
		Name    string `json:"name"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "content is required")
		return domain.Document{}, false
	}
	return domain.Document{Name: req.Name, RawContent: req.Content}, true
}

// LoadSample handles POST /api/v1/sessions/:id/document/sample
func (h *SessionHandler) LoadSample(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.sessionService.LoadSampleDocument(c.Request.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, toSessionView(sess))
}

// Analyze handles POST /api/v1/sessions/:id/analyze
func (h *SessionHandler) Analyze(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.sessionService.Analyze(c.Request.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Result handles GET /api/v1/sessions/:id/result?format=narrative|entities|table
func (h *SessionHandler) Result(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	format, err := render.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "format must be narrative, entities, or table")
		return
	}
	model, err := h.sessionService.Render(c.Request.Context(), id, middleware.GetIdentity(c), format)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, model)
}

// Ask handles POST /api/v1/sessions/:id/questions
func (h *SessionHandler) Ask(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Question string `json:"question" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "EMPTY_QUESTION", "question is required")
		return
	}

	reply, err := h.sessionService.Ask(c.Request.Context(), id, middleware.GetIdentity(c), req.Question)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, reply)
}

// Chat handles GET /api/v1/sessions/:id/chat
func (h *SessionHandler) Chat(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	transcript, err := h.sessionService.Transcript(c.Request.Context(), id, middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"messages": transcript})
}

// Export handles GET /api/v1/sessions/:id/export?format=json|csv|xlsx
// The artifact is streamed as a download, not wrapped in the JSON envelope.
func (h *SessionHandler) Export(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "format must be json, csv, or xlsx")
		return
	}

	var buf bytes.Buffer
	filename, err := h.sessionService.Export(c.Request.Context(), id, middleware.GetIdentity(c), format, &buf)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
