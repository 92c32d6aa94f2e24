package handler

import (
	"github.com/gin-gonic/gin"

	"clausegenie/internal/middleware"
	"clausegenie/internal/service"
)

// HistoryHandler handles the recent-analyses listing endpoint.
type HistoryHandler struct {
	sessionService service.SessionService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(sessionService service.SessionService) *HistoryHandler {
	return &HistoryHandler{sessionService: sessionService}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.sessionService.History(c.Request.Context(), middleware.GetIdentity(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"records": records})
}
