package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chat-relay/internal/service"
)

// HistoryHandler mantiene dependencias para el endpoint de historial.
type HistoryHandler struct {
	logger  *zap.Logger
	history *service.HistoryService
}

// NewHistoryHandler crea una instancia de HistoryHandler.
func NewHistoryHandler(logger *zap.Logger, history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		logger:  logger,
		history: history,
	}
}

// ListByCategory maneja GET /messages/:category.
func (h *HistoryHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")

	messages, err := h.history.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.logger.Error("fetch messages failed",
			zap.Error(err),
			zap.String("category", category),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an error occurred while fetching messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}
