package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/backend/internal/middleware"
	"github.com/careerlens/backend/internal/service"
)

// HistoryHandler serves the user-facing history endpoints.
type HistoryHandler struct {
	history *service.HistoryService
}

func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

func (h *HistoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/history", h.List)
	r.DELETE("/history/clear", h.Clear)
}

func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	entries, err := h.history.ListForUser(userID)
	if err != nil {
		log.Printf("history listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *HistoryHandler) Clear(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	if err := h.history.ClearForUser(userID); err != nil {
		log.Printf("history clear failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}
