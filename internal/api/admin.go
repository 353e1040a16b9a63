package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/backend/internal/service"
)

// AdminHandler serves the admin-only user management, analytics and history
// moderation endpoints. All its routes sit behind the admin middleware.
type AdminHandler struct {
	auth    *service.AuthService
	history *service.HistoryService
}

func NewAdminHandler(auth *service.AuthService, history *service.HistoryService) *AdminHandler {
	return &AdminHandler{auth: auth, history: history}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/history/all", h.ListAllHistory)

	admin := r.Group("/admin")
	{
		admin.GET("/users", h.ListUsers)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/users/:id/promote", h.PromoteUser)
		admin.POST("/create", h.CreateAdmin)
		admin.GET("/stats", h.Stats)
		admin.GET("/top_roles", h.TopRoles)
		admin.GET("/predictions_over_time", h.PredictionsOverTime)
		admin.DELETE("/delete_history/:id", h.DeleteHistory)
		admin.DELETE("/clear_history", h.ClearHistory)
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers()
	if err != nil {
		log.Printf("user listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"user_id":    u.ID,
			"user_name":  u.Name,
			"user_email": u.Email,
			"role":       u.Role,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.auth.DeleteUser(id); err != nil {
		log.Printf("user delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted successfully"})
}

func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.auth.PromoteUser(id); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Printf("user promote failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user promoted to admin successfully"})
}

func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}

	if _, err := h.auth.CreateAdmin(req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already exists"})
			return
		}
		log.Printf("admin create failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "admin created successfully"})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.history.GetStats()
	if err != nil {
		log.Printf("stats failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) TopRoles(c *gin.Context) {
	counts, err := h.history.TopRoles()
	if err != nil {
		log.Printf("top roles failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *AdminHandler) PredictionsOverTime(c *gin.Context) {
	days, err := h.history.PredictionsOverTime()
	if err != nil {
		log.Printf("predictions over time failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *AdminHandler) ListAllHistory(c *gin.Context) {
	entries, err := h.history.ListAll()
	if err != nil {
		log.Printf("history listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *AdminHandler) DeleteHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.history.Delete(id); err != nil {
		log.Printf("history delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history record deleted successfully"})
}

func (h *AdminHandler) ClearHistory(c *gin.Context) {
	if err := h.history.ClearAll(); err != nil {
		log.Printf("history clear failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all history cleared successfully"})
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}
