package api

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/backend/internal/middleware"
	"github.com/careerlens/backend/internal/service"
)

// ProfileHandler serves the profile fetch/save endpoints.
type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/profile", h.Get)
	r.POST("/profile", h.Save)
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	fields, err := h.profiles.Fetch(userID)
	if err != nil {
		log.Printf("profile fetch failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// The name/email/role come straight from the verified claims; stating
	// them here saves the client a second request.
	claims, _ := middleware.ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"name":           claims.Name,
		"email":          claims.Email,
		"role":           claims.Role,
		"degree":         fields.Degree,
		"major":          fields.Major,
		"cgpa":           fields.CGPA,
		"experience":     fields.Experience,
		"skills":         fields.Skills,
		"certifications": fields.Certifications,
	})
}

func (h *ProfileHandler) Save(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.profiles.Upsert(userID, service.ProfileFields{
		Degree:         req.Degree,
		Major:          req.Major,
		CGPA:           parseFloatField(req.CGPA.String()),
		Experience:     parseFloatField(req.Experience.String()),
		Skills:         req.Skills,
		Certifications: req.Certifications,
	})
	if err != nil {
		log.Printf("profile save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile saved"})
}

// parseFloatField applies the same lenient numeric rule the predictor uses:
// blank or unparsable input stores as 0.
func parseFloatField(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
