package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/careerlens/backend/internal/inference"
	"github.com/careerlens/backend/internal/middleware"
	"github.com/careerlens/backend/internal/service"
)

// PredictHandler runs the inference pipeline and appends the result to the
// prediction history.
type PredictHandler struct {
	predictor *inference.Predictor
	history   *service.HistoryService
}

func NewPredictHandler(predictor *inference.Predictor, history *service.HistoryService) *PredictHandler {
	return &PredictHandler{predictor: predictor, history: history}
}

func (h *PredictHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/predict", h.Predict)
}

func (h *PredictHandler) Predict(c *gin.Context) {
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

	result, err := h.predictor.Predict(inference.ProfileInput{
		Degree:         req.Degree,
		Major:          req.Major,
		CGPA:           req.CGPA.String(),
		Experience:     req.Experience.String(),
		Skills:         req.Skills,
		Certifications: req.Certifications,
	})
	if err != nil {
		if errors.Is(err, inference.ErrModelUnavailable) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ML model not loaded"})
			return
		}
		log.Printf("prediction failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	// Audit logging is best-effort: a failed append never fails a
	// successful prediction.
	ranked := make([]service.RankedPrediction, len(result.TopPredictions))
	for i, p := range result.TopPredictions {
		ranked[i] = service.RankedPrediction{Role: p.Role, Confidence: p.Confidence}
	}
	snap := service.HistorySnapshot{
		Degree:         req.Degree,
		Major:          req.Major,
		CGPA:           req.CGPA.String(),
		Experience:     req.Experience.String(),
		Skills:         req.Skills,
		Certifications: req.Certifications,
	}
	if err := h.history.Append(userID, snap, result.Prediction, ranked); err != nil {
		log.Printf("failed to save prediction history: %v", err)
	}

	c.JSON(http.StatusOK, result)
}
