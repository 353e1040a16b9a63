package api

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// OptionsFile is the dropdown-option bundle published alongside the model
// artifacts: the unique degrees, majors, skills and certifications seen in
// training.
const OptionsFile = "unique_values.json"

// MetaHandler serves static metadata read once at startup.
type MetaHandler struct {
	options json.RawMessage
}

// NewMetaHandler loads the options bundle from the model artifact directory.
// A missing file is tolerated; the endpoint then reports 404.
func NewMetaHandler(modelDir string) *MetaHandler {
	data, err := os.ReadFile(filepath.Join(modelDir, OptionsFile))
	if err != nil {
		log.Printf("options bundle not loaded: %v", err)
		return &MetaHandler{}
	}
	if !json.Valid(data) {
		log.Printf("options bundle is not valid JSON, ignoring")
		return &MetaHandler{}
	}
	return &MetaHandler{options: data}
}

func (h *MetaHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/meta/options", h.Options)
}

func (h *MetaHandler) Options(c *gin.Context) {
	if h.options == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "options not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", h.options)
}
