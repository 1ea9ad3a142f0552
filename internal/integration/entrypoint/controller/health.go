package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	localHealthChecker  func() bool
	remoteHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	LocalDB   string `json:"localDb"`
	RemoteDB  string `json:"remoteDb"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(localHealthChecker, remoteHealthChecker func() bool) *HealthController {
	return &HealthController{
		localHealthChecker:  localHealthChecker,
		remoteHealthChecker: remoteHealthChecker,
	}
}

// Check handles GET /health requests. The remote database being down is
// not an error: the service keeps working against the local store.
func (h *HealthController) Check(c *gin.Context) {
	localStatus := "disconnected"
	if h.localHealthChecker != nil && h.localHealthChecker() {
		localStatus = "connected"
	}

	remoteStatus := "disconnected"
	if h.remoteHealthChecker != nil && h.remoteHealthChecker() {
		remoteStatus = "connected"
	}

	response := HealthResponse{
		Status:    "ok",
		LocalDB:   localStatus,
		RemoteDB:  remoteStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, response)
}
