package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/use-agent/reviewui/models"
	"github.com/use-agent/reviewui/session"
)

// Health returns a handler for GET /healthz.
func Health(store *session.Store, backendURL string, startTime time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:   "healthy",
			Uptime:   time.Since(startTime).Round(time.Second).String(),
			Sessions: store.Len(),
			Backend:  backendURL,
			Version:  "0.1.0",
		})
	}
}
