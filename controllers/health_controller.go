package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Pinger indica si un servicio de respaldo responde
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController responde el health check
type HealthController struct {
	db Pinger
}

// NewHealthController crea el controlador de health; db puede ser nil
func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health maneja GET /health
func (ctrl *HealthController) Health(c *gin.Context) {
	if ctrl.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := ctrl.db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
