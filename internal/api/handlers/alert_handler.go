// internal/api/handlers/alert_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/biocom/playauto-go/internal/service"
)

type AlertHandler struct {
	alertService *service.AlertService
}

func NewAlertHandler(alertService *service.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// GetAlerts returns the ranked alert list for the whole catalog.
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts, err := h.alertService.Evaluate(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("alert evaluation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to evaluate alerts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": alerts,
		"count":  len(alerts),
	})
}
