// internal/api/handlers/forecast_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/biocom/playauto-go/internal/domain"
	"github.com/biocom/playauto-go/internal/repository/postgres"
	"github.com/biocom/playauto-go/internal/service"
)

type ForecastHandler struct {
	predictionService *service.PredictionService
}

func NewForecastHandler(predictionService *service.PredictionService) *ForecastHandler {
	return &ForecastHandler{predictionService: predictionService}
}

// ListForecasts returns forecast views for every trained SKU.
func (h *ForecastHandler) ListForecasts(c *gin.Context) {
	views, err := h.predictionService.List(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list forecasts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list forecasts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"forecasts": views,
		"count":     len(views),
	})
}

// GetForecast returns the forecast view for one SKU.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	sku := c.Param("sku")

	view, err := h.predictionService.Get(c.Request.Context(), sku)
	switch {
	case errors.Is(err, postgres.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sku"})
		return
	case errors.Is(err, service.ErrNoForecast):
		c.JSON(http.StatusNotFound, gin.H{"error": "no forecast available for this sku"})
		return
	case err != nil:
		log.Error().Err(err).Str("sku", sku).Msg("failed to get forecast")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get forecast"})
		return
	}

	c.JSON(http.StatusOK, view)
}

type adjustmentRequest struct {
	Adjusted1 *float64 `json:"adjusted_1"`
	Adjusted2 *float64 `json:"adjusted_2"`
	Adjusted3 *float64 `json:"adjusted_3"`
	Reason    string   `json:"reason"`
	EditedBy  string   `json:"edited_by" binding:"required"`
}

// SaveAdjustment appends a manual forecast override for one SKU.
func (h *ForecastHandler) SaveAdjustment(c *gin.Context) {
	sku := c.Param("sku")

	var req adjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid adjustment payload"})
		return
	}

	adj := domain.ManualAdjustment{
		SKU:       sku,
		Adjusted1: req.Adjusted1,
		Adjusted2: req.Adjusted2,
		Adjusted3: req.Adjusted3,
		Reason:    req.Reason,
		EditedBy:  req.EditedBy,
	}

	err := h.predictionService.SaveAdjustment(c.Request.Context(), adj)
	switch {
	case errors.Is(err, postgres.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sku"})
		return
	case err != nil:
		log.Error().Err(err).Str("sku", sku).Msg("failed to save adjustment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save adjustment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "adjustment saved"})
}
