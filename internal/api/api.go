// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/biocom/playauto-go/internal/api/handlers"
	"github.com/biocom/playauto-go/internal/api/middleware"
	"github.com/biocom/playauto-go/internal/service"
)

type Services struct {
	AlertService      *service.AlertService
	PredictionService *service.PredictionService
	InventoryService  *service.InventoryService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware; request logs go through zerolog like everything else
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.AlertService != nil {
			alertHandler := handlers.NewAlertHandler(services.AlertService)
			apiGroup.GET("/alerts", alertHandler.GetAlerts)
		}

		if services.PredictionService != nil {
			forecastHandler := handlers.NewForecastHandler(services.PredictionService)
			forecastGroup := apiGroup.Group("/forecasts")
			{
				forecastGroup.GET("", forecastHandler.ListForecasts)
				forecastGroup.GET("/:sku", forecastHandler.GetForecast)
				forecastGroup.POST("/:sku/adjustments", forecastHandler.SaveAdjustment)
			}
		}

		if services.InventoryService != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.InventoryService)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.POST("/:sku/inbound", inventoryHandler.ProcessInbound)
				inventoryGroup.POST("/:sku/outbound", inventoryHandler.ProcessOutbound)
				inventoryGroup.PUT("/:sku/stock", inventoryHandler.AdjustStock)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
