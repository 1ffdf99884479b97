// internal/api/handlers/inventory_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/biocom/playauto-go/internal/repository/postgres"
	"github.com/biocom/playauto-go/internal/service"
)

type InventoryHandler struct {
	inventoryService *service.InventoryService
}

func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

type movementRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

type stockLevelRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// ProcessInbound records a receipt for one SKU.
func (h *InventoryHandler) ProcessInbound(c *gin.Context) {
	sku := c.Param("sku")

	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
		return
	}

	if err := h.inventoryService.ProcessInbound(c.Request.Context(), sku, req.Quantity); err != nil {
		h.movementError(c, sku, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "inbound processed"})
}

// ProcessOutbound records a shipment for one SKU. The quantity is in sold
// units; bundle multiplication happens inside the service.
func (h *InventoryHandler) ProcessOutbound(c *gin.Context) {
	sku := c.Param("sku")

	var req movementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be a positive integer"})
		return
	}

	if err := h.inventoryService.ProcessOutbound(c.Request.Context(), sku, req.Quantity); err != nil {
		h.movementError(c, sku, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "outbound processed"})
}

// AdjustStock sets the stock level directly (manual correction).
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	sku := c.Param("sku")

	var req stockLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Stock == nil || *req.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock must be a non-negative integer"})
		return
	}

	if err := h.inventoryService.AdjustStock(c.Request.Context(), sku, *req.Stock); err != nil {
		h.movementError(c, sku, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "stock adjusted"})
}

func (h *InventoryHandler) movementError(c *gin.Context, sku string, err error) {
	switch {
	case errors.Is(err, postgres.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown sku"})
	case errors.Is(err, postgres.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock"})
	default:
		log.Error().Err(err).Str("sku", sku).Msg("inventory operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "inventory operation failed"})
	}
}
