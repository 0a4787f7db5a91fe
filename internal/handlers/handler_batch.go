package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
)

type batchHandler struct {
	batchService portssvc.BatchSvcFacade
}

func registerBatchRoutes(rg *gin.RouterGroup, batchService portssvc.BatchSvcFacade) {
	h := &batchHandler{batchService: batchService}

	batches := rg.Group("/batches")
	{
		batches.POST("", h.startBatch)
		batches.GET("/:id", h.getBatch)
		batches.POST("/:id/buy-back", h.buyBackAndEnd)
		batches.POST("/:id/discounts", h.addDiscount)
		batches.DELETE("/:id/discounts/:discountID", h.removeDiscount)
	}
}

func (h *batchHandler) startBatch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.StartBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for start batch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	batch, err := h.batchService.StartBatch(c.Request.Context(), req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

func (h *batchHandler) getBatch(c *gin.Context) {
	batch, err := h.batchService.GetBatchByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}

func (h *batchHandler) buyBackAndEnd(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BuyBackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for batch buy-back", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	change, err := h.batchService.BuyBackAndEndBatch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(change))
}

func (h *batchHandler) addDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for add discount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	batch, err := h.batchService.AddDiscount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBatchResponse(batch))
}

func (h *batchHandler) removeDiscount(c *gin.Context) {
	batch, err := h.batchService.RemoveDiscount(c.Request.Context(), c.Param("id"), c.Param("discountID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBatchResponse(batch))
}
