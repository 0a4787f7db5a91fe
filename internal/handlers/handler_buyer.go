package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
)

type buyerHandler struct {
	buyerService  portssvc.BuyerSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func registerBuyerRoutes(rg *gin.RouterGroup, buyerService portssvc.BuyerSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &buyerHandler{buyerService: buyerService, ledgerService: ledgerService}

	buyers := rg.Group("/buyers")
	{
		buyers.POST("", h.createBuyer)
		buyers.GET("", h.listBuyers)
		buyers.GET("/:id", h.getBuyer)
		buyers.PATCH("/:id", h.updateBuyer)
		buyers.DELETE("/:id", h.deleteBuyer)
		buyers.PATCH("/:id/deposit", h.deposit)
		buyers.PATCH("/:id/withdraw", h.withdraw)
	}
}

func (h *buyerHandler) createBuyer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for create buyer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	buyer, err := h.buyerService.CreateBuyer(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBuyerResponse(buyer))
}

func (h *buyerHandler) listBuyers(c *gin.Context) {
	buyers, err := h.buyerService.ListBuyers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBuyerResponses(buyers))
}

func (h *buyerHandler) getBuyer(c *gin.Context) {
	buyer, err := h.buyerService.GetBuyerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBuyerResponse(buyer))
}

func (h *buyerHandler) updateBuyer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateBuyerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for update buyer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	buyer, err := h.buyerService.UpdateBuyer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBuyerResponse(buyer))
}

func (h *buyerHandler) deleteBuyer(c *gin.Context) {
	if err := h.buyerService.DeleteBuyer(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Buyer deleted successfully"})
}

func (h *buyerHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for buyer deposit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ref := domain.PartyRef{Kind: domain.PartyWholesaleBuyer, ID: c.Param("id")}
	change, err := h.ledgerService.Deposit(c.Request.Context(), ref, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(change))
}

func (h *buyerHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for buyer withdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	ref := domain.PartyRef{Kind: domain.PartyWholesaleBuyer, ID: c.Param("id")}
	change, err := h.ledgerService.Withdraw(c.Request.Context(), ref, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceChangeResponse(change))
}
