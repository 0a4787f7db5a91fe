package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
)

type transactionHandler struct {
	reportService portssvc.ReportSvcFacade
}

func registerTransactionRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := &transactionHandler{reportService: reportService}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/batch/:batchID", h.listBatchTransactions)
		transactions.GET("/buyer/:buyerID", h.listBuyerTransactions)
	}
}

// pageQuery reads the ?page= parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	res, err := h.reportService.ListTransactions(c.Request.Context(), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *transactionHandler) listBatchTransactions(c *gin.Context) {
	var day *time.Time
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		day = &parsed
	}

	res, err := h.reportService.ListBatchTransactions(c.Request.Context(), c.Param("batchID"), pageQuery(c), day)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *transactionHandler) listBuyerTransactions(c *gin.Context) {
	res, err := h.reportService.ListBuyerTransactions(c.Request.Context(), c.Param("buyerID"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
