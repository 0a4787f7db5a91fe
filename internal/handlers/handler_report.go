package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
)

type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := &reportHandler{reportService: reportService}

	reports := rg.Group("/reports")
	{
		reports.GET("/sales", h.salesReport)
		reports.GET("/batch/:batchID", h.batchReport)
	}
	rg.GET("/dashboard", h.dashboard)
}

func (h *reportHandler) salesReport(c *gin.Context) {
	startStr := c.Query("startDate")
	endStr := c.Query("endDate")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate query parameters are required"})
		return
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate format, expected YYYY-MM-DD"})
		return
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate format, expected YYYY-MM-DD"})
		return
	}
	// Make the end date inclusive of the whole day.
	end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)

	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "endDate must not be before startDate"})
		return
	}

	res, err := h.reportService.SalesReport(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *reportHandler) batchReport(c *gin.Context) {
	res, err := h.reportService.BatchReport(c.Request.Context(), c.Param("batchID"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *reportHandler) dashboard(c *gin.Context) {
	res, err := h.reportService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
