package controllers

import (
	"net/http"

	"allure-backend/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	dashboard *services.DashboardService
	reports   *services.ReportService
}

func NewDashboardController(dashboard *services.DashboardService, reports *services.ReportService) *DashboardController {
	return &DashboardController{dashboard: dashboard, reports: reports}
}

// GetDashboardOverview returns the delivery buckets and outstanding totals
func (dc *DashboardController) GetDashboardOverview(c *gin.Context) {
	summary, err := dc.dashboard.Summary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Dashboard")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetReportAnalytics returns revenue for the month, quarter and year with
// growth against the previous period
func (dc *DashboardController) GetReportAnalytics(c *gin.Context) {
	summary, err := dc.reports.Analytics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Report")
		return
	}
	c.JSON(http.StatusOK, summary)
}
