package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/app/services"
)

// ReportController serves dashboard summaries
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
	}
}

// Dashboard handles GET /reports/dashboard
func (c *ReportController) Dashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.reportService.Dashboard(ctx)))
}

// Notices handles GET /reports/notices?audience=&department=&activeOn=
func (c *ReportController) Notices(ctx *gin.Context) {
	notices := c.reportService.Notices(ctx, services.NoticeFilter{
		Audience:   ctx.Query("audience"),
		Department: ctx.Query("department"),
		ActiveOn:   ctx.Query("activeOn"),
	})
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notices))
}
