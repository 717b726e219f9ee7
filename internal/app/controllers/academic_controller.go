package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/app/services"
	"github.com/yigit/unidesk/internal/middleware"
	"github.com/yigit/unidesk/internal/pkg/helpers"
)

// ResultController handles exam results
type ResultController struct {
	resultService services.ResultService
}

// NewResultController creates a new ResultController
func NewResultController(resultService services.ResultService) *ResultController {
	return &ResultController{
		resultService: resultService,
	}
}

// ListResults handles GET /results
func (c *ResultController) ListResults(ctx *gin.Context) {
	rows := c.resultService.List(ctx, helpers.ParseCriteria(ctx, services.ResultSchema.FilterNames()))
	respondList(ctx, rows)
}

// GetResult handles GET /results/:id
func (c *ResultController) GetResult(ctx *gin.Context) {
	row, err := c.resultService.Get(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(row))
}

// CreateResult handles POST /results
func (c *ResultController) CreateResult(ctx *gin.Context) {
	var req dto.CreateResultRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	result, err := c.resultService.Create(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(result))
}

// DeleteResult handles DELETE /results/:id
func (c *ResultController) DeleteResult(ctx *gin.Context) {
	if err := c.resultService.Delete(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Result deleted"}))
}

// ExamReport handles GET /exams/:id/report
func (c *ResultController) ExamReport(ctx *gin.Context) {
	report, err := c.resultService.ExamReport(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// RegradeExam handles POST /exams/:id/regrade
func (c *ResultController) RegradeExam(ctx *gin.Context) {
	summary, err := c.resultService.RegradeExam(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// LeaveController handles faculty leave requests
type LeaveController struct {
	leaveService services.LeaveService
}

// NewLeaveController creates a new LeaveController
func NewLeaveController(leaveService services.LeaveService) *LeaveController {
	return &LeaveController{
		leaveService: leaveService,
	}
}

// ListLeaves handles GET /leave-requests
func (c *LeaveController) ListLeaves(ctx *gin.Context) {
	rows := c.leaveService.List(ctx, helpers.ParseCriteria(ctx, services.LeaveSchema.FilterNames()))
	respondList(ctx, rows)
}

// SubmitLeave handles POST /leave-requests
func (c *LeaveController) SubmitLeave(ctx *gin.Context) {
	var req dto.SubmitLeaveRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	leave, err := c.leaveService.Submit(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(leave))
}

// ApproveLeave handles POST /leave-requests/:id/approve
func (c *LeaveController) ApproveLeave(ctx *gin.Context) {
	leave, err := c.leaveService.Approve(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leave))
}

// RejectLeave handles POST /leave-requests/:id/reject
func (c *LeaveController) RejectLeave(ctx *gin.Context) {
	leave, err := c.leaveService.Reject(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(leave))
}
