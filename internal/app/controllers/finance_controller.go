package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/app/services"
	"github.com/yigit/unidesk/internal/middleware"
	"github.com/yigit/unidesk/internal/pkg/helpers"
)

// PayrollController handles salary derivation and payroll runs
type PayrollController struct {
	payrollService services.PayrollService
}

// NewPayrollController creates a new PayrollController
func NewPayrollController(payrollService services.PayrollService) *PayrollController {
	return &PayrollController{
		payrollService: payrollService,
	}
}

// Preview handles POST /payroll/preview
func (c *PayrollController) Preview(ctx *gin.Context) {
	var req dto.PayrollPreviewRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.payrollService.Preview(req.BasicSalary)))
}

// Generate handles POST /payroll/generate
func (c *PayrollController) Generate(ctx *gin.Context) {
	var req dto.GeneratePayrollRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	run, err := c.payrollService.Generate(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(run))
}

// Summary handles GET /payroll/summary?month=&year=
func (c *PayrollController) Summary(ctx *gin.Context) {
	summary := c.payrollService.Summary(ctx, helpers.QueryInt(ctx, "month", 0), helpers.QueryInt(ctx, "year", 0))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// ListSalaries handles GET /salaries
func (c *PayrollController) ListSalaries(ctx *gin.Context) {
	rows := c.payrollService.List(ctx, helpers.ParseCriteria(ctx, services.SalarySchema.FilterNames()))
	respondList(ctx, rows)
}

// MarkPaid handles POST /salaries/:id/pay
func (c *PayrollController) MarkPaid(ctx *gin.Context) {
	salary, err := c.payrollService.MarkPaid(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(salary))
}

// FeeController handles fee payments
type FeeController struct {
	feeService services.FeeService
}

// NewFeeController creates a new FeeController
func NewFeeController(feeService services.FeeService) *FeeController {
	return &FeeController{
		feeService: feeService,
	}
}

// ListPayments handles GET /fee-payments
func (c *FeeController) ListPayments(ctx *gin.Context) {
	rows := c.feeService.List(ctx, helpers.ParseCriteria(ctx, services.FeePaymentSchema.FilterNames()))
	respondList(ctx, rows)
}

// RecordPayment handles POST /fee-payments
func (c *FeeController) RecordPayment(ctx *gin.Context) {
	var req dto.RecordPaymentRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	payment, err := c.feeService.RecordPayment(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(payment))
}

// StudentDues handles GET /students/:id/dues
func (c *FeeController) StudentDues(ctx *gin.Context) {
	dues, err := c.feeService.Dues(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dues))
}

// Report handles GET /reports/fees
func (c *FeeController) Report(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.feeService.Report(ctx)))
}
