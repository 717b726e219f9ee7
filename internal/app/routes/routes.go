package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/controllers"
)

// Handlers groups every controller the router needs
type Handlers struct {
	// Collections maps a URL segment to its CRUD handlers
	Collections map[string]controllers.CRUDHandlers

	Results *controllers.ResultController
	Payroll *controllers.PayrollController
	Fees    *controllers.FeeController
	Hostel  *controllers.HostelController
	Clubs   *controllers.ClubController
	Library *controllers.LibraryController
	Leave   *controllers.LeaveController
	Reports *controllers.ReportController
	Health  *controllers.HealthController

	// ChangeFeed upgrades GET /ws/changes
	ChangeFeed gin.HandlerFunc
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, h *Handlers) {
	router.GET("/health", h.Health.Health)
	if h.ChangeFeed != nil {
		router.GET("/ws/changes", h.ChangeFeed)
	}

	// API version group
	v1 := router.Group("/api/v1")

	// --- Plain collections ---
	for segment, ctrl := range h.Collections {
		group := v1.Group("/" + segment)
		{
			group.GET("", ctrl.List)
			group.PUT("", ctrl.ReplaceAll)
			group.POST("", ctrl.Create)
			group.GET("/:id", ctrl.Get)
			group.PUT("/:id", ctrl.Update)
			group.DELETE("/:id", ctrl.Delete)
		}
	}

	// --- Results and exam reports ---
	results := v1.Group("/results")
	{
		results.GET("", h.Results.ListResults)
		results.POST("", h.Results.CreateResult)
		results.GET("/:id", h.Results.GetResult)
		results.DELETE("/:id", h.Results.DeleteResult)
	}
	v1.GET("/exams/:id/report", h.Results.ExamReport)
	v1.POST("/exams/:id/regrade", h.Results.RegradeExam)

	// --- Payroll ---
	payroll := v1.Group("/payroll")
	{
		payroll.POST("/preview", h.Payroll.Preview)
		payroll.POST("/generate", h.Payroll.Generate)
		payroll.GET("/summary", h.Payroll.Summary)
	}
	salaries := v1.Group("/salaries")
	{
		salaries.GET("", h.Payroll.ListSalaries)
		salaries.POST("/:id/pay", h.Payroll.MarkPaid)
	}

	// --- Fees ---
	payments := v1.Group("/fee-payments")
	{
		payments.GET("", h.Fees.ListPayments)
		payments.POST("", h.Fees.RecordPayment)
	}
	v1.GET("/students/:id/dues", h.Fees.StudentDues)

	// --- Hostel allocations ---
	allocations := v1.Group("/hostel-allocations")
	{
		allocations.GET("", h.Hostel.ListRequests)
		allocations.POST("", h.Hostel.RequestRoom)
		allocations.POST("/:id/approve", h.Hostel.Approve)
		allocations.POST("/:id/reject", h.Hostel.Reject)
	}

	// --- Clubs ---
	clubs := v1.Group("/clubs/:id")
	{
		clubs.POST("/members", h.Clubs.AddMember)
		clubs.DELETE("/members/:studentId", h.Clubs.RemoveMember)
		clubs.POST("/events", h.Clubs.AddEvent)
	}
	v1.GET("/events/upcoming", h.Clubs.UpcomingEvents)

	// --- Library ---
	issues := v1.Group("/book-issues")
	{
		issues.GET("", h.Library.ListIssues)
		issues.POST("", h.Library.IssueBook)
		issues.POST("/:id/return", h.Library.ReturnBook)
	}

	// --- Leave requests ---
	leaves := v1.Group("/leave-requests")
	{
		leaves.GET("", h.Leave.ListLeaves)
		leaves.POST("", h.Leave.SubmitLeave)
		leaves.POST("/:id/approve", h.Leave.ApproveLeave)
		leaves.POST("/:id/reject", h.Leave.RejectLeave)
	}

	// --- Reports ---
	reports := v1.Group("/reports")
	{
		reports.GET("/dashboard", h.Reports.Dashboard)
		reports.GET("/fees", h.Fees.Report)
		reports.GET("/hostel-occupancy", h.Hostel.Occupancy)
		reports.GET("/notices", h.Reports.Notices)
	}
}
