package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/app/services"
	"github.com/yigit/unidesk/internal/middleware"
	"github.com/yigit/unidesk/internal/pkg/helpers"
)

// HostelController handles room allocation requests
type HostelController struct {
	hostelService services.HostelService
}

// NewHostelController creates a new HostelController
func NewHostelController(hostelService services.HostelService) *HostelController {
	return &HostelController{
		hostelService: hostelService,
	}
}

// ListRequests handles GET /hostel-allocations
func (c *HostelController) ListRequests(ctx *gin.Context) {
	rows := c.hostelService.ListRequests(ctx, helpers.ParseCriteria(ctx, services.AllocationSchema.FilterNames()))
	respondList(ctx, rows)
}

// RequestRoom handles POST /hostel-allocations
func (c *HostelController) RequestRoom(ctx *gin.Context) {
	var req dto.AllocationRequestBody
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	request, err := c.hostelService.RequestRoom(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// Approve handles POST /hostel-allocations/:id/approve
func (c *HostelController) Approve(ctx *gin.Context) {
	var req dto.DecisionRequest
	if ctx.Request.ContentLength > 0 && !middleware.DecodeJSON(ctx, &req) {
		return
	}

	request, err := c.hostelService.Approve(ctx, ctx.Param("id"), req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// Reject handles POST /hostel-allocations/:id/reject
func (c *HostelController) Reject(ctx *gin.Context) {
	var req dto.DecisionRequest
	if ctx.Request.ContentLength > 0 && !middleware.DecodeJSON(ctx, &req) {
		return
	}

	request, err := c.hostelService.Reject(ctx, ctx.Param("id"), req.Remarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// Occupancy handles GET /reports/hostel-occupancy
func (c *HostelController) Occupancy(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.hostelService.Occupancy(ctx)))
}

// ClubController handles club members and events
type ClubController struct {
	clubService services.ClubService
}

// NewClubController creates a new ClubController
func NewClubController(clubService services.ClubService) *ClubController {
	return &ClubController{
		clubService: clubService,
	}
}

// AddMember handles POST /clubs/:id/members
func (c *ClubController) AddMember(ctx *gin.Context) {
	var req dto.AddMemberRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	club, err := c.clubService.AddMember(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(club))
}

// RemoveMember handles DELETE /clubs/:id/members/:studentId
func (c *ClubController) RemoveMember(ctx *gin.Context) {
	club, err := c.clubService.RemoveMember(ctx, ctx.Param("id"), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(club))
}

// AddEvent handles POST /clubs/:id/events
func (c *ClubController) AddEvent(ctx *gin.Context) {
	var req dto.AddEventRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	event, err := c.clubService.AddEvent(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpcomingEvents handles GET /events/upcoming?limit=
func (c *ClubController) UpcomingEvents(ctx *gin.Context) {
	events := c.clubService.UpcomingEvents(ctx, helpers.QueryInt(ctx, "limit", 0))
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// LibraryController handles book issues and returns
type LibraryController struct {
	libraryService services.LibraryService
}

// NewLibraryController creates a new LibraryController
func NewLibraryController(libraryService services.LibraryService) *LibraryController {
	return &LibraryController{
		libraryService: libraryService,
	}
}

// ListIssues handles GET /book-issues
func (c *LibraryController) ListIssues(ctx *gin.Context) {
	rows := c.libraryService.ListIssues(ctx, helpers.ParseCriteria(ctx, services.BookIssueSchema.FilterNames()))
	respondList(ctx, rows)
}

// IssueBook handles POST /book-issues
func (c *LibraryController) IssueBook(ctx *gin.Context) {
	var req dto.IssueBookRequest
	if !middleware.DecodeJSON(ctx, &req) {
		return
	}

	issue, err := c.libraryService.Issue(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(issue))
}

// ReturnBook handles POST /book-issues/:id/return
func (c *LibraryController) ReturnBook(ctx *gin.Context) {
	var req dto.ReturnBookRequest
	if ctx.Request.ContentLength > 0 && !middleware.DecodeJSON(ctx, &req) {
		return
	}

	issue, err := c.libraryService.Return(ctx, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(issue))
}
