package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// NoticeFilter selects the notices shown to one audience
type NoticeFilter struct {
	Audience   string
	Department string
	// ActiveOn hides notices not yet posted or already expired on that date
	ActiveOn string
}

// ReportService defines the interface for read-only summaries
type ReportService interface {
	Dashboard(ctx context.Context) dto.DashboardSummary
	Notices(ctx context.Context, filter NoticeFilter) []models.Notice
}

// reportServiceImpl implements ReportService
type reportServiceImpl struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(s *store.Store, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		store:  s,
		logger: logger,
	}
}

// Dashboard computes the headline numbers from the current collections
func (s *reportServiceImpl) Dashboard(_ context.Context) dto.DashboardSummary {
	students := s.store.Students.All()
	payments := s.store.FeePayments.All()
	allocations := s.store.AllocationRequests.All()
	now := today()

	collected, _ := aggregate.FeeTotals(payments)
	hostels := s.store.Hostels.All()
	upcoming := query.Where(s.store.Exams.All(), func(e models.Exam) bool {
		return e.Status != "cancelled" && e.Status != "completed" && query.InDateRange(e.Date, now, "")
	})
	cgpa := aggregate.AverageCGPA(students)

	return dto.DashboardSummary{
		TotalStudents:        len(students),
		TotalFaculty:         s.store.Faculty.Len(),
		TotalCourses:         s.store.Courses.Len(),
		UpcomingExams:        len(upcoming),
		AverageCGPA:          cgpa,
		AverageCGPADisplay:   aggregate.FormatCGPA(cgpa),
		AverageAttendance:    aggregate.AverageAttendance(students),
		PassRate:             aggregate.PassRate(s.store.Results.All()),
		CollectionRate:       aggregate.CollectionRate(payments, len(students)),
		FeesCollected:        collected,
		NetPayrollPaid:       aggregate.NetPayrollTotal(s.store.Salaries.All()),
		HostelOccupancyRate:  aggregate.OccupancyRate(aggregate.OccupiedBeds(hostels, allocations), aggregate.HostelCapacity(hostels)),
		PendingLeaveRequests: aggregate.CountStatus(s.store.LeaveRequests.All(), models.StatusPending, func(l models.LeaveRequest) string { return l.Status }),
		PendingAllocations:   aggregate.CountStatus(allocations, models.StatusPending, func(a models.AllocationRequest) string { return a.Status }),
		BooksIssued:          aggregate.CountStatus(s.store.BookIssues.All(), models.IssueIssued, func(i models.BookIssue) string { return i.Status }),
		ActiveNotices:        len(s.Notices(context.Background(), NoticeFilter{ActiveOn: now})),
		Clubs:                s.store.Clubs.Len(),
		TransportRoutes:      s.store.TransportRoutes.Len(),
	}
}

// Notices returns the notices visible to the filter, newest first
func (s *reportServiceImpl) Notices(_ context.Context, filter NoticeFilter) []models.Notice {
	notices := query.Where(s.store.Notices.All(), func(n models.Notice) bool {
		return audienceMatches(n, filter.Audience) &&
			departmentMatches(n, filter.Department) &&
			noticeActiveOn(n, filter.ActiveOn)
	})
	query.SortBy(notices, query.SortKey[models.Notice]{Date: func(n models.Notice) string { return n.Date }}, true)
	return notices
}

func audienceMatches(n models.Notice, audience string) bool {
	if audience == "" || audience == query.AllSentinel {
		return true
	}
	return n.TargetAudience == "" || n.TargetAudience == models.AudienceAll || n.TargetAudience == audience
}

func departmentMatches(n models.Notice, department string) bool {
	if department == "" || len(n.Departments) == 0 {
		return true
	}
	for _, d := range n.Departments {
		if strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(department)) {
			return true
		}
	}
	return false
}

func noticeActiveOn(n models.Notice, date string) bool {
	if date == "" {
		return true
	}
	return query.InDateRange(date, n.Date, n.ExpiryDate)
}
