package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/lookup"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
	"github.com/yigit/unidesk/internal/pkg/validation"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

type fixture struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
}

func cgpa(v float64) *float64 { return &v }

// freezeClock pins today() to 2026-10-19
func freezeClock(t *testing.T) {
	t.Helper()
	previous := timeNow
	timeNow = func() time.Time { return time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = previous })
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	freezeClock(t)
	ctx := context.Background()
	s := store.New(blobstore.NewMemoryStore(), zerolog.Nop())

	require.NoError(t, s.Students.Replace(ctx, []models.Student{
		{ID: "STU001", Name: "John Doe", RollNumber: "CS001", Course: "B.Tech", Branch: "Computer Science", Semester: 3, CGPA: cgpa(8.5), AttendancePercentage: 90},
		{ID: "STU002", Name: "Jane Smith", RollNumber: "ME001", Course: "B.Tech", Branch: "Mechanical", Semester: 3, AttendancePercentage: 70},
	}))
	require.NoError(t, s.Faculty.Replace(ctx, []models.Faculty{
		{ID: "FAC001", Name: "Dr. Sharma", Department: "Computer Science", Salary: 50000, Status: models.StatusActive},
		{ID: "FAC002", Name: "Dr. Rao", Department: "Mechanical", Salary: 40000, Status: models.StatusInactive},
	}))
	require.NoError(t, s.Exams.Replace(ctx, []models.Exam{
		{ID: "EXM001", Name: "Data Structures Mid-term", Course: "B.Tech", Branch: "Computer Science", Semester: 3, Subject: "Data Structures", Date: "2026-11-01", MaxMarks: 100, PassingMarks: 40, Status: "scheduled"},
	}))
	require.NoError(t, s.FeeStructures.Replace(ctx, []models.FeeStructure{
		{ID: "FST001", Course: "B.Tech", Branch: "Computer Science", Semester: 3, TuitionFee: 50000, LabFee: 5000, TotalFee: 55000, DueDate: "2026-09-30"},
	}))
	require.NoError(t, s.Hostels.Replace(ctx, []models.Hostel{
		{ID: "HST001", Name: "North Block", Type: "boys", Rooms: []models.Room{
			{ID: "RM001", Number: "101", Capacity: 1},
			{ID: "RM002", Number: "102", Capacity: 2},
		}},
	}))
	require.NoError(t, s.Clubs.Replace(ctx, []models.Club{
		{ID: "CLB001", Name: "Robotics Club", Category: "technical", Members: []models.ClubMember{}, Events: []models.ClubEvent{}},
	}))
	require.NoError(t, s.Books.Replace(ctx, []models.Book{
		{ID: "BK001", Title: "Introduction to Algorithms", Author: "Cormen", Category: "computer science", TotalCopies: 2, AvailableCopies: 1},
	}))

	return &fixture{store: s, resolver: lookup.NewResolver(s), validate: validation.New()}
}

func TestCreateResultFreezesGrade(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewResultService(f.store, f.resolver, f.validate, zerolog.Nop())

	created, err := svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 85})
	require.NoError(t, err)
	assert.Equal(t, "RES001", created.ID)
	assert.Equal(t, "A", created.Grade)
	assert.Equal(t, 9.0, created.GradePoint)
	assert.Equal(t, models.ResultPass, created.Status)

	// changing the exam does not touch the stored grade
	_, err = f.store.Exams.Update(ctx, "EXM001", func(e models.Exam) (models.Exam, error) {
		e.MaxMarks = 200
		return e, nil
	})
	require.NoError(t, err)
	row, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", row.Grade)
	assert.Equal(t, "John Doe", row.StudentName)

	summary, err := svc.RegradeExam(ctx, "EXM001")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.Changed)

	row, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "D", row.Grade)
	assert.Equal(t, 5.0, row.GradePoint)
}

func TestRegradeKeepsConcurrentResults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewResultService(f.store, f.resolver, f.validate, zerolog.Nop())

	const n = 40
	students := make([]models.Student, 0, n)
	for i := 1; i <= n; i++ {
		students = append(students, models.Student{ID: fmt.Sprintf("STU%03d", i), Course: "B.Tech", Branch: "Computer Science", Semester: 3})
	}
	require.NoError(t, f.store.Students.Replace(ctx, students))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(id string) {
			defer wg.Done()
			_, err := svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: id, MarksObtained: 50})
			assert.NoError(t, err)
		}(students[i].ID)
		go func(maxMarks float64) {
			defer wg.Done()
			_, err := f.store.Exams.Update(ctx, "EXM001", func(e models.Exam) (models.Exam, error) {
				e.MaxMarks = maxMarks
				return e, nil
			})
			assert.NoError(t, err)
			_, err = svc.RegradeExam(ctx, "EXM001")
			assert.NoError(t, err)
		}(float64(100 + 100*(i%2)))
	}
	wg.Wait()

	assert.Equal(t, n, f.store.Results.Len())
	_, err := svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 50})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
}

func TestCreateResultRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewResultService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM404", StudentID: "STU001", MarksObtained: 50})
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)

	_, err = svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU404", MarksObtained: 50})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 120})
	assert.ErrorIs(t, err, apperrors.ErrMarksOutOfRange)

	_, err = svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 30})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 60})
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	_, err = svc.Create(ctx, &dto.CreateResultRequest{StudentID: "STU001"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}

func TestExamReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewResultService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU001", MarksObtained: 90})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &dto.CreateResultRequest{ExamID: "EXM001", StudentID: "STU002", MarksObtained: 20})
	require.NoError(t, err)

	report, err := svc.ExamReport(ctx, "EXM001")
	require.NoError(t, err)
	assert.Equal(t, 1, report.EligibleStudents)
	assert.Equal(t, 2, report.ResultsRecorded)
	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 50, report.PassRate)
	assert.Equal(t, 55.0, report.AverageMarks)
	assert.Equal(t, 90.0, report.HighestMarks)
}

func TestGeneratePayroll(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPayrollService(f.store, f.resolver, f.validate, zerolog.Nop())

	run, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026})
	require.NoError(t, err)
	require.Len(t, run.Created, 1)
	assert.Equal(t, 1, run.Employees)

	salary := run.Created[0]
	assert.Equal(t, "SAL001", salary.ID)
	assert.Equal(t, "FAC001", salary.FacultyID)
	assert.Equal(t, 76000.0, salary.GrossSalary)
	assert.Equal(t, 66200.0, salary.NetSalary)
	assert.Equal(t, models.SalaryPending, salary.Status)

	again, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026})
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Equal(t, []string{"FAC001"}, again.Skipped)
	assert.Equal(t, 1, f.store.Salaries.Len())

	next, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 11, Year: 2026})
	require.NoError(t, err)
	require.Len(t, next.Created, 1)
	assert.Equal(t, "SAL002", next.Created[0].ID)
}

func TestGeneratePayrollOverwriteSparesPaidRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPayrollService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026})
	require.NoError(t, err)

	_, err = f.store.Faculty.Update(ctx, "FAC001", func(fac models.Faculty) (models.Faculty, error) {
		fac.Salary = 60000
		return fac, nil
	})
	require.NoError(t, err)

	run, err := svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026, Overwrite: true})
	require.NoError(t, err)
	require.Len(t, run.Replaced, 1)
	assert.Equal(t, "SAL001", run.Replaced[0].ID)
	assert.Equal(t, 60000.0, run.Replaced[0].BasicSalary)

	paid, err := svc.MarkPaid(ctx, "SAL001")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", paid.PaidDate)

	run, err = svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026, Overwrite: true})
	require.NoError(t, err)
	assert.Empty(t, run.Replaced)
	assert.Equal(t, []string{"FAC001"}, run.Skipped)

	stored, ok := f.store.Salaries.Get("SAL001")
	require.True(t, ok)
	assert.Equal(t, models.SalaryPaid, stored.Status)
}

func TestMarkPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewPayrollService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.MarkPaid(ctx, "SAL404")
	assert.ErrorIs(t, err, apperrors.ErrSalaryNotFound)

	_, err = svc.Generate(ctx, &dto.GeneratePayrollRequest{Month: 10, Year: 2026})
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, "SAL001")
	require.NoError(t, err)
	_, err = svc.MarkPaid(ctx, "SAL001")
	assert.ErrorIs(t, err, apperrors.ErrSalaryAlreadyPaid)

	summary := svc.Summary(ctx, 10, 2026)
	assert.Equal(t, 66200.0, summary.NetPaidTotal)
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 0, summary.PendingCount)

	rows := svc.List(ctx, query.Criteria{Filters: map[string]string{"status": "paid"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "Dr. Sharma", rows[0].FacultyName)
}

func TestPayrollGenerateValidatesPeriod(t *testing.T) {
	f := newFixture(t)
	svc := NewPayrollService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.Generate(context.Background(), &dto.GeneratePayrollRequest{Month: 13, Year: 2026})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Zero(t, f.store.Salaries.Len())
}

func TestRecordPaymentAndDues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewFeeService(f.store, f.resolver, f.validate, zerolog.Nop())

	payment, err := svc.RecordPayment(ctx, &dto.RecordPaymentRequest{StudentID: "STU001", Amount: 20000})
	require.NoError(t, err)
	assert.Equal(t, "PAY001", payment.ID)
	assert.Equal(t, "FST001", payment.FeeStructureID)
	assert.Equal(t, "2026-10-19", payment.PaymentDate)
	assert.Equal(t, "cash", payment.Method)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	assert.Len(t, payment.TransactionID, 15)
	assert.Regexp(t, `^TXN[0-9A-F]{12}$`, payment.TransactionID)

	dues, err := svc.Dues(ctx, "STU001")
	require.NoError(t, err)
	assert.Equal(t, 55000.0, dues.TotalFee)
	assert.Equal(t, 20000.0, dues.Paid)
	assert.Equal(t, 35000.0, dues.Balance)
	assert.True(t, dues.Overdue)

	report := svc.Report(ctx)
	assert.Equal(t, 2, report.TotalStudents)
	assert.Equal(t, 1, report.PayingStudents)
	assert.Equal(t, 50, report.CollectionRate)
	assert.Equal(t, 20000.0, report.CollectedAmount)
	assert.Equal(t, 55000.0, report.ExpectedAmount)

	rows := svc.List(ctx, query.Criteria{Query: "stu001"})
	require.Len(t, rows, 1)
	assert.Equal(t, "CS001", rows[0].RollNumber)
}

func TestRecordPaymentRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewFeeService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.RecordPayment(ctx, &dto.RecordPaymentRequest{StudentID: "STU404", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.RecordPayment(ctx, &dto.RecordPaymentRequest{StudentID: "STU001", FeeStructureID: "FST404", Amount: 100})
	assert.ErrorIs(t, err, apperrors.ErrFeeStructureNotFound)

	_, err = svc.RecordPayment(ctx, &dto.RecordPaymentRequest{StudentID: "STU001", Amount: 0})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
	assert.Zero(t, f.store.FeePayments.Len())
}

func TestHostelAllocationLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewHostelService(f.store, f.resolver, f.validate, zerolog.Nop())

	first, err := svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU001", HostelID: "HST001", RoomID: "RM001"})
	require.NoError(t, err)
	assert.Equal(t, "HAR001", first.ID)
	assert.Equal(t, models.StatusPending, first.Status)
	assert.Equal(t, "2026-10-19", first.RequestDate)

	second, err := svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU002", HostelID: "HST001", RoomID: "RM001"})
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, first.ID, "welcome")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.Equal(t, "welcome", approved.Remarks)

	hostel, ok := f.store.Hostels.Get("HST001")
	require.True(t, ok)
	assert.Equal(t, 1, hostel.Rooms[0].Occupied)
	assert.Equal(t, 0, hostel.Rooms[1].Occupied)

	_, err = svc.Approve(ctx, second.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrRoomFull)

	_, err = svc.Approve(ctx, first.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	rejected, err := svc.Reject(ctx, second.ID, "room full")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	_, err = svc.Reject(ctx, second.ID, "")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	_, err = svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU001", HostelID: "HST001", RoomID: "RM002"})
	assert.ErrorIs(t, err, apperrors.ErrStudentAlreadyHoused)

	occupancy := svc.Occupancy(ctx)
	require.Len(t, occupancy, 1)
	assert.Equal(t, 3, occupancy[0].Capacity)
	assert.Equal(t, 1, occupancy[0].Occupied)
	assert.Equal(t, 33, occupancy[0].OccupancyRate)
	assert.Equal(t, 0, occupancy[0].Rooms[0].Available)

	rows := svc.ListRequests(ctx, query.Criteria{Filters: map[string]string{"status": "approved"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "John Doe", rows[0].StudentName)
	assert.Equal(t, "101", rows[0].RoomNumber)
}

func TestHostelRequestUnknownReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewHostelService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU404", HostelID: "HST001", RoomID: "RM001"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	_, err = svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU001", HostelID: "HST404", RoomID: "RM001"})
	assert.ErrorIs(t, err, apperrors.ErrHostelNotFound)
	_, err = svc.RequestRoom(ctx, &dto.AllocationRequestBody{StudentID: "STU001", HostelID: "HST001", RoomID: "RM404"})
	assert.ErrorIs(t, err, apperrors.ErrRoomNotFound)
	_, err = svc.Approve(ctx, "HAR404", "")
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)
}

func TestSyncOccupancyRewritesCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewHostelService(f.store, f.resolver, f.validate, zerolog.Nop())

	require.NoError(t, f.store.AllocationRequests.Replace(ctx, []models.AllocationRequest{
		{ID: "HAR001", StudentID: "STU001", HostelID: "HST001", RoomID: "RM002", Status: models.StatusApproved},
		{ID: "HAR002", StudentID: "STU002", HostelID: "HST001", RoomID: "RM002", Status: models.StatusPending},
	}))
	_, err := f.store.Hostels.Update(ctx, "HST001", func(h models.Hostel) (models.Hostel, error) {
		h.Rooms[0].Occupied = 7
		return h, nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.SyncOccupancy(ctx))
	hostel, _ := f.store.Hostels.Get("HST001")
	assert.Equal(t, 0, hostel.Rooms[0].Occupied)
	assert.Equal(t, 1, hostel.Rooms[1].Occupied)
}

func TestClubMembership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewClubService(f.store, f.resolver, f.validate, zerolog.Nop())

	club, err := svc.AddMember(ctx, "CLB001", &dto.AddMemberRequest{StudentID: "STU001"})
	require.NoError(t, err)
	require.Len(t, club.Members, 1)
	assert.Equal(t, "member", club.Members[0].Role)
	assert.Equal(t, "2026-10-19", club.Members[0].JoinedAt)

	_, err = svc.AddMember(ctx, "CLB001", &dto.AddMemberRequest{StudentID: "STU001"})
	assert.ErrorIs(t, err, apperrors.ErrAlreadyClubMember)

	_, err = svc.AddMember(ctx, "CLB404", &dto.AddMemberRequest{StudentID: "STU001"})
	assert.ErrorIs(t, err, apperrors.ErrClubNotFound)

	_, err = svc.AddMember(ctx, "CLB001", &dto.AddMemberRequest{StudentID: "STU404"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	club, err = svc.RemoveMember(ctx, "CLB001", "STU001")
	require.NoError(t, err)
	assert.Empty(t, club.Members)

	_, err = svc.RemoveMember(ctx, "CLB001", "STU001")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestClubEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewClubService(f.store, f.resolver, f.validate, zerolog.Nop())

	later, err := svc.AddEvent(ctx, "CLB001", &dto.AddEventRequest{Title: "Robot Wars", Date: "2026-12-05"})
	require.NoError(t, err)
	assert.Equal(t, "EVT001", later.ID)

	sooner, err := svc.AddEvent(ctx, "CLB001", &dto.AddEventRequest{Title: "Workshop", Date: "2026-10-25"})
	require.NoError(t, err)
	assert.Equal(t, "EVT002", sooner.ID)

	_, err = svc.AddEvent(ctx, "CLB001", &dto.AddEventRequest{Title: "Kickoff", Date: "2026-01-10"})
	require.NoError(t, err)

	_, err = svc.AddEvent(ctx, "CLB404", &dto.AddEventRequest{Title: "Ghost", Date: "2026-12-01"})
	assert.ErrorIs(t, err, apperrors.ErrClubNotFound)

	upcoming := svc.UpcomingEvents(ctx, 0)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Workshop", upcoming[0].Title)
	assert.Equal(t, "Robotics Club", upcoming[0].ClubName)
	assert.Equal(t, "Robot Wars", upcoming[1].Title)

	assert.Len(t, svc.UpcomingEvents(ctx, 1), 1)
}

func TestConcurrentClubEventsGetDistinctIDs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Clubs.Append(ctx, models.Club{ID: "CLB002", Name: "Drama Club", Category: "cultural"}))
	svc := NewClubService(f.store, f.resolver, f.validate, zerolog.Nop())

	var mu sync.Mutex
	ids := map[string]bool{}
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(clubID string) {
			defer wg.Done()
			event, err := svc.AddEvent(ctx, clubID, &dto.AddEventRequest{Title: "Meetup", Date: "2026-11-20"})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[event.ID] = true
			mu.Unlock()
		}([]string{"CLB001", "CLB002"}[i%2])
	}
	wg.Wait()

	assert.Len(t, ids, 20)
	assert.Len(t, svc.UpcomingEvents(ctx, 0), 20)
}

func TestLibraryIssueAndReturn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewLibraryService(f.store, f.resolver, f.validate, LibraryPolicy{FinePerDay: 5, LoanDays: 14}, zerolog.Nop())

	issue, err := svc.Issue(ctx, &dto.IssueBookRequest{BookID: "BK001", StudentID: "STU001", IssueDate: "2026-10-01"})
	require.NoError(t, err)
	assert.Equal(t, "ISS001", issue.ID)
	assert.Equal(t, "2026-10-15", issue.DueDate)
	assert.Equal(t, models.IssueIssued, issue.Status)

	book, _ := f.store.Books.Get("BK001")
	assert.Equal(t, 0, book.AvailableCopies)

	_, err = svc.Issue(ctx, &dto.IssueBookRequest{BookID: "BK001", StudentID: "STU002"})
	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)

	returned, err := svc.Return(ctx, issue.ID, &dto.ReturnBookRequest{})
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", returned.ReturnDate)
	assert.Equal(t, 20.0, returned.Fine)

	book, _ = f.store.Books.Get("BK001")
	assert.Equal(t, 1, book.AvailableCopies)

	_, err = svc.Return(ctx, issue.ID, &dto.ReturnBookRequest{})
	assert.ErrorIs(t, err, apperrors.ErrBookAlreadyReturned)

	rows := svc.ListIssues(ctx, query.Criteria{})
	require.Len(t, rows, 1)
	assert.Equal(t, "Introduction to Algorithms", rows[0].BookTitle)
}

func TestLibraryRejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewLibraryService(f.store, f.resolver, f.validate, LibraryPolicy{FinePerDay: 5, LoanDays: 14}, zerolog.Nop())

	_, err := svc.Issue(ctx, &dto.IssueBookRequest{BookID: "BK404", StudentID: "STU001"})
	assert.ErrorIs(t, err, apperrors.ErrBookNotFound)

	_, err = svc.Issue(ctx, &dto.IssueBookRequest{BookID: "BK001", StudentID: "STU404"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.Return(ctx, "ISS404", &dto.ReturnBookRequest{})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestLeaveRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewLeaveService(f.store, f.resolver, f.validate, zerolog.Nop())

	_, err := svc.Submit(ctx, &dto.SubmitLeaveRequest{FacultyID: "FAC001", LeaveType: "sick", FromDate: "2026-10-22", ToDate: "2026-10-20", Reason: "flu"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Submit(ctx, &dto.SubmitLeaveRequest{FacultyID: "FAC404", LeaveType: "sick", FromDate: "2026-10-20", ToDate: "2026-10-22", Reason: "flu"})
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	leave, err := svc.Submit(ctx, &dto.SubmitLeaveRequest{FacultyID: "FAC001", LeaveType: "sick", FromDate: "2026-10-20", ToDate: "2026-10-22", Reason: "flu"})
	require.NoError(t, err)
	assert.Equal(t, "LV001", leave.ID)
	assert.Equal(t, models.StatusPending, leave.Status)
	assert.Equal(t, "2026-10-19", leave.AppliedOn)

	approved, err := svc.Approve(ctx, leave.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.NotEmpty(t, approved.DecidedAt)

	_, err = svc.Reject(ctx, leave.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	_, err = svc.Approve(ctx, "LV404")
	assert.ErrorIs(t, err, apperrors.ErrRequestNotFound)

	rows := svc.List(ctx, query.Criteria{Filters: map[string]string{"leaveType": "sick"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "Dr. Sharma", rows[0].FacultyName)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fees := NewFeeService(f.store, f.resolver, f.validate, zerolog.Nop())
	_, err := fees.RecordPayment(ctx, &dto.RecordPaymentRequest{StudentID: "STU001", Amount: 1000})
	require.NoError(t, err)

	summary := NewReportService(f.store, zerolog.Nop()).Dashboard(ctx)
	assert.Equal(t, 2, summary.TotalStudents)
	assert.Equal(t, 2, summary.TotalFaculty)
	assert.Equal(t, 1, summary.UpcomingExams)
	assert.Equal(t, 4.25, summary.AverageCGPA)
	assert.Equal(t, "4.25", summary.AverageCGPADisplay)
	assert.Equal(t, 80.0, summary.AverageAttendance)
	assert.Equal(t, 50, summary.CollectionRate)
	assert.Equal(t, 1000.0, summary.FeesCollected)
	assert.Equal(t, 0, summary.PassRate)
	assert.Equal(t, 0.0, summary.NetPayrollPaid)
	assert.Equal(t, 1, summary.Clubs)
}

func TestDashboardOccupancyIgnoresRemovedRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.AllocationRequests.Replace(ctx, []models.AllocationRequest{
		{ID: "HAR001", StudentID: "STU001", HostelID: "HST001", RoomID: "RM002", Status: models.StatusApproved},
		{ID: "HAR002", StudentID: "STU002", HostelID: "HST001", RoomID: "RM009", Status: models.StatusApproved},
		{ID: "HAR003", StudentID: "STU002", HostelID: "HST404", RoomID: "RM001", Status: models.StatusApproved},
	}))

	summary := NewReportService(f.store, zerolog.Nop()).Dashboard(ctx)
	assert.Equal(t, 33, summary.HostelOccupancyRate)
}

func TestDashboardOnEmptyStore(t *testing.T) {
	freezeClock(t)
	s := store.New(blobstore.NewMemoryStore(), zerolog.Nop())

	summary := NewReportService(s, zerolog.Nop()).Dashboard(context.Background())
	assert.Equal(t, dto.DashboardSummary{AverageCGPADisplay: "0.00"}, summary)
}

func TestNoticesByAudience(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Notices.Replace(ctx, []models.Notice{
		{ID: "NOT001", Title: "Exam schedule", Date: "2026-10-01", TargetAudience: models.AudienceStudents},
		{ID: "NOT002", Title: "Staff meeting", Date: "2026-10-10", TargetAudience: models.AudienceFaculty, Departments: []string{"Mechanical"}},
		{ID: "NOT003", Title: "Diwali break", Date: "2026-10-15", TargetAudience: models.AudienceAll},
		{ID: "NOT004", Title: "Old notice", Date: "2026-01-01", ExpiryDate: "2026-02-01", TargetAudience: models.AudienceAll},
	}))
	svc := NewReportService(f.store, zerolog.Nop())

	students := svc.Notices(ctx, NoticeFilter{Audience: models.AudienceStudents, ActiveOn: "2026-10-19"})
	require.Len(t, students, 2)
	assert.Equal(t, "NOT003", students[0].ID)
	assert.Equal(t, "NOT001", students[1].ID)

	cs := svc.Notices(ctx, NoticeFilter{Audience: models.AudienceFaculty, Department: "computer science"})
	require.Len(t, cs, 2)
	assert.Equal(t, "NOT003", cs[0].ID)
	assert.Equal(t, "NOT004", cs[1].ID)

	assert.Len(t, svc.Notices(ctx, NoticeFilter{}), 4)
}

func TestCatalogCreateAssignsID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	catalogs := NewCatalogs(f.store, f.validate, zerolog.Nop())

	created, err := catalogs.Students.Create(ctx, models.Student{Name: "Ravi Kumar", RollNumber: "CS002", Course: "B.Tech", Branch: "Computer Science", Semester: 3})
	require.NoError(t, err)
	assert.Equal(t, "STU003", created.ID)
	assert.Equal(t, models.StatusActive, created.Status)

	_, err = catalogs.Students.Create(ctx, models.Student{RollNumber: "CS003"})
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))

	_, err = catalogs.Students.Get(ctx, "STU404")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = catalogs.Students.Update(ctx, "STU001", models.Student{ID: "STU002", Name: "John Doe"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	err = catalogs.Students.Delete(ctx, "STU404")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestCatalogListAppliesCriteria(t *testing.T) {
	f := newFixture(t)
	catalogs := NewCatalogs(f.store, f.validate, zerolog.Nop())

	got := catalogs.Students.List(context.Background(), query.Criteria{
		Filters: map[string]string{"branch": "Mechanical"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "STU002", got[0].ID)

	got = catalogs.Students.List(context.Background(), query.Criteria{SortBy: "name", SortOrder: query.SortAsc})
	require.Len(t, got, 2)
	assert.Equal(t, "Jane Smith", got[0].Name)
}

func TestCatalogHostelDerivesRooms(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.AllocationRequests.Replace(ctx, []models.AllocationRequest{
		{ID: "HAR001", StudentID: "STU001", HostelID: "HST001", RoomID: "RM001", Status: models.StatusApproved},
	}))
	catalogs := NewCatalogs(f.store, f.validate, zerolog.Nop())

	updated, err := catalogs.Hostels.Update(ctx, "HST001", models.Hostel{
		Name: "North Block",
		Type: "boys",
		Rooms: []models.Room{
			{ID: "RM001", Number: "101", Capacity: 1, Occupied: 0},
			{Number: "103", Capacity: 3},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Rooms, 2)
	assert.Equal(t, 1, updated.Rooms[0].Occupied)
	assert.Equal(t, "RM002", updated.Rooms[1].ID)
}

func TestCatalogReplaceAllAssignsMissingIDs(t *testing.T) {
	f := newFixture(t)
	catalogs := NewCatalogs(f.store, f.validate, zerolog.Nop())

	items, err := catalogs.Books.ReplaceAll(context.Background(), []models.Book{
		{ID: "BK007", Title: "Clean Code", Author: "Martin", Category: "software", TotalCopies: 1, AvailableCopies: 1},
		{Title: "Refactoring", Author: "Fowler", Category: "software", TotalCopies: 2, AvailableCopies: 2},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "BK008", items[1].ID)
	assert.Equal(t, 2, f.store.Books.Len())
}
