// Package seed fills an empty store with a small demo campus.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/store"
)

func cgpa(v float64) *float64 { return &v }

// CreateDefaultData writes the demo records into every collection of s. It is meant
// for an empty store and replaces whatever the seeded collections held.
func CreateDefaultData(ctx context.Context, s *store.Store, lgr zerolog.Logger) error {
	lgr.Info().Msg("Creating default data...")

	steps := []struct {
		name string
		run  func() error
	}{
		{store.KeyCourses, func() error { return s.Courses.Replace(ctx, courses()) }},
		{store.KeyStudents, func() error { return s.Students.Replace(ctx, students()) }},
		{store.KeyFaculty, func() error { return s.Faculty.Replace(ctx, faculty()) }},
		{store.KeyExams, func() error { return s.Exams.Replace(ctx, exams()) }},
		{store.KeyResults, func() error { return s.Results.Replace(ctx, results()) }},
		{store.KeyFeeStructures, func() error { return s.FeeStructures.Replace(ctx, feeStructures()) }},
		{store.KeyFeePayments, func() error { return s.FeePayments.Replace(ctx, feePayments()) }},
		{store.KeyAttendance, func() error { return s.Attendance.Replace(ctx, attendance()) }},
		{store.KeyHostels, func() error { return s.Hostels.Replace(ctx, hostels()) }},
		{store.KeyAllocationRequests, func() error { return s.AllocationRequests.Replace(ctx, allocations()) }},
		{store.KeyClubs, func() error { return s.Clubs.Replace(ctx, clubs()) }},
		{store.KeyNotices, func() error { return s.Notices.Replace(ctx, notices()) }},
		{store.KeyTransportRoutes, func() error { return s.TransportRoutes.Replace(ctx, transportRoutes()) }},
		{store.KeyBooks, func() error { return s.Books.Replace(ctx, books()) }},
		{store.KeyBookIssues, func() error { return s.BookIssues.Replace(ctx, bookIssues()) }},
		{store.KeyTimetable, func() error { return s.Timetable.Replace(ctx, timetable()) }},
		{store.KeyLeaveRequests, func() error { return s.LeaveRequests.Replace(ctx, leaveRequests()) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			lgr.Error().Err(err).Str("collection", step.name).Msg("Error creating default data")
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
	}

	lgr.Info().Interface("counts", s.Counts()).Msg("Default data created")
	return nil
}

func courses() []models.Course {
	return []models.Course{
		{
			ID: "CRS001", Name: "B.Tech", Code: "BTECH", Duration: 4,
			Branches: []models.Branch{
				{ID: "BR001", Name: "Computer Science", Code: "CSE", Subjects: []models.Subject{
					{ID: "SUB001", Name: "Data Structures", Code: "CS201", Credits: 4, Semester: 3},
					{ID: "SUB002", Name: "Operating Systems", Code: "CS301", Credits: 4, Semester: 5},
				}},
				{ID: "BR002", Name: "Electronics", Code: "ECE", Subjects: []models.Subject{
					{ID: "SUB003", Name: "Digital Circuits", Code: "EC201", Credits: 3, Semester: 3},
				}},
			},
		},
		{
			ID: "CRS002", Name: "MBA", Code: "MBA", Duration: 2,
			Branches: []models.Branch{
				{ID: "BR003", Name: "Finance", Code: "FIN", Subjects: []models.Subject{
					{ID: "SUB004", Name: "Corporate Finance", Code: "FN101", Credits: 3, Semester: 1},
				}},
			},
		},
	}
}

func students() []models.Student {
	return []models.Student{
		{ID: "STU001", Name: "Aarav Sharma", Email: "aarav@unidesk.edu", RollNumber: "CSE21001", Course: "B.Tech", Branch: "Computer Science", Semester: 3, AdmissionDate: "2025-08-01", AttendancePercentage: 88, CGPA: cgpa(8.6), Status: models.StatusActive},
		{ID: "STU002", Name: "Diya Patel", Email: "diya@unidesk.edu", RollNumber: "CSE21002", Course: "B.Tech", Branch: "Computer Science", Semester: 3, AdmissionDate: "2025-08-01", AttendancePercentage: 92, CGPA: cgpa(9.1), Status: models.StatusActive},
		{ID: "STU003", Name: "Kabir Singh", Email: "kabir@unidesk.edu", RollNumber: "ECE21001", Course: "B.Tech", Branch: "Electronics", Semester: 3, AdmissionDate: "2025-08-01", AttendancePercentage: 71, CGPA: cgpa(6.8), Status: models.StatusActive},
		{ID: "STU004", Name: "Meera Nair", Email: "meera@unidesk.edu", RollNumber: "MBA26001", Course: "MBA", Branch: "Finance", Semester: 1, AdmissionDate: "2026-07-15", AttendancePercentage: 95, Status: models.StatusActive},
	}
}

func faculty() []models.Faculty {
	return []models.Faculty{
		{ID: "FAC001", Name: "Dr. Rajesh Kumar", Email: "rajesh@unidesk.edu", Department: "Computer Science", Designation: "Professor", JoiningDate: "2015-06-01", Salary: 95000, Status: models.StatusActive},
		{ID: "FAC002", Name: "Dr. Anita Rao", Email: "anita@unidesk.edu", Department: "Electronics", Designation: "Associate Professor", JoiningDate: "2018-07-10", Salary: 72000, Status: models.StatusActive},
		{ID: "FAC003", Name: "Vikram Mehta", Email: "vikram@unidesk.edu", Department: "Management", Designation: "Assistant Professor", JoiningDate: "2022-01-03", Salary: 18000, Status: models.StatusActive},
	}
}

func exams() []models.Exam {
	return []models.Exam{
		{ID: "EXM001", Name: "Data Structures Midterm", Type: "midterm", Course: "B.Tech", Branch: "Computer Science", Semester: 3, Subject: "Data Structures", Date: "2026-09-15", MaxMarks: 100, PassingMarks: 40, Status: "completed"},
		{ID: "EXM002", Name: "Digital Circuits Final", Type: "final", Course: "B.Tech", Branch: "Electronics", Semester: 3, Subject: "Digital Circuits", Date: "2026-12-05", MaxMarks: 100, PassingMarks: 35, Status: "scheduled"},
	}
}

func results() []models.Result {
	marks := []struct {
		id, student string
		marks       float64
	}{
		{"RES001", "STU001", 86},
		{"RES002", "STU002", 93},
	}
	out := make([]models.Result, 0, len(marks))
	for _, m := range marks {
		r := models.Result{ID: m.id, ExamID: "EXM001", StudentID: m.student, MarksObtained: m.marks, CreatedAt: "2026-09-20T10:00:00Z"}
		out = append(out, aggregate.ApplyGrade(r, aggregate.Grade(m.marks, 100, 40)))
	}
	return out
}

func feeStructures() []models.FeeStructure {
	return []models.FeeStructure{
		{ID: "FST001", Course: "B.Tech", Branch: "Computer Science", Semester: 3, TuitionFee: 45000, LabFee: 5000, LibraryFee: 2000, OtherFee: 3000, TotalFee: 55000, DueDate: "2026-09-30"},
		{ID: "FST002", Course: "B.Tech", Branch: "Electronics", Semester: 3, TuitionFee: 42000, LabFee: 6000, LibraryFee: 2000, OtherFee: 2000, TotalFee: 52000, DueDate: "2026-09-30"},
		{ID: "FST003", Course: "MBA", Branch: "Finance", Semester: 1, TuitionFee: 80000, LibraryFee: 3000, OtherFee: 5000, TotalFee: 88000, DueDate: "2026-08-31"},
	}
}

func feePayments() []models.FeePayment {
	return []models.FeePayment{
		{ID: "PAY001", StudentID: "STU001", FeeStructureID: "FST001", Amount: 55000, PaymentDate: "2026-09-10", Method: "upi", TransactionID: "UPI8823410", Status: models.PaymentPaid},
		{ID: "PAY002", StudentID: "STU002", FeeStructureID: "FST001", Amount: 30000, PaymentDate: "2026-09-12", Method: "card", TransactionID: "CRD1180023", Status: models.PaymentPaid},
		{ID: "PAY003", StudentID: "STU003", FeeStructureID: "FST002", Amount: 52000, PaymentDate: "2026-10-02", Method: "netbanking", Status: models.PaymentPending},
	}
}

func attendance() []models.Attendance {
	return []models.Attendance{
		{ID: "ATT001", StudentID: "STU001", Date: "2026-10-12", Subject: "Data Structures", Status: models.AttendancePresent, MarkedBy: "FAC001"},
		{ID: "ATT002", StudentID: "STU002", Date: "2026-10-12", Subject: "Data Structures", Status: models.AttendanceLate, MarkedBy: "FAC001"},
		{ID: "ATT003", StudentID: "STU003", Date: "2026-10-12", Subject: "Digital Circuits", Status: models.AttendanceAbsent, MarkedBy: "FAC002"},
	}
}

func hostels() []models.Hostel {
	return []models.Hostel{
		{ID: "HST001", Name: "Aravali Hall", Type: "boys", Warden: "Mr. Suresh", Rooms: []models.Room{
			{ID: "RM001", Number: "101", Floor: 1, Type: "double", Capacity: 2, Occupied: 1, Rent: 4500},
			{ID: "RM002", Number: "102", Floor: 1, Type: "single", Capacity: 1, Rent: 6000},
		}},
		{ID: "HST002", Name: "Ganga Hall", Type: "girls", Warden: "Mrs. Lata", Rooms: []models.Room{
			{ID: "RM003", Number: "201", Floor: 2, Type: "triple", Capacity: 3, Rent: 3800},
		}},
	}
}

func allocations() []models.AllocationRequest {
	return []models.AllocationRequest{
		{ID: "HAR001", StudentID: "STU001", HostelID: "HST001", RoomID: "RM001", Status: models.StatusApproved, RequestDate: "2026-07-20", DecidedAt: "2026-07-22T09:30:00Z"},
		{ID: "HAR002", StudentID: "STU002", HostelID: "HST002", RoomID: "RM003", Status: models.StatusPending, RequestDate: "2026-10-15"},
	}
}

func clubs() []models.Club {
	return []models.Club{
		{ID: "CLB001", Name: "Coding Club", Category: "technical", Coordinator: "FAC001",
			Members: []models.ClubMember{
				{StudentID: "STU001", Role: "president", JoinedAt: "2025-09-01"},
				{StudentID: "STU002", Role: "member", JoinedAt: "2025-09-03"},
			},
			Events: []models.ClubEvent{
				{ID: "EVT001", Title: "Hackathon 2026", Date: "2026-11-14", Venue: "Main Auditorium"},
			}},
		{ID: "CLB002", Name: "Drama Society", Category: "cultural", Members: []models.ClubMember{},
			Events: []models.ClubEvent{
				{ID: "EVT002", Title: "Annual Play", Date: "2026-12-20", Venue: "Open Air Theatre"},
			}},
	}
}

func notices() []models.Notice {
	return []models.Notice{
		{ID: "NOT001", Title: "Mid-semester results published", Content: "Results for the Data Structures midterm are available.", Category: "exam", Priority: "high", Date: "2026-09-21", TargetAudience: models.AudienceStudents, Departments: []string{"Computer Science"}, PostedBy: "FAC001"},
		{ID: "NOT002", Title: "Diwali holidays", Content: "Campus remains closed for Diwali.", Category: "holiday", Priority: "medium", Date: "2026-10-15", ExpiryDate: "2026-11-15", TargetAudience: models.AudienceAll},
		{ID: "NOT003", Title: "Faculty meeting", Content: "Department heads meet in the board room.", Category: "general", Priority: "low", Date: "2026-10-10", ExpiryDate: "2026-10-20", TargetAudience: models.AudienceFaculty},
	}
}

func transportRoutes() []models.TransportRoute {
	return []models.TransportRoute{
		{ID: "TRN001", RouteNumber: "R1", Name: "City Centre", Driver: "Ramesh", DriverPhone: "9876500001", VehicleNumber: "KA01AB1234", Capacity: 40, Stops: []string{"Central Station", "Market Square", "Campus Gate"}, Fee: 12000, Status: models.StatusActive},
		{ID: "TRN002", RouteNumber: "R2", Name: "Tech Park", Driver: "Imran", VehicleNumber: "KA01CD5678", Capacity: 32, Stops: []string{"Tech Park", "Lake View", "Campus Gate"}, Fee: 10000, Status: models.StatusActive},
	}
}

func books() []models.Book {
	return []models.Book{
		{ID: "BK001", Title: "Introduction to Algorithms", Author: "Cormen", ISBN: "9780262046305", Category: "Computer Science", Publisher: "MIT Press", TotalCopies: 5, AvailableCopies: 4},
		{ID: "BK002", Title: "Microelectronic Circuits", Author: "Sedra", ISBN: "9780190853464", Category: "Electronics", Publisher: "Oxford", TotalCopies: 3, AvailableCopies: 3},
		{ID: "BK003", Title: "Principles of Corporate Finance", Author: "Brealey", Category: "Finance", TotalCopies: 2, AvailableCopies: 2},
	}
}

func bookIssues() []models.BookIssue {
	return []models.BookIssue{
		{ID: "ISS001", BookID: "BK001", StudentID: "STU001", IssueDate: "2026-10-01", DueDate: "2026-10-15", Status: models.IssueIssued},
	}
}

func timetable() []models.TimetableEntry {
	return []models.TimetableEntry{
		{ID: "TT001", Course: "B.Tech", Branch: "Computer Science", Semester: 3, Day: "monday", StartTime: "09:00", EndTime: "10:00", Subject: "Data Structures", FacultyID: "FAC001", Room: "LH-1"},
		{ID: "TT002", Course: "B.Tech", Branch: "Electronics", Semester: 3, Day: "tuesday", StartTime: "11:00", EndTime: "12:00", Subject: "Digital Circuits", FacultyID: "FAC002", Room: "LH-3"},
	}
}

func leaveRequests() []models.LeaveRequest {
	return []models.LeaveRequest{
		{ID: "LV001", FacultyID: "FAC002", LeaveType: "casual", FromDate: "2026-10-26", ToDate: "2026-10-27", Reason: "Family function", Status: models.StatusPending, AppliedOn: "2026-10-18"},
	}
}
