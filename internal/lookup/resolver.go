package lookup

import (
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/store"
)

// Resolver answers reference lookups against a store
type Resolver struct {
	store *store.Store
}

// NewResolver creates a Resolver over s
func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// Student looks up a student by id
func (r *Resolver) Student(id string) (models.Student, bool) { return r.store.Students.Get(id) }

// Faculty looks up a faculty member by id
func (r *Resolver) Faculty(id string) (models.Faculty, bool) { return r.store.Faculty.Get(id) }

// Exam looks up an exam by id
func (r *Resolver) Exam(id string) (models.Exam, bool) { return r.store.Exams.Get(id) }

// FeeStructure looks up a fee structure by id
func (r *Resolver) FeeStructure(id string) (models.FeeStructure, bool) {
	return r.store.FeeStructures.Get(id)
}

// Hostel looks up a hostel by id
func (r *Resolver) Hostel(id string) (models.Hostel, bool) { return r.store.Hostels.Get(id) }

// Book looks up a book by id
func (r *Resolver) Book(id string) (models.Book, bool) { return r.store.Books.Get(id) }

// Club looks up a club by id
func (r *Resolver) Club(id string) (models.Club, bool) { return r.store.Clubs.Get(id) }

// Room resolves a room inside a hostel
func (r *Resolver) Room(hostelID, roomID string) (models.Room, bool) {
	hostel, ok := r.Hostel(hostelID)
	if !ok {
		return models.Room{}, false
	}
	return FindRoom(hostel, roomID)
}

// StudentName returns the student's name or the placeholder
func (r *Resolver) StudentName(id string) string {
	if s, ok := r.Student(id); ok {
		return s.Name
	}
	return Placeholder
}

// FacultyName returns the faculty member's name or the placeholder
func (r *Resolver) FacultyName(id string) string {
	if f, ok := r.Faculty(id); ok {
		return f.Name
	}
	return Placeholder
}

// ExamName returns the exam's name or the placeholder
func (r *Resolver) ExamName(id string) string {
	if e, ok := r.Exam(id); ok {
		return e.Name
	}
	return Placeholder
}

// StudentsForExam returns the students whose cohort matches the exam
func (r *Resolver) StudentsForExam(exam models.Exam) []models.Student {
	return StudentsInCohort(r.store.Students.All(), ExamCohort(exam))
}

// FeeStructureForStudent returns the fee structure of the student's cohort
func (r *Resolver) FeeStructureForStudent(student models.Student) (models.FeeStructure, bool) {
	return FeeStructureFor(r.store.FeeStructures.All(), student)
}

// ResultRows enriches results with student and exam display fields
func (r *Resolver) ResultRows(results []models.Result) []dto.ResultRow {
	rows := make([]dto.ResultRow, 0, len(results))
	for _, res := range results {
		row := dto.ResultRow{Result: res, StudentName: Placeholder, ExamName: Placeholder}
		if s, ok := r.Student(res.StudentID); ok {
			row.StudentName = s.Name
			row.RollNumber = s.RollNumber
		}
		if e, ok := r.Exam(res.ExamID); ok {
			row.ExamName = e.Name
			row.Subject = e.Subject
			row.MaxMarks = e.MaxMarks
		}
		rows = append(rows, row)
	}
	return rows
}

// PaymentRows enriches fee payments with student display fields
func (r *Resolver) PaymentRows(payments []models.FeePayment) []dto.PaymentRow {
	rows := make([]dto.PaymentRow, 0, len(payments))
	for _, p := range payments {
		row := dto.PaymentRow{FeePayment: p, StudentName: Placeholder}
		if s, ok := r.Student(p.StudentID); ok {
			row.StudentName = s.Name
			row.RollNumber = s.RollNumber
			row.Course = s.Course
		}
		rows = append(rows, row)
	}
	return rows
}

// SalaryRows enriches salary records with faculty display fields
func (r *Resolver) SalaryRows(salaries []models.Salary) []dto.SalaryRow {
	rows := make([]dto.SalaryRow, 0, len(salaries))
	for _, s := range salaries {
		row := dto.SalaryRow{Salary: s, FacultyName: Placeholder}
		if f, ok := r.Faculty(s.FacultyID); ok {
			row.FacultyName = f.Name
			row.Department = f.Department
		}
		rows = append(rows, row)
	}
	return rows
}

// AllocationRows enriches allocation requests with student, hostel and room fields
func (r *Resolver) AllocationRows(requests []models.AllocationRequest) []dto.AllocationRow {
	rows := make([]dto.AllocationRow, 0, len(requests))
	for _, req := range requests {
		row := dto.AllocationRow{
			AllocationRequest: req,
			StudentName:       r.StudentName(req.StudentID),
			HostelName:        Placeholder,
			RoomNumber:        Placeholder,
		}
		if h, ok := r.Hostel(req.HostelID); ok {
			row.HostelName = h.Name
			if room, ok := FindRoom(h, req.RoomID); ok {
				row.RoomNumber = room.Number
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// BookIssueRows enriches book issues with book and student display fields
func (r *Resolver) BookIssueRows(issues []models.BookIssue) []dto.BookIssueRow {
	rows := make([]dto.BookIssueRow, 0, len(issues))
	for _, is := range issues {
		row := dto.BookIssueRow{
			BookIssue:   is,
			BookTitle:   Placeholder,
			StudentName: r.StudentName(is.StudentID),
		}
		if b, ok := r.Book(is.BookID); ok {
			row.BookTitle = b.Title
		}
		rows = append(rows, row)
	}
	return rows
}

// LeaveRows enriches leave requests with faculty display fields
func (r *Resolver) LeaveRows(requests []models.LeaveRequest) []dto.LeaveRow {
	rows := make([]dto.LeaveRow, 0, len(requests))
	for _, l := range requests {
		row := dto.LeaveRow{LeaveRequest: l, FacultyName: Placeholder}
		if f, ok := r.Faculty(l.FacultyID); ok {
			row.FacultyName = f.Name
			row.Department = f.Department
		}
		rows = append(rows, row)
	}
	return rows
}
