package services

import (
	"strconv"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/query"
)

// Searchable fields, filters and sort keys of each collection. Filter names are the
// query parameters accepted by the list endpoints.

func text[T any](get func(T) string) query.SortKey[T] { return query.SortKey[T]{Text: get} }
func number[T any](get func(T) float64) query.SortKey[T] { return query.SortKey[T]{Number: get} }
func date[T any](get func(T) string) query.SortKey[T] { return query.SortKey[T]{Date: get} }
func itoa(n int) string { return strconv.Itoa(n) }

var StudentSchema = query.Schema[models.Student]{
	SearchFields: func(s models.Student) []string {
		return []string{s.Name, s.RollNumber, s.Email, s.Course, s.Branch, s.ID}
	},
	Categories: map[string]func(models.Student) string{
		"course":   func(s models.Student) string { return s.Course },
		"branch":   func(s models.Student) string { return s.Branch },
		"semester": func(s models.Student) string { return itoa(s.Semester) },
		"status":   func(s models.Student) string { return s.Status },
	},
	DateField: func(s models.Student) string { return s.AdmissionDate },
	SortKeys: map[string]query.SortKey[models.Student]{
		"name":       text(func(s models.Student) string { return s.Name }),
		"rollNumber": text(func(s models.Student) string { return s.RollNumber }),
		"semester":   number(func(s models.Student) float64 { return float64(s.Semester) }),
		"attendance": number(func(s models.Student) float64 { return s.AttendancePercentage }),
		"cgpa": number(func(s models.Student) float64 {
			if s.CGPA == nil {
				return 0
			}
			return *s.CGPA
		}),
		"admissionDate": date(func(s models.Student) string { return s.AdmissionDate }),
	},
}

var FacultySchema = query.Schema[models.Faculty]{
	SearchFields: func(f models.Faculty) []string {
		return []string{f.Name, f.Email, f.Department, f.Designation, f.ID}
	},
	Categories: map[string]func(models.Faculty) string{
		"department":  func(f models.Faculty) string { return f.Department },
		"designation": func(f models.Faculty) string { return f.Designation },
		"status":      func(f models.Faculty) string { return f.Status },
	},
	DateField: func(f models.Faculty) string { return f.JoiningDate },
	SortKeys: map[string]query.SortKey[models.Faculty]{
		"name":        text(func(f models.Faculty) string { return f.Name }),
		"department":  text(func(f models.Faculty) string { return f.Department }),
		"salary":      number(func(f models.Faculty) float64 { return f.Salary }),
		"joiningDate": date(func(f models.Faculty) string { return f.JoiningDate }),
	},
}

var CourseSchema = query.Schema[models.Course]{
	SearchFields: func(c models.Course) []string {
		fields := []string{c.Name, c.Code}
		for _, b := range c.Branches {
			fields = append(fields, b.Name)
		}
		return fields
	},
	SortKeys: map[string]query.SortKey[models.Course]{
		"name":     text(func(c models.Course) string { return c.Name }),
		"code":     text(func(c models.Course) string { return c.Code }),
		"duration": number(func(c models.Course) float64 { return float64(c.Duration) }),
	},
}

var ExamSchema = query.Schema[models.Exam]{
	SearchFields: func(e models.Exam) []string {
		return []string{e.Name, e.Subject, e.Course, e.Branch}
	},
	Categories: map[string]func(models.Exam) string{
		"type":     func(e models.Exam) string { return e.Type },
		"course":   func(e models.Exam) string { return e.Course },
		"branch":   func(e models.Exam) string { return e.Branch },
		"semester": func(e models.Exam) string { return itoa(e.Semester) },
		"status":   func(e models.Exam) string { return e.Status },
	},
	DateField: func(e models.Exam) string { return e.Date },
	SortKeys: map[string]query.SortKey[models.Exam]{
		"name":    text(func(e models.Exam) string { return e.Name }),
		"subject": text(func(e models.Exam) string { return e.Subject }),
		"date":    date(func(e models.Exam) string { return e.Date }),
	},
}

var ResultSchema = query.Schema[models.Result]{
	SearchFields: func(r models.Result) []string {
		return []string{r.ID, r.ExamID, r.StudentID, r.Grade, r.Remarks}
	},
	Categories: map[string]func(models.Result) string{
		"examId":    func(r models.Result) string { return r.ExamID },
		"studentId": func(r models.Result) string { return r.StudentID },
		"status":    func(r models.Result) string { return r.Status },
		"grade":     func(r models.Result) string { return r.Grade },
	},
	DateField: func(r models.Result) string { return r.CreatedAt },
	SortKeys: map[string]query.SortKey[models.Result]{
		"marks":      number(func(r models.Result) float64 { return r.MarksObtained }),
		"gradePoint": number(func(r models.Result) float64 { return r.GradePoint }),
		"createdAt":  date(func(r models.Result) string { return r.CreatedAt }),
	},
}

var FeeStructureSchema = query.Schema[models.FeeStructure]{
	SearchFields: func(f models.FeeStructure) []string {
		return []string{f.Course, f.Branch, f.ID}
	},
	Categories: map[string]func(models.FeeStructure) string{
		"course":   func(f models.FeeStructure) string { return f.Course },
		"branch":   func(f models.FeeStructure) string { return f.Branch },
		"semester": func(f models.FeeStructure) string { return itoa(f.Semester) },
	},
	DateField: func(f models.FeeStructure) string { return f.DueDate },
	SortKeys: map[string]query.SortKey[models.FeeStructure]{
		"totalFee": number(func(f models.FeeStructure) float64 { return f.TotalFee }),
		"dueDate":  date(func(f models.FeeStructure) string { return f.DueDate }),
	},
}

var FeePaymentSchema = query.Schema[models.FeePayment]{
	SearchFields: func(p models.FeePayment) []string {
		return []string{p.ID, p.StudentID, p.TransactionID, p.Method}
	},
	Categories: map[string]func(models.FeePayment) string{
		"studentId": func(p models.FeePayment) string { return p.StudentID },
		"method":    func(p models.FeePayment) string { return p.Method },
		"status":    func(p models.FeePayment) string { return p.Status },
	},
	DateField: func(p models.FeePayment) string { return p.PaymentDate },
	SortKeys: map[string]query.SortKey[models.FeePayment]{
		"amount":      number(func(p models.FeePayment) float64 { return p.Amount }),
		"paymentDate": date(func(p models.FeePayment) string { return p.PaymentDate }),
	},
}

var SalarySchema = query.Schema[models.Salary]{
	SearchFields: func(s models.Salary) []string {
		return []string{s.ID, s.FacultyID}
	},
	Categories: map[string]func(models.Salary) string{
		"facultyId": func(s models.Salary) string { return s.FacultyID },
		"month":     func(s models.Salary) string { return itoa(s.Month) },
		"year":      func(s models.Salary) string { return itoa(s.Year) },
		"status":    func(s models.Salary) string { return s.Status },
	},
	DateField: func(s models.Salary) string { return s.PaidDate },
	SortKeys: map[string]query.SortKey[models.Salary]{
		"netSalary":   number(func(s models.Salary) float64 { return s.NetSalary }),
		"grossSalary": number(func(s models.Salary) float64 { return s.GrossSalary }),
		"period":      number(func(s models.Salary) float64 { return float64(s.Year*100 + s.Month) }),
		"paidDate":    date(func(s models.Salary) string { return s.PaidDate }),
	},
}

var AttendanceSchema = query.Schema[models.Attendance]{
	SearchFields: func(a models.Attendance) []string {
		return []string{a.StudentID, a.Subject}
	},
	Categories: map[string]func(models.Attendance) string{
		"studentId": func(a models.Attendance) string { return a.StudentID },
		"subject":   func(a models.Attendance) string { return a.Subject },
		"status":    func(a models.Attendance) string { return a.Status },
	},
	DateField: func(a models.Attendance) string { return a.Date },
	SortKeys: map[string]query.SortKey[models.Attendance]{
		"date": date(func(a models.Attendance) string { return a.Date }),
	},
}

var HostelSchema = query.Schema[models.Hostel]{
	SearchFields: func(h models.Hostel) []string {
		return []string{h.Name, h.Warden, h.Address}
	},
	Categories: map[string]func(models.Hostel) string{
		"type": func(h models.Hostel) string { return h.Type },
	},
	SortKeys: map[string]query.SortKey[models.Hostel]{
		"name":  text(func(h models.Hostel) string { return h.Name }),
		"rooms": number(func(h models.Hostel) float64 { return float64(len(h.Rooms)) }),
	},
}

var AllocationSchema = query.Schema[models.AllocationRequest]{
	SearchFields: func(a models.AllocationRequest) []string {
		return []string{a.ID, a.StudentID, a.HostelID, a.RoomID, a.Remarks}
	},
	Categories: map[string]func(models.AllocationRequest) string{
		"status":    func(a models.AllocationRequest) string { return a.Status },
		"hostelId":  func(a models.AllocationRequest) string { return a.HostelID },
		"studentId": func(a models.AllocationRequest) string { return a.StudentID },
	},
	DateField: func(a models.AllocationRequest) string { return a.RequestDate },
	SortKeys: map[string]query.SortKey[models.AllocationRequest]{
		"requestDate": date(func(a models.AllocationRequest) string { return a.RequestDate }),
	},
}

var ClubSchema = query.Schema[models.Club]{
	SearchFields: func(c models.Club) []string {
		return []string{c.Name, c.Description, c.Coordinator}
	},
	Categories: map[string]func(models.Club) string{
		"category": func(c models.Club) string { return c.Category },
	},
	SortKeys: map[string]query.SortKey[models.Club]{
		"name":    text(func(c models.Club) string { return c.Name }),
		"members": number(func(c models.Club) float64 { return float64(len(c.Members)) }),
	},
}

var NoticeSchema = query.Schema[models.Notice]{
	SearchFields: func(n models.Notice) []string {
		return []string{n.Title, n.Content, n.PostedBy}
	},
	Categories: map[string]func(models.Notice) string{
		"category":       func(n models.Notice) string { return n.Category },
		"priority":       func(n models.Notice) string { return n.Priority },
		"targetAudience": func(n models.Notice) string { return n.TargetAudience },
	},
	DateField: func(n models.Notice) string { return n.Date },
	SortKeys: map[string]query.SortKey[models.Notice]{
		"title": text(func(n models.Notice) string { return n.Title }),
		"date":  date(func(n models.Notice) string { return n.Date }),
		"priority": number(func(n models.Notice) float64 {
			return float64(priorityRank[n.Priority])
		}),
	},
}

var priorityRank = map[string]int{"low": 1, "medium": 2, "high": 3, "urgent": 4}

var TransportRouteSchema = query.Schema[models.TransportRoute]{
	SearchFields: func(t models.TransportRoute) []string {
		fields := []string{t.RouteNumber, t.Name, t.Driver, t.VehicleNumber}
		return append(fields, t.Stops...)
	},
	Categories: map[string]func(models.TransportRoute) string{
		"status": func(t models.TransportRoute) string { return t.Status },
	},
	SortKeys: map[string]query.SortKey[models.TransportRoute]{
		"routeNumber": text(func(t models.TransportRoute) string { return t.RouteNumber }),
		"fee":         number(func(t models.TransportRoute) float64 { return t.Fee }),
		"capacity":    number(func(t models.TransportRoute) float64 { return float64(t.Capacity) }),
	},
}

var BookSchema = query.Schema[models.Book]{
	SearchFields: func(b models.Book) []string {
		return []string{b.Title, b.Author, b.ISBN, b.Publisher}
	},
	Categories: map[string]func(models.Book) string{
		"category": func(b models.Book) string { return b.Category },
	},
	SortKeys: map[string]query.SortKey[models.Book]{
		"title":     text(func(b models.Book) string { return b.Title }),
		"author":    text(func(b models.Book) string { return b.Author }),
		"available": number(func(b models.Book) float64 { return float64(b.AvailableCopies) }),
	},
}

var BookIssueSchema = query.Schema[models.BookIssue]{
	SearchFields: func(i models.BookIssue) []string {
		return []string{i.ID, i.BookID, i.StudentID}
	},
	Categories: map[string]func(models.BookIssue) string{
		"status":    func(i models.BookIssue) string { return i.Status },
		"studentId": func(i models.BookIssue) string { return i.StudentID },
		"bookId":    func(i models.BookIssue) string { return i.BookID },
	},
	DateField: func(i models.BookIssue) string { return i.IssueDate },
	SortKeys: map[string]query.SortKey[models.BookIssue]{
		"issueDate": date(func(i models.BookIssue) string { return i.IssueDate }),
		"dueDate":   date(func(i models.BookIssue) string { return i.DueDate }),
		"fine":      number(func(i models.BookIssue) float64 { return i.Fine }),
	},
}

var TimetableSchema = query.Schema[models.TimetableEntry]{
	SearchFields: func(t models.TimetableEntry) []string {
		return []string{t.Subject, t.Room, t.FacultyID, t.Course, t.Branch}
	},
	Categories: map[string]func(models.TimetableEntry) string{
		"course":    func(t models.TimetableEntry) string { return t.Course },
		"branch":    func(t models.TimetableEntry) string { return t.Branch },
		"semester":  func(t models.TimetableEntry) string { return itoa(t.Semester) },
		"day":       func(t models.TimetableEntry) string { return t.Day },
		"facultyId": func(t models.TimetableEntry) string { return t.FacultyID },
	},
	SortKeys: map[string]query.SortKey[models.TimetableEntry]{
		"day": number(func(t models.TimetableEntry) float64 {
			return float64(dayRank[t.Day])
		}),
		"startTime": text(func(t models.TimetableEntry) string { return t.StartTime }),
	},
}

var dayRank = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4, "friday": 5, "saturday": 6,
}

var LeaveSchema = query.Schema[models.LeaveRequest]{
	SearchFields: func(l models.LeaveRequest) []string {
		return []string{l.ID, l.FacultyID, l.Reason}
	},
	Categories: map[string]func(models.LeaveRequest) string{
		"status":    func(l models.LeaveRequest) string { return l.Status },
		"leaveType": func(l models.LeaveRequest) string { return l.LeaveType },
		"facultyId": func(l models.LeaveRequest) string { return l.FacultyID },
	},
	DateField: func(l models.LeaveRequest) string { return l.FromDate },
	SortKeys: map[string]query.SortKey[models.LeaveRequest]{
		"fromDate":  date(func(l models.LeaveRequest) string { return l.FromDate }),
		"appliedOn": date(func(l models.LeaveRequest) string { return l.AppliedOn }),
	},
}
