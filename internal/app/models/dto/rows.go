package dto

import "github.com/yigit/unidesk/internal/app/models"

// ResultRow is a result enriched with student and exam display fields
type ResultRow struct {
	models.Result
	StudentName string  `json:"studentName"`
	RollNumber  string  `json:"rollNumber"`
	ExamName    string  `json:"examName"`
	Subject     string  `json:"subject"`
	MaxMarks    float64 `json:"maxMarks"`
}

// PaymentRow is a fee payment enriched with student display fields
type PaymentRow struct {
	models.FeePayment
	StudentName string `json:"studentName"`
	RollNumber  string `json:"rollNumber"`
	Course      string `json:"course"`
}

// SalaryRow is a salary record enriched with faculty display fields
type SalaryRow struct {
	models.Salary
	FacultyName string `json:"facultyName"`
	Department  string `json:"department"`
}

// AllocationRow is an allocation request enriched with student, hostel and room
type AllocationRow struct {
	models.AllocationRequest
	StudentName string `json:"studentName"`
	HostelName  string `json:"hostelName"`
	RoomNumber  string `json:"roomNumber"`
}

// BookIssueRow is a book issue enriched with book and student display fields
type BookIssueRow struct {
	models.BookIssue
	BookTitle   string `json:"bookTitle"`
	StudentName string `json:"studentName"`
}

// LeaveRow is a leave request enriched with faculty display fields
type LeaveRow struct {
	models.LeaveRequest
	FacultyName string `json:"facultyName"`
	Department  string `json:"department"`
}

// EventRow is a club event with the name of the organising club
type EventRow struct {
	models.ClubEvent
	ClubID   string `json:"clubId"`
	ClubName string `json:"clubName"`
}

// ExamReport summarizes the results of one exam
type ExamReport struct {
	ExamID           string      `json:"examId"`
	ExamName         string      `json:"examName"`
	EligibleStudents int         `json:"eligibleStudents"`
	ResultsRecorded  int         `json:"resultsRecorded"`
	Passed           int         `json:"passed"`
	Failed           int         `json:"failed"`
	PassRate         int         `json:"passRate"`
	AverageMarks     float64     `json:"averageMarks"`
	HighestMarks     float64     `json:"highestMarks"`
	Results          []ResultRow `json:"results"`
}

// RegradeSummary reports what a regrade changed
type RegradeSummary struct {
	ExamID  string `json:"examId"`
	Checked int    `json:"checked"`
	Changed int    `json:"changed"`
}

// PayrollRun reports the outcome of generating a period
type PayrollRun struct {
	Month      int             `json:"month"`
	Year       int             `json:"year"`
	Created    []models.Salary `json:"created"`
	Replaced   []models.Salary `json:"replaced"`
	Skipped    []string        `json:"skipped"`
	TotalNet   float64         `json:"totalNet"`
	TotalGross float64         `json:"totalGross"`
	Employees  int             `json:"employees"`
}

// PayrollSummary aggregates salary records
type PayrollSummary struct {
	NetPaidTotal float64 `json:"netPaidTotal"`
	PendingTotal float64 `json:"pendingTotal"`
	PaidCount    int     `json:"paidCount"`
	PendingCount int     `json:"pendingCount"`
	RecordCount  int     `json:"recordCount"`
}

// FeeReport aggregates fee payments against the student body
type FeeReport struct {
	TotalStudents   int     `json:"totalStudents"`
	PayingStudents  int     `json:"payingStudents"`
	CollectionRate  int     `json:"collectionRate"`
	CollectedAmount float64 `json:"collectedAmount"`
	PendingAmount   float64 `json:"pendingAmount"`
	ExpectedAmount  float64 `json:"expectedAmount"`
}

// StudentDues is the fee position of one student
type StudentDues struct {
	StudentID    string               `json:"studentId"`
	StudentName  string               `json:"studentName"`
	FeeStructure *models.FeeStructure `json:"feeStructure,omitempty"`
	TotalFee     float64              `json:"totalFee"`
	Paid         float64              `json:"paid"`
	Balance      float64              `json:"balance"`
	Overdue      bool                 `json:"overdue"`
}

// HostelOccupancy is the derived occupancy of one hostel
type HostelOccupancy struct {
	HostelID      string          `json:"hostelId"`
	HostelName    string          `json:"hostelName"`
	Capacity      int             `json:"capacity"`
	Occupied      int             `json:"occupied"`
	OccupancyRate int             `json:"occupancyRate"`
	Rooms         []RoomOccupancy `json:"rooms"`
}

// RoomOccupancy is the derived occupancy of one room
type RoomOccupancy struct {
	RoomID    string `json:"roomId"`
	Number    string `json:"number"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

// DashboardSummary is the set of headline numbers on the dashboard
type DashboardSummary struct {
	TotalStudents        int     `json:"totalStudents"`
	TotalFaculty         int     `json:"totalFaculty"`
	TotalCourses         int     `json:"totalCourses"`
	UpcomingExams        int     `json:"upcomingExams"`
	AverageCGPA          float64 `json:"averageCgpa"`
	AverageCGPADisplay   string  `json:"averageCgpaDisplay"`
	AverageAttendance    float64 `json:"averageAttendance"`
	PassRate             int     `json:"passRate"`
	CollectionRate       int     `json:"collectionRate"`
	FeesCollected        float64 `json:"feesCollected"`
	NetPayrollPaid       float64 `json:"netPayrollPaid"`
	HostelOccupancyRate  int     `json:"hostelOccupancyRate"`
	PendingLeaveRequests int     `json:"pendingLeaveRequests"`
	PendingAllocations   int     `json:"pendingAllocations"`
	BooksIssued          int     `json:"booksIssued"`
	ActiveNotices        int     `json:"activeNotices"`
	Clubs                int     `json:"clubs"`
	TransportRoutes      int     `json:"transportRoutes"`
}
