package dto

// CreateResultRequest records marks for one student in one exam
type CreateResultRequest struct {
	ExamID        string  `json:"examId" validate:"required"`
	StudentID     string  `json:"studentId" validate:"required"`
	MarksObtained float64 `json:"marksObtained" validate:"min=0"`
	Remarks       string  `json:"remarks,omitempty"`
}

// PayrollPreviewRequest asks for the derivation of one basic salary
type PayrollPreviewRequest struct {
	BasicSalary float64 `json:"basicSalary" validate:"min=0"`
}

// GeneratePayrollRequest generates salary records for a period
type GeneratePayrollRequest struct {
	Month     int  `json:"month" validate:"required,min=1,max=12"`
	Year      int  `json:"year" validate:"required,min=2000,max=2100"`
	Overwrite bool `json:"overwrite"`
}

// RecordPaymentRequest records a fee payment
type RecordPaymentRequest struct {
	StudentID      string  `json:"studentId" validate:"required"`
	FeeStructureID string  `json:"feeStructureId,omitempty"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	PaymentDate    string  `json:"paymentDate,omitempty" validate:"omitempty,isodate"`
	Method         string  `json:"method,omitempty" validate:"omitempty,oneof=cash card upi netbanking cheque"`
	TransactionID  string  `json:"transactionId,omitempty"`
}

// AllocationRequestBody asks for a room in a hostel
type AllocationRequestBody struct {
	StudentID string `json:"studentId" validate:"required"`
	HostelID  string `json:"hostelId" validate:"required"`
	RoomID    string `json:"roomId" validate:"required"`
	Remarks   string `json:"remarks,omitempty"`
}

// DecisionRequest carries optional remarks for approve/reject actions
type DecisionRequest struct {
	Remarks string `json:"remarks,omitempty"`
}

// AddMemberRequest adds a student to a club
type AddMemberRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=member coordinator president secretary treasurer"`
}

// AddEventRequest adds an event to a club
type AddEventRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,isodate"`
	Venue       string `json:"venue,omitempty"`
	Description string `json:"description,omitempty"`
}

// IssueBookRequest lends a book to a student
type IssueBookRequest struct {
	BookID    string `json:"bookId" validate:"required"`
	StudentID string `json:"studentId" validate:"required"`
	IssueDate string `json:"issueDate,omitempty" validate:"omitempty,isodate"`
}

// ReturnBookRequest closes an issue; ReturnDate defaults to today
type ReturnBookRequest struct {
	ReturnDate string `json:"returnDate,omitempty" validate:"omitempty,isodate"`
}

// SubmitLeaveRequest applies for leave
type SubmitLeaveRequest struct {
	FacultyID string `json:"facultyId" validate:"required"`
	LeaveType string `json:"leaveType" validate:"required,oneof=casual sick earned unpaid"`
	FromDate  string `json:"fromDate" validate:"required,isodate"`
	ToDate    string `json:"toDate" validate:"required,isodate"`
	Reason    string `json:"reason" validate:"required"`
}
