package models

// Payment statuses
const (
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

// FeeStructure references course, branch and semester by value
type FeeStructure struct {
	ID         string  `json:"id" validate:"omitempty,entityid=FST"`
	Course     string  `json:"course" validate:"required"`
	Branch     string  `json:"branch" validate:"required"`
	Semester   int     `json:"semester" validate:"required,min=1,max=12"`
	TuitionFee float64 `json:"tuitionFee" validate:"min=0"`
	LabFee     float64 `json:"labFee" validate:"min=0"`
	LibraryFee float64 `json:"libraryFee" validate:"min=0"`
	OtherFee   float64 `json:"otherFee" validate:"min=0"`
	TotalFee   float64 `json:"totalFee"`
	DueDate    string  `json:"dueDate,omitempty" validate:"omitempty,isodate"`
}

// EntityID implements Entity
func (f FeeStructure) EntityID() string { return f.ID }

// ComputedTotal sums the individual fee heads
func (f FeeStructure) ComputedTotal() float64 {
	return f.TuitionFee + f.LabFee + f.LibraryFee + f.OtherFee
}

// FeePayment references a student and, implicitly, a fee structure by id
type FeePayment struct {
	ID             string  `json:"id" validate:"omitempty,entityid=PAY"`
	StudentID      string  `json:"studentId" validate:"required"`
	FeeStructureID string  `json:"feeStructureId,omitempty"`
	Amount         float64 `json:"amount" validate:"gt=0"`
	PaymentDate    string  `json:"paymentDate" validate:"omitempty,isodate"`
	Method         string  `json:"method,omitempty" validate:"omitempty,oneof=cash card upi netbanking cheque"`
	TransactionID  string  `json:"transactionId,omitempty"`
	Status         string  `json:"status" validate:"omitempty,oneof=paid pending failed"`
}

// EntityID implements Entity
func (p FeePayment) EntityID() string { return p.ID }
