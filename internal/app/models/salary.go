package models

// Salary statuses
const (
	SalaryPending = "pending"
	SalaryPaid    = "paid"
)

// Salary is one payroll record for a faculty member and a (month, year) period
type Salary struct {
	ID              string  `json:"id" validate:"omitempty,entityid=SAL"`
	FacultyID       string  `json:"facultyId" validate:"required"`
	Month           int     `json:"month" validate:"required,min=1,max=12"`
	Year            int     `json:"year" validate:"required,min=2000,max=2100"`
	BasicSalary     float64 `json:"basicSalary" validate:"min=0"`
	DA              float64 `json:"da"`
	HRA             float64 `json:"hra"`
	TA              float64 `json:"ta"`
	Medical         float64 `json:"medical"`
	GrossSalary     float64 `json:"grossSalary"`
	PF              float64 `json:"pf"`
	ESI             float64 `json:"esi"`
	TDS             float64 `json:"tds"`
	TotalDeductions float64 `json:"totalDeductions"`
	NetSalary       float64 `json:"netSalary"`
	Status          string  `json:"status" validate:"omitempty,oneof=pending paid"`
	PaidDate        string  `json:"paidDate,omitempty"`
	GeneratedAt     string  `json:"generatedAt,omitempty"`
}

// EntityID implements Entity
func (s Salary) EntityID() string { return s.ID }
