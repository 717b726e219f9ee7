package models

// Faculty represents a teaching staff member. Salary is the basic figure payroll is
// derived from.
type Faculty struct {
	ID            string  `json:"id" validate:"omitempty,entityid=FAC"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Phone         string  `json:"phone,omitempty"`
	Department    string  `json:"department" validate:"required"`
	Designation   string  `json:"designation,omitempty"`
	Qualification string  `json:"qualification,omitempty"`
	JoiningDate   string  `json:"joiningDate,omitempty" validate:"omitempty,isodate"`
	Salary        float64 `json:"salary" validate:"min=0"`
	Status        string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// EntityID implements Entity
func (f Faculty) EntityID() string { return f.ID }

// IsActive reports whether the faculty member takes part in payroll runs
func (f Faculty) IsActive() bool {
	return f.Status == "" || f.Status == StatusActive
}
