package models

// Student represents an enrolled student. Course and Branch are loose references by
// name, not by id.
type Student struct {
	ID                   string   `json:"id" validate:"omitempty,entityid=STU"`
	Name                 string   `json:"name" validate:"required,min=2,max=100"`
	Email                string   `json:"email" validate:"omitempty,email"`
	Phone                string   `json:"phone,omitempty"`
	RollNumber           string   `json:"rollNumber" validate:"required"`
	Course               string   `json:"course" validate:"required"`
	Branch               string   `json:"branch" validate:"required"`
	Semester             int      `json:"semester" validate:"required,min=1,max=12"`
	AdmissionDate        string   `json:"admissionDate,omitempty" validate:"omitempty,isodate"`
	GuardianName         string   `json:"guardianName,omitempty"`
	Address              string   `json:"address,omitempty"`
	AttendancePercentage float64  `json:"attendancePercentage"`
	CGPA                 *float64 `json:"cgpa,omitempty" validate:"omitempty,min=0,max=10"`
	Status               string   `json:"status" validate:"omitempty,oneof=active inactive graduated"`
}

// EntityID implements Entity
func (s Student) EntityID() string { return s.ID }
