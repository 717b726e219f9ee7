package models

// Attendance statuses
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLate    = "late"
)

// Attendance is one student's mark for one class session
type Attendance struct {
	ID        string `json:"id" validate:"omitempty,entityid=ATT"`
	StudentID string `json:"studentId" validate:"required"`
	Date      string `json:"date" validate:"required,isodate"`
	Subject   string `json:"subject" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
	MarkedBy  string `json:"markedBy,omitempty"`
}

// EntityID implements Entity
func (a Attendance) EntityID() string { return a.ID }
