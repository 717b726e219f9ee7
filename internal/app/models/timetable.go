package models

// TimetableEntry is one teaching slot
type TimetableEntry struct {
	ID        string `json:"id" validate:"omitempty,entityid=TT"`
	Course    string `json:"course" validate:"required"`
	Branch    string `json:"branch" validate:"required"`
	Semester  int    `json:"semester" validate:"required,min=1,max=12"`
	Day       string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
	Subject   string `json:"subject" validate:"required"`
	FacultyID string `json:"facultyId,omitempty"`
	Room      string `json:"room,omitempty"`
}

// EntityID implements Entity
func (t TimetableEntry) EntityID() string { return t.ID }
