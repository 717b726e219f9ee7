package models

// Notice audiences
const (
	AudienceAll      = "all"
	AudienceStudents = "students"
	AudienceFaculty  = "faculty"
)

// Notice carries a denormalized audience and department list
type Notice struct {
	ID             string   `json:"id" validate:"omitempty,entityid=NOT"`
	Title          string   `json:"title" validate:"required"`
	Content        string   `json:"content" validate:"required"`
	Category       string   `json:"category" validate:"required,oneof=academic exam event general holiday"`
	Priority       string   `json:"priority" validate:"required,oneof=low medium high urgent"`
	Date           string   `json:"date" validate:"required,isodate"`
	ExpiryDate     string   `json:"expiryDate,omitempty" validate:"omitempty,isodate"`
	TargetAudience string   `json:"targetAudience" validate:"omitempty,oneof=all students faculty"`
	Departments    []string `json:"departments,omitempty"`
	PostedBy       string   `json:"postedBy,omitempty"`
}

// EntityID implements Entity
func (n Notice) EntityID() string { return n.ID }
