package models

// Club owns its member and event lists
type Club struct {
	ID          string       `json:"id" validate:"omitempty,entityid=CLB"`
	Name        string       `json:"name" validate:"required"`
	Category    string       `json:"category" validate:"required"`
	Description string       `json:"description,omitempty"`
	Coordinator string       `json:"coordinator,omitempty"`
	Members     []ClubMember `json:"members" validate:"dive"`
	Events      []ClubEvent  `json:"events" validate:"dive"`
}

// EntityID implements Entity
func (c Club) EntityID() string { return c.ID }

// ClubMember links a student to a club
type ClubMember struct {
	StudentID string `json:"studentId" validate:"required"`
	Role      string `json:"role" validate:"omitempty,oneof=member coordinator president secretary treasurer"`
	JoinedAt  string `json:"joinedAt"`
}

// ClubEvent is an event organised by a club
type ClubEvent struct {
	ID          string `json:"id"`
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"required,isodate"`
	Venue       string `json:"venue,omitempty"`
	Description string `json:"description,omitempty"`
}
