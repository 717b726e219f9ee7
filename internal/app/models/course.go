package models

// Course exclusively owns its branches; each branch exclusively owns its subjects.
type Course struct {
	ID       string   `json:"id" validate:"omitempty,entityid=CRS"`
	Name     string   `json:"name" validate:"required"`
	Code     string   `json:"code" validate:"required"`
	Duration int      `json:"duration" validate:"min=0,max=10"`
	Branches []Branch `json:"branches" validate:"dive"`
}

// Branch is a specialisation inside a course
type Branch struct {
	ID       string    `json:"id"`
	Name     string    `json:"name" validate:"required"`
	Code     string    `json:"code,omitempty"`
	Subjects []Subject `json:"subjects" validate:"dive"`
}

// Subject is taught in one semester of a branch
type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name" validate:"required"`
	Code     string `json:"code,omitempty"`
	Credits  int    `json:"credits" validate:"min=0"`
	Semester int    `json:"semester" validate:"min=0,max=12"`
}

// EntityID implements Entity
func (c Course) EntityID() string { return c.ID }
