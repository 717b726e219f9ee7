package models

// Hostel owns its rooms
type Hostel struct {
	ID      string `json:"id" validate:"omitempty,entityid=HST"`
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=boys girls mixed"`
	Warden  string `json:"warden,omitempty"`
	Address string `json:"address,omitempty"`
	Rooms   []Room `json:"rooms" validate:"dive"`
}

// EntityID implements Entity
func (h Hostel) EntityID() string { return h.ID }

// Room keeps an occupied counter for compatibility with stored data; it is rewritten
// from approved allocation requests.
type Room struct {
	ID       string  `json:"id"`
	Number   string  `json:"number" validate:"required"`
	Floor    int     `json:"floor" validate:"min=0"`
	Type     string  `json:"type,omitempty" validate:"omitempty,oneof=single double triple dormitory"`
	Capacity int     `json:"capacity" validate:"min=1"`
	Occupied int     `json:"occupied"`
	Rent     float64 `json:"rent" validate:"min=0"`
}

// AllocationRequest is a student's request for a room in a hostel
type AllocationRequest struct {
	ID          string `json:"id" validate:"omitempty,entityid=HAR"`
	StudentID   string `json:"studentId" validate:"required"`
	HostelID    string `json:"hostelId" validate:"required"`
	RoomID      string `json:"roomId" validate:"required"`
	Status      string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	RequestDate string `json:"requestDate"`
	DecidedAt   string `json:"decidedAt,omitempty"`
	Remarks     string `json:"remarks,omitempty"`
}

// EntityID implements Entity
func (a AllocationRequest) EntityID() string { return a.ID }
