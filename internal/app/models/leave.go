package models

// LeaveRequest is a faculty leave application
type LeaveRequest struct {
	ID        string `json:"id" validate:"omitempty,entityid=LV"`
	FacultyID string `json:"facultyId" validate:"required"`
	LeaveType string `json:"leaveType" validate:"required,oneof=casual sick earned unpaid"`
	FromDate  string `json:"fromDate" validate:"required,isodate"`
	ToDate    string `json:"toDate" validate:"required,isodate"`
	Reason    string `json:"reason" validate:"required"`
	Status    string `json:"status" validate:"omitempty,oneof=pending approved rejected"`
	AppliedOn string `json:"appliedOn"`
	DecidedAt string `json:"decidedAt,omitempty"`
}

// EntityID implements Entity
func (l LeaveRequest) EntityID() string { return l.ID }
