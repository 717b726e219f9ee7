package models

// Entity is implemented by every record held in the entity store
type Entity interface {
	EntityID() string
}

// ID prefixes of the client-generated identifiers ("STU001", "SAL004", ...)
const (
	PrefixStudent      = "STU"
	PrefixFaculty      = "FAC"
	PrefixCourse       = "CRS"
	PrefixExam         = "EXM"
	PrefixResult       = "RES"
	PrefixFeeStructure = "FST"
	PrefixFeePayment   = "PAY"
	PrefixSalary       = "SAL"
	PrefixAttendance   = "ATT"
	PrefixHostel       = "HST"
	PrefixAllocation   = "HAR"
	PrefixClub         = "CLB"
	PrefixNotice       = "NOT"
	PrefixTransport    = "TRN"
	PrefixBook         = "BK"
	PrefixBookIssue    = "ISS"
	PrefixTimetable    = "TT"
	PrefixLeaveRequest = "LV"
	PrefixClubEvent    = "EVT"
	PrefixRoom         = "RM"
	PrefixBranch       = "BR"
	PrefixSubject      = "SUB"
)

// Request lifecycle shared by hostel allocations and leave requests
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Status values shared by people records
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)
