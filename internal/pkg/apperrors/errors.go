package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// ErrPersistence wraps failures of the blob store behind the entity store
	ErrPersistence = errors.New("persistence failure")
)

// Entity errors
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrFacultyNotFound      = errors.New("faculty not found")
	ErrExamNotFound         = errors.New("exam not found")
	ErrFeeStructureNotFound = errors.New("fee structure not found")
	ErrSalaryNotFound       = errors.New("salary record not found")
	ErrHostelNotFound       = errors.New("hostel not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrClubNotFound         = errors.New("club not found")
	ErrBookNotFound         = errors.New("book not found")
	ErrRequestNotFound      = errors.New("request not found")
)

// State transition errors
var (
	ErrRoomFull             = errors.New("room is at full capacity")
	ErrAlreadyDecided       = errors.New("request has already been decided")
	ErrSalaryAlreadyPaid    = errors.New("salary has already been paid")
	ErrBookUnavailable      = errors.New("no copies of the book are available")
	ErrBookAlreadyReturned  = errors.New("book has already been returned")
	ErrAlreadyClubMember    = errors.New("student is already a member of the club")
	ErrMarksOutOfRange      = errors.New("marks are outside the exam range")
	ErrStudentAlreadyHoused = errors.New("student already holds an approved allocation")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
