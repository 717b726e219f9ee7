package models

// Book is a library title with its copy counters
type Book struct {
	ID              string `json:"id" validate:"omitempty,entityid=BK"`
	Title           string `json:"title" validate:"required"`
	Author          string `json:"author" validate:"required"`
	ISBN            string `json:"isbn,omitempty"`
	Category        string `json:"category" validate:"required"`
	Publisher       string `json:"publisher,omitempty"`
	TotalCopies     int    `json:"totalCopies" validate:"min=0"`
	AvailableCopies int    `json:"availableCopies" validate:"min=0,ltefield=TotalCopies"`
}

// EntityID implements Entity
func (b Book) EntityID() string { return b.ID }

// BookIssue statuses
const (
	IssueIssued   = "issued"
	IssueReturned = "returned"
)

// BookIssue records a book lent to a student
type BookIssue struct {
	ID         string  `json:"id" validate:"omitempty,entityid=ISS"`
	BookID     string  `json:"bookId" validate:"required"`
	StudentID  string  `json:"studentId" validate:"required"`
	IssueDate  string  `json:"issueDate"`
	DueDate    string  `json:"dueDate"`
	ReturnDate string  `json:"returnDate,omitempty"`
	Fine       float64 `json:"fine"`
	Status     string  `json:"status"`
}

// EntityID implements Entity
func (i BookIssue) EntityID() string { return i.ID }
