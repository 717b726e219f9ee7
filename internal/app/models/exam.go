package models

// Result statuses
const (
	ResultPass = "pass"
	ResultFail = "fail"
)

// Exam references course, branch and semester by value
type Exam struct {
	ID           string  `json:"id" validate:"omitempty,entityid=EXM"`
	Name         string  `json:"name" validate:"required"`
	Type         string  `json:"type,omitempty" validate:"omitempty,oneof=midterm final quiz practical"`
	Course       string  `json:"course" validate:"required"`
	Branch       string  `json:"branch" validate:"required"`
	Semester     int     `json:"semester" validate:"required,min=1,max=12"`
	Subject      string  `json:"subject" validate:"required"`
	Date         string  `json:"date" validate:"required,isodate"`
	MaxMarks     float64 `json:"maxMarks" validate:"required,gt=0"`
	PassingMarks float64 `json:"passingMarks" validate:"min=0,ltefield=MaxMarks"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled"`
}

// EntityID implements Entity
func (e Exam) EntityID() string { return e.ID }

// Result records a student's marks in an exam. Grade, GradePoint and Status are
// computed when the result is created and are not recomputed when the exam changes.
type Result struct {
	ID            string  `json:"id" validate:"omitempty,entityid=RES"`
	ExamID        string  `json:"examId" validate:"required"`
	StudentID     string  `json:"studentId" validate:"required"`
	MarksObtained float64 `json:"marksObtained" validate:"min=0"`
	Grade         string  `json:"grade"`
	GradePoint    float64 `json:"gradePoint"`
	Status        string  `json:"status"`
	Remarks       string  `json:"remarks,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// EntityID implements Entity
func (r Result) EntityID() string { return r.ID }
