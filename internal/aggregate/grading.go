package aggregate

import "github.com/yigit/unidesk/internal/app/models"

// GradeBand maps a minimum percentage to a letter and grade point
type GradeBand struct {
	MinPercent float64
	Grade      string
	Point      float64
}

// GradeScale is the ten-point scale, highest band first
var GradeScale = []GradeBand{
	{MinPercent: 90, Grade: "A+", Point: 10},
	{MinPercent: 80, Grade: "A", Point: 9},
	{MinPercent: 70, Grade: "B+", Point: 8},
	{MinPercent: 60, Grade: "B", Point: 7},
	{MinPercent: 50, Grade: "C", Point: 6},
	{MinPercent: 40, Grade: "D", Point: 5},
}

// Grades outside the scale
const (
	FailingGrade   = "F"
	PassGrade      = "P"
	PassGradePoint = 4.0
)

// GradeOutcome is the frozen part of a result
type GradeOutcome struct {
	Grade      string  `json:"grade"`
	GradePoint float64 `json:"gradePoint"`
	Status     string  `json:"status"`
}

// Grade grades marks against an exam's maximum and passing marks
func Grade(marks, maxMarks, passingMarks float64) GradeOutcome {
	fail := GradeOutcome{Grade: FailingGrade, GradePoint: 0, Status: models.ResultFail}
	if maxMarks <= 0 || marks < passingMarks {
		return fail
	}

	percent := marks / maxMarks * 100
	for _, band := range GradeScale {
		if percent >= band.MinPercent {
			return GradeOutcome{Grade: band.Grade, GradePoint: band.Point, Status: models.ResultPass}
		}
	}
	// cleared the passing marks but fell below every band
	return GradeOutcome{Grade: PassGrade, GradePoint: PassGradePoint, Status: models.ResultPass}
}

// ApplyGrade copies an outcome onto a result
func ApplyGrade(r models.Result, g GradeOutcome) models.Result {
	r.Grade = g.Grade
	r.GradePoint = g.GradePoint
	r.Status = g.Status
	return r
}
