// Package lookup resolves references between collections. A reference that points at
// nothing is reported as not found and rendered with a placeholder, never as an error.
package lookup

import (
	"strings"

	"github.com/yigit/unidesk/internal/app/models"
)

// Placeholder is displayed in place of a dangling reference
const Placeholder = "Unknown"

// Find returns the first item whose id equals id
func Find[T models.Entity](items []T, id string) (T, bool) {
	for _, item := range items {
		if item.EntityID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FindOr returns the matching item or fallback
func FindOr[T models.Entity](items []T, id string, fallback T) T {
	if item, ok := Find(items, id); ok {
		return item
	}
	return fallback
}

// Cohort is the (course, branch, semester) tuple exams, fee structures and students
// are matched on
type Cohort struct {
	Course   string
	Branch   string
	Semester int
}

// Matches compares two cohorts ignoring case and surrounding whitespace
func (c Cohort) Matches(other Cohort) bool {
	return c.Semester == other.Semester &&
		sameName(c.Course, other.Course) &&
		sameName(c.Branch, other.Branch)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// StudentCohort returns the cohort a student belongs to
func StudentCohort(s models.Student) Cohort {
	return Cohort{Course: s.Course, Branch: s.Branch, Semester: s.Semester}
}

// ExamCohort returns the cohort an exam is held for
func ExamCohort(e models.Exam) Cohort {
	return Cohort{Course: e.Course, Branch: e.Branch, Semester: e.Semester}
}

// FeeCohort returns the cohort a fee structure applies to
func FeeCohort(f models.FeeStructure) Cohort {
	return Cohort{Course: f.Course, Branch: f.Branch, Semester: f.Semester}
}

// StudentsInCohort returns the students of a cohort in collection order
func StudentsInCohort(students []models.Student, cohort Cohort) []models.Student {
	out := make([]models.Student, 0)
	for _, s := range students {
		if StudentCohort(s).Matches(cohort) {
			out = append(out, s)
		}
	}
	return out
}

// FeeStructureFor returns the first fee structure matching the student's cohort
func FeeStructureFor(structures []models.FeeStructure, student models.Student) (models.FeeStructure, bool) {
	cohort := StudentCohort(student)
	for _, f := range structures {
		if FeeCohort(f).Matches(cohort) {
			return f, true
		}
	}
	return models.FeeStructure{}, false
}

// FindRoom returns a room of a hostel by id
func FindRoom(hostel models.Hostel, roomID string) (models.Room, bool) {
	for _, r := range hostel.Rooms {
		if r.ID == roomID {
			return r, true
		}
	}
	return models.Room{}, false
}
