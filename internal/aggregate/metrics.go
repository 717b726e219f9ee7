// Package aggregate computes the summary numbers shown on the dashboard. Every function
// is total: empty input yields zero and nothing here mutates its arguments.
package aggregate

import (
	"fmt"
	"math"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/query"
)

// RoundCurrency rounds to two decimal places
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percentage returns part/total*100 rounded to the nearest integer, 0 when total is 0
func Percentage(part, total float64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

// PassRate is the rounded share of results with status pass
func PassRate(results []models.Result) int {
	passed := 0
	for _, r := range results {
		if r.Status == models.ResultPass {
			passed++
		}
	}
	return Percentage(float64(passed), float64(len(results)))
}

// PayerIDs returns the distinct ids of students with a completed payment
func PayerIDs(payments []models.FeePayment) map[string]struct{} {
	payers := make(map[string]struct{})
	for _, p := range payments {
		if isCollected(p) {
			payers[p.StudentID] = struct{}{}
		}
	}
	return payers
}

// CollectionRate is the rounded share of students that made a completed payment
func CollectionRate(payments []models.FeePayment, totalStudents int) int {
	return Percentage(float64(len(PayerIDs(payments))), float64(totalStudents))
}

// FeeTotals splits payment amounts into collected and pending
func FeeTotals(payments []models.FeePayment) (collected, pending float64) {
	for _, p := range payments {
		switch {
		case isCollected(p):
			collected += p.Amount
		case p.Status == models.PaymentPending:
			pending += p.Amount
		}
	}
	return RoundCurrency(collected), RoundCurrency(pending)
}

// isCollected decides who counts as a payer: payments recorded without a status are
// treated as paid; pending and failed payments are not collected.
func isCollected(p models.FeePayment) bool {
	return p.Status == "" || p.Status == models.PaymentPaid
}

// NetPayrollTotal sums the net salary of paid records
func NetPayrollTotal(salaries []models.Salary) float64 {
	total := 0.0
	for _, s := range salaries {
		if s.Status == models.SalaryPaid {
			total += s.NetSalary
		}
	}
	return RoundCurrency(total)
}

// AverageCGPA averages student CGPA, counting a missing CGPA as 0
func AverageCGPA(students []models.Student) float64 {
	if len(students) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range students {
		if s.CGPA != nil {
			sum += *s.CGPA
		}
	}
	return RoundCurrency(sum / float64(len(students)))
}

// FormatCGPA renders a CGPA the way the dashboard displays it
func FormatCGPA(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// AverageAttendance averages the stored attendance percentage of students
func AverageAttendance(students []models.Student) float64 {
	if len(students) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range students {
		sum += s.AttendancePercentage
	}
	return RoundCurrency(sum / float64(len(students)))
}

// AttendancePercentage is the share of sessions attended; late counts as attended
func AttendancePercentage(records []models.Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	attended := 0
	for _, r := range records {
		if r.Status == models.AttendancePresent || r.Status == models.AttendanceLate {
			attended++
		}
	}
	return RoundCurrency(float64(attended) / float64(len(records)) * 100)
}

// MarksStats returns the average and highest marks of results
func MarksStats(results []models.Result) (average, highest float64) {
	if len(results) == 0 {
		return 0, 0
	}
	sum := 0.0
	for i, r := range results {
		sum += r.MarksObtained
		if i == 0 || r.MarksObtained > highest {
			highest = r.MarksObtained
		}
	}
	return RoundCurrency(sum / float64(len(results))), highest
}

// RoomOccupancy counts approved allocations for a room
func RoomOccupancy(hostelID, roomID string, allocations []models.AllocationRequest) int {
	n := 0
	for _, a := range allocations {
		if a.Status == models.StatusApproved && a.HostelID == hostelID && a.RoomID == roomID {
			n++
		}
	}
	return n
}

// OccupancyRate is the rounded share of occupied beds
func OccupancyRate(occupied, capacity int) int {
	return Percentage(float64(occupied), float64(capacity))
}

// HostelCapacity sums room capacities across hostels
func HostelCapacity(hostels []models.Hostel) int {
	total := 0
	for _, h := range hostels {
		for _, r := range h.Rooms {
			total += r.Capacity
		}
	}
	return total
}

// OccupiedBeds counts approved allocations that point at an existing room
func OccupiedBeds(hostels []models.Hostel, allocations []models.AllocationRequest) int {
	total := 0
	for _, h := range hostels {
		for _, r := range h.Rooms {
			total += RoomOccupancy(h.ID, r.ID, allocations)
		}
	}
	return total
}

// CountStatus counts items whose status equals status
func CountStatus[T any](items []T, status string, get func(T) string) int {
	n := 0
	for _, item := range items {
		if get(item) == status {
			n++
		}
	}
	return n
}

// OverdueFine charges perDay for every day returned after due. Unparsable dates
// charge nothing.
func OverdueFine(dueDate, returnDate string, perDay float64) float64 {
	due, ok := query.ParseDate(dueDate)
	if !ok {
		return 0
	}
	returned, ok := query.ParseDate(returnDate)
	if !ok {
		return 0
	}
	days := int(returned.Sub(due).Hours() / 24)
	if days <= 0 {
		return 0
	}
	return RoundCurrency(float64(days) * perDay)
}
