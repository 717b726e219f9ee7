package services

import (
	"time"

	"github.com/yigit/unidesk/internal/query"
)

// Services defined in this package:
// - CatalogService: CRUD and filtered listing over one collection
// - ResultService: exam results with frozen grades, regrading and exam reports
// - PayrollService: salary derivation, period generation and payment
// - FeeService: fee payments, dues and the collection report
// - HostelService: allocation requests and derived room occupancy
// - ClubService: club members and events
// - LibraryService: book issue and return with overdue fines
// - LeaveService: faculty leave requests
// - ReportService: dashboard summary and audience-filtered notices

// timeNow is replaced in tests
var timeNow = time.Now

func today() string {
	return timeNow().Format(query.DateLayout)
}

func timestamp() string {
	return timeNow().UTC().Format(time.RFC3339)
}
