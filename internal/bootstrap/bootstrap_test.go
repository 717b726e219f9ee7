package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unidesk/internal/config"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
	"github.com/yigit/unidesk/internal/seed"
	"github.com/yigit/unidesk/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Pagination *struct {
		CurrentPage int   `json:"currentPage"`
		TotalPages  int   `json:"totalPages"`
		TotalItems  int64 `json:"totalItems"`
	} `json:"pagination"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Storage.Backend = config.StorageMemory
	cfg.Library.FinePerDay = 5
	cfg.Library.LoanDays = 14
	return cfg
}

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	s := store.New(blobstore.NewMemoryStore(), zerolog.Nop())
	require.NoError(t, seed.CreateDefaultData(ctx, s, zerolog.Nop()))

	cfg := testConfig()
	deps, err := BuildDependencies(ctx, cfg, s, zerolog.Nop())
	require.NoError(t, err)
	return SetupRouter(cfg, deps, zerolog.Nop()), s
}

func do(t *testing.T, router *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestHealthReportsCollections(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := do(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, code)

	health := decode[struct {
		Status      string         `json:"status"`
		Backend     string         `json:"backend"`
		Collections map[string]int `json:"collections"`
	}](t, env.Data)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, config.StorageMemory, health.Backend)
	assert.Equal(t, 4, health.Collections[store.KeyStudents])
}

func TestListStudentsFiltersAndPages(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := do(t, router, http.MethodGet, "/api/v1/students?branch=Electronics", "")
	require.Equal(t, http.StatusOK, code)
	rows := decode[[]struct {
		ID string `json:"id"`
	}](t, env.Data)
	require.Len(t, rows, 1)
	assert.Equal(t, "STU003", rows[0].ID)
	assert.Nil(t, env.Pagination)

	code, env = do(t, router, http.MethodGet, "/api/v1/students?page=2&size=3&sortBy=name", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 2, env.Pagination.CurrentPage)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.EqualValues(t, 4, env.Pagination.TotalItems)
	assert.Len(t, decode[[]json.RawMessage](t, env.Data), 1)
}

func TestStudentLifecycle(t *testing.T) {
	router, s := newTestRouter(t)

	code, env := do(t, router, http.MethodGet, "/api/v1/students/STU999", "")
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "RES_001", env.Error.Code)

	code, env = do(t, router, http.MethodPost, "/api/v1/students", `{"name":"X"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)

	code, env = do(t, router, http.MethodPost, "/api/v1/students", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_002", env.Error.Code)

	body := `{"name":"Rohan Das","rollNumber":"ECE21002","course":"B.Tech","branch":"Electronics","semester":3}`
	code, env = do(t, router, http.MethodPost, "/api/v1/students", body)
	require.Equal(t, http.StatusCreated, code)
	created := decode[struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}](t, env.Data)
	assert.Equal(t, "STU005", created.ID)
	assert.Equal(t, "active", created.Status)
	assert.Equal(t, 5, s.Students.Len())

	code, _ = do(t, router, http.MethodDelete, "/api/v1/students/STU005", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, s.Students.Len())
}

func TestDuplicateResultConflicts(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/v1/results", `{"examId":"EXM001","studentId":"STU001","marksObtained":50}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "RES_002", env.Error.Code)
}

func TestExamReport(t *testing.T) {
	router, _ := newTestRouter(t)

	code, _ := do(t, router, http.MethodGet, "/api/v1/exams/EXM001/report", "")
	assert.Equal(t, http.StatusOK, code)

	code, env := do(t, router, http.MethodGet, "/api/v1/exams/EXM404/report", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "RES_001", env.Error.Code)
}

func TestPayrollPreview(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/v1/payroll/preview", `{"basicSalary":10000}`)
	require.Equal(t, http.StatusOK, code)
	p := decode[struct {
		Gross float64 `json:"grossSalary"`
		ESI   float64 `json:"esi"`
		Net   float64 `json:"netSalary"`
	}](t, env.Data)
	assert.Equal(t, 16400.0, p.Gross)
	assert.Equal(t, 123.0, p.ESI)
	assert.Equal(t, 14257.0, p.Net)

	code, env = do(t, router, http.MethodPost, "/api/v1/payroll/preview", `{"basicSalary":-1}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)
}

func TestHostelApprovalOnlyOnce(t *testing.T) {
	router, s := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/v1/hostel-allocations/HAR002/approve", "")
	require.Equal(t, http.StatusOK, code, string(env.Data))
	req, ok := s.AllocationRequests.Get("HAR002")
	require.True(t, ok)
	assert.Equal(t, "approved", req.Status)

	hostel, _ := s.Hostels.Get("HST002")
	assert.Equal(t, 1, hostel.Rooms[0].Occupied)

	code, env = do(t, router, http.MethodPost, "/api/v1/hostel-allocations/HAR002/reject", `{"remarks":"late"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "RES_004", env.Error.Code)
}

func TestReturnBookChargesFine(t *testing.T) {
	router, s := newTestRouter(t)

	code, env := do(t, router, http.MethodPost, "/api/v1/book-issues/ISS001/return", `{"returnDate":"2026-10-20"}`)
	require.Equal(t, http.StatusOK, code)
	issue := decode[struct {
		Fine   float64 `json:"fine"`
		Status string  `json:"status"`
	}](t, env.Data)
	assert.Equal(t, 25.0, issue.Fine)
	assert.Equal(t, "returned", issue.Status)

	book, _ := s.Books.Get("BK001")
	assert.Equal(t, 5, book.AvailableCopies)

	code, env = do(t, router, http.MethodPost, "/api/v1/book-issues/ISS001/return", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "RES_004", env.Error.Code)
}

func TestReplaceCollectionRejectsDuplicateIDs(t *testing.T) {
	router, s := newTestRouter(t)

	body := `[{"id":"BK001","title":"A","author":"B","category":"C","totalCopies":1,"availableCopies":1},
	          {"id":"BK001","title":"D","author":"E","category":"F","totalCopies":1,"availableCopies":1}]`
	code, env := do(t, router, http.MethodPut, "/api/v1/books", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, 3, s.Books.Len())
}

func TestNoticesFeed(t *testing.T) {
	router, _ := newTestRouter(t)

	code, env := do(t, router, http.MethodGet, "/api/v1/reports/notices?audience=faculty", "")
	require.Equal(t, http.StatusOK, code)
	notices := decode[[]struct {
		ID string `json:"id"`
	}](t, env.Data)

	var ids []string
	for _, n := range notices {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, "NOT002,NOT003", strings.Join(ids, ","))
}
