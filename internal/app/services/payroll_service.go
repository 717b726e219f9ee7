package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/lookup"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// PayrollService defines the interface for salary operations
type PayrollService interface {
	Preview(basic float64) aggregate.Payroll
	Generate(ctx context.Context, req *dto.GeneratePayrollRequest) (dto.PayrollRun, error)
	MarkPaid(ctx context.Context, salaryID string) (models.Salary, error)
	List(ctx context.Context, criteria query.Criteria) []dto.SalaryRow
	Summary(ctx context.Context, month, year int) dto.PayrollSummary
}

// payrollServiceImpl implements PayrollService
type payrollServiceImpl struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger

	// serializes generation and payment so a period is never generated twice at once
	mu sync.Mutex
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) PayrollService {
	return &payrollServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// Preview derives pay for a basic salary without storing anything
func (s *payrollServiceImpl) Preview(basic float64) aggregate.Payroll {
	return aggregate.DerivePayroll(basic)
}

// SalaryFromPayroll builds a pending salary record for a faculty member and period
func SalaryFromPayroll(facultyID string, month, year int, p aggregate.Payroll) models.Salary {
	return models.Salary{
		FacultyID:       facultyID,
		Month:           month,
		Year:            year,
		BasicSalary:     p.Basic,
		DA:              p.DA,
		HRA:             p.HRA,
		TA:              p.TA,
		Medical:         p.Medical,
		GrossSalary:     p.Gross,
		PF:              p.PF,
		ESI:             p.ESI,
		TDS:             p.TDS,
		TotalDeductions: p.TotalDeductions,
		NetSalary:       p.Net,
		Status:          models.SalaryPending,
		GeneratedAt:     timestamp(),
	}
}

// Generate creates one pending salary per active faculty member for the period.
// Existing records for the same faculty and period are skipped unless Overwrite is
// set, in which case pending ones are recomputed. Paid records are never touched.
func (s *payrollServiceImpl) Generate(ctx context.Context, req *dto.GeneratePayrollRequest) (dto.PayrollRun, error) {
	run := dto.PayrollRun{
		Month:    req.Month,
		Year:     req.Year,
		Created:  []models.Salary{},
		Replaced: []models.Salary{},
		Skipped:  []string{},
	}
	if err := s.validate.Struct(req); err != nil {
		return run, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	salaries := s.store.Salaries.All()
	existing := make(map[string]int)
	ids := make([]string, 0, len(salaries))
	for i, sal := range salaries {
		ids = append(ids, sal.ID)
		if sal.Month == req.Month && sal.Year == req.Year {
			existing[sal.FacultyID] = i
		}
	}

	for _, f := range s.store.Faculty.All() {
		if !f.IsActive() {
			continue
		}
		run.Employees++
		record := SalaryFromPayroll(f.ID, req.Month, req.Year, aggregate.DerivePayroll(f.Salary))

		if pos, ok := existing[f.ID]; ok {
			current := salaries[pos]
			if !req.Overwrite || current.Status == models.SalaryPaid {
				run.Skipped = append(run.Skipped, f.ID)
				continue
			}
			record.ID = current.ID
			salaries[pos] = record
			run.Replaced = append(run.Replaced, record)
		} else {
			record.ID = store.SequenceID(models.PrefixSalary, ids)
			ids = append(ids, record.ID)
			salaries = append(salaries, record)
			run.Created = append(run.Created, record)
		}
		run.TotalGross += record.GrossSalary
		run.TotalNet += record.NetSalary
	}
	run.TotalGross = aggregate.RoundCurrency(run.TotalGross)
	run.TotalNet = aggregate.RoundCurrency(run.TotalNet)

	if len(run.Created) == 0 && len(run.Replaced) == 0 {
		return run, nil
	}
	if err := s.store.Salaries.Replace(ctx, salaries); err != nil {
		return run, fmt.Errorf("error saving payroll: %w", err)
	}

	s.logger.Info().
		Int("month", req.Month).
		Int("year", req.Year).
		Int("created", len(run.Created)).
		Int("replaced", len(run.Replaced)).
		Int("skipped", len(run.Skipped)).
		Msg("Payroll generated")
	return run, nil
}

// MarkPaid settles a pending salary
func (s *payrollServiceImpl) MarkPaid(ctx context.Context, salaryID string) (models.Salary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	paid, err := s.store.Salaries.Update(ctx, salaryID, func(sal models.Salary) (models.Salary, error) {
		if sal.Status == models.SalaryPaid {
			return sal, fmt.Errorf("%w: %s", apperrors.ErrSalaryAlreadyPaid, salaryID)
		}
		sal.Status = models.SalaryPaid
		sal.PaidDate = today()
		return sal, nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return paid, fmt.Errorf("%w: %s", apperrors.ErrSalaryNotFound, salaryID)
		}
		return paid, err
	}

	s.logger.Info().Str("salary_id", salaryID).Float64("net", paid.NetSalary).Msg("Salary paid")
	return paid, nil
}

// List returns filtered salary records with faculty names
func (s *payrollServiceImpl) List(_ context.Context, criteria query.Criteria) []dto.SalaryRow {
	return s.resolver.SalaryRows(query.Apply(s.store.Salaries.All(), SalarySchema, criteria))
}

// Summary aggregates salary records of a period; zero month or year matches any
func (s *payrollServiceImpl) Summary(_ context.Context, month, year int) dto.PayrollSummary {
	salaries := query.Where(s.store.Salaries.All(), func(sal models.Salary) bool {
		return (month == 0 || sal.Month == month) && (year == 0 || sal.Year == year)
	})

	summary := dto.PayrollSummary{
		NetPaidTotal: aggregate.NetPayrollTotal(salaries),
		RecordCount:  len(salaries),
	}
	for _, sal := range salaries {
		switch sal.Status {
		case models.SalaryPaid:
			summary.PaidCount++
		default:
			summary.PendingCount++
			summary.PendingTotal += sal.NetSalary
		}
	}
	summary.PendingTotal = aggregate.RoundCurrency(summary.PendingTotal)
	return summary
}
