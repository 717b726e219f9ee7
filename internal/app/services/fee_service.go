package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/lookup"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// FeeService defines the interface for fee payment operations
type FeeService interface {
	RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (models.FeePayment, error)
	List(ctx context.Context, criteria query.Criteria) []dto.PaymentRow
	Report(ctx context.Context) dto.FeeReport
	Dues(ctx context.Context, studentID string) (dto.StudentDues, error)
}

// feeServiceImpl implements FeeService
type feeServiceImpl struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewFeeService creates a new FeeService
func NewFeeService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) FeeService {
	return &feeServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// RecordPayment stores a completed payment. Without an explicit fee structure the
// one matching the student's course, branch and semester is linked.
func (s *feeServiceImpl) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (models.FeePayment, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.FeePayment{}, err
	}

	student, ok := s.resolver.Student(req.StudentID)
	if !ok {
		return models.FeePayment{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, req.StudentID)
	}

	structureID := req.FeeStructureID
	if structureID != "" {
		if _, ok := s.resolver.FeeStructure(structureID); !ok {
			return models.FeePayment{}, fmt.Errorf("%w: %s", apperrors.ErrFeeStructureNotFound, structureID)
		}
	} else if fee, ok := s.resolver.FeeStructureForStudent(student); ok {
		structureID = fee.ID
	}

	payment := models.FeePayment{
		StudentID:      student.ID,
		FeeStructureID: structureID,
		Amount:         aggregate.RoundCurrency(req.Amount),
		PaymentDate:    req.PaymentDate,
		Method:         req.Method,
		TransactionID:  req.TransactionID,
		Status:         models.PaymentPaid,
	}
	if payment.PaymentDate == "" {
		payment.PaymentDate = today()
	}
	if payment.Method == "" {
		payment.Method = "cash"
	}
	if payment.TransactionID == "" {
		payment.TransactionID = "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	}

	created, err := s.store.FeePayments.Insert(ctx, payment)
	if err != nil {
		return created, fmt.Errorf("error recording payment: %w", err)
	}
	s.logger.Info().Str("payment_id", created.ID).Str("student_id", student.ID).Float64("amount", created.Amount).Msg("Fee payment recorded")
	return created, nil
}

// List returns filtered payments with student names
func (s *feeServiceImpl) List(_ context.Context, criteria query.Criteria) []dto.PaymentRow {
	return s.resolver.PaymentRows(query.Apply(s.store.FeePayments.All(), FeePaymentSchema, criteria))
}

// Report aggregates payments against the student body
func (s *feeServiceImpl) Report(_ context.Context) dto.FeeReport {
	students := s.store.Students.All()
	payments := s.store.FeePayments.All()
	structures := s.store.FeeStructures.All()

	collected, pending := aggregate.FeeTotals(payments)
	expected := 0.0
	for _, st := range students {
		if fee, ok := lookup.FeeStructureFor(structures, st); ok {
			expected += fee.TotalFee
		}
	}

	return dto.FeeReport{
		TotalStudents:   len(students),
		PayingStudents:  len(aggregate.PayerIDs(payments)),
		CollectionRate:  aggregate.CollectionRate(payments, len(students)),
		CollectedAmount: collected,
		PendingAmount:   pending,
		ExpectedAmount:  aggregate.RoundCurrency(expected),
	}
}

// Dues compares a student's completed payments with their fee structure
func (s *feeServiceImpl) Dues(_ context.Context, studentID string) (dto.StudentDues, error) {
	student, ok := s.resolver.Student(studentID)
	if !ok {
		return dto.StudentDues{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, studentID)
	}

	payments := query.Where(s.store.FeePayments.All(), func(p models.FeePayment) bool {
		return p.StudentID == studentID
	})
	paid, _ := aggregate.FeeTotals(payments)

	dues := dto.StudentDues{
		StudentID:   student.ID,
		StudentName: student.Name,
		Paid:        paid,
	}
	if fee, ok := s.resolver.FeeStructureForStudent(student); ok {
		dues.FeeStructure = &fee
		dues.TotalFee = fee.TotalFee
		dues.Balance = aggregate.RoundCurrency(fee.TotalFee - paid)
		if dues.Balance < 0 {
			dues.Balance = 0
		}
		dues.Overdue = dues.Balance > 0 && fee.DueDate != "" && !query.InDateRange(today(), "", fee.DueDate)
	}
	return dues, nil
}
