package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/lookup"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// LeaveService defines the interface for faculty leave operations
type LeaveService interface {
	Submit(ctx context.Context, req *dto.SubmitLeaveRequest) (models.LeaveRequest, error)
	Approve(ctx context.Context, id string) (models.LeaveRequest, error)
	Reject(ctx context.Context, id string) (models.LeaveRequest, error)
	List(ctx context.Context, criteria query.Criteria) []dto.LeaveRow
}

// leaveServiceImpl implements LeaveService
type leaveServiceImpl struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) LeaveService {
	return &leaveServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// Submit files a pending leave request
func (s *leaveServiceImpl) Submit(ctx context.Context, req *dto.SubmitLeaveRequest) (models.LeaveRequest, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.LeaveRequest{}, err
	}
	if _, ok := s.resolver.Faculty(req.FacultyID); !ok {
		return models.LeaveRequest{}, fmt.Errorf("%w: %s", apperrors.ErrFacultyNotFound, req.FacultyID)
	}
	if !query.InDateRange(req.ToDate, req.FromDate, "") {
		return models.LeaveRequest{}, apperrors.NewValidationError("toDate must not be before fromDate")
	}

	created, err := s.store.LeaveRequests.Insert(ctx, models.LeaveRequest{
		FacultyID: req.FacultyID,
		LeaveType: req.LeaveType,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Reason:    req.Reason,
		Status:    models.StatusPending,
		AppliedOn: today(),
	})
	if err != nil {
		return created, fmt.Errorf("error submitting leave request: %w", err)
	}
	return created, nil
}

// Approve accepts a pending leave request
func (s *leaveServiceImpl) Approve(ctx context.Context, id string) (models.LeaveRequest, error) {
	return s.decide(ctx, id, models.StatusApproved)
}

// Reject declines a pending leave request
func (s *leaveServiceImpl) Reject(ctx context.Context, id string) (models.LeaveRequest, error) {
	return s.decide(ctx, id, models.StatusRejected)
}

// List returns filtered leave requests with faculty names
func (s *leaveServiceImpl) List(_ context.Context, criteria query.Criteria) []dto.LeaveRow {
	return s.resolver.LeaveRows(query.Apply(s.store.LeaveRequests.All(), LeaveSchema, criteria))
}

func (s *leaveServiceImpl) decide(ctx context.Context, id, status string) (models.LeaveRequest, error) {
	decided, err := s.store.LeaveRequests.Update(ctx, id, func(l models.LeaveRequest) (models.LeaveRequest, error) {
		if l.Status != models.StatusPending && l.Status != "" {
			return l, fmt.Errorf("%w: leave %s is %s", apperrors.ErrAlreadyDecided, id, l.Status)
		}
		l.Status = status
		l.DecidedAt = timestamp()
		return l, nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return decided, fmt.Errorf("%w: leave %s", apperrors.ErrRequestNotFound, id)
		}
		return decided, err
	}

	s.logger.Info().Str("leave_id", id).Str("status", status).Msg("Leave request decided")
	return decided, nil
}
