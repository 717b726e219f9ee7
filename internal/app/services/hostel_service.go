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

// HostelService defines the interface for room allocation operations
type HostelService interface {
	ListRequests(ctx context.Context, criteria query.Criteria) []dto.AllocationRow
	RequestRoom(ctx context.Context, req *dto.AllocationRequestBody) (models.AllocationRequest, error)
	Approve(ctx context.Context, requestID, remarks string) (models.AllocationRequest, error)
	Reject(ctx context.Context, requestID, remarks string) (models.AllocationRequest, error)
	Occupancy(ctx context.Context) []dto.HostelOccupancy
	SyncOccupancy(ctx context.Context) error
}

// hostelServiceImpl implements HostelService. Approved allocation requests are the
// source of truth for room occupancy; the rooms' occupied counters are rewritten
// from them.
type hostelServiceImpl struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger

	mu sync.Mutex
}

// NewHostelService creates a new HostelService
func NewHostelService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) HostelService {
	return &hostelServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// ListRequests returns filtered allocation requests with display names
func (s *hostelServiceImpl) ListRequests(_ context.Context, criteria query.Criteria) []dto.AllocationRow {
	return s.resolver.AllocationRows(query.Apply(s.store.AllocationRequests.All(), AllocationSchema, criteria))
}

// RequestRoom files a pending allocation request
func (s *hostelServiceImpl) RequestRoom(ctx context.Context, req *dto.AllocationRequestBody) (models.AllocationRequest, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.AllocationRequest{}, err
	}
	if _, ok := s.resolver.Student(req.StudentID); !ok {
		return models.AllocationRequest{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, req.StudentID)
	}
	if _, ok := s.resolver.Hostel(req.HostelID); !ok {
		return models.AllocationRequest{}, fmt.Errorf("%w: %s", apperrors.ErrHostelNotFound, req.HostelID)
	}
	if _, ok := s.resolver.Room(req.HostelID, req.RoomID); !ok {
		return models.AllocationRequest{}, fmt.Errorf("%w: %s in hostel %s", apperrors.ErrRoomNotFound, req.RoomID, req.HostelID)
	}
	if s.isHoused(req.StudentID, "") {
		return models.AllocationRequest{}, fmt.Errorf("%w: %s", apperrors.ErrStudentAlreadyHoused, req.StudentID)
	}

	created, err := s.store.AllocationRequests.Insert(ctx, models.AllocationRequest{
		StudentID:   req.StudentID,
		HostelID:    req.HostelID,
		RoomID:      req.RoomID,
		Status:      models.StatusPending,
		RequestDate: today(),
		Remarks:     req.Remarks,
	})
	if err != nil {
		return created, fmt.Errorf("error filing allocation request: %w", err)
	}
	return created, nil
}

// Approve accepts a pending request when the room still has a free bed
func (s *hostelServiceImpl) Approve(ctx context.Context, requestID, remarks string) (models.AllocationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.pending(requestID)
	if err != nil {
		return current, err
	}
	room, ok := s.resolver.Room(current.HostelID, current.RoomID)
	if !ok {
		return current, fmt.Errorf("%w: %s in hostel %s", apperrors.ErrRoomNotFound, current.RoomID, current.HostelID)
	}
	if s.isHoused(current.StudentID, current.ID) {
		return current, fmt.Errorf("%w: %s", apperrors.ErrStudentAlreadyHoused, current.StudentID)
	}
	occupied := aggregate.RoomOccupancy(current.HostelID, current.RoomID, s.store.AllocationRequests.All())
	if occupied >= room.Capacity {
		return current, fmt.Errorf("%w: room %s holds %d of %d", apperrors.ErrRoomFull, room.Number, occupied, room.Capacity)
	}

	approved, err := s.decide(ctx, requestID, models.StatusApproved, remarks)
	if err != nil {
		return approved, err
	}
	if err := s.syncHostel(ctx, approved.HostelID); err != nil {
		return approved, err
	}
	s.logger.Info().Str("request_id", requestID).Str("room_id", approved.RoomID).Msg("Allocation approved")
	return approved, nil
}

// Reject declines a pending request
func (s *hostelServiceImpl) Reject(ctx context.Context, requestID, remarks string) (models.AllocationRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, err := s.pending(requestID); err != nil {
		return current, err
	}
	return s.decide(ctx, requestID, models.StatusRejected, remarks)
}

// Occupancy derives per-hostel and per-room occupancy from approved requests
func (s *hostelServiceImpl) Occupancy(_ context.Context) []dto.HostelOccupancy {
	allocations := s.store.AllocationRequests.All()
	hostels := s.store.Hostels.All()

	out := make([]dto.HostelOccupancy, 0, len(hostels))
	for _, h := range hostels {
		row := dto.HostelOccupancy{HostelID: h.ID, HostelName: h.Name, Rooms: make([]dto.RoomOccupancy, 0, len(h.Rooms))}
		for _, r := range h.Rooms {
			occupied := aggregate.RoomOccupancy(h.ID, r.ID, allocations)
			available := r.Capacity - occupied
			if available < 0 {
				available = 0
			}
			row.Capacity += r.Capacity
			row.Occupied += occupied
			row.Rooms = append(row.Rooms, dto.RoomOccupancy{
				RoomID:    r.ID,
				Number:    r.Number,
				Capacity:  r.Capacity,
				Occupied:  occupied,
				Available: available,
			})
		}
		row.OccupancyRate = aggregate.OccupancyRate(row.Occupied, row.Capacity)
		out = append(out, row)
	}
	return out
}

// SyncOccupancy rewrites every room's occupied counter from approved requests
func (s *hostelServiceImpl) SyncOccupancy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, h := range s.store.Hostels.All() {
		if err := s.syncHostel(ctx, h.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *hostelServiceImpl) syncHostel(ctx context.Context, hostelID string) error {
	allocations := s.store.AllocationRequests.All()
	_, err := s.store.Hostels.Update(ctx, hostelID, func(h models.Hostel) (models.Hostel, error) {
		return deriveRoomOccupancy(h, allocations), nil
	})
	if err != nil {
		return fmt.Errorf("error updating room occupancy of %s: %w", hostelID, err)
	}
	return nil
}

func (s *hostelServiceImpl) pending(requestID string) (models.AllocationRequest, error) {
	current, ok := s.store.AllocationRequests.Get(requestID)
	if !ok {
		return current, fmt.Errorf("%w: allocation %s", apperrors.ErrRequestNotFound, requestID)
	}
	if current.Status != models.StatusPending && current.Status != "" {
		return current, fmt.Errorf("%w: allocation %s is %s", apperrors.ErrAlreadyDecided, requestID, current.Status)
	}
	return current, nil
}

func (s *hostelServiceImpl) decide(ctx context.Context, requestID, status, remarks string) (models.AllocationRequest, error) {
	decided, err := s.store.AllocationRequests.Update(ctx, requestID, func(a models.AllocationRequest) (models.AllocationRequest, error) {
		a.Status = status
		a.DecidedAt = timestamp()
		if remarks != "" {
			a.Remarks = remarks
		}
		return a, nil
	})
	if err != nil {
		return decided, fmt.Errorf("error deciding allocation %s: %w", requestID, err)
	}
	return decided, nil
}

// isHoused reports whether the student holds an approved allocation other than except
func (s *hostelServiceImpl) isHoused(studentID, except string) bool {
	for _, a := range s.store.AllocationRequests.All() {
		if a.StudentID == studentID && a.ID != except && a.Status == models.StatusApproved {
			return true
		}
	}
	return false
}

// deriveRoomOccupancy returns h with each room's occupied counter recomputed
func deriveRoomOccupancy(h models.Hostel, allocations []models.AllocationRequest) models.Hostel {
	rooms := make([]models.Room, len(h.Rooms))
	for i, r := range h.Rooms {
		r.Occupied = aggregate.RoomOccupancy(h.ID, r.ID, allocations)
		rooms[i] = r
	}
	h.Rooms = rooms
	return h
}
