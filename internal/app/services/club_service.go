package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/app/models/dto"
	"github.com/yigit/unidesk/internal/lookup"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// ClubService defines the interface for club membership and event operations
type ClubService interface {
	AddMember(ctx context.Context, clubID string, req *dto.AddMemberRequest) (models.Club, error)
	RemoveMember(ctx context.Context, clubID, studentID string) (models.Club, error)
	AddEvent(ctx context.Context, clubID string, req *dto.AddEventRequest) (models.ClubEvent, error)
	UpcomingEvents(ctx context.Context, limit int) []dto.EventRow
}

// clubServiceImpl implements ClubService
type clubServiceImpl struct {
	// mu serializes event id assignment across clubs
	mu sync.Mutex

	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewClubService creates a new ClubService
func NewClubService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) ClubService {
	return &clubServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// AddMember enrolls a student in a club
func (s *clubServiceImpl) AddMember(ctx context.Context, clubID string, req *dto.AddMemberRequest) (models.Club, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Club{}, err
	}
	if _, ok := s.resolver.Student(req.StudentID); !ok {
		return models.Club{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, req.StudentID)
	}

	role := req.Role
	if role == "" {
		role = "member"
	}

	club, err := s.store.Clubs.Update(ctx, clubID, func(c models.Club) (models.Club, error) {
		for _, m := range c.Members {
			if m.StudentID == req.StudentID {
				return c, fmt.Errorf("%w: %s in %s", apperrors.ErrAlreadyClubMember, req.StudentID, c.Name)
			}
		}
		c.Members = append(append([]models.ClubMember{}, c.Members...), models.ClubMember{
			StudentID: req.StudentID,
			Role:      role,
			JoinedAt:  today(),
		})
		return c, nil
	})
	return club, s.clubError(clubID, err)
}

// RemoveMember drops a student from a club
func (s *clubServiceImpl) RemoveMember(ctx context.Context, clubID, studentID string) (models.Club, error) {
	club, err := s.store.Clubs.Update(ctx, clubID, func(c models.Club) (models.Club, error) {
		members := make([]models.ClubMember, 0, len(c.Members))
		for _, m := range c.Members {
			if m.StudentID != studentID {
				members = append(members, m)
			}
		}
		if len(members) == len(c.Members) {
			return c, apperrors.NewResourceNotFoundError(fmt.Sprintf("student %s is not a member of %s", studentID, c.Name))
		}
		c.Members = members
		return c, nil
	})
	return club, s.clubError(clubID, err)
}

// AddEvent schedules an event for a club. Event ids are unique across clubs.
func (s *clubServiceImpl) AddEvent(ctx context.Context, clubID string, req *dto.AddEventRequest) (models.ClubEvent, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.ClubEvent{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event := models.ClubEvent{
		ID:          store.SequenceID(models.PrefixClubEvent, s.eventIDs()),
		Title:       req.Title,
		Date:        req.Date,
		Venue:       req.Venue,
		Description: req.Description,
	}
	_, err := s.store.Clubs.Update(ctx, clubID, func(c models.Club) (models.Club, error) {
		c.Events = append(append([]models.ClubEvent{}, c.Events...), event)
		return c, nil
	})
	if err := s.clubError(clubID, err); err != nil {
		return models.ClubEvent{}, err
	}
	return event, nil
}

// UpcomingEvents lists events from today on across clubs, soonest first. limit <= 0
// returns all of them.
func (s *clubServiceImpl) UpcomingEvents(_ context.Context, limit int) []dto.EventRow {
	from := today()
	rows := make([]dto.EventRow, 0)
	for _, c := range s.store.Clubs.All() {
		for _, e := range c.Events {
			if query.InDateRange(e.Date, from, "") {
				rows = append(rows, dto.EventRow{ClubEvent: e, ClubID: c.ID, ClubName: c.Name})
			}
		}
	}

	query.SortBy(rows, query.SortKey[dto.EventRow]{Date: func(r dto.EventRow) string { return r.Date }}, false)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

func (s *clubServiceImpl) eventIDs() []string {
	ids := make([]string, 0)
	for _, c := range s.store.Clubs.All() {
		for _, e := range c.Events {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (s *clubServiceImpl) clubError(clubID string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := s.resolver.Club(clubID); !ok {
		return fmt.Errorf("%w: %s", apperrors.ErrClubNotFound, clubID)
	}
	return err
}
