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

// LibraryPolicy holds the lending rules
type LibraryPolicy struct {
	FinePerDay float64
	LoanDays   int
}

// LibraryService defines the interface for book lending operations
type LibraryService interface {
	Issue(ctx context.Context, req *dto.IssueBookRequest) (models.BookIssue, error)
	Return(ctx context.Context, issueID string, req *dto.ReturnBookRequest) (models.BookIssue, error)
	ListIssues(ctx context.Context, criteria query.Criteria) []dto.BookIssueRow
}

// libraryServiceImpl implements LibraryService
type libraryServiceImpl struct {
	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	policy   LibraryPolicy
	logger   zerolog.Logger

	mu sync.Mutex
}

// NewLibraryService creates a new LibraryService
func NewLibraryService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, policy LibraryPolicy, logger zerolog.Logger) LibraryService {
	return &libraryServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		policy:   policy,
		logger:   logger,
	}
}

// Issue lends a copy of a book to a student
func (s *libraryServiceImpl) Issue(ctx context.Context, req *dto.IssueBookRequest) (models.BookIssue, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.BookIssue{}, err
	}
	if _, ok := s.resolver.Student(req.StudentID); !ok {
		return models.BookIssue{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, req.StudentID)
	}

	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = today()
	}
	start, _ := query.ParseDate(issueDate)

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.store.Books.Update(ctx, req.BookID, func(b models.Book) (models.Book, error) {
		if b.AvailableCopies <= 0 {
			return b, fmt.Errorf("%w: %s", apperrors.ErrBookUnavailable, b.Title)
		}
		b.AvailableCopies--
		return b, nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return models.BookIssue{}, fmt.Errorf("%w: %s", apperrors.ErrBookNotFound, req.BookID)
		}
		return models.BookIssue{}, err
	}

	issue, err := s.store.BookIssues.Insert(ctx, models.BookIssue{
		BookID:    req.BookID,
		StudentID: req.StudentID,
		IssueDate: issueDate,
		DueDate:   start.AddDate(0, 0, s.policy.LoanDays).Format(query.DateLayout),
		Status:    models.IssueIssued,
	})
	if err != nil {
		return issue, fmt.Errorf("error issuing book: %w", err)
	}
	s.logger.Info().Str("issue_id", issue.ID).Str("book_id", issue.BookID).Str("due", issue.DueDate).Msg("Book issued")
	return issue, nil
}

// Return closes an issue, charges the overdue fine and restores the copy
func (s *libraryServiceImpl) Return(ctx context.Context, issueID string, req *dto.ReturnBookRequest) (models.BookIssue, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.BookIssue{}, err
	}
	returnDate := req.ReturnDate
	if returnDate == "" {
		returnDate = today()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	returned, err := s.store.BookIssues.Update(ctx, issueID, func(i models.BookIssue) (models.BookIssue, error) {
		if i.Status == models.IssueReturned {
			return i, fmt.Errorf("%w: %s", apperrors.ErrBookAlreadyReturned, issueID)
		}
		i.Status = models.IssueReturned
		i.ReturnDate = returnDate
		i.Fine = aggregate.OverdueFine(i.DueDate, returnDate, s.policy.FinePerDay)
		return i, nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return returned, apperrors.NewResourceNotFoundError(fmt.Sprintf("book issue %s not found", issueID))
		}
		return returned, err
	}

	_, err = s.store.Books.Update(ctx, returned.BookID, func(b models.Book) (models.Book, error) {
		if b.AvailableCopies < b.TotalCopies {
			b.AvailableCopies++
		}
		return b, nil
	})
	if err != nil && !apperrors.Is(err, apperrors.ErrResourceNotFound) {
		return returned, fmt.Errorf("error restoring copy of %s: %w", returned.BookID, err)
	}

	s.logger.Info().Str("issue_id", issueID).Float64("fine", returned.Fine).Msg("Book returned")
	return returned, nil
}

// ListIssues returns filtered issues with book and student names
func (s *libraryServiceImpl) ListIssues(_ context.Context, criteria query.Criteria) []dto.BookIssueRow {
	return s.resolver.BookIssueRows(query.Apply(s.store.BookIssues.All(), BookIssueSchema, criteria))
}
