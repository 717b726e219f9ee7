package services

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/query"
	"github.com/yigit/unidesk/internal/store"
)

// CatalogService defines list and CRUD operations over one collection
type CatalogService[T models.Entity] interface {
	Name() string
	List(ctx context.Context, criteria query.Criteria) []T
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, items []T) ([]T, error)
}

// CatalogOptions customizes a catalog
type CatalogOptions[T models.Entity] struct {
	Schema query.Schema[T]
	// NotFound is wrapped into lookup failures, ErrResourceNotFound when nil
	NotFound error
	// Prepare normalizes a record before it is validated and stored
	Prepare func(T) T
}

// catalogServiceImpl implements CatalogService
type catalogServiceImpl[T models.Entity] struct {
	collection *store.Collection[T]
	opts       CatalogOptions[T]
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewCatalogService creates a CatalogService over collection
func NewCatalogService[T models.Entity](
	collection *store.Collection[T],
	opts CatalogOptions[T],
	validate *validator.Validate,
	logger zerolog.Logger,
) CatalogService[T] {
	if opts.NotFound == nil {
		opts.NotFound = apperrors.ErrResourceNotFound
	}
	return &catalogServiceImpl[T]{
		collection: collection,
		opts:       opts,
		validate:   validate,
		logger:     logger.With().Str("collection", collection.Name()).Logger(),
	}
}

func (s *catalogServiceImpl[T]) Name() string { return s.collection.Name() }

// List filters, searches and sorts the collection
func (s *catalogServiceImpl[T]) List(_ context.Context, criteria query.Criteria) []T {
	return query.Apply(s.collection.All(), s.opts.Schema, criteria)
}

// Get retrieves one record by id
func (s *catalogServiceImpl[T]) Get(_ context.Context, id string) (T, error) {
	item, ok := s.collection.Get(id)
	if !ok {
		return item, fmt.Errorf("%w: %s", s.opts.NotFound, id)
	}
	return item, nil
}

// Create validates item and appends it, assigning the next id when it has none
func (s *catalogServiceImpl[T]) Create(ctx context.Context, item T) (T, error) {
	item, err := s.check(item)
	if err != nil {
		return item, err
	}

	created, err := s.collection.Insert(ctx, item)
	if err != nil {
		return created, fmt.Errorf("error creating %s record: %w", s.collection.Name(), err)
	}
	s.logger.Info().Str("id", created.EntityID()).Msg("Record created")
	return created, nil
}

// Update replaces the record with id by item
func (s *catalogServiceImpl[T]) Update(ctx context.Context, id string, item T) (T, error) {
	if item.EntityID() != "" && item.EntityID() != id {
		return item, fmt.Errorf("%w: body id %s does not match %s", apperrors.ErrValidationFailed, item.EntityID(), id)
	}
	item = s.collection.WithID(item, id)

	item, err := s.check(item)
	if err != nil {
		return item, err
	}

	updated, err := s.collection.Update(ctx, id, func(T) (T, error) { return item, nil })
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return updated, fmt.Errorf("%w: %s", s.opts.NotFound, id)
		}
		return updated, fmt.Errorf("error updating %s record: %w", s.collection.Name(), err)
	}
	return updated, nil
}

// Delete removes the record with id. References to it are left in place.
func (s *catalogServiceImpl[T]) Delete(ctx context.Context, id string) error {
	if err := s.collection.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return fmt.Errorf("%w: %s", s.opts.NotFound, id)
		}
		return fmt.Errorf("error deleting %s record: %w", s.collection.Name(), err)
	}
	s.logger.Info().Str("id", id).Msg("Record deleted")
	return nil
}

// ReplaceAll swaps the whole collection. Records without an id get sequential ids.
func (s *catalogServiceImpl[T]) ReplaceAll(ctx context.Context, items []T) ([]T, error) {
	prepared := make([]T, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.EntityID() != "" {
			ids = append(ids, item.EntityID())
		}
	}

	for i, item := range items {
		if item.EntityID() == "" {
			id := store.SequenceID(s.collection.Prefix(), ids)
			ids = append(ids, id)
			item = s.collection.WithID(item, id)
		}
		checked, err := s.check(item)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prepared = append(prepared, checked)
	}

	if err := s.collection.Replace(ctx, prepared); err != nil {
		return nil, fmt.Errorf("error replacing %s: %w", s.collection.Name(), err)
	}
	s.logger.Info().Int("count", len(prepared)).Msg("Collection replaced")
	return prepared, nil
}

func (s *catalogServiceImpl[T]) check(item T) (T, error) {
	if s.opts.Prepare != nil {
		item = s.opts.Prepare(item)
	}
	if err := s.validate.Struct(item); err != nil {
		return item, err
	}
	return item, nil
}
