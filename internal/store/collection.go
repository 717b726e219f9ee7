package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
)

// Change operations reported to listeners
const (
	OpReplace = "replace"
	OpAppend  = "append"
	OpUpsert  = "upsert"
	OpDelete  = "delete"
)

// commitFunc persists the serialized collection and is called with the collection
// lock held, so writes for one collection reach the blob store in mutation order.
type commitFunc func(ctx context.Context, name string, data []byte) error

// Collection is an ordered set of records with an id index. The slice keeps display
// order; the map resolves ids to positions.
type Collection[T models.Entity] struct {
	name   string
	prefix string
	assign func(T, string) T

	mu    sync.RWMutex
	items []T
	index map[string]int

	commit commitFunc
	notify func(Change)
}

func newCollection[T models.Entity](name, prefix string, assign func(T, string) T) *Collection[T] {
	return &Collection[T]{
		name:   name,
		prefix: prefix,
		assign: assign,
		items:  []T{},
		index:  map[string]int{},
	}
}

// Name is the feature key the collection is persisted under
func (c *Collection[T]) Name() string { return c.name }

// Prefix is the id prefix of the collection's records
func (c *Collection[T]) Prefix() string { return c.prefix }

// WithID returns item carrying id
func (c *Collection[T]) WithID(item T, id string) T { return c.assign(item, id) }

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All returns a copy of the records in display order
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get resolves an id through the index
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if pos, ok := c.index[id]; ok {
		return c.items[pos], true
	}
	var zero T
	return zero, false
}

// NextID returns the next sequential id for the collection
func (c *Collection[T]) NextID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.nextIDLocked()
}

func (c *Collection[T]) nextIDLocked() string {
	ids := make([]string, len(c.items))
	for i, item := range c.items {
		ids[i] = item.EntityID()
	}
	return SequenceID(c.prefix, ids)
}

// Replace swaps the whole collection for items
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	index, err := buildIndex(items)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = append([]T{}, items...)
	c.index = index
	err = c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpReplace, Count: count})
	return err
}

// Append adds a record with a new id
func (c *Collection[T]) Append(ctx context.Context, item T) error {
	id := item.EntityID()
	if id == "" {
		return fmt.Errorf("%w: %s record has no id", apperrors.ErrValidationFailed, c.name)
	}

	c.mu.Lock()
	if _, exists := c.index[id]; exists {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", apperrors.ErrResourceAlreadyExists, c.name, id)
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
	err := c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpAppend, ID: id, Count: count})
	return err
}

// Insert appends item, assigning the next sequential id when it has none
func (c *Collection[T]) Insert(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	if item.EntityID() == "" {
		item = c.assign(item, c.nextIDLocked())
	}
	id := item.EntityID()
	if _, exists := c.index[id]; exists {
		c.mu.Unlock()
		return item, fmt.Errorf("%w: %s %s", apperrors.ErrResourceAlreadyExists, c.name, id)
	}
	c.index[id] = len(c.items)
	c.items = append(c.items, item)
	err := c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpAppend, ID: id, Count: count})
	return item, err
}

// Upsert replaces the record with the same id in place or appends it
func (c *Collection[T]) Upsert(ctx context.Context, item T) error {
	id := item.EntityID()
	if id == "" {
		return fmt.Errorf("%w: %s record has no id", apperrors.ErrValidationFailed, c.name)
	}

	c.mu.Lock()
	if pos, ok := c.index[id]; ok {
		c.items[pos] = item
	} else {
		c.index[id] = len(c.items)
		c.items = append(c.items, item)
	}
	err := c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpUpsert, ID: id, Count: count})
	return err
}

// Update applies fn to the stored record under the write lock. fn must keep the id.
func (c *Collection[T]) Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	pos, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		var zero T
		return zero, fmt.Errorf("%w: %s %s", apperrors.ErrResourceNotFound, c.name, id)
	}

	updated, err := fn(c.items[pos])
	if err != nil {
		current := c.items[pos]
		c.mu.Unlock()
		return current, err
	}
	if updated.EntityID() != id {
		c.mu.Unlock()
		return updated, fmt.Errorf("%w: id of %s %s cannot change", apperrors.ErrValidationFailed, c.name, id)
	}

	c.items[pos] = updated
	err = c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpUpsert, ID: id, Count: count})
	return updated, err
}

// Mutate runs fn over a copy of the records under the write lock and stores what it
// returns. A nil slice from fn leaves the collection untouched. The result must not
// repeat an id.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	c.mu.Lock()
	next, err := fn(append([]T{}, c.items...))
	if err != nil || next == nil {
		c.mu.Unlock()
		return err
	}
	index, err := buildIndex(next)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	c.items = next
	c.index = index
	err = c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpReplace, Count: count})
	return err
}

// Delete removes a record. Records referencing it are left untouched.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	pos, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s %s", apperrors.ErrResourceNotFound, c.name, id)
	}

	c.items = append(c.items[:pos], c.items[pos+1:]...)
	delete(c.index, id)
	for i := pos; i < len(c.items); i++ {
		c.index[c.items[i].EntityID()] = i
	}
	err := c.persistLocked(ctx)
	count := len(c.items)
	c.mu.Unlock()

	c.emit(Change{Op: OpDelete, ID: id, Count: count})
	return err
}

func (c *Collection[T]) persistLocked(ctx context.Context) error {
	if c.commit == nil {
		return nil
	}
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", apperrors.ErrPersistence, c.name, err)
	}
	if err := c.commit(ctx, c.name, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", apperrors.ErrPersistence, c.name, err)
	}
	return nil
}

func (c *Collection[T]) emit(change Change) {
	if c.notify == nil {
		return
	}
	change.Collection = c.name
	c.notify(change)
}

// load replaces the contents from a stored document without writing it back
func (c *Collection[T]) load(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("decoding %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	index, err := buildIndex(items)
	if err != nil {
		return fmt.Errorf("loading %s: %w", c.name, err)
	}

	c.mu.Lock()
	c.items = items
	c.index = index
	c.mu.Unlock()
	return nil
}

func (c *Collection[T]) bind(commit commitFunc, notify func(Change)) {
	c.commit = commit
	c.notify = notify
}

func buildIndex[T models.Entity](items []T) (map[string]int, error) {
	index := make(map[string]int, len(items))
	for i, item := range items {
		id := item.EntityID()
		if id == "" {
			return nil, fmt.Errorf("%w: record at position %d has no id", apperrors.ErrValidationFailed, i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", apperrors.ErrValidationFailed, id)
		}
		index[id] = i
	}
	return index, nil
}

// SequenceID returns prefix followed by the successor of the largest numeric suffix
// among ids, zero-padded to three digits. Ids with a non-numeric suffix are ignored.
func SequenceID(prefix string, ids []string) string {
	highest := 0
	for _, id := range ids {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, highest+1)
}
