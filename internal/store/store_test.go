package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
)

type failingBlobs struct {
	*blobstore.MemoryStore
}

func (f failingBlobs) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func newTestStore(t *testing.T) (*Store, *blobstore.MemoryStore) {
	t.Helper()
	blobs := blobstore.NewMemoryStore()
	return New(blobs, zerolog.Nop()), blobs
}

func TestAppendWritesThrough(t *testing.T) {
	ctx := context.Background()
	s, blobs := newTestStore(t)

	require.NoError(t, s.Students.Append(ctx, models.Student{ID: "STU001", Name: "John Doe"}))
	require.NoError(t, s.Students.Append(ctx, models.Student{ID: "STU002", Name: "Jane Smith"}))

	data, err := blobs.Get(ctx, KeyStudents)
	require.NoError(t, err)

	var stored []models.Student
	require.NoError(t, json.Unmarshal(data, &stored))
	require.Len(t, stored, 2)
	assert.Equal(t, "STU001", stored[0].ID)
	assert.Equal(t, "Jane Smith", stored[1].Name)
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Faculty.Append(ctx, models.Faculty{ID: "FAC001", Name: "Dr. Rao"}))
	err := s.Faculty.Append(ctx, models.Faculty{ID: "FAC001", Name: "Someone Else"})

	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.Equal(t, 1, s.Faculty.Len())
}

func TestAppendRejectsEmptyID(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Books.Append(context.Background(), models.Book{Title: "Go"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestInsertAssignsSequentialID(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Salaries.Append(ctx, models.Salary{ID: "SAL003"}))

	created, err := s.Salaries.Insert(ctx, models.Salary{FacultyID: "FAC001"})
	require.NoError(t, err)
	assert.Equal(t, "SAL004", created.ID)

	got, ok := s.Salaries.Get("SAL004")
	require.True(t, ok)
	assert.Equal(t, "FAC001", got.FacultyID)
}

func TestInsertKeepsProvidedID(t *testing.T) {
	s, _ := newTestStore(t)
	created, err := s.Clubs.Insert(context.Background(), models.Club{ID: "CLB042", Name: "Chess"})
	require.NoError(t, err)
	assert.Equal(t, "CLB042", created.ID)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Notices.Replace(ctx, []models.Notice{
		{ID: "NOT001", Title: "Exam schedule"},
		{ID: "NOT002", Title: "Holiday"},
	}))
	require.NoError(t, s.Notices.Upsert(ctx, models.Notice{ID: "NOT001", Title: "Revised exam schedule"}))
	require.NoError(t, s.Notices.Upsert(ctx, models.Notice{ID: "NOT003", Title: "Sports day"}))

	all := s.Notices.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Revised exam schedule", all[0].Title)
	assert.Equal(t, "NOT003", all[2].ID)
}

func TestUpdateAppliesFunction(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Books.Append(ctx, models.Book{ID: "BK001", TotalCopies: 3, AvailableCopies: 3}))

	updated, err := s.Books.Update(ctx, "BK001", func(b models.Book) (models.Book, error) {
		b.AvailableCopies--
		return b, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.AvailableCopies)

	stored, _ := s.Books.Get("BK001")
	assert.Equal(t, 2, stored.AvailableCopies)
}

func TestUpdateKeepsRecordWhenFunctionFails(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Books.Append(ctx, models.Book{ID: "BK001", AvailableCopies: 0}))

	_, err := s.Books.Update(ctx, "BK001", func(b models.Book) (models.Book, error) {
		return b, apperrors.ErrBookUnavailable
	})
	assert.ErrorIs(t, err, apperrors.ErrBookUnavailable)

	_, err = s.Books.Update(ctx, "BK404", func(b models.Book) (models.Book, error) { return b, nil })
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = s.Books.Update(ctx, "BK001", func(b models.Book) (models.Book, error) {
		b.ID = "BK002"
		return b, nil
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteReindexes(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Exams.Replace(ctx, []models.Exam{{ID: "EXM001"}, {ID: "EXM002"}, {ID: "EXM003"}}))

	require.NoError(t, s.Exams.Delete(ctx, "EXM001"))

	_, ok := s.Exams.Get("EXM001")
	assert.False(t, ok)
	third, ok := s.Exams.Get("EXM003")
	require.True(t, ok)
	assert.Equal(t, "EXM003", third.ID)

	assert.ErrorIs(t, s.Exams.Delete(ctx, "EXM001"), apperrors.ErrResourceNotFound)
}

func TestReplaceRejectsDuplicates(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Exams.Replace(context.Background(), []models.Exam{{ID: "EXM001"}, {ID: "EXM001"}})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, 0, s.Exams.Len())
}

func TestAllReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	require.NoError(t, s.Students.Append(ctx, models.Student{ID: "STU001", Name: "John Doe"}))

	all := s.Students.All()
	all[0].Name = "Mutated"

	stored, _ := s.Students.Get("STU001")
	assert.Equal(t, "John Doe", stored.Name)
}

func TestLoadRestoresCollections(t *testing.T) {
	ctx := context.Background()
	first, blobs := newTestStore(t)
	require.NoError(t, first.Students.Append(ctx, models.Student{ID: "STU001", Name: "John Doe"}))
	require.NoError(t, first.Hostels.Append(ctx, models.Hostel{ID: "HST001", Name: "North Block"}))

	second := New(blobs, zerolog.Nop())
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, 1, second.Students.Len())
	assert.Equal(t, 1, second.Hostels.Len())
	assert.Equal(t, 0, second.Clubs.Len())
	assert.False(t, second.Empty())
	assert.Equal(t, 1, second.Counts()[KeyStudents])
}

func TestLoadCorruptBlobNamesKey(t *testing.T) {
	ctx := context.Background()
	blobs := blobstore.NewMemoryStore()
	require.NoError(t, blobs.Put(ctx, KeyFeePayments, []byte("{not json")))

	err := New(blobs, zerolog.Nop()).Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyFeePayments)
}

func TestWriteThroughFailureKeepsMutation(t *testing.T) {
	ctx := context.Background()
	s := New(failingBlobs{blobstore.NewMemoryStore()}, zerolog.Nop())

	err := s.Students.Append(ctx, models.Student{ID: "STU001"})
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.Equal(t, 1, s.Students.Len())
}

func TestSubscribeReceivesChanges(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var mu sync.Mutex
	var changes []Change
	s.Subscribe(func(c Change) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, c)
	})

	require.NoError(t, s.Clubs.Append(ctx, models.Club{ID: "CLB001"}))
	require.NoError(t, s.Clubs.Delete(ctx, "CLB001"))

	require.Len(t, changes, 2)
	assert.Equal(t, KeyClubs, changes[0].Collection)
	assert.Equal(t, OpAppend, changes[0].Op)
	assert.Equal(t, 1, changes[0].Count)
	assert.Equal(t, OpDelete, changes[1].Op)
	assert.Equal(t, 0, changes[1].Count)
	assert.False(t, changes[1].At.IsZero())
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, "STU001", SequenceID("STU", nil))
	assert.Equal(t, "STU004", SequenceID("STU", []string{"STU001", "STU003", "STU002"}))
	assert.Equal(t, "SAL1000", SequenceID("SAL", []string{"SAL999"}))
	assert.Equal(t, "SAL002", SequenceID("SAL", []string{"SAL001", "SAL1718-x9k", "FAC020"}))
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Attendance.Insert(ctx, models.Attendance{StudentID: "STU001"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Attendance.Len())
	assert.Equal(t, "ATT021", s.Attendance.NextID())
}

func TestMutateRewritesUnderLock(t *testing.T) {
	ctx := context.Background()
	s, blobs := newTestStore(t)
	require.NoError(t, s.Exams.Replace(ctx, []models.Exam{{ID: "EXM001", MaxMarks: 100}, {ID: "EXM002", MaxMarks: 50}}))

	err := s.Exams.Mutate(ctx, func(all []models.Exam) ([]models.Exam, error) {
		for i := range all {
			all[i].MaxMarks *= 2
		}
		return all, nil
	})
	require.NoError(t, err)
	second, _ := s.Exams.Get("EXM002")
	assert.Equal(t, 100.0, second.MaxMarks)

	data, err := blobs.Get(ctx, KeyExams)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"maxMarks":200`)

	require.NoError(t, s.Exams.Mutate(ctx, func([]models.Exam) ([]models.Exam, error) { return nil, nil }))
	assert.Equal(t, 2, s.Exams.Len())

	err = s.Exams.Mutate(ctx, func(all []models.Exam) ([]models.Exam, error) {
		return append(all, models.Exam{ID: "EXM001"}), nil
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Equal(t, 2, s.Exams.Len())
}

func TestMutateDoesNotLoseConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := s.Attendance.Insert(ctx, models.Attendance{StudentID: "STU001"})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			assert.NoError(t, s.Attendance.Mutate(ctx, func(all []models.Attendance) ([]models.Attendance, error) {
				return all, nil
			}))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, s.Attendance.Len())
}
