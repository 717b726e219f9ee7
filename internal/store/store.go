package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/pkg/blobstore"
)

// Feature keys the collections are persisted under
const (
	KeyStudents           = "students"
	KeyFaculty            = "faculty"
	KeyCourses            = "courses"
	KeyExams              = "exams"
	KeyResults            = "results"
	KeyFeeStructures      = "feeStructures"
	KeyFeePayments        = "feePayments"
	KeySalaries           = "salaries"
	KeyAttendance         = "attendance"
	KeyHostels            = "hostels"
	KeyAllocationRequests = "hostelAllocationRequests"
	KeyClubs              = "clubs"
	KeyNotices            = "notices"
	KeyTransportRoutes    = "transportRoutes"
	KeyBooks              = "books"
	KeyBookIssues         = "bookIssues"
	KeyTimetable          = "timetable"
	KeyLeaveRequests      = "leaveRequests"
)

// Change describes a mutation of one collection
type Change struct {
	Collection string    `json:"collection"`
	Op         string    `json:"op"`
	ID         string    `json:"id,omitempty"`
	Count      int       `json:"count"`
	At         time.Time `json:"at"`
}

// Listener receives changes after they were applied
type Listener func(Change)

type persisted interface {
	Name() string
	Len() int
	load(data []byte) error
	bind(commit commitFunc, notify func(Change))
}

// Store is the application state: one collection per entity type, written through to
// a blob store.
type Store struct {
	Students           *Collection[models.Student]
	Faculty            *Collection[models.Faculty]
	Courses            *Collection[models.Course]
	Exams              *Collection[models.Exam]
	Results            *Collection[models.Result]
	FeeStructures      *Collection[models.FeeStructure]
	FeePayments        *Collection[models.FeePayment]
	Salaries           *Collection[models.Salary]
	Attendance         *Collection[models.Attendance]
	Hostels            *Collection[models.Hostel]
	AllocationRequests *Collection[models.AllocationRequest]
	Clubs              *Collection[models.Club]
	Notices            *Collection[models.Notice]
	TransportRoutes    *Collection[models.TransportRoute]
	Books              *Collection[models.Book]
	BookIssues         *Collection[models.BookIssue]
	Timetable          *Collection[models.TimetableEntry]
	LeaveRequests      *Collection[models.LeaveRequest]

	blobs  blobstore.BlobStore
	logger zerolog.Logger

	listenersMu sync.RWMutex
	listeners   []Listener

	all []persisted
}

// New creates an empty store backed by blobs
func New(blobs blobstore.BlobStore, logger zerolog.Logger) *Store {
	s := &Store{
		Students: newCollection(KeyStudents, models.PrefixStudent,
			func(v models.Student, id string) models.Student { v.ID = id; return v }),
		Faculty: newCollection(KeyFaculty, models.PrefixFaculty,
			func(v models.Faculty, id string) models.Faculty { v.ID = id; return v }),
		Courses: newCollection(KeyCourses, models.PrefixCourse,
			func(v models.Course, id string) models.Course { v.ID = id; return v }),
		Exams: newCollection(KeyExams, models.PrefixExam,
			func(v models.Exam, id string) models.Exam { v.ID = id; return v }),
		Results: newCollection(KeyResults, models.PrefixResult,
			func(v models.Result, id string) models.Result { v.ID = id; return v }),
		FeeStructures: newCollection(KeyFeeStructures, models.PrefixFeeStructure,
			func(v models.FeeStructure, id string) models.FeeStructure { v.ID = id; return v }),
		FeePayments: newCollection(KeyFeePayments, models.PrefixFeePayment,
			func(v models.FeePayment, id string) models.FeePayment { v.ID = id; return v }),
		Salaries: newCollection(KeySalaries, models.PrefixSalary,
			func(v models.Salary, id string) models.Salary { v.ID = id; return v }),
		Attendance: newCollection(KeyAttendance, models.PrefixAttendance,
			func(v models.Attendance, id string) models.Attendance { v.ID = id; return v }),
		Hostels: newCollection(KeyHostels, models.PrefixHostel,
			func(v models.Hostel, id string) models.Hostel { v.ID = id; return v }),
		AllocationRequests: newCollection(KeyAllocationRequests, models.PrefixAllocation,
			func(v models.AllocationRequest, id string) models.AllocationRequest { v.ID = id; return v }),
		Clubs: newCollection(KeyClubs, models.PrefixClub,
			func(v models.Club, id string) models.Club { v.ID = id; return v }),
		Notices: newCollection(KeyNotices, models.PrefixNotice,
			func(v models.Notice, id string) models.Notice { v.ID = id; return v }),
		TransportRoutes: newCollection(KeyTransportRoutes, models.PrefixTransport,
			func(v models.TransportRoute, id string) models.TransportRoute { v.ID = id; return v }),
		Books: newCollection(KeyBooks, models.PrefixBook,
			func(v models.Book, id string) models.Book { v.ID = id; return v }),
		BookIssues: newCollection(KeyBookIssues, models.PrefixBookIssue,
			func(v models.BookIssue, id string) models.BookIssue { v.ID = id; return v }),
		Timetable: newCollection(KeyTimetable, models.PrefixTimetable,
			func(v models.TimetableEntry, id string) models.TimetableEntry { v.ID = id; return v }),
		LeaveRequests: newCollection(KeyLeaveRequests, models.PrefixLeaveRequest,
			func(v models.LeaveRequest, id string) models.LeaveRequest { v.ID = id; return v }),
		blobs:  blobs,
		logger: logger,
	}

	s.all = []persisted{
		s.Students, s.Faculty, s.Courses, s.Exams, s.Results, s.FeeStructures,
		s.FeePayments, s.Salaries, s.Attendance, s.Hostels, s.AllocationRequests,
		s.Clubs, s.Notices, s.TransportRoutes, s.Books, s.BookIssues, s.Timetable,
		s.LeaveRequests,
	}
	for _, c := range s.all {
		c.bind(s.commit, s.publish)
	}
	return s
}

// Load reads every collection from the blob store. Missing keys leave the collection
// empty.
func (s *Store) Load(ctx context.Context) error {
	for _, c := range s.all {
		data, err := s.blobs.Get(ctx, c.Name())
		if errors.Is(err, blobstore.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", c.Name(), err)
		}
		if err := c.load(data); err != nil {
			return err
		}
		s.logger.Debug().Str("collection", c.Name()).Int("count", c.Len()).Msg("Collection loaded")
	}
	return nil
}

// Empty reports whether no collection holds any record
func (s *Store) Empty() bool {
	for _, c := range s.all {
		if c.Len() > 0 {
			return false
		}
	}
	return true
}

// Counts returns the record count per feature key
func (s *Store) Counts() map[string]int {
	out := make(map[string]int, len(s.all))
	for _, c := range s.all {
		out[c.Name()] = c.Len()
	}
	return out
}

// Subscribe registers a listener for every applied mutation
func (s *Store) Subscribe(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) commit(ctx context.Context, name string, data []byte) error {
	if err := s.blobs.Put(ctx, name, data); err != nil {
		s.logger.Error().Err(err).Str("collection", name).Msg("Write-through failed")
		return err
	}
	return nil
}

func (s *Store) publish(change Change) {
	change.At = time.Now().UTC()

	s.listenersMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(change)
	}
}
