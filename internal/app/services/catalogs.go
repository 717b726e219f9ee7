package services

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/yigit/unidesk/internal/aggregate"
	"github.com/yigit/unidesk/internal/app/models"
	"github.com/yigit/unidesk/internal/pkg/apperrors"
	"github.com/yigit/unidesk/internal/store"
)

// Catalogs holds the CatalogService of every collection edited through plain CRUD
type Catalogs struct {
	Students        CatalogService[models.Student]
	Faculty         CatalogService[models.Faculty]
	Courses         CatalogService[models.Course]
	Exams           CatalogService[models.Exam]
	FeeStructures   CatalogService[models.FeeStructure]
	Attendance      CatalogService[models.Attendance]
	Hostels         CatalogService[models.Hostel]
	Clubs           CatalogService[models.Club]
	Notices         CatalogService[models.Notice]
	TransportRoutes CatalogService[models.TransportRoute]
	Books           CatalogService[models.Book]
	Timetable       CatalogService[models.TimetableEntry]
}

// NewCatalogs wires a catalog for each collection of s
func NewCatalogs(s *store.Store, v *validator.Validate, logger zerolog.Logger) *Catalogs {
	return &Catalogs{
		Students: NewCatalogService(s.Students, CatalogOptions[models.Student]{
			Schema:   StudentSchema,
			NotFound: apperrors.ErrStudentNotFound,
			Prepare:  prepareStudent,
		}, v, logger),
		Faculty: NewCatalogService(s.Faculty, CatalogOptions[models.Faculty]{
			Schema:   FacultySchema,
			NotFound: apperrors.ErrFacultyNotFound,
			Prepare:  prepareFaculty,
		}, v, logger),
		Courses: NewCatalogService(s.Courses, CatalogOptions[models.Course]{
			Schema:  CourseSchema,
			Prepare: prepareCourse,
		}, v, logger),
		Exams: NewCatalogService(s.Exams, CatalogOptions[models.Exam]{
			Schema:   ExamSchema,
			NotFound: apperrors.ErrExamNotFound,
			Prepare:  prepareExam,
		}, v, logger),
		FeeStructures: NewCatalogService(s.FeeStructures, CatalogOptions[models.FeeStructure]{
			Schema:   FeeStructureSchema,
			NotFound: apperrors.ErrFeeStructureNotFound,
			Prepare:  prepareFeeStructure,
		}, v, logger),
		Attendance: NewCatalogService(s.Attendance, CatalogOptions[models.Attendance]{
			Schema: AttendanceSchema,
		}, v, logger),
		Hostels: NewCatalogService(s.Hostels, CatalogOptions[models.Hostel]{
			Schema:   HostelSchema,
			NotFound: apperrors.ErrHostelNotFound,
			Prepare: func(h models.Hostel) models.Hostel {
				return deriveRoomOccupancy(prepareHostel(h), s.AllocationRequests.All())
			},
		}, v, logger),
		Clubs: NewCatalogService(s.Clubs, CatalogOptions[models.Club]{
			Schema:   ClubSchema,
			NotFound: apperrors.ErrClubNotFound,
			Prepare:  prepareClub,
		}, v, logger),
		Notices: NewCatalogService(s.Notices, CatalogOptions[models.Notice]{
			Schema:  NoticeSchema,
			Prepare: prepareNotice,
		}, v, logger),
		TransportRoutes: NewCatalogService(s.TransportRoutes, CatalogOptions[models.TransportRoute]{
			Schema:  TransportRouteSchema,
			Prepare: prepareTransportRoute,
		}, v, logger),
		Books: NewCatalogService(s.Books, CatalogOptions[models.Book]{
			Schema:   BookSchema,
			NotFound: apperrors.ErrBookNotFound,
		}, v, logger),
		Timetable: NewCatalogService(s.Timetable, CatalogOptions[models.TimetableEntry]{
			Schema: TimetableSchema,
		}, v, logger),
	}
}

func prepareStudent(st models.Student) models.Student {
	if st.Status == "" {
		st.Status = models.StatusActive
	}
	return st
}

func prepareFaculty(f models.Faculty) models.Faculty {
	if f.Status == "" {
		f.Status = models.StatusActive
	}
	return f
}

func prepareExam(e models.Exam) models.Exam {
	if e.Status == "" {
		e.Status = "scheduled"
	}
	return e
}

// prepareCourse assigns ids to new branches and subjects
func prepareCourse(c models.Course) models.Course {
	branchIDs := make([]string, 0, len(c.Branches))
	subjectIDs := make([]string, 0)
	for _, b := range c.Branches {
		branchIDs = append(branchIDs, b.ID)
		for _, sub := range b.Subjects {
			subjectIDs = append(subjectIDs, sub.ID)
		}
	}

	branches := make([]models.Branch, len(c.Branches))
	for i, b := range c.Branches {
		if b.ID == "" {
			b.ID = store.SequenceID(models.PrefixBranch, branchIDs)
			branchIDs = append(branchIDs, b.ID)
		}
		subjects := make([]models.Subject, len(b.Subjects))
		for j, sub := range b.Subjects {
			if sub.ID == "" {
				sub.ID = store.SequenceID(models.PrefixSubject, subjectIDs)
				subjectIDs = append(subjectIDs, sub.ID)
			}
			subjects[j] = sub
		}
		b.Subjects = subjects
		branches[i] = b
	}
	c.Branches = branches
	return c
}

// prepareFeeStructure keeps the total in line with the fee heads
func prepareFeeStructure(f models.FeeStructure) models.FeeStructure {
	if computed := f.ComputedTotal(); computed > 0 {
		f.TotalFee = aggregate.RoundCurrency(computed)
	}
	return f
}

func prepareHostel(h models.Hostel) models.Hostel {
	ids := make([]string, 0, len(h.Rooms))
	for _, r := range h.Rooms {
		ids = append(ids, r.ID)
	}
	rooms := make([]models.Room, len(h.Rooms))
	for i, r := range h.Rooms {
		if r.ID == "" {
			r.ID = store.SequenceID(models.PrefixRoom, ids)
			ids = append(ids, r.ID)
		}
		rooms[i] = r
	}
	h.Rooms = rooms
	return h
}

func prepareClub(c models.Club) models.Club {
	if c.Members == nil {
		c.Members = []models.ClubMember{}
	}
	if c.Events == nil {
		c.Events = []models.ClubEvent{}
	}
	return c
}

func prepareNotice(n models.Notice) models.Notice {
	if n.TargetAudience == "" {
		n.TargetAudience = models.AudienceAll
	}
	return n
}

func prepareTransportRoute(t models.TransportRoute) models.TransportRoute {
	if t.Stops == nil {
		t.Stops = []string{}
	}
	if t.Status == "" {
		t.Status = models.StatusActive
	}
	return t
}
