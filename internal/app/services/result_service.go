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

// ResultService defines the interface for exam result operations
type ResultService interface {
	List(ctx context.Context, criteria query.Criteria) []dto.ResultRow
	Get(ctx context.Context, id string) (dto.ResultRow, error)
	Create(ctx context.Context, req *dto.CreateResultRequest) (models.Result, error)
	Delete(ctx context.Context, id string) error
	RegradeExam(ctx context.Context, examID string) (dto.RegradeSummary, error)
	ExamReport(ctx context.Context, examID string) (dto.ExamReport, error)
}

// resultServiceImpl implements ResultService
type resultServiceImpl struct {
	// mu keeps the duplicate check and the insert of Create together
	mu sync.Mutex

	store    *store.Store
	resolver *lookup.Resolver
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewResultService creates a new ResultService
func NewResultService(s *store.Store, resolver *lookup.Resolver, v *validator.Validate, logger zerolog.Logger) ResultService {
	return &resultServiceImpl{
		store:    s,
		resolver: resolver,
		validate: v,
		logger:   logger,
	}
}

// List returns filtered results enriched with student and exam names
func (s *resultServiceImpl) List(_ context.Context, criteria query.Criteria) []dto.ResultRow {
	return s.resolver.ResultRows(query.Apply(s.store.Results.All(), ResultSchema, criteria))
}

// Get returns one enriched result
func (s *resultServiceImpl) Get(_ context.Context, id string) (dto.ResultRow, error) {
	result, ok := s.store.Results.Get(id)
	if !ok {
		return dto.ResultRow{}, apperrors.NewResourceNotFoundError(fmt.Sprintf("result %s not found", id))
	}
	return s.resolver.ResultRows([]models.Result{result})[0], nil
}

// Create records marks and freezes the grade computed from the exam as it is now
func (s *resultServiceImpl) Create(ctx context.Context, req *dto.CreateResultRequest) (models.Result, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Result{}, err
	}

	exam, ok := s.resolver.Exam(req.ExamID)
	if !ok {
		return models.Result{}, fmt.Errorf("%w: %s", apperrors.ErrExamNotFound, req.ExamID)
	}
	if _, ok := s.resolver.Student(req.StudentID); !ok {
		return models.Result{}, fmt.Errorf("%w: %s", apperrors.ErrStudentNotFound, req.StudentID)
	}
	if req.MarksObtained < 0 || req.MarksObtained > exam.MaxMarks {
		return models.Result{}, fmt.Errorf("%w: %.2f is not between 0 and %.2f", apperrors.ErrMarksOutOfRange, req.MarksObtained, exam.MaxMarks)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.store.Results.All() {
		if existing.ExamID == req.ExamID && existing.StudentID == req.StudentID {
			return models.Result{}, fmt.Errorf("%w: result for student %s in exam %s", apperrors.ErrResourceAlreadyExists, req.StudentID, req.ExamID)
		}
	}

	result := models.Result{
		ExamID:        req.ExamID,
		StudentID:     req.StudentID,
		MarksObtained: req.MarksObtained,
		Remarks:       req.Remarks,
		CreatedAt:     timestamp(),
	}
	result = aggregate.ApplyGrade(result, aggregate.Grade(req.MarksObtained, exam.MaxMarks, exam.PassingMarks))

	created, err := s.store.Results.Insert(ctx, result)
	if err != nil {
		return created, fmt.Errorf("error creating result: %w", err)
	}
	s.logger.Info().Str("result_id", created.ID).Str("exam_id", exam.ID).Str("grade", created.Grade).Msg("Result recorded")
	return created, nil
}

// Delete removes a result
func (s *resultServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.store.Results.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting result: %w", err)
	}
	return nil
}

// RegradeExam recomputes the frozen grade fields of an exam's results against the
// exam's current marks
func (s *resultServiceImpl) RegradeExam(ctx context.Context, examID string) (dto.RegradeSummary, error) {
	summary := dto.RegradeSummary{ExamID: examID}
	exam, ok := s.resolver.Exam(examID)
	if !ok {
		return summary, fmt.Errorf("%w: %s", apperrors.ErrExamNotFound, examID)
	}

	err := s.store.Results.Mutate(ctx, func(all []models.Result) ([]models.Result, error) {
		summary.Checked, summary.Changed = 0, 0
		for i, r := range all {
			if r.ExamID != examID {
				continue
			}
			summary.Checked++
			regraded := aggregate.ApplyGrade(r, aggregate.Grade(r.MarksObtained, exam.MaxMarks, exam.PassingMarks))
			if regraded != r {
				all[i] = regraded
				summary.Changed++
			}
		}
		if summary.Changed == 0 {
			return nil, nil
		}
		return all, nil
	})
	if err != nil {
		return summary, fmt.Errorf("error saving regraded results: %w", err)
	}
	if summary.Changed == 0 {
		return summary, nil
	}
	s.logger.Info().Str("exam_id", examID).Int("changed", summary.Changed).Msg("Exam regraded")
	return summary, nil
}

// ExamReport summarizes an exam: eligible cohort, pass rate and marks
func (s *resultServiceImpl) ExamReport(_ context.Context, examID string) (dto.ExamReport, error) {
	exam, ok := s.resolver.Exam(examID)
	if !ok {
		return dto.ExamReport{}, fmt.Errorf("%w: %s", apperrors.ErrExamNotFound, examID)
	}

	results := query.Where(s.store.Results.All(), func(r models.Result) bool { return r.ExamID == examID })
	average, highest := aggregate.MarksStats(results)
	passed := aggregate.CountStatus(results, models.ResultPass, func(r models.Result) string { return r.Status })

	return dto.ExamReport{
		ExamID:           exam.ID,
		ExamName:         exam.Name,
		EligibleStudents: len(s.resolver.StudentsForExam(exam)),
		ResultsRecorded:  len(results),
		Passed:           passed,
		Failed:           len(results) - passed,
		PassRate:         aggregate.PassRate(results),
		AverageMarks:     average,
		HighestMarks:     highest,
		Results:          s.resolver.ResultRows(results),
	}, nil
}
