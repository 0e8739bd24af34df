package services

import (
	"context"
	"time"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/rs/zerolog"
)

// EnrollmentService defines the interface for enrollment operations
type EnrollmentService interface {
	GetAllEnrollments(ctx context.Context) ([]dto.EnrollmentResponse, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error)
	GetEnrollmentsByStudent(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error)
	GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]dto.EnrollmentResponse, error)
	CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	UpdateEnrollment(ctx context.Context, id int64, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	enrollmentStore EnrollmentStore
	studentStore    StudentStore
	courseStore     CourseStore
	cache           *enrollmentCache
	logger          zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentStore EnrollmentStore,
	studentStore StudentStore,
	courseStore CourseStore,
	cache *enrollmentCache,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentStore: enrollmentStore,
		studentStore:    studentStore,
		courseStore:     courseStore,
		cache:           cache,
		logger:          logger,
	}
}

// GetAllEnrollments retrieves all enrollments
func (s *enrollmentServiceImpl) GetAllEnrollments(ctx context.Context) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.cache.all.GetOrLoad(ctx, func(ctx context.Context) ([]*models.Enrollment, error) {
		return s.enrollmentStore.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return enrollmentsToResponses(enrollments), nil
}

// GetEnrollmentByID retrieves an enrollment by id through the cache
func (s *enrollmentServiceImpl) GetEnrollmentByID(ctx context.Context, id int64) (*dto.EnrollmentResponse, error) {
	enrollment, err := s.getEnrollment(ctx, id)
	if err != nil {
		return nil, err
	}
	return enrollmentToResponse(enrollment), nil
}

// GetEnrollmentsByStudent retrieves a student's enrollments
func (s *enrollmentServiceImpl) GetEnrollmentsByStudent(ctx context.Context, studentID int64) ([]dto.EnrollmentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	enrollments, err := s.cache.byStudent.GetOrLoad(ctx, studentID, func(ctx context.Context) ([]*models.Enrollment, error) {
		return s.enrollmentStore.ListByStudent(ctx, studentID)
	})
	if err != nil {
		return nil, err
	}
	return enrollmentsToResponses(enrollments), nil
}

// GetEnrollmentsByCourse retrieves a course's enrollments
func (s *enrollmentServiceImpl) GetEnrollmentsByCourse(ctx context.Context, courseID int64) ([]dto.EnrollmentResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	enrollments, err := s.cache.byCourse.GetOrLoad(ctx, courseID, func(ctx context.Context) ([]*models.Enrollment, error) {
		return s.enrollmentStore.ListByCourse(ctx, courseID)
	})
	if err != nil {
		return nil, err
	}
	return enrollmentsToResponses(enrollments), nil
}

// CreateEnrollment enrolls a student in a course. The student must be
// active, the course must exist, and the (student, course) pair must not
// already be enrolled. The pre-insert check catches the common duplicate;
// the unique constraint underneath settles races.
func (s *enrollmentServiceImpl) CreateEnrollment(ctx context.Context, req *dto.CreateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if !student.Active {
		return nil, apperrors.ErrStudentInactive
	}

	course, err := s.courseStore.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	status := models.EnrollmentActive
	if req.Status != "" {
		status = models.EnrollmentStatus(req.Status)
		if !status.Valid() {
			return nil, apperrors.ErrInvalidStatus
		}
	}

	exists, err := s.enrollmentStore.ExistsByStudentAndCourse(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEnrollment
	}

	enrolledAt := req.EnrolledAt
	if enrolledAt.IsZero() {
		enrolledAt = time.Now().UTC()
	}

	enrollment := &models.Enrollment{
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		EnrolledAt: enrolledAt,
		Status:     status,
		Grade:      req.Grade,
	}
	if err := s.enrollmentStore.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("enrollmentId", enrollment.ID).
		Int64("studentId", enrollment.StudentID).
		Int64("courseId", enrollment.CourseID).
		Str("status", string(enrollment.Status)).
		Msg("Enrollment created")

	s.cache.invalidate(enrollment)

	return enrollmentToResponse(enrollment), nil
}

// UpdateEnrollment replaces an enrollment's fields. When the student or
// course reference moves, the listings of both the old and the new owners
// are invalidated.
func (s *enrollmentServiceImpl) UpdateEnrollment(ctx context.Context, id int64, req *dto.UpdateEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	existing, err := s.enrollmentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrEnrollmentNotFound
	}

	status := models.EnrollmentStatus(req.Status)
	if !status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if req.StudentID != existing.StudentID {
		student, err := s.studentStore.GetByID(ctx, req.StudentID)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, apperrors.ErrStudentNotFound
		}
	}
	if req.CourseID != existing.CourseID {
		course, err := s.courseStore.GetByID(ctx, req.CourseID)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, apperrors.ErrCourseNotFound
		}
	}

	enrollment := &models.Enrollment{
		ID:         id,
		StudentID:  req.StudentID,
		CourseID:   req.CourseID,
		EnrolledAt: req.EnrolledAt,
		Status:     status,
		Grade:      req.Grade,
	}
	if err := s.enrollmentStore.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	s.cache.invalidate(existing)
	s.cache.invalidate(enrollment)

	return enrollmentToResponse(enrollment), nil
}

// DeleteEnrollment removes an enrollment
func (s *enrollmentServiceImpl) DeleteEnrollment(ctx context.Context, id int64) error {
	existing, err := s.enrollmentStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperrors.ErrEnrollmentNotFound
	}

	if err := s.enrollmentStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("enrollmentId", id).Msg("Enrollment deleted")

	s.cache.invalidate(existing)

	return nil
}

func (s *enrollmentServiceImpl) getEnrollment(ctx context.Context, id int64) (*models.Enrollment, error) {
	return s.cache.byID.GetOrLoad(ctx, id, func(ctx context.Context) (*models.Enrollment, error) {
		enrollment, err := s.enrollmentStore.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if enrollment == nil {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return enrollment, nil
	})
}

func enrollmentToResponse(enrollment *models.Enrollment) *dto.EnrollmentResponse {
	return &dto.EnrollmentResponse{
		ID:         enrollment.ID,
		StudentID:  enrollment.StudentID,
		CourseID:   enrollment.CourseID,
		EnrolledAt: enrollment.EnrolledAt,
		Status:     string(enrollment.Status),
		Grade:      enrollment.Grade,
	}
}

func enrollmentsToResponses(enrollments []*models.Enrollment) []dto.EnrollmentResponse {
	responses := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, *enrollmentToResponse(enrollment))
	}
	return responses
}
