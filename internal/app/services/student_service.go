package services

import (
	"context"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// StudentService defines the interface for student operations
type StudentService interface {
	GetAllStudents(ctx context.Context) ([]dto.StudentResponse, error)
	GetActiveStudents(ctx context.Context) ([]dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error)
	GetStudentByEnrollmentNumber(ctx context.Context, number string) (*dto.StudentResponse, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeactivateStudent(ctx context.Context, id int64, req *dto.DeactivateStudentRequest) (*dto.StudentResponse, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentStore StudentStore
	cache        *studentCache
	logger       zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(studentStore StudentStore, cache *studentCache, logger zerolog.Logger) StudentService {
	return &studentServiceImpl{
		studentStore: studentStore,
		cache:        cache,
		logger:       logger,
	}
}

// GetAllStudents retrieves every student, active or not
func (s *studentServiceImpl) GetAllStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.cache.all.GetOrLoad(ctx, func(ctx context.Context) ([]*models.Student, error) {
		return s.studentStore.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}
	return studentsToResponses(students), nil
}

// GetActiveStudents retrieves only students that have not been deactivated
func (s *studentServiceImpl) GetActiveStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.cache.active.GetOrLoad(ctx, func(ctx context.Context) ([]*models.Student, error) {
		return s.studentStore.ListActive(ctx)
	})
	if err != nil {
		return nil, err
	}
	return studentsToResponses(students), nil
}

// GetStudentByID retrieves a student by id through the cache
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*dto.StudentResponse, error) {
	student, err := s.cache.byID.GetOrLoad(ctx, id, func(ctx context.Context) (*models.Student, error) {
		student, err := s.studentStore.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, apperrors.ErrStudentNotFound
		}
		return student, nil
	})
	if err != nil {
		return nil, err
	}
	return studentToResponse(student), nil
}

// GetStudentByEnrollmentNumber retrieves a student by the unique enrollment number
func (s *studentServiceImpl) GetStudentByEnrollmentNumber(ctx context.Context, number string) (*dto.StudentResponse, error) {
	student, err := s.cache.byNumber.GetOrLoad(ctx, number, func(ctx context.Context) (*models.Student, error) {
		student, err := s.studentStore.GetByEnrollmentNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, apperrors.ErrStudentNotFound
		}
		return student, nil
	})
	if err != nil {
		return nil, err
	}
	return studentToResponse(student), nil
}

// CreateStudent registers a new student, active by default
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if !validation.ValidEnrollmentNumber(req.EnrollmentNumber) {
		return nil, apperrors.NewValidationError("enrollmentNumber", "enrollment number must be 5 to 12 digits")
	}
	if !validation.BirthDateInPast(req.BirthDate) {
		return nil, apperrors.NewValidationError("birthDate", "birth date must be in the past")
	}

	student := &models.Student{
		EnrollmentNumber: req.EnrollmentNumber,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		BirthDate:        req.BirthDate,
		Active:           true,
	}
	if err := s.studentStore.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", student.ID).
		Str("enrollmentNumber", student.EnrollmentNumber).
		Msg("Student registered")

	s.cache.all.Invalidate()
	s.cache.active.Invalidate()

	return studentToResponse(student), nil
}

// UpdateStudent updates a student's fields. Deactivation state is not
// touched here; it only moves through DeactivateStudent.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if !validation.ValidEnrollmentNumber(req.EnrollmentNumber) {
		return nil, apperrors.NewValidationError("enrollmentNumber", "enrollment number must be 5 to 12 digits")
	}

	existing, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrStudentNotFound
	}

	student := &models.Student{
		ID:               id,
		EnrollmentNumber: req.EnrollmentNumber,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		BirthDate:        req.BirthDate,
	}
	if err := s.studentStore.Update(ctx, student); err != nil {
		return nil, err
	}

	// The enrollment number may have changed; drop the old key too.
	s.cache.invalidate(existing)

	updated, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return studentToResponse(updated), nil
}

// DeactivateStudent takes a student inactive, recording the reason and the
// moment. The row survives so enrollment history stays intact; deactivating
// an already inactive student is refused.
func (s *studentServiceImpl) DeactivateStudent(ctx context.Context, id int64, req *dto.DeactivateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	if !student.Active {
		return nil, apperrors.ErrStudentInactive
	}

	if err := s.studentStore.Deactivate(ctx, id, req.Reason); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", id).
		Str("reason", req.Reason).
		Msg("Student deactivated")

	s.cache.invalidate(student)

	updated, err := s.studentStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return studentToResponse(updated), nil
}

func studentToResponse(student *models.Student) *dto.StudentResponse {
	return &dto.StudentResponse{
		ID:                 student.ID,
		EnrollmentNumber:   student.EnrollmentNumber,
		FirstName:          student.FirstName,
		LastName:           student.LastName,
		Email:              student.Email,
		BirthDate:          student.BirthDate,
		Active:             student.Active,
		DeactivationReason: student.DeactivationReason,
		DeactivatedAt:      student.DeactivatedAt,
	}
}

func studentsToResponses(students []*models.Student) []dto.StudentResponse {
	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, *studentToResponse(student))
	}
	return responses
}
