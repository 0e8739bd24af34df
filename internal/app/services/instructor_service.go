package services

import (
	"context"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// InstructorService defines the interface for instructor operations
type InstructorService interface {
	GetAllInstructors(ctx context.Context) ([]dto.InstructorResponse, error)
	GetInstructorByID(ctx context.Context, id int64) (*dto.InstructorResponse, error)
	CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error)
	UpdateInstructor(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*dto.InstructorResponse, error)
	DeleteInstructor(ctx context.Context, id int64) error
}

// instructorServiceImpl implements InstructorService
type instructorServiceImpl struct {
	instructorStore InstructorStore
	cache           *instructorCache
	courseCache     *courseCache
	logger          zerolog.Logger
}

// NewInstructorService creates a new InstructorService
func NewInstructorService(
	instructorStore InstructorStore,
	cache *instructorCache,
	courseCache *courseCache,
	logger zerolog.Logger,
) InstructorService {
	return &instructorServiceImpl{
		instructorStore: instructorStore,
		cache:           cache,
		courseCache:     courseCache,
		logger:          logger,
	}
}

// GetAllInstructors retrieves all instructors
func (s *instructorServiceImpl) GetAllInstructors(ctx context.Context) ([]dto.InstructorResponse, error) {
	instructors, err := s.cache.all.GetOrLoad(ctx, func(ctx context.Context) ([]*models.Instructor, error) {
		return s.instructorStore.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.InstructorResponse, 0, len(instructors))
	for _, instructor := range instructors {
		responses = append(responses, *instructorToResponse(instructor))
	}
	return responses, nil
}

// GetInstructorByID retrieves an instructor by id through the cache
func (s *instructorServiceImpl) GetInstructorByID(ctx context.Context, id int64) (*dto.InstructorResponse, error) {
	instructor, err := s.cache.byID.GetOrLoad(ctx, id, func(ctx context.Context) (*models.Instructor, error) {
		instructor, err := s.instructorStore.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if instructor == nil {
			return nil, apperrors.ErrInstructorNotFound
		}
		return instructor, nil
	})
	if err != nil {
		return nil, err
	}
	return instructorToResponse(instructor), nil
}

// CreateInstructor creates a new instructor
func (s *instructorServiceImpl) CreateInstructor(ctx context.Context, req *dto.CreateInstructorRequest) (*dto.InstructorResponse, error) {
	if !validation.ValidEmployeeNumber(req.EmployeeNumber) {
		return nil, apperrors.NewValidationError("employeeNumber", "employee number must be 4 to 10 digits")
	}
	if !validation.BirthDateInPast(req.BirthDate) {
		return nil, apperrors.NewValidationError("birthDate", "birth date must be in the past")
	}

	instructor := &models.Instructor{
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
		Department:     req.Department,
	}
	if err := s.instructorStore.Create(ctx, instructor); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("instructorId", instructor.ID).
		Str("employeeNumber", instructor.EmployeeNumber).
		Msg("Instructor created")

	s.cache.all.Invalidate()

	return instructorToResponse(instructor), nil
}

// UpdateInstructor updates an instructor's fields
func (s *instructorServiceImpl) UpdateInstructor(ctx context.Context, id int64, req *dto.UpdateInstructorRequest) (*dto.InstructorResponse, error) {
	if !validation.ValidEmployeeNumber(req.EmployeeNumber) {
		return nil, apperrors.NewValidationError("employeeNumber", "employee number must be 4 to 10 digits")
	}
	if !validation.BirthDateInPast(req.BirthDate) {
		return nil, apperrors.NewValidationError("birthDate", "birth date must be in the past")
	}

	existing, err := s.instructorStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrInstructorNotFound
	}

	instructor := &models.Instructor{
		ID:             id,
		EmployeeNumber: req.EmployeeNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		BirthDate:      req.BirthDate,
		Department:     req.Department,
	}
	if err := s.instructorStore.Update(ctx, instructor); err != nil {
		return nil, err
	}

	s.cache.invalidate(id)

	updated, err := s.instructorStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return instructorToResponse(updated), nil
}

// DeleteInstructor removes an instructor. The schema cascades away any
// course assignments, so the course family caches go wholesale.
func (s *instructorServiceImpl) DeleteInstructor(ctx context.Context, id int64) error {
	if err := s.instructorStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("instructorId", id).Msg("Instructor deleted")

	s.cache.invalidate(id)
	s.courseCache.invalidateAll()

	return nil
}

func instructorToResponse(instructor *models.Instructor) *dto.InstructorResponse {
	return &dto.InstructorResponse{
		ID:             instructor.ID,
		EmployeeNumber: instructor.EmployeeNumber,
		FirstName:      instructor.FirstName,
		LastName:       instructor.LastName,
		Email:          instructor.Email,
		BirthDate:      instructor.BirthDate,
		Department:     instructor.Department,
		CourseIDs:      emptyIfNil(instructor.CourseIDs),
	}
}
