package services

import (
	"context"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/coursegraph"
	"github.com/mvillegas/unicatalog/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// CourseService defines the interface for course and prerequisite operations
type CourseService interface {
	GetAllCourses(ctx context.Context) ([]dto.CourseResponse, error)
	GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	GetCourseByCode(ctx context.Context, code string) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, id int64) error
	WouldFormCycle(ctx context.Context, courseID, prerequisiteID int64) (*dto.CycleCheckResponse, error)
	AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) (*dto.CourseResponse, error)
	RemovePrerequisite(ctx context.Context, courseID, prerequisiteID int64) (*dto.CourseResponse, error)
	AssignInstructor(ctx context.Context, courseID, instructorID int64) (*dto.CourseResponse, error)
	UnassignInstructor(ctx context.Context, courseID, instructorID int64) (*dto.CourseResponse, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseStore     CourseStore
	instructorStore InstructorStore
	enrollmentStore EnrollmentStore
	cache           *courseCache
	instructorCache *instructorCache
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseStore CourseStore,
	instructorStore InstructorStore,
	enrollmentStore EnrollmentStore,
	cache *courseCache,
	instructorCache *instructorCache,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseStore:     courseStore,
		instructorStore: instructorStore,
		enrollmentStore: enrollmentStore,
		cache:           cache,
		instructorCache: instructorCache,
		logger:          logger,
	}
}

// GetAllCourses retrieves all courses, serving the cached listing when warm
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.cache.all.GetOrLoad(ctx, func(ctx context.Context) ([]*models.Course, error) {
		return s.courseStore.GetAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, *courseToResponse(course))
	}
	return responses, nil
}

// GetCourseByID retrieves a course by id through the cache
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return courseToResponse(course), nil
}

// GetCourseByCode retrieves a course by its unique code through the cache
func (s *courseServiceImpl) GetCourseByCode(ctx context.Context, code string) (*dto.CourseResponse, error) {
	course, err := s.cache.byCode.GetOrLoad(ctx, code, func(ctx context.Context) (*models.Course, error) {
		course, err := s.courseStore.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, apperrors.ErrCourseNotFound
		}
		return course, nil
	})
	if err != nil {
		return nil, err
	}
	return courseToResponse(course), nil
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if !validation.ValidCourseCode(req.Code) {
		return nil, apperrors.NewValidationError("code", "course code must look like MAT-101")
	}
	if req.Credits <= 0 {
		return nil, apperrors.NewValidationError("credits", "credits must be positive")
	}

	course := &models.Course{
		Code:    req.Code,
		Name:    req.Name,
		Credits: req.Credits,
	}
	if err := s.courseStore.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("courseId", course.ID).
		Str("code", course.Code).
		Msg("Course created")

	// Only the listing can hold stale state for a brand new course.
	s.cache.all.Invalidate()

	return courseToResponse(course), nil
}

// UpdateCourse updates a course's scalar fields. The request carries the
// version the client last read; a concurrent writer in between fails this
// call with a version conflict.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if !validation.ValidCourseCode(req.Code) {
		return nil, apperrors.NewValidationError("code", "course code must look like MAT-101")
	}

	existing, err := s.courseStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	course := &models.Course{
		ID:      id,
		Code:    req.Code,
		Name:    req.Name,
		Credits: req.Credits,
		Version: req.Version,
	}
	if err := s.courseStore.Update(ctx, course); err != nil {
		return nil, err
	}

	// The code may have changed; drop the entry under the old code too.
	s.cache.invalidate(existing)
	s.cache.invalidate(course)

	return s.reload(ctx, id)
}

// DeleteCourse removes a course. The delete is refused while other courses
// list it as a prerequisite or enrollments reference it.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	course, err := s.courseStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if course == nil {
		return apperrors.ErrCourseNotFound
	}

	hasDependents, err := s.courseStore.HasDependents(ctx, id)
	if err != nil {
		return err
	}
	if hasDependents {
		return apperrors.ErrCourseHasRelations
	}

	hasEnrollments, err := s.enrollmentStore.ExistsByCourse(ctx, id)
	if err != nil {
		return err
	}
	if hasEnrollments {
		return apperrors.ErrCourseHasRelations
	}

	if err := s.courseStore.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("courseId", id).Msg("Course deleted")

	// Deleting a course drops its outgoing edges, which changes the
	// dependent lists of its former prerequisites.
	s.cache.invalidateAll()

	return nil
}

// WouldFormCycle reports whether adding prerequisiteID to courseID would
// close a cycle in the prerequisite graph, without mutating anything.
func (s *courseServiceImpl) WouldFormCycle(ctx context.Context, courseID, prerequisiteID int64) (*dto.CycleCheckResponse, error) {
	if _, _, err := s.coursePair(ctx, courseID, prerequisiteID); err != nil {
		return nil, err
	}

	graph, err := s.buildGraph(ctx, courseID, prerequisiteID)
	if err != nil {
		return nil, err
	}

	return &dto.CycleCheckResponse{
		CourseID:       courseID,
		PrerequisiteID: prerequisiteID,
		WouldFormCycle: graph.WouldCreateCycle(courseID, prerequisiteID),
	}, nil
}

// AddPrerequisite records a prerequisite edge after verifying both courses
// exist and the edge cannot close a cycle.
func (s *courseServiceImpl) AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) (*dto.CourseResponse, error) {
	course, prerequisite, err := s.coursePair(ctx, courseID, prerequisiteID)
	if err != nil {
		return nil, err
	}

	graph, err := s.buildGraph(ctx, courseID, prerequisiteID)
	if err != nil {
		return nil, err
	}
	if graph.WouldCreateCycle(courseID, prerequisiteID) {
		s.logger.Warn().
			Int64("courseId", courseID).
			Int64("prerequisiteId", prerequisiteID).
			Msg("Rejected prerequisite that would close a cycle")
		return nil, apperrors.NewCycleError(courseID, prerequisiteID)
	}

	if err := s.courseStore.AddPrerequisite(ctx, courseID, prerequisiteID, course.Version); err != nil {
		return nil, err
	}

	// Both endpoints change: the course's prerequisite list and the
	// prerequisite's dependent list.
	s.cache.invalidate(course)
	s.cache.invalidate(prerequisite)

	return s.reload(ctx, courseID)
}

// RemovePrerequisite drops a prerequisite edge from both directions.
// Removing an edge that is not present is a no-op.
func (s *courseServiceImpl) RemovePrerequisite(ctx context.Context, courseID, prerequisiteID int64) (*dto.CourseResponse, error) {
	course, prerequisite, err := s.coursePair(ctx, courseID, prerequisiteID)
	if err != nil {
		return nil, err
	}

	if err := s.courseStore.RemovePrerequisite(ctx, courseID, prerequisiteID, course.Version); err != nil {
		return nil, err
	}

	s.cache.invalidate(course)
	s.cache.invalidate(prerequisite)

	return s.reload(ctx, courseID)
}

// AssignInstructor links an instructor to a course; assigning an already
// assigned instructor changes nothing and succeeds.
func (s *courseServiceImpl) AssignInstructor(ctx context.Context, courseID, instructorID int64) (*dto.CourseResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	instructor, err := s.instructorStore.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, apperrors.ErrInstructorNotFound
	}

	if err := s.courseStore.AssignInstructor(ctx, courseID, instructorID, course.Version); err != nil {
		return nil, err
	}

	s.cache.invalidate(course)
	s.instructorCache.invalidate(instructorID)

	return s.reload(ctx, courseID)
}

// UnassignInstructor unlinks an instructor from a course; unlinking a
// missing assignment is a no-op.
func (s *courseServiceImpl) UnassignInstructor(ctx context.Context, courseID, instructorID int64) (*dto.CourseResponse, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperrors.ErrCourseNotFound
	}

	instructor, err := s.instructorStore.GetByID(ctx, instructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, apperrors.ErrInstructorNotFound
	}

	if err := s.courseStore.UnassignInstructor(ctx, courseID, instructorID, course.Version); err != nil {
		return nil, err
	}

	s.cache.invalidate(course)
	s.instructorCache.invalidate(instructorID)

	return s.reload(ctx, courseID)
}

// getCourse is the cached read path for a single course
func (s *courseServiceImpl) getCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.cache.byID.GetOrLoad(ctx, id, func(ctx context.Context) (*models.Course, error) {
		course, err := s.courseStore.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if course == nil {
			return nil, apperrors.ErrCourseNotFound
		}
		return course, nil
	})
}

// coursePair loads a course and a prerequisite candidate, bypassing the
// cache so mutations see the current optimistic version.
func (s *courseServiceImpl) coursePair(ctx context.Context, courseID, prerequisiteID int64) (*models.Course, *models.Course, error) {
	course, err := s.courseStore.GetByID(ctx, courseID)
	if err != nil {
		return nil, nil, err
	}
	if course == nil {
		return nil, nil, apperrors.ErrCourseNotFound
	}

	prerequisite, err := s.courseStore.GetByID(ctx, prerequisiteID)
	if err != nil {
		return nil, nil, err
	}
	if prerequisite == nil {
		return nil, nil, apperrors.ErrPrerequisiteNotFound
	}

	return course, prerequisite, nil
}

// buildGraph snapshots the stored prerequisite edges and guarantees both
// ids exist as nodes even when they have no edges yet.
func (s *courseServiceImpl) buildGraph(ctx context.Context, courseID, prerequisiteID int64) (*coursegraph.Graph, error) {
	edges, err := s.courseStore.PrerequisiteEdges(ctx)
	if err != nil {
		return nil, err
	}

	graph := coursegraph.FromEdges(edges)
	graph.AddNode(courseID)
	graph.AddNode(prerequisiteID)
	return graph, nil
}

// reload refreshes the cached entries for a course after a mutation and
// returns its response
func (s *courseServiceImpl) reload(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.getCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	return courseToResponse(course), nil
}

func courseToResponse(course *models.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		ID:              course.ID,
		Code:            course.Code,
		Name:            course.Name,
		Credits:         course.Credits,
		Version:         course.Version,
		PrerequisiteIDs: emptyIfNil(course.PrerequisiteIDs),
		DependentIDs:    emptyIfNil(course.DependentIDs),
		InstructorIDs:   emptyIfNil(course.InstructorIDs),
	}
}

// emptyIfNil keeps relation lists serializing as [] instead of null
func emptyIfNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
