package services

import (
	"context"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/repositories"
	"github.com/mvillegas/unicatalog/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// The store interfaces name exactly the persistence operations each service
// consumes. The pgx-backed repositories satisfy them; tests substitute
// in-memory implementations.

// CourseStore is the persistence surface of the course service
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCode(ctx context.Context, code string) (*models.Course, error)
	GetAll(ctx context.Context) ([]*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	AddPrerequisite(ctx context.Context, courseID, prerequisiteID, expectedVersion int64) error
	RemovePrerequisite(ctx context.Context, courseID, prerequisiteID, expectedVersion int64) error
	AssignInstructor(ctx context.Context, courseID, instructorID, expectedVersion int64) error
	UnassignInstructor(ctx context.Context, courseID, instructorID, expectedVersion int64) error
	PrerequisiteEdges(ctx context.Context) (map[int64][]int64, error)
	HasDependents(ctx context.Context, id int64) (bool, error)
}

// InstructorStore is the persistence surface of the instructor service
type InstructorStore interface {
	Create(ctx context.Context, instructor *models.Instructor) error
	GetByID(ctx context.Context, id int64) (*models.Instructor, error)
	GetAll(ctx context.Context) ([]*models.Instructor, error)
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id int64) error
}

// StudentStore is the persistence surface of the student service
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEnrollmentNumber(ctx context.Context, number string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	ListActive(ctx context.Context) ([]*models.Student, error)
	Update(ctx context.Context, student *models.Student) error
	Deactivate(ctx context.Context, id int64, reason string) error
}

// EnrollmentStore is the persistence surface of the enrollment service
type EnrollmentStore interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context) ([]*models.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error)
	ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error)
	ExistsByCourse(ctx context.Context, courseID int64) (bool, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
}

// UserStore is the persistence surface of the auth service
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Services holds all the service instances
type Services struct {
	AuthService       AuthService
	CourseService     CourseService
	InstructorService InstructorService
	StudentService    StudentService
	EnrollmentService EnrollmentService
}

// NewServices wires every service over the pgx repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, logger zerolog.Logger) *Services {
	courses := newCourseCache()
	instructors := newInstructorCache()
	students := newStudentCache()
	enrollments := newEnrollmentCache()

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, jwtService, logger),
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.InstructorRepository,
			repos.EnrollmentRepository,
			courses,
			instructors,
			logger,
		),
		InstructorService: NewInstructorService(
			repos.InstructorRepository,
			instructors,
			courses,
			logger,
		),
		StudentService: NewStudentService(repos.StudentRepository, students, logger),
		EnrollmentService: NewEnrollmentService(
			repos.EnrollmentRepository,
			repos.StudentRepository,
			repos.CourseRepository,
			enrollments,
			logger,
		),
	}
}
