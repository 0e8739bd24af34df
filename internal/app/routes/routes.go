package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mvillegas/unicatalog/internal/app/controllers"
	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public; every
// catalog mutation requires an authenticated ADMIN.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	instructorController *controllers.InstructorController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Public read routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.GetAllCourses)
		courses.GET("/:id", courseController.GetCourseByID)
		courses.GET("/code/:code", courseController.GetCourseByCode)
		courses.GET("/:id/prerequisites/:prerequisiteId/would-form-cycle", courseController.CheckCycle)
		courses.GET("/:id/enrollments", enrollmentController.GetEnrollmentsByCourse)
	}

	instructors := v1.Group("/instructors")
	{
		instructors.GET("", instructorController.GetAllInstructors)
		instructors.GET("/:id", instructorController.GetInstructorByID)
	}

	students := v1.Group("/students")
	{
		students.GET("", studentController.GetAllStudents)
		students.GET("/active", studentController.GetActiveStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.GET("/number/:number", studentController.GetStudentByEnrollmentNumber)
		students.GET("/:id/enrollments", enrollmentController.GetEnrollmentsByStudent)
	}

	enrollments := v1.Group("/enrollments")
	{
		enrollments.GET("", enrollmentController.GetAllEnrollments)
		enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
	}

	// --- Admin-only mutation routes ---
	admin := v1.Group("")
	admin.Use(authMiddleware.JWTAuth(), authMiddleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/auth/register", authController.Register)

		admin.POST("/courses", courseController.CreateCourse)
		admin.PUT("/courses/:id", courseController.UpdateCourse)
		admin.DELETE("/courses/:id", courseController.DeleteCourse)
		admin.POST("/courses/:id/prerequisites/:prerequisiteId", courseController.AddPrerequisite)
		admin.DELETE("/courses/:id/prerequisites/:prerequisiteId", courseController.RemovePrerequisite)
		admin.POST("/courses/:id/instructors/:instructorId", courseController.AssignInstructor)
		admin.DELETE("/courses/:id/instructors/:instructorId", courseController.UnassignInstructor)

		admin.POST("/instructors", instructorController.CreateInstructor)
		admin.PUT("/instructors/:id", instructorController.UpdateInstructor)
		admin.DELETE("/instructors/:id", instructorController.DeleteInstructor)

		admin.POST("/students", studentController.CreateStudent)
		admin.PUT("/students/:id", studentController.UpdateStudent)
		admin.POST("/students/:id/deactivate", studentController.DeactivateStudent)

		admin.POST("/enrollments", enrollmentController.CreateEnrollment)
		admin.PUT("/enrollments/:id", enrollmentController.UpdateEnrollment)
		admin.DELETE("/enrollments/:id", enrollmentController.DeleteEnrollment)
	}
}
