package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/app/services"
	"github.com/mvillegas/unicatalog/internal/middleware"
)

// CourseController handles course and prerequisite graph operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{
		courseService: courseService,
	}
}

// GetAllCourses retrieves all courses
// @Summary Get all courses
// @Description Retrieves every course with its prerequisite, dependent and instructor id lists
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      courses,
		Timestamp: time.Now(),
	})
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a specific course by its ID
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// GetCourseByCode retrieves a course by its unique code
// @Summary Get course by code
// @Description Retrieves a specific course by its catalog code
// @Tags courses
// @Produce json
// @Param code path string true "Course code" example(MAT-101)
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/code/{code} [get]
func (c *CourseController) GetCourseByCode(ctx *gin.Context) {
	course, err := c.courseService.GetCourseByCode(ctx, ctx.Param("code"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a new course with the provided information
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid course data", err)
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UpdateCourse handles course updates with optimistic locking
// @Summary Update a course
// @Description Updates a course's fields; the request must carry the version last read
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Course information including the last read version"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Version conflict or duplicate code"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid course data", err)
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// DeleteCourse handles course deletion
// @Summary Delete a course
// @Description Deletes a course; refused while dependent courses or enrollments reference it
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course has dependents or enrollments"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Course deleted successfully"},
		Timestamp: time.Now(),
	})
}

// CheckCycle reports whether a prerequisite edge would close a cycle
// @Summary Check whether a prerequisite would form a cycle
// @Description Dry-run check; nothing is mutated
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Param prerequisiteId path int true "Candidate prerequisite course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CycleCheckResponse} "Check performed"
// @Failure 404 {object} dto.ErrorResponse "Course or prerequisite not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/prerequisites/{prerequisiteId}/would-form-cycle [get]
func (c *CourseController) CheckCycle(ctx *gin.Context) {
	courseID, prerequisiteID, ok := edgeIDs(ctx)
	if !ok {
		return
	}

	check, err := c.courseService.WouldFormCycle(ctx, courseID, prerequisiteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      check,
		Timestamp: time.Now(),
	})
}

// AddPrerequisite records a prerequisite edge
// @Summary Add a prerequisite to a course
// @Description Records the edge after verifying it cannot close a cycle
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param prerequisiteId path int true "Prerequisite course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Prerequisite added"
// @Failure 404 {object} dto.ErrorResponse "Course or prerequisite not found"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Failure 422 {object} dto.ErrorResponse "Edge would create a cycle"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/prerequisites/{prerequisiteId} [post]
func (c *CourseController) AddPrerequisite(ctx *gin.Context) {
	courseID, prerequisiteID, ok := edgeIDs(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.AddPrerequisite(ctx, courseID, prerequisiteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// RemovePrerequisite removes a prerequisite edge
// @Summary Remove a prerequisite from a course
// @Description Removes the edge from both directions; removing a missing edge is a no-op
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param prerequisiteId path int true "Prerequisite course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Prerequisite removed"
// @Failure 404 {object} dto.ErrorResponse "Course or prerequisite not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/prerequisites/{prerequisiteId} [delete]
func (c *CourseController) RemovePrerequisite(ctx *gin.Context) {
	courseID, prerequisiteID, ok := edgeIDs(ctx)
	if !ok {
		return
	}

	course, err := c.courseService.RemovePrerequisite(ctx, courseID, prerequisiteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// AssignInstructor links an instructor to a course
// @Summary Assign an instructor to a course
// @Description Assigning an already assigned instructor is a no-op
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param instructorId path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Instructor assigned"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/instructors/{instructorId} [post]
func (c *CourseController) AssignInstructor(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return
	}
	instructorID, ok := pathID(ctx, "instructorId", "Instructor ID must be a valid number")
	if !ok {
		return
	}

	course, err := c.courseService.AssignInstructor(ctx, courseID, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// UnassignInstructor unlinks an instructor from a course
// @Summary Unassign an instructor from a course
// @Description Unassigning a missing assignment is a no-op
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param instructorId path int true "Instructor ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Instructor unassigned"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/instructors/{instructorId} [delete]
func (c *CourseController) UnassignInstructor(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return
	}
	instructorID, ok := pathID(ctx, "instructorId", "Instructor ID must be a valid number")
	if !ok {
		return
	}

	course, err := c.courseService.UnassignInstructor(ctx, courseID, instructorID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      course,
		Timestamp: time.Now(),
	})
}

// pathID parses an int64 path parameter, answering 400 itself on failure
func pathID(ctx *gin.Context, name, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// edgeIDs parses the course/prerequisite id pair shared by the graph routes
func edgeIDs(ctx *gin.Context) (int64, int64, bool) {
	courseID, ok := pathID(ctx, "id", "Course ID must be a valid number")
	if !ok {
		return 0, 0, false
	}
	prerequisiteID, ok := pathID(ctx, "prerequisiteId", "Prerequisite ID must be a valid number")
	if !ok {
		return 0, 0, false
	}
	return courseID, prerequisiteID, true
}

// badRequest answers a binding failure
func badRequest(ctx *gin.Context, message string, err error) {
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
	errorDetail = errorDetail.WithDetails(err.Error())
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
}
