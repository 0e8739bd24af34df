package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
)

// HandleAPIError maps a service error to its HTTP response. Controllers
// funnel every error through here so status codes stay consistent across
// the API.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	// 404 - unknown resources
	case errors.Is(err, apperrors.ErrCourseNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrPrerequisiteNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Prerequisite course not found")
	case errors.Is(err, apperrors.ErrInstructorNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Instructor not found")
	case errors.Is(err, apperrors.ErrStudentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Student not found")
	case errors.Is(err, apperrors.ErrEnrollmentNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Enrollment not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	// 422 - the prerequisite graph must stay acyclic
	case errors.Is(err, apperrors.ErrCyclicPrerequisite):
		detail := dto.NewErrorDetail(dto.ErrorCodeCyclicPrerequisite,
			"Assigning this prerequisite would create a circular dependency")
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(detail))

	// 409 - state conflicts
	case errors.Is(err, apperrors.ErrVersionConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeVersionConflict,
			"Course was modified concurrently, reload and retry")
	case errors.Is(err, apperrors.ErrDuplicateEnrollment):
		respond(c, http.StatusConflict, dto.ErrorCodeDuplicateEnrollment,
			"Student is already enrolled in this course")
	case errors.Is(err, apperrors.ErrCourseHasRelations):
		respond(c, http.StatusConflict, dto.ErrorCodeCourseHasRelations,
			"Course has dependent courses or enrollments and cannot be deleted")
	case errors.Is(err, apperrors.ErrCourseCodeExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Course code already exists")
	case errors.Is(err, apperrors.ErrEmployeeNumberExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Employee number already exists")
	case errors.Is(err, apperrors.ErrEnrollmentNumberExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Enrollment number already exists")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrStudentInactive):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceConflict, "Student is inactive")

	// 400 - bad input
	case errors.Is(err, apperrors.ErrInvalidStatus):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Unknown enrollment status")
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Details != nil {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Bad request")

	// 401 / 403 - authentication and authorization
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid), errors.Is(err, apperrors.ErrInvalidFormat):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	default:
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
}
