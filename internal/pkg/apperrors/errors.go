package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Course errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrCourseCodeExists     = errors.New("course with this code already exists")
	ErrCourseHasRelations   = errors.New("course has dependent courses or enrollments and cannot be deleted")
	ErrCyclicPrerequisite   = errors.New("prerequisite would create a cycle")
	ErrVersionConflict      = errors.New("course was modified concurrently, reload and retry")
	ErrPrerequisiteNotFound = errors.New("prerequisite course not found")
)

// Instructor errors
var (
	ErrInstructorNotFound   = errors.New("instructor not found")
	ErrEmployeeNumberExists = errors.New("instructor with this employee number already exists")
)

// Student errors
var (
	ErrStudentNotFound        = errors.New("student not found")
	ErrEnrollmentNumberExists = errors.New("student with this enrollment number already exists")
	ErrStudentInactive        = errors.New("student is inactive")
)

// Enrollment errors
var (
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("student is already enrolled in this course")
	ErrInvalidStatus       = errors.New("invalid enrollment status")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewCycleError creates the error returned when adding prerequisiteID to
// courseID would close a cycle in the prerequisite graph. Both ids are kept
// on the error so callers can surface them.
func NewCycleError(courseID, prerequisiteID int64) error {
	return &CustomError{
		Err:     ErrCyclicPrerequisite,
		Message: "assigning this prerequisite would create a circular dependency",
		Details: map[string]interface{}{
			"courseId":       courseID,
			"prerequisiteId": prerequisiteID,
		},
	}
}

// NewValidationError creates a per-field validation error
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Details: map[string]interface{}{"field": field},
	}
}

// Is returns whether target matches err or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
