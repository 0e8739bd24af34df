package dto

// CourseResponse represents a course crossing the API boundary. Relations
// are id lists, never nested objects.
type CourseResponse struct {
	ID              int64   `json:"id" example:"1"`
	Code            string  `json:"code" example:"MAT-101"`
	Name            string  `json:"name" example:"Calculus I"`
	Credits         int     `json:"credits" example:"4"`
	Version         int64   `json:"version" example:"3"`
	PrerequisiteIDs []int64 `json:"prerequisiteIds"`
	DependentIDs    []int64 `json:"dependentIds"`
	InstructorIDs   []int64 `json:"instructorIds"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Credits int    `json:"credits" binding:"required,gt=0"`
}

// UpdateCourseRequest represents course update data. Version must carry the
// value the client last read; a stale version is rejected with a conflict.
type UpdateCourseRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Credits int    `json:"credits" binding:"required,gt=0"`
	Version int64  `json:"version"`
}

// CycleCheckResponse is the result of a would-form-cycle query
type CycleCheckResponse struct {
	CourseID       int64 `json:"courseId" example:"1"`
	PrerequisiteID int64 `json:"prerequisiteId" example:"2"`
	WouldFormCycle bool  `json:"wouldFormCycle" example:"true"`
}
