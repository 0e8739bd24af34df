package dto

import "time"

// EnrollmentResponse represents an enrollment crossing the API boundary
type EnrollmentResponse struct {
	ID         int64     `json:"id" example:"12"`
	StudentID  int64     `json:"studentId" example:"7"`
	CourseID   int64     `json:"courseId" example:"1"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Status     string    `json:"status" example:"activo" enums:"activo,cursando,aprobado,reprobado"`
	Grade      *float64  `json:"grade,omitempty" example:"78.5"`
}

// CreateEnrollmentRequest represents enrollment creation data. Status is
// optional and defaults to activo.
type CreateEnrollmentRequest struct {
	StudentID  int64     `json:"studentId" binding:"required,gt=0"`
	CourseID   int64     `json:"courseId" binding:"required,gt=0"`
	EnrolledAt time.Time `json:"enrolledAt"`
	Status     string    `json:"status"`
	Grade      *float64  `json:"grade"`
}

// UpdateEnrollmentRequest represents a full replace of an enrollment
type UpdateEnrollmentRequest struct {
	StudentID  int64     `json:"studentId" binding:"required,gt=0"`
	CourseID   int64     `json:"courseId" binding:"required,gt=0"`
	EnrolledAt time.Time `json:"enrolledAt" binding:"required"`
	Status     string    `json:"status" binding:"required"`
	Grade      *float64  `json:"grade"`
}
