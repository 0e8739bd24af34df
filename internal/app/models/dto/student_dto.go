package dto

import "time"

// StudentResponse represents a student crossing the API boundary
type StudentResponse struct {
	ID                 int64      `json:"id" example:"7"`
	EnrollmentNumber   string     `json:"enrollmentNumber" example:"202400155"`
	FirstName          string     `json:"firstName" example:"Carlos"`
	LastName           string     `json:"lastName" example:"Mamani"`
	Email              string     `json:"email" example:"cmamani@universidad.edu"`
	BirthDate          time.Time  `json:"birthDate"`
	Active             bool       `json:"active" example:"true"`
	DeactivationReason *string    `json:"deactivationReason,omitempty"`
	DeactivatedAt      *time.Time `json:"deactivatedAt,omitempty"`
}

// CreateStudentRequest represents student registration data
type CreateStudentRequest struct {
	EnrollmentNumber string    `json:"enrollmentNumber" binding:"required"`
	FirstName        string    `json:"firstName" binding:"required"`
	LastName         string    `json:"lastName" binding:"required"`
	Email            string    `json:"email" binding:"required,email"`
	BirthDate        time.Time `json:"birthDate" binding:"required"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	EnrollmentNumber string    `json:"enrollmentNumber" binding:"required"`
	FirstName        string    `json:"firstName" binding:"required"`
	LastName         string    `json:"lastName" binding:"required"`
	Email            string    `json:"email" binding:"required,email"`
	BirthDate        time.Time `json:"birthDate" binding:"required"`
}

// DeactivateStudentRequest carries the reason a student is taken inactive
type DeactivateStudentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
