package dto

import "time"

// InstructorResponse represents an instructor crossing the API boundary
type InstructorResponse struct {
	ID             int64     `json:"id" example:"3"`
	EmployeeNumber string    `json:"employeeNumber" example:"10023"`
	FirstName      string    `json:"firstName" example:"Laura"`
	LastName       string    `json:"lastName" example:"Quispe"`
	Email          string    `json:"email" example:"lquispe@universidad.edu"`
	BirthDate      time.Time `json:"birthDate"`
	Department     string    `json:"department" example:"Mathematics"`
	CourseIDs      []int64   `json:"courseIds"`
}

// CreateInstructorRequest represents instructor creation data
type CreateInstructorRequest struct {
	EmployeeNumber string    `json:"employeeNumber" binding:"required"`
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	BirthDate      time.Time `json:"birthDate" binding:"required"`
	Department     string    `json:"department" binding:"required"`
}

// UpdateInstructorRequest represents instructor update data
type UpdateInstructorRequest struct {
	EmployeeNumber string    `json:"employeeNumber" binding:"required"`
	FirstName      string    `json:"firstName" binding:"required"`
	LastName       string    `json:"lastName" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	BirthDate      time.Time `json:"birthDate" binding:"required"`
	Department     string    `json:"department" binding:"required"`
}
