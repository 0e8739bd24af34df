package models

import "time"

// Instructor represents a teaching staff member assignable to courses.
type Instructor struct {
	ID             int64     `json:"id" db:"id"`
	EmployeeNumber string    `json:"employeeNumber" db:"employee_number"` // unique
	FirstName      string    `json:"firstName" db:"first_name"`
	LastName       string    `json:"lastName" db:"last_name"`
	Email          string    `json:"email" db:"email"`
	BirthDate      time.Time `json:"birthDate" db:"birth_date"` // must be in the past
	Department     string    `json:"department" db:"department"`

	// Inverse of Course.InstructorIDs
	CourseIDs []int64 `json:"courseIds"`
}
