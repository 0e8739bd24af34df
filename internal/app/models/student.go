package models

import "time"

// Student represents an enrolled student. Students are never physically
// deleted; deactivation flips Active and records the reason.
type Student struct {
	ID               int64      `json:"id" db:"id"`
	EnrollmentNumber string     `json:"enrollmentNumber" db:"enrollment_number"` // unique admission number
	FirstName        string     `json:"firstName" db:"first_name"`
	LastName         string     `json:"lastName" db:"last_name"`
	Email            string     `json:"email" db:"email"`
	BirthDate        time.Time  `json:"birthDate" db:"birth_date"`
	Active           bool       `json:"active" db:"active"`
	DeactivationReason *string  `json:"deactivationReason,omitempty" db:"deactivation_reason"`
	DeactivatedAt    *time.Time `json:"deactivatedAt,omitempty" db:"deactivated_at"`
}
