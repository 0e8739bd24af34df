package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleStaff RoleType = "STAFF"
)

// EnrollmentStatus is the lifecycle state of an enrollment. The values are
// kept in Spanish to match the institution's records.
type EnrollmentStatus string

const (
	EnrollmentActive  EnrollmentStatus = "activo"
	EnrollmentOngoing EnrollmentStatus = "cursando"
	EnrollmentPassed  EnrollmentStatus = "aprobado"
	EnrollmentFailed  EnrollmentStatus = "reprobado"
)

// Valid reports whether s is one of the known enrollment statuses.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentOngoing, EnrollmentPassed, EnrollmentFailed:
		return true
	}
	return false
}
