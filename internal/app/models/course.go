package models

// Course represents a course in the academic catalog. Prerequisite and
// instructor relations are carried as id lists only; the full objects never
// cross the service boundary nested inside a course.
type Course struct {
	ID      int64  `json:"id" db:"id"`
	Code    string `json:"code" db:"code"`       // unique human-readable code, e.g. MAT-101
	Name    string `json:"name" db:"name"`
	Credits int    `json:"credits" db:"credits"` // positive
	Version int64  `json:"version" db:"version"` // optimistic lock counter

	// Prerequisite graph edges, both directions
	PrerequisiteIDs []int64 `json:"prerequisiteIds"` // courses this course requires
	DependentIDs    []int64 `json:"dependentIds"`    // courses that require this course
	InstructorIDs   []int64 `json:"instructorIds"`
}
