package models

import "time"

// Enrollment links one student to one course. At most one enrollment may
// exist per (student, course) pair.
type Enrollment struct {
	ID         int64            `json:"id" db:"id"`
	StudentID  int64            `json:"studentId" db:"student_id"`
	CourseID   int64            `json:"courseId" db:"course_id"`
	EnrolledAt time.Time        `json:"enrolledAt" db:"enrolled_at"`
	Status     EnrollmentStatus `json:"status" db:"status"`
	Grade      *float64         `json:"grade,omitempty" db:"grade"` // set once graded
}
