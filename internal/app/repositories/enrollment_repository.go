package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/dberrors"
)

const enrollmentColumns = `id, student_id, course_id, enrolled_at, status, grade`

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
	}
}

// Create persists a new enrollment. The unique (student_id, course_id)
// constraint backstops the service-level existence check against races.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, enrolled_at, status, grade)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
		enrollment.Status,
		enrollment.Grade,
	).Scan(&enrollment.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") {
			return apperrors.ErrDuplicateEnrollment
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

// GetByID retrieves an enrollment by id. Returns (nil, nil) when absent.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id).Scan(
		&enrollment.ID,
		&enrollment.StudentID,
		&enrollment.CourseID,
		&enrollment.EnrolledAt,
		&enrollment.Status,
		&enrollment.Grade,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return &enrollment, nil
}

// GetAll retrieves all enrollments
func (r *EnrollmentRepository) GetAll(ctx context.Context) ([]*models.Enrollment, error) {
	return r.getMany(ctx, `SELECT `+enrollmentColumns+` FROM enrollments ORDER BY id`)
}

// ListByStudent retrieves every enrollment of one student
func (r *EnrollmentRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	return r.getMany(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE student_id = $1 ORDER BY id`, studentID)
}

// ListByCourse retrieves every enrollment in one course
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]*models.Enrollment, error) {
	return r.getMany(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE course_id = $1 ORDER BY id`, courseID)
}

// ExistsByStudentAndCourse reports whether the (student, course) pair is
// already enrolled.
func (r *EnrollmentRepository) ExistsByStudentAndCourse(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE student_id = $1 AND course_id = $2)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}

	return exists, nil
}

// ExistsByCourse reports whether any enrollment references the course.
func (r *EnrollmentRepository) ExistsByCourse(ctx context.Context, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE course_id = $1)`,
		courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course enrollments: %w", err)
	}

	return exists, nil
}

// Update overwrites every field of an enrollment (full replace)
func (r *EnrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET student_id = $1, course_id = $2, enrolled_at = $3, status = $4, grade = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
		enrollment.Status,
		enrollment.Grade,
		enrollment.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_student_course_key") {
			return apperrors.ErrDuplicateEnrollment
		}
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete physically removes an enrollment by id
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

func (r *EnrollmentRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]*models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		var enrollment models.Enrollment
		if err := rows.Scan(
			&enrollment.ID,
			&enrollment.StudentID,
			&enrollment.CourseID,
			&enrollment.EnrolledAt,
			&enrollment.Status,
			&enrollment.Grade,
		); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, &enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return enrollments, nil
}
