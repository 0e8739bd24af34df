package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/dberrors"
)

const studentColumns = `id, enrollment_number, first_name, last_name, email, birth_date, active, deactivation_reason, deactivated_at`

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create creates a new active student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (enrollment_number, first_name, last_name, email, birth_date, active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, active
	`

	err := r.db.QueryRow(ctx, query,
		student.EnrollmentNumber,
		student.FirstName,
		student.LastName,
		student.Email,
		student.BirthDate,
	).Scan(&student.ID, &student.Active)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_number_key") {
			return apperrors.ErrEnrollmentNumberExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by id. Returns (nil, nil) when absent.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE id = $1`, id)
}

// GetByEnrollmentNumber retrieves a student by the unique admission number.
// Returns (nil, nil) when absent.
func (r *StudentRepository) GetByEnrollmentNumber(ctx context.Context, number string) (*models.Student, error) {
	return r.getOne(ctx, `SELECT `+studentColumns+` FROM students WHERE enrollment_number = $1`, number)
}

// GetAll retrieves all students, active or not
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.getMany(ctx, `SELECT `+studentColumns+` FROM students ORDER BY id`)
}

// ListActive retrieves only active students
func (r *StudentRepository) ListActive(ctx context.Context) ([]*models.Student, error) {
	return r.getMany(ctx, `SELECT `+studentColumns+` FROM students WHERE active ORDER BY id`)
}

// Update updates a student's scalar fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET enrollment_number = $1, first_name = $2, last_name = $3, email = $4, birth_date = $5
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.EnrollmentNumber,
		student.FirstName,
		student.LastName,
		student.Email,
		student.BirthDate,
		student.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_enrollment_number_key") {
			return apperrors.ErrEnrollmentNumberExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Deactivate flips the student to inactive recording the reason and the
// moment. Students are never physically deleted.
func (r *StudentRepository) Deactivate(ctx context.Context, id int64, reason string) error {
	query := `
		UPDATE students
		SET active = FALSE, deactivation_reason = $1, deactivated_at = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, reason, time.Now(), id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

func (r *StudentRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.Student, error) {
	var student models.Student
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&student.ID,
		&student.EnrollmentNumber,
		&student.FirstName,
		&student.LastName,
		&student.Email,
		&student.BirthDate,
		&student.Active,
		&student.DeactivationReason,
		&student.DeactivatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

func (r *StudentRepository) getMany(ctx context.Context, query string) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.ID,
			&student.EnrollmentNumber,
			&student.FirstName,
			&student.LastName,
			&student.Email,
			&student.BirthDate,
			&student.Active,
			&student.DeactivationReason,
			&student.DeactivatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}
