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

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// Create creates a new instructor
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	query := `
		INSERT INTO instructors (employee_number, first_name, last_name, email, birth_date, department)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		instructor.EmployeeNumber,
		instructor.FirstName,
		instructor.LastName,
		instructor.Email,
		instructor.BirthDate,
		instructor.Department,
	).Scan(&instructor.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_employee_number_key") {
			return apperrors.ErrEmployeeNumberExists
		}
		return fmt.Errorf("error creating instructor: %w", err)
	}

	return nil
}

// GetByID retrieves an instructor by id with assigned course ids populated.
// Returns (nil, nil) when the id does not resolve.
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	query := `
		SELECT id, employee_number, first_name, last_name, email, birth_date, department
		FROM instructors
		WHERE id = $1
	`

	var instructor models.Instructor
	err := r.db.QueryRow(ctx, query, id).Scan(
		&instructor.ID,
		&instructor.EmployeeNumber,
		&instructor.FirstName,
		&instructor.LastName,
		&instructor.Email,
		&instructor.BirthDate,
		&instructor.Department,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT course_id FROM course_instructors
		WHERE instructor_id = $1 ORDER BY course_id`, id)
	if err != nil {
		return nil, err
	}
	instructor.CourseIDs, err = collectIDs(rows)
	if err != nil {
		return nil, err
	}

	return &instructor, nil
}

// GetAll retrieves all instructors
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	query := `
		SELECT id, employee_number, first_name, last_name, email, birth_date, department
		FROM instructors
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*models.Instructor)
	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(
			&instructor.ID,
			&instructor.EmployeeNumber,
			&instructor.FirstName,
			&instructor.LastName,
			&instructor.Email,
			&instructor.BirthDate,
			&instructor.Department,
		); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
		byID[instructor.ID] = &instructor
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignRows, err := r.db.Query(ctx, `
		SELECT instructor_id, course_id
		FROM course_instructors
		ORDER BY instructor_id, course_id`)
	if err != nil {
		return nil, err
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var instructorID, courseID int64
		if err := assignRows.Scan(&instructorID, &courseID); err != nil {
			return nil, err
		}
		if instructor, ok := byID[instructorID]; ok {
			instructor.CourseIDs = append(instructor.CourseIDs, courseID)
		}
	}
	if err := assignRows.Err(); err != nil {
		return nil, err
	}

	return instructors, nil
}

// Update updates an instructor's scalar fields
func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	query := `
		UPDATE instructors
		SET employee_number = $1, first_name = $2, last_name = $3, email = $4, birth_date = $5, department = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		instructor.EmployeeNumber,
		instructor.FirstName,
		instructor.LastName,
		instructor.Email,
		instructor.BirthDate,
		instructor.Department,
		instructor.ID,
	)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "instructors_employee_number_key") {
			return apperrors.ErrEmployeeNumberExists
		}
		return fmt.Errorf("error updating instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}

	return nil
}

// Delete deletes an instructor by id; course assignments cascade away at
// the schema level.
func (r *InstructorRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting instructor: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstructorNotFound
	}

	return nil
}
