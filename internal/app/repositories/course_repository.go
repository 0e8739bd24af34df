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

// CourseRepository handles database operations for courses and their
// prerequisite and instructor edges.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
	}
}

// Create creates a new course. The store assigns the id and the version
// counter starts at zero.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (code, name, credits, version)
		VALUES ($1, $2, $3, 0)
		RETURNING id, version
	`

	err := r.db.QueryRow(ctx, query, course.Code, course.Name, course.Credits).
		Scan(&course.ID, &course.Version)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// GetByID retrieves a course by id with its edge lists populated.
// Returns (nil, nil) when the id does not resolve.
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `
		SELECT id, code, name, credits, version
		FROM courses
		WHERE id = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	if err := r.loadEdges(ctx, &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetByCode retrieves a course by its unique code.
// Returns (nil, nil) when the code does not resolve.
func (r *CourseRepository) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	query := `
		SELECT id, code, name, credits, version
		FROM courses
		WHERE code = $1
	`

	var course models.Course
	err := r.db.QueryRow(ctx, query, code).Scan(
		&course.ID,
		&course.Code,
		&course.Name,
		&course.Credits,
		&course.Version,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving course by code: %w", err)
	}

	if err := r.loadEdges(ctx, &course); err != nil {
		return nil, err
	}

	return &course, nil
}

// GetAll retrieves all courses with edge lists populated. Edges are loaded
// with two whole-table queries and merged in memory instead of per-course
// round trips.
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT id, code, name, credits, version
		FROM courses
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]*models.Course)
	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID,
			&course.Code,
			&course.Name,
			&course.Credits,
			&course.Version,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
		byID[course.ID] = &course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	prereqEdges, err := r.PrerequisiteEdges(ctx)
	if err != nil {
		return nil, err
	}
	for courseID, prereqIDs := range prereqEdges {
		if course, ok := byID[courseID]; ok {
			course.PrerequisiteIDs = prereqIDs
		}
		for _, prereqID := range prereqIDs {
			if prereq, ok := byID[prereqID]; ok {
				prereq.DependentIDs = append(prereq.DependentIDs, courseID)
			}
		}
	}

	instrRows, err := r.db.Query(ctx, `
		SELECT course_id, instructor_id
		FROM course_instructors
		ORDER BY course_id, instructor_id`)
	if err != nil {
		return nil, err
	}
	defer instrRows.Close()

	for instrRows.Next() {
		var courseID, instructorID int64
		if err := instrRows.Scan(&courseID, &instructorID); err != nil {
			return nil, err
		}
		if course, ok := byID[courseID]; ok {
			course.InstructorIDs = append(course.InstructorIDs, instructorID)
		}
	}
	if err := instrRows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}

// Update updates the course's scalar fields with an optimistic version
// check. The caller supplies the version it last read; a stale version
// fails with ErrVersionConflict and the row is left untouched.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET code = $1, name = $2, credits = $3, version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	err := r.db.QueryRow(ctx, query,
		course.Code, course.Name, course.Credits, course.ID, course.Version).
		Scan(&course.Version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.versionConflictOrNotFound(ctx, course.ID)
		}
		if dberrors.IsDuplicateConstraintError(err, "courses_code_key") {
			return apperrors.ErrCourseCodeExists
		}
		return fmt.Errorf("error updating course: %w", err)
	}

	return nil
}

// Delete removes a course by id. Edge cleanup for its own outgoing edges
// and instructor assignments cascades at the schema level; the service
// refuses the delete while dependents or enrollments exist.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddPrerequisite records the prerequisite edge inside one transaction that
// also bumps the owning course's version, serializing concurrent graph
// mutations on the same course. Inserting an existing edge is a no-op.
func (r *CourseRepository) AddPrerequisite(ctx context.Context, courseID, prerequisiteID, expectedVersion int64) error {
	return r.edgeMutation(ctx, courseID, expectedVersion, `
		INSERT INTO course_prerequisites (course_id, prerequisite_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		courseID, prerequisiteID)
}

// RemovePrerequisite removes the edge from both directions (the join table
// holds the single authoritative copy). Removing a missing edge still bumps
// the version but is otherwise a no-op.
func (r *CourseRepository) RemovePrerequisite(ctx context.Context, courseID, prerequisiteID, expectedVersion int64) error {
	return r.edgeMutation(ctx, courseID, expectedVersion, `
		DELETE FROM course_prerequisites
		WHERE course_id = $1 AND prerequisite_id = $2`,
		courseID, prerequisiteID)
}

// AssignInstructor records the instructor assignment; assigning an already
// assigned instructor is a no-op.
func (r *CourseRepository) AssignInstructor(ctx context.Context, courseID, instructorID, expectedVersion int64) error {
	return r.edgeMutation(ctx, courseID, expectedVersion, `
		INSERT INTO course_instructors (course_id, instructor_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		courseID, instructorID)
}

// UnassignInstructor removes the instructor assignment; removing a missing
// assignment is a no-op.
func (r *CourseRepository) UnassignInstructor(ctx context.Context, courseID, instructorID, expectedVersion int64) error {
	return r.edgeMutation(ctx, courseID, expectedVersion, `
		DELETE FROM course_instructors
		WHERE course_id = $1 AND instructor_id = $2`,
		courseID, instructorID)
}

// PrerequisiteEdges returns the full course -> prerequisite adjacency map.
func (r *CourseRepository) PrerequisiteEdges(ctx context.Context) (map[int64][]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT course_id, prerequisite_id
		FROM course_prerequisites
		ORDER BY course_id, prerequisite_id`)
	if err != nil {
		return nil, fmt.Errorf("error retrieving prerequisite edges: %w", err)
	}
	defer rows.Close()

	edges := make(map[int64][]int64)
	for rows.Next() {
		var courseID, prerequisiteID int64
		if err := rows.Scan(&courseID, &prerequisiteID); err != nil {
			return nil, err
		}
		edges[courseID] = append(edges[courseID], prerequisiteID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return edges, nil
}

// HasDependents reports whether any other course lists the given course as
// a prerequisite.
func (r *CourseRepository) HasDependents(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM course_prerequisites WHERE prerequisite_id = $1)`,
		id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course dependents: %w", err)
	}

	return exists, nil
}

// edgeMutation runs the version bump and the edge statement in one
// transaction. The version bump doubles as the existence and staleness
// check for the owning course.
func (r *CourseRepository) edgeMutation(ctx context.Context, courseID, expectedVersion int64, edgeSQL string, args ...interface{}) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	cmdTag, err := tx.Exec(ctx, `
		UPDATE courses SET version = version + 1
		WHERE id = $1 AND version = $2`,
		courseID, expectedVersion)
	if err != nil {
		return fmt.Errorf("error bumping course version: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.versionConflictOrNotFound(ctx, courseID)
	}

	if _, err := tx.Exec(ctx, edgeSQL, args...); err != nil {
		return fmt.Errorf("error writing course edge: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// versionConflictOrNotFound distinguishes a stale optimistic version from a
// missing row after a zero-row update.
func (r *CourseRepository) versionConflictOrNotFound(ctx context.Context, id int64) error {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking course existence: %w", err)
	}

	if exists {
		return apperrors.ErrVersionConflict
	}
	return apperrors.ErrCourseNotFound
}

// loadEdges populates the three relation id lists of a single course.
func (r *CourseRepository) loadEdges(ctx context.Context, course *models.Course) error {
	rows, err := r.db.Query(ctx, `
		SELECT prerequisite_id FROM course_prerequisites
		WHERE course_id = $1 ORDER BY prerequisite_id`, course.ID)
	if err != nil {
		return err
	}
	course.PrerequisiteIDs, err = collectIDs(rows)
	if err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT course_id FROM course_prerequisites
		WHERE prerequisite_id = $1 ORDER BY course_id`, course.ID)
	if err != nil {
		return err
	}
	course.DependentIDs, err = collectIDs(rows)
	if err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `
		SELECT instructor_id FROM course_instructors
		WHERE course_id = $1 ORDER BY instructor_id`, course.ID)
	if err != nil {
		return err
	}
	course.InstructorIDs, err = collectIDs(rows)
	return err
}

// collectIDs drains a single-column id result set.
func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
