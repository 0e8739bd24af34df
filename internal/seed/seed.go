package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/app/repositories"
	"github.com/mvillegas/unicatalog/internal/config"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// CreateDefaultData creates the first admin account and, when enabled, a
// small sample catalog. Re-running against a seeded database is a no-op.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	repos := repositories.NewRepositories(dbPool)

	if err := seedAdmin(ctx, repos, cfg, lgr); err != nil {
		return err
	}

	if cfg.Seed.SampleCatalog {
		if err := seedSampleCatalog(ctx, repos, lgr); err != nil {
			return err
		}
	}

	return nil
}

// seedAdmin guarantees an ADMIN account exists so the register endpoint is
// reachable on a fresh install.
func seedAdmin(ctx context.Context, repos *repositories.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	existing, err := repos.UserRepository.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		return fmt.Errorf("seed admin password is required for a fresh database")
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.Seed.AdminEmail,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		// A concurrent instance may have won the race.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", admin.Email).Msg("Default admin account created")
	return nil
}

// seedSampleCatalog loads a minimal mathematics track useful for local
// development and manual testing.
func seedSampleCatalog(ctx context.Context, repos *repositories.Repositories, lgr zerolog.Logger) error {
	var finalErr error

	courses := []*models.Course{
		{Code: "MAT-101", Name: "Calculus I", Credits: 4},
		{Code: "MAT-201", Name: "Calculus II", Credits: 4},
		{Code: "FIS-101", Name: "Physics I", Credits: 4},
	}
	byCode := make(map[string]*models.Course)
	for _, course := range courses {
		err := repos.CourseRepository.Create(ctx, course)
		switch {
		case err == nil:
			byCode[course.Code] = course
		case errors.Is(err, apperrors.ErrCourseCodeExists):
			existing, getErr := repos.CourseRepository.GetByCode(ctx, course.Code)
			if getErr != nil {
				finalErr = errors.Join(finalErr, getErr)
				continue
			}
			byCode[course.Code] = existing
		default:
			lgr.Error().Err(err).Str("code", course.Code).Msg("Error seeding course")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if mat201, ok := byCode["MAT-201"]; ok {
		if mat101, ok := byCode["MAT-101"]; ok {
			err := repos.CourseRepository.AddPrerequisite(ctx, mat201.ID, mat101.ID, mat201.Version)
			if err != nil && !errors.Is(err, apperrors.ErrVersionConflict) {
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	instructor := &models.Instructor{
		EmployeeNumber: "10023",
		FirstName:      "Laura",
		LastName:       "Quispe",
		Email:          "lquispe@universidad.edu",
		BirthDate:      time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC),
		Department:     "Mathematics",
	}
	if err := repos.InstructorRepository.Create(ctx, instructor); err != nil &&
		!errors.Is(err, apperrors.ErrEmployeeNumberExists) {
		lgr.Error().Err(err).Msg("Error seeding instructor")
		finalErr = errors.Join(finalErr, err)
	}

	student := &models.Student{
		EnrollmentNumber: "202400155",
		FirstName:        "Carlos",
		LastName:         "Mamani",
		Email:            "cmamani@universidad.edu",
		BirthDate:        time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC),
		Active:           true,
	}
	if err := repos.StudentRepository.Create(ctx, student); err != nil &&
		!errors.Is(err, apperrors.ErrEnrollmentNumberExists) {
		lgr.Error().Err(err).Msg("Error seeding student")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		lgr.Info().Msg("Sample catalog seeded")
	}
	return finalErr
}
