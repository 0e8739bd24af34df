package services

import (
	"context"
	"testing"
	"time"

	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStudentService() (*fakeStudentStore, StudentService) {
	store := newFakeStudentStore()
	return store, NewStudentService(store, newStudentCache(), zerolog.Nop())
}

func createStudentReq(number string) *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		EnrollmentNumber: number,
		FirstName:        "Carlos",
		LastName:         "Mamani",
		Email:            "cmamani@universidad.edu",
		BirthDate:        time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateStudent(t *testing.T) {
	t.Run("registers active", func(t *testing.T) {
		_, service := newStudentService()

		student, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))

		require.NoError(t, err)
		assert.True(t, student.Active)
		assert.Nil(t, student.DeactivationReason)
	})

	t.Run("rejects duplicate enrollment number", func(t *testing.T) {
		_, service := newStudentService()

		_, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
		require.NoError(t, err)

		_, err = service.CreateStudent(context.Background(), createStudentReq("202400155"))
		assert.ErrorIs(t, err, apperrors.ErrEnrollmentNumberExists)
	})

	t.Run("rejects malformed enrollment number", func(t *testing.T) {
		_, service := newStudentService()

		_, err := service.CreateStudent(context.Background(), createStudentReq("A-155"))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestDeactivateStudent(t *testing.T) {
	t.Run("records reason and moment, row survives", func(t *testing.T) {
		_, service := newStudentService()

		student, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
		require.NoError(t, err)

		deactivated, err := service.DeactivateStudent(context.Background(), student.ID, &dto.DeactivateStudentRequest{
			Reason: "transferred to another university",
		})

		require.NoError(t, err)
		assert.False(t, deactivated.Active)
		require.NotNil(t, deactivated.DeactivationReason)
		assert.Equal(t, "transferred to another university", *deactivated.DeactivationReason)
		assert.NotNil(t, deactivated.DeactivatedAt)

		// Still retrievable, just inactive.
		got, err := service.GetStudentByID(context.Background(), student.ID)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})

	t.Run("refused when already inactive", func(t *testing.T) {
		_, service := newStudentService()

		student, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
		require.NoError(t, err)

		_, err = service.DeactivateStudent(context.Background(), student.ID, &dto.DeactivateStudentRequest{Reason: "first"})
		require.NoError(t, err)

		_, err = service.DeactivateStudent(context.Background(), student.ID, &dto.DeactivateStudentRequest{Reason: "second"})
		assert.ErrorIs(t, err, apperrors.ErrStudentInactive)
	})

	t.Run("drops out of the active listing", func(t *testing.T) {
		_, service := newStudentService()

		first, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
		require.NoError(t, err)
		_, err = service.CreateStudent(context.Background(), createStudentReq("202400156"))
		require.NoError(t, err)

		// Warm the active listing before the mutation.
		active, err := service.GetActiveStudents(context.Background())
		require.NoError(t, err)
		require.Len(t, active, 2)

		_, err = service.DeactivateStudent(context.Background(), first.ID, &dto.DeactivateStudentRequest{Reason: "withdrawal"})
		require.NoError(t, err)

		active, err = service.GetActiveStudents(context.Background())
		require.NoError(t, err)
		assert.Len(t, active, 1)

		all, err := service.GetAllStudents(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, service := newStudentService()

		_, err := service.DeactivateStudent(context.Background(), 99, &dto.DeactivateStudentRequest{Reason: "x"})
		assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	})
}

func TestGetStudentByEnrollmentNumber(t *testing.T) {
	_, service := newStudentService()

	created, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
	require.NoError(t, err)

	got, err := service.GetStudentByEnrollmentNumber(context.Background(), "202400155")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = service.GetStudentByEnrollmentNumber(context.Background(), "999999999")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestUpdateStudent(t *testing.T) {
	_, service := newStudentService()

	created, err := service.CreateStudent(context.Background(), createStudentReq("202400155"))
	require.NoError(t, err)

	// Warm the number-keyed cache entry before renaming.
	_, err = service.GetStudentByEnrollmentNumber(context.Background(), "202400155")
	require.NoError(t, err)

	updated, err := service.UpdateStudent(context.Background(), created.ID, &dto.UpdateStudentRequest{
		EnrollmentNumber: "202400199",
		FirstName:        "Carlos",
		LastName:         "Mamani Flores",
		Email:            "cmamani@universidad.edu",
		BirthDate:        time.Date(2004, time.July, 2, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, "202400199", updated.EnrollmentNumber)
	assert.Equal(t, "Mamani Flores", updated.LastName)

	// The old number no longer resolves, not even from cache.
	_, err = service.GetStudentByEnrollmentNumber(context.Background(), "202400155")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}
