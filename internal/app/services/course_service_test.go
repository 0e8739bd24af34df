package services

import (
	"context"
	"testing"

	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	store           *fakeCourseStore
	instructorStore *fakeInstructorStore
	enrollmentStore *fakeEnrollmentStore
	cache           *courseCache
	service         CourseService
}

func newCourseFixture() *courseFixture {
	store := newFakeCourseStore()
	instructorStore := newFakeInstructorStore()
	enrollmentStore := newFakeEnrollmentStore()
	courses := newCourseCache()
	instructors := newInstructorCache()

	return &courseFixture{
		store:           store,
		instructorStore: instructorStore,
		enrollmentStore: enrollmentStore,
		cache:           courses,
		service: NewCourseService(
			store, instructorStore, enrollmentStore,
			courses, instructors, zerolog.Nop(),
		),
	}
}

func (f *courseFixture) mustCreate(t *testing.T, code, name string, credits int) *dto.CourseResponse {
	t.Helper()
	course, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{
		Code:    code,
		Name:    name,
		Credits: credits,
	})
	require.NoError(t, err)
	return course
}

func TestCreateCourse(t *testing.T) {
	t.Run("assigns id and starts version at zero", func(t *testing.T) {
		f := newCourseFixture()

		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		assert.Equal(t, int64(1), course.ID)
		assert.Equal(t, int64(0), course.Version)
		assert.Empty(t, course.PrerequisiteIDs)
		assert.NotNil(t, course.PrerequisiteIDs)
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		f := newCourseFixture()
		f.mustCreate(t, "MAT-101", "Calculus I", 4)

		_, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{
			Code:    "MAT-101",
			Name:    "Another Calculus",
			Credits: 4,
		})

		assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
	})

	t.Run("rejects malformed code", func(t *testing.T) {
		f := newCourseFixture()

		_, err := f.service.CreateCourse(context.Background(), &dto.CreateCourseRequest{
			Code:    "calculus 101",
			Name:    "Calculus I",
			Credits: 4,
		})

		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestUpdateCourse(t *testing.T) {
	t.Run("bumps version on success", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		updated, err := f.service.UpdateCourse(context.Background(), course.ID, &dto.UpdateCourseRequest{
			Code:    "MAT-101",
			Name:    "Calculus I (revised)",
			Credits: 5,
			Version: course.Version,
		})

		require.NoError(t, err)
		assert.Equal(t, int64(1), updated.Version)
		assert.Equal(t, 5, updated.Credits)
	})

	t.Run("stale version fails with conflict and leaves the row untouched", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		// First writer wins.
		_, err := f.service.UpdateCourse(context.Background(), course.ID, &dto.UpdateCourseRequest{
			Code:    "MAT-101",
			Name:    "Calculus I (first)",
			Credits: 4,
			Version: course.Version,
		})
		require.NoError(t, err)

		// Second writer still holds the old version.
		_, err = f.service.UpdateCourse(context.Background(), course.ID, &dto.UpdateCourseRequest{
			Code:    "MAT-101",
			Name:    "Calculus I (second)",
			Credits: 4,
			Version: course.Version,
		})
		assert.ErrorIs(t, err, apperrors.ErrVersionConflict)

		got, err := f.service.GetCourseByID(context.Background(), course.ID)
		require.NoError(t, err)
		assert.Equal(t, "Calculus I (first)", got.Name)
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newCourseFixture()

		_, err := f.service.UpdateCourse(context.Background(), 99, &dto.UpdateCourseRequest{
			Code:    "MAT-101",
			Name:    "Calculus I",
			Credits: 4,
		})

		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestAddPrerequisite(t *testing.T) {
	t.Run("records the edge on both endpoints", func(t *testing.T) {
		f := newCourseFixture()
		mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

		updated, err := f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{mat101.ID}, updated.PrerequisiteIDs)

		prereq, err := f.service.GetCourseByID(context.Background(), mat101.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{mat201.ID}, prereq.DependentIDs)
	})

	t.Run("rejects the direct cycle", func(t *testing.T) {
		f := newCourseFixture()
		mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

		_, err := f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
		require.NoError(t, err)

		_, err = f.service.AddPrerequisite(context.Background(), mat101.ID, mat201.ID)
		require.ErrorIs(t, err, apperrors.ErrCyclicPrerequisite)

		var custom *apperrors.CustomError
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, mat101.ID, custom.Details["courseId"])
		assert.Equal(t, mat201.ID, custom.Details["prerequisiteId"])

		// The rejected edge left no trace.
		got, err := f.service.GetCourseByID(context.Background(), mat101.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PrerequisiteIDs)
	})

	t.Run("rejects a transitive cycle", func(t *testing.T) {
		f := newCourseFixture()
		a := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		b := f.mustCreate(t, "MAT-201", "Calculus II", 4)
		c := f.mustCreate(t, "MAT-301", "Calculus III", 4)

		_, err := f.service.AddPrerequisite(context.Background(), b.ID, a.ID)
		require.NoError(t, err)
		_, err = f.service.AddPrerequisite(context.Background(), c.ID, b.ID)
		require.NoError(t, err)

		_, err = f.service.AddPrerequisite(context.Background(), a.ID, c.ID)
		assert.ErrorIs(t, err, apperrors.ErrCyclicPrerequisite)
	})

	t.Run("rejects self reference", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		_, err := f.service.AddPrerequisite(context.Background(), course.ID, course.ID)
		assert.ErrorIs(t, err, apperrors.ErrCyclicPrerequisite)
	})

	t.Run("diamond does not count as a cycle", func(t *testing.T) {
		f := newCourseFixture()
		base := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		left := f.mustCreate(t, "FIS-101", "Physics I", 4)
		right := f.mustCreate(t, "QUI-101", "Chemistry I", 4)
		top := f.mustCreate(t, "ING-301", "Engineering", 5)

		for _, pair := range [][2]int64{
			{left.ID, base.ID},
			{right.ID, base.ID},
			{top.ID, left.ID},
			{top.ID, right.ID},
		} {
			_, err := f.service.AddPrerequisite(context.Background(), pair[0], pair[1])
			require.NoError(t, err)
		}
	})

	t.Run("unknown prerequisite", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		_, err := f.service.AddPrerequisite(context.Background(), course.ID, 99)
		assert.ErrorIs(t, err, apperrors.ErrPrerequisiteNotFound)
	})
}

func TestWouldFormCycle(t *testing.T) {
	f := newCourseFixture()
	mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
	mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

	_, err := f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
	require.NoError(t, err)

	t.Run("reports true without mutating", func(t *testing.T) {
		check, err := f.service.WouldFormCycle(context.Background(), mat101.ID, mat201.ID)
		require.NoError(t, err)
		assert.True(t, check.WouldFormCycle)

		got, err := f.service.GetCourseByID(context.Background(), mat101.ID)
		require.NoError(t, err)
		assert.Empty(t, got.PrerequisiteIDs)
	})

	t.Run("reports false for a safe edge", func(t *testing.T) {
		other := f.mustCreate(t, "FIS-101", "Physics I", 4)

		check, err := f.service.WouldFormCycle(context.Background(), mat201.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, check.WouldFormCycle)
	})
}

func TestRemovePrerequisite(t *testing.T) {
	f := newCourseFixture()
	mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
	mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

	_, err := f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
	require.NoError(t, err)

	updated, err := f.service.RemovePrerequisite(context.Background(), mat201.ID, mat101.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.PrerequisiteIDs)

	prereq, err := f.service.GetCourseByID(context.Background(), mat101.ID)
	require.NoError(t, err)
	assert.Empty(t, prereq.DependentIDs)

	// Removing again is a no-op.
	_, err = f.service.RemovePrerequisite(context.Background(), mat201.ID, mat101.ID)
	assert.NoError(t, err)
}

func TestAssignInstructor(t *testing.T) {
	f := newCourseFixture()
	course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

	instructor, err := f.instructorStore.GetByID(context.Background(), 0)
	require.NoError(t, err)
	require.Nil(t, instructor)

	require.NoError(t, f.instructorStore.Create(context.Background(), instructorNamed("10023")))

	t.Run("links the instructor", func(t *testing.T) {
		updated, err := f.service.AssignInstructor(context.Background(), course.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, updated.InstructorIDs)
	})

	t.Run("assigning twice is a no-op", func(t *testing.T) {
		updated, err := f.service.AssignInstructor(context.Background(), course.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, updated.InstructorIDs)
	})

	t.Run("unknown instructor", func(t *testing.T) {
		_, err := f.service.AssignInstructor(context.Background(), course.ID, 99)
		assert.ErrorIs(t, err, apperrors.ErrInstructorNotFound)
	})

	t.Run("unassign removes the link", func(t *testing.T) {
		updated, err := f.service.UnassignInstructor(context.Background(), course.ID, 1)
		require.NoError(t, err)
		assert.Empty(t, updated.InstructorIDs)
	})
}

func TestDeleteCourse(t *testing.T) {
	t.Run("refused while dependents exist", func(t *testing.T) {
		f := newCourseFixture()
		mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

		_, err := f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
		require.NoError(t, err)

		err = f.service.DeleteCourse(context.Background(), mat101.ID)
		assert.ErrorIs(t, err, apperrors.ErrCourseHasRelations)
	})

	t.Run("refused while enrollments exist", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		require.NoError(t, f.enrollmentStore.Create(context.Background(), enrollmentFor(1, course.ID)))

		err := f.service.DeleteCourse(context.Background(), course.ID)
		assert.ErrorIs(t, err, apperrors.ErrCourseHasRelations)
	})

	t.Run("deletes an unreferenced course", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		require.NoError(t, f.service.DeleteCourse(context.Background(), course.ID))

		_, err := f.service.GetCourseByID(context.Background(), course.ID)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})
}

func TestCourseCacheCoherence(t *testing.T) {
	t.Run("listing is served from cache until a mutation", func(t *testing.T) {
		f := newCourseFixture()
		f.mustCreate(t, "MAT-101", "Calculus I", 4)

		_, err := f.service.GetAllCourses(context.Background())
		require.NoError(t, err)
		_, err = f.service.GetAllCourses(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, f.store.getAllCalls)

		f.mustCreate(t, "MAT-201", "Calculus II", 4)

		courses, err := f.service.GetAllCourses(context.Background())
		require.NoError(t, err)
		assert.Len(t, courses, 2)
		assert.Equal(t, 2, f.store.getAllCalls)
	})

	t.Run("edge mutation refreshes both endpoints", func(t *testing.T) {
		f := newCourseFixture()
		mat101 := f.mustCreate(t, "MAT-101", "Calculus I", 4)
		mat201 := f.mustCreate(t, "MAT-201", "Calculus II", 4)

		// Warm both keyed entries.
		_, err := f.service.GetCourseByID(context.Background(), mat101.ID)
		require.NoError(t, err)
		_, err = f.service.GetCourseByID(context.Background(), mat201.ID)
		require.NoError(t, err)

		_, err = f.service.AddPrerequisite(context.Background(), mat201.ID, mat101.ID)
		require.NoError(t, err)

		// A read after the mutation must see the new edge from either side.
		got, err := f.service.GetCourseByID(context.Background(), mat201.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{mat101.ID}, got.PrerequisiteIDs)

		got, err = f.service.GetCourseByID(context.Background(), mat101.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{mat201.ID}, got.DependentIDs)
	})

	t.Run("lookup by code sees a rename", func(t *testing.T) {
		f := newCourseFixture()
		course := f.mustCreate(t, "MAT-101", "Calculus I", 4)

		_, err := f.service.GetCourseByCode(context.Background(), "MAT-101")
		require.NoError(t, err)

		_, err = f.service.UpdateCourse(context.Background(), course.ID, &dto.UpdateCourseRequest{
			Code:    "MAT-102",
			Name:    "Calculus I",
			Credits: 4,
			Version: course.Version,
		})
		require.NoError(t, err)

		_, err = f.service.GetCourseByCode(context.Background(), "MAT-101")
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

		got, err := f.service.GetCourseByCode(context.Background(), "MAT-102")
		require.NoError(t, err)
		assert.Equal(t, course.ID, got.ID)
	})
}
