package services

import (
	"context"
	"sort"
	"time"

	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
)

// In-memory stores mirroring the pgx repositories' contracts: (nil, nil)
// for absent rows, sentinel errors for constraint conflicts, and the same
// optimistic-version behavior on course mutations.

type fakeCourseStore struct {
	nextID      int64
	courses     map[int64]*models.Course
	prereqs     map[int64]map[int64]bool
	instructors map[int64]map[int64]bool

	getAllCalls  int
	getByIDCalls int
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{
		courses:     make(map[int64]*models.Course),
		prereqs:     make(map[int64]map[int64]bool),
		instructors: make(map[int64]map[int64]bool),
	}
}

func (f *fakeCourseStore) Create(_ context.Context, course *models.Course) error {
	for _, existing := range f.courses {
		if existing.Code == course.Code {
			return apperrors.ErrCourseCodeExists
		}
	}
	f.nextID++
	course.ID = f.nextID
	course.Version = 0
	f.courses[course.ID] = &models.Course{
		ID:      course.ID,
		Code:    course.Code,
		Name:    course.Name,
		Credits: course.Credits,
	}
	return nil
}

func (f *fakeCourseStore) GetByID(_ context.Context, id int64) (*models.Course, error) {
	f.getByIDCalls++
	course, ok := f.courses[id]
	if !ok {
		return nil, nil
	}
	return f.withEdges(course), nil
}

func (f *fakeCourseStore) GetByCode(_ context.Context, code string) (*models.Course, error) {
	for _, course := range f.courses {
		if course.Code == code {
			return f.withEdges(course), nil
		}
	}
	return nil, nil
}

func (f *fakeCourseStore) GetAll(_ context.Context) ([]*models.Course, error) {
	f.getAllCalls++
	ids := make([]int64, 0, len(f.courses))
	for id := range f.courses {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	courses := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		courses = append(courses, f.withEdges(f.courses[id]))
	}
	return courses, nil
}

func (f *fakeCourseStore) Update(_ context.Context, course *models.Course) error {
	existing, ok := f.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if existing.Version != course.Version {
		return apperrors.ErrVersionConflict
	}
	existing.Code = course.Code
	existing.Name = course.Name
	existing.Credits = course.Credits
	existing.Version++
	course.Version = existing.Version
	return nil
}

func (f *fakeCourseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(f.courses, id)
	delete(f.prereqs, id)
	delete(f.instructors, id)
	for _, set := range f.prereqs {
		delete(set, id)
	}
	return nil
}

func (f *fakeCourseStore) AddPrerequisite(_ context.Context, courseID, prerequisiteID, expectedVersion int64) error {
	if err := f.bumpVersion(courseID, expectedVersion); err != nil {
		return err
	}
	if f.prereqs[courseID] == nil {
		f.prereqs[courseID] = make(map[int64]bool)
	}
	f.prereqs[courseID][prerequisiteID] = true
	return nil
}

func (f *fakeCourseStore) RemovePrerequisite(_ context.Context, courseID, prerequisiteID, expectedVersion int64) error {
	if err := f.bumpVersion(courseID, expectedVersion); err != nil {
		return err
	}
	delete(f.prereqs[courseID], prerequisiteID)
	return nil
}

func (f *fakeCourseStore) AssignInstructor(_ context.Context, courseID, instructorID, expectedVersion int64) error {
	if err := f.bumpVersion(courseID, expectedVersion); err != nil {
		return err
	}
	if f.instructors[courseID] == nil {
		f.instructors[courseID] = make(map[int64]bool)
	}
	f.instructors[courseID][instructorID] = true
	return nil
}

func (f *fakeCourseStore) UnassignInstructor(_ context.Context, courseID, instructorID, expectedVersion int64) error {
	if err := f.bumpVersion(courseID, expectedVersion); err != nil {
		return err
	}
	delete(f.instructors[courseID], instructorID)
	return nil
}

func (f *fakeCourseStore) PrerequisiteEdges(_ context.Context) (map[int64][]int64, error) {
	edges := make(map[int64][]int64)
	for courseID, set := range f.prereqs {
		for prereqID := range set {
			edges[courseID] = append(edges[courseID], prereqID)
		}
	}
	return edges, nil
}

func (f *fakeCourseStore) HasDependents(_ context.Context, id int64) (bool, error) {
	for _, set := range f.prereqs {
		if set[id] {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCourseStore) bumpVersion(courseID, expectedVersion int64) error {
	course, ok := f.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	if course.Version != expectedVersion {
		return apperrors.ErrVersionConflict
	}
	course.Version++
	return nil
}

func (f *fakeCourseStore) withEdges(course *models.Course) *models.Course {
	out := *course
	out.PrerequisiteIDs = sortedSet(f.prereqs[course.ID])
	out.InstructorIDs = sortedSet(f.instructors[course.ID])

	var dependents []int64
	for courseID, set := range f.prereqs {
		if set[course.ID] {
			dependents = append(dependents, courseID)
		}
	}
	sort.Slice(dependents, func(i, j int) bool { return dependents[i] < dependents[j] })
	out.DependentIDs = dependents
	return &out
}

func sortedSet(set map[int64]bool) []int64 {
	var ids []int64
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func instructorNamed(employeeNumber string) *models.Instructor {
	return &models.Instructor{
		EmployeeNumber: employeeNumber,
		FirstName:      "Laura",
		LastName:       "Quispe",
		Email:          "lquispe@universidad.edu",
		BirthDate:      time.Date(1980, time.March, 14, 0, 0, 0, 0, time.UTC),
		Department:     "Mathematics",
	}
}

func enrollmentFor(studentID, courseID int64) *models.Enrollment {
	return &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
		Status:     models.EnrollmentActive,
	}
}

type fakeInstructorStore struct {
	nextID      int64
	instructors map[int64]*models.Instructor
}

func newFakeInstructorStore() *fakeInstructorStore {
	return &fakeInstructorStore{instructors: make(map[int64]*models.Instructor)}
}

func (f *fakeInstructorStore) Create(_ context.Context, instructor *models.Instructor) error {
	for _, existing := range f.instructors {
		if existing.EmployeeNumber == instructor.EmployeeNumber {
			return apperrors.ErrEmployeeNumberExists
		}
	}
	f.nextID++
	instructor.ID = f.nextID
	clone := *instructor
	f.instructors[instructor.ID] = &clone
	return nil
}

func (f *fakeInstructorStore) GetByID(_ context.Context, id int64) (*models.Instructor, error) {
	instructor, ok := f.instructors[id]
	if !ok {
		return nil, nil
	}
	clone := *instructor
	return &clone, nil
}

func (f *fakeInstructorStore) GetAll(_ context.Context) ([]*models.Instructor, error) {
	ids := make([]int64, 0, len(f.instructors))
	for id := range f.instructors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*models.Instructor, 0, len(ids))
	for _, id := range ids {
		clone := *f.instructors[id]
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeInstructorStore) Update(_ context.Context, instructor *models.Instructor) error {
	if _, ok := f.instructors[instructor.ID]; !ok {
		return apperrors.ErrInstructorNotFound
	}
	clone := *instructor
	f.instructors[instructor.ID] = &clone
	return nil
}

func (f *fakeInstructorStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.instructors[id]; !ok {
		return apperrors.ErrInstructorNotFound
	}
	delete(f.instructors, id)
	return nil
}

type fakeStudentStore struct {
	nextID   int64
	students map[int64]*models.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int64]*models.Student)}
}

func (f *fakeStudentStore) Create(_ context.Context, student *models.Student) error {
	for _, existing := range f.students {
		if existing.EnrollmentNumber == student.EnrollmentNumber {
			return apperrors.ErrEnrollmentNumberExists
		}
	}
	f.nextID++
	student.ID = f.nextID
	student.Active = true
	clone := *student
	f.students[student.ID] = &clone
	return nil
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return nil, nil
	}
	clone := *student
	return &clone, nil
}

func (f *fakeStudentStore) GetByEnrollmentNumber(_ context.Context, number string) (*models.Student, error) {
	for _, student := range f.students {
		if student.EnrollmentNumber == number {
			clone := *student
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	return f.list(func(*models.Student) bool { return true }), nil
}

func (f *fakeStudentStore) ListActive(_ context.Context) ([]*models.Student, error) {
	return f.list(func(s *models.Student) bool { return s.Active }), nil
}

func (f *fakeStudentStore) Update(_ context.Context, student *models.Student) error {
	existing, ok := f.students[student.ID]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	existing.EnrollmentNumber = student.EnrollmentNumber
	existing.FirstName = student.FirstName
	existing.LastName = student.LastName
	existing.Email = student.Email
	existing.BirthDate = student.BirthDate
	return nil
}

func (f *fakeStudentStore) Deactivate(_ context.Context, id int64, reason string) error {
	student, ok := f.students[id]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	now := time.Now()
	student.Active = false
	student.DeactivationReason = &reason
	student.DeactivatedAt = &now
	return nil
}

func (f *fakeStudentStore) list(keep func(*models.Student) bool) []*models.Student {
	ids := make([]int64, 0, len(f.students))
	for id := range f.students {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*models.Student
	for _, id := range ids {
		if keep(f.students[id]) {
			clone := *f.students[id]
			out = append(out, &clone)
		}
	}
	return out
}

type fakeEnrollmentStore struct {
	nextID      int64
	enrollments map[int64]*models.Enrollment

	listByStudentCalls int
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{enrollments: make(map[int64]*models.Enrollment)}
}

func (f *fakeEnrollmentStore) Create(_ context.Context, enrollment *models.Enrollment) error {
	for _, existing := range f.enrollments {
		if existing.StudentID == enrollment.StudentID && existing.CourseID == enrollment.CourseID {
			return apperrors.ErrDuplicateEnrollment
		}
	}
	f.nextID++
	enrollment.ID = f.nextID
	clone := *enrollment
	f.enrollments[enrollment.ID] = &clone
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, nil
	}
	clone := *enrollment
	return &clone, nil
}

func (f *fakeEnrollmentStore) GetAll(_ context.Context) ([]*models.Enrollment, error) {
	return f.list(func(*models.Enrollment) bool { return true }), nil
}

func (f *fakeEnrollmentStore) ListByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	f.listByStudentCalls++
	return f.list(func(e *models.Enrollment) bool { return e.StudentID == studentID }), nil
}

func (f *fakeEnrollmentStore) ListByCourse(_ context.Context, courseID int64) ([]*models.Enrollment, error) {
	return f.list(func(e *models.Enrollment) bool { return e.CourseID == courseID }), nil
}

func (f *fakeEnrollmentStore) ExistsByStudentAndCourse(_ context.Context, studentID, courseID int64) (bool, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) ExistsByCourse(_ context.Context, courseID int64) (bool, error) {
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentStore) Update(_ context.Context, enrollment *models.Enrollment) error {
	if _, ok := f.enrollments[enrollment.ID]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	clone := *enrollment
	f.enrollments[enrollment.ID] = &clone
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.enrollments[id]; !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.enrollments, id)
	return nil
}

func (f *fakeEnrollmentStore) list(keep func(*models.Enrollment) bool) []*models.Enrollment {
	ids := make([]int64, 0, len(f.enrollments))
	for id := range f.enrollments {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*models.Enrollment
	for _, id := range ids {
		if keep(f.enrollments[id]) {
			clone := *f.enrollments[id]
			out = append(out, &clone)
		}
	}
	return out
}

type fakeUserStore struct {
	nextID int64
	users  map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.Email]; ok {
		return apperrors.ErrEmailAlreadyExists
	}
	f.nextID++
	user.ID = f.nextID
	clone := *user
	f.users[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}
