package services

import (
	"github.com/mvillegas/unicatalog/internal/app/models"
	"github.com/mvillegas/unicatalog/internal/pkg/cache"
)

// courseCache groups the read-through caches for the course family. Every
// mutation path invalidates through one of these methods so the keyed
// entries and the listing never drift apart.
type courseCache struct {
	byID   *cache.Cache[int64, *models.Course]
	byCode *cache.Cache[string, *models.Course]
	all    *cache.Listing[[]*models.Course]
}

func newCourseCache() *courseCache {
	return &courseCache{
		byID:   cache.New[int64, *models.Course](),
		byCode: cache.New[string, *models.Course](),
		all:    cache.NewListing[[]*models.Course](),
	}
}

// invalidate drops every entry the given course can appear under. The
// listing goes wholesale; graph mutations touch both edge endpoints, so
// callers invalidate each affected course.
func (c *courseCache) invalidate(course *models.Course) {
	c.byID.Invalidate(course.ID)
	c.byCode.Invalidate(course.Code)
	c.all.Invalidate()
}

// invalidateAll drops the whole course family. Used when a mutation outside
// the family changes course relation lists, such as deleting an instructor.
func (c *courseCache) invalidateAll() {
	c.byID.InvalidateAll()
	c.byCode.InvalidateAll()
	c.all.Invalidate()
}

type instructorCache struct {
	byID *cache.Cache[int64, *models.Instructor]
	all  *cache.Listing[[]*models.Instructor]
}

func newInstructorCache() *instructorCache {
	return &instructorCache{
		byID: cache.New[int64, *models.Instructor](),
		all:  cache.NewListing[[]*models.Instructor](),
	}
}

func (c *instructorCache) invalidate(id int64) {
	c.byID.Invalidate(id)
	c.all.Invalidate()
}

func (c *instructorCache) invalidateAll() {
	c.byID.InvalidateAll()
	c.all.Invalidate()
}

type studentCache struct {
	byID     *cache.Cache[int64, *models.Student]
	byNumber *cache.Cache[string, *models.Student]
	all      *cache.Listing[[]*models.Student]
	active   *cache.Listing[[]*models.Student]
}

func newStudentCache() *studentCache {
	return &studentCache{
		byID:     cache.New[int64, *models.Student](),
		byNumber: cache.New[string, *models.Student](),
		all:      cache.NewListing[[]*models.Student](),
		active:   cache.NewListing[[]*models.Student](),
	}
}

func (c *studentCache) invalidate(student *models.Student) {
	c.byID.Invalidate(student.ID)
	c.byNumber.Invalidate(student.EnrollmentNumber)
	c.all.Invalidate()
	c.active.Invalidate()
}

// enrollmentCache keys the per-student and per-course listings by the owning
// id, so a mutation only drops the two listings it actually touched.
type enrollmentCache struct {
	byID      *cache.Cache[int64, *models.Enrollment]
	byStudent *cache.Cache[int64, []*models.Enrollment]
	byCourse  *cache.Cache[int64, []*models.Enrollment]
	all       *cache.Listing[[]*models.Enrollment]
}

func newEnrollmentCache() *enrollmentCache {
	return &enrollmentCache{
		byID:      cache.New[int64, *models.Enrollment](),
		byStudent: cache.New[int64, []*models.Enrollment](),
		byCourse:  cache.New[int64, []*models.Enrollment](),
		all:       cache.NewListing[[]*models.Enrollment](),
	}
}

func (c *enrollmentCache) invalidate(enrollment *models.Enrollment) {
	c.byID.Invalidate(enrollment.ID)
	c.byStudent.Invalidate(enrollment.StudentID)
	c.byCourse.Invalidate(enrollment.CourseID)
	c.all.Invalidate()
}
