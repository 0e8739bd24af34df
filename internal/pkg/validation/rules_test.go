package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidCourseCode(t *testing.T) {
	assert.True(t, ValidCourseCode("MAT-101"))
	assert.True(t, ValidCourseCode("FIS-200"))
	assert.True(t, ValidCourseCode(" INF-120 "))

	assert.False(t, ValidCourseCode("mat-101"))
	assert.False(t, ValidCourseCode("MAT101"))
	assert.False(t, ValidCourseCode("MAT-1"))
	assert.False(t, ValidCourseCode(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("docente@universidad.edu"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail(""))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Ana"))
	assert.False(t, ValidName("A"))
	assert.False(t, ValidName("   "))
}

func TestBirthDateInPast(t *testing.T) {
	assert.True(t, BirthDateInPast(time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, BirthDateInPast(time.Now().Add(24*time.Hour)))
	assert.False(t, BirthDateInPast(time.Time{}))
}

func TestValidNumbers(t *testing.T) {
	assert.True(t, ValidEmployeeNumber("10023"))
	assert.False(t, ValidEmployeeNumber("12"))
	assert.False(t, ValidEmployeeNumber("abc123"))

	assert.True(t, ValidEnrollmentNumber("202400155"))
	assert.False(t, ValidEnrollmentNumber("1234"))
}
