package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation rule patterns
var (
	// Course code pattern - uppercase letters, a dash, digits (MAT-101)
	CourseCodePattern = `^[A-Z]{2,5}-\d{3}$`

	// Employee number pattern - 4 to 10 digits
	EmployeeNumberPattern = `^\d{4,10}$`

	// Student enrollment number pattern - 5 to 12 digits
	EnrollmentNumberPattern = `^\d{5,12}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	CourseCode       *regexp.Regexp
	EmployeeNumber   *regexp.Regexp
	EnrollmentNumber *regexp.Regexp
}{
	CourseCode:       regexp.MustCompile(CourseCodePattern),
	EmployeeNumber:   regexp.MustCompile(EmployeeNumberPattern),
	EnrollmentNumber: regexp.MustCompile(EnrollmentNumberPattern),
}

var validate = validator.New()

// ValidEmail reports whether s is a well-formed email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidName reports whether s is a non-blank name within length bounds.
func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) >= NameMinLength && len(s) <= NameMaxLength
}

// ValidCourseCode reports whether s matches the course code format.
func ValidCourseCode(s string) bool {
	return CompiledPatterns.CourseCode.MatchString(strings.TrimSpace(s))
}

// ValidEmployeeNumber reports whether s matches the employee number format.
func ValidEmployeeNumber(s string) bool {
	return CompiledPatterns.EmployeeNumber.MatchString(strings.TrimSpace(s))
}

// ValidEnrollmentNumber reports whether s matches the enrollment number format.
func ValidEnrollmentNumber(s string) bool {
	return CompiledPatterns.EnrollmentNumber.MatchString(strings.TrimSpace(s))
}

// BirthDateInPast reports whether t is a plausible birth date, i.e. before
// the current day.
func BirthDateInPast(t time.Time) bool {
	return !t.IsZero() && t.Before(time.Now())
}
