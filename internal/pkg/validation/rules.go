package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// HTTP(S) URL pattern for profile links
	URLPattern = `^https?://[^\s]+$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Graduation year bounds
	GraduationYearMin = 1950
	GraduationYearMax = 2100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
	URL   *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
	URL:   regexp.MustCompile(URLPattern),
}

// ValidEmail reports whether the value looks like an email address.
func ValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// ValidURL reports whether the value looks like an http(s) URL.
func ValidURL(value string) bool {
	return CompiledPatterns.URL.MatchString(value)
}

// ValidGraduationYear reports whether the year is within sane bounds.
func ValidGraduationYear(year int) bool {
	return year >= GraduationYearMin && year <= GraduationYearMax
}
