// Package validation holds the per-field rule checks shared by the signup,
// admin user, and resume draft flows. Every function is pure and total:
// no I/O, no panics, every path returns a message string ("" means valid).
package validation

import (
	"regexp"
	"strings"
	"time"
)

// Context selects flow-dependent rules.
type Context struct {
	// IsUpdate relaxes the password rule: optional, but still length-checked
	// when present.
	IsUpdate bool
	// Signup tightens the username rule to an email shape.
	Signup bool
}

const (
	passwordMinLen = 8

	msgPasswordRequired = "Password is required"
	msgPasswordTooShort = "Password must be at least 8 characters"
	msgUsernameEmail    = "Username must be a valid email address"
	msgEndBeforeStart   = "End date cannot be before start date"
	msgResponsibilities = "At least one responsibility is required"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var fieldLabels = map[string]string{
	"firstname":        "First name",
	"lastname":         "Last name",
	"username":         "Username",
	"password":         "Password",
	"name":             "Full name",
	"job_title":        "Job title",
	"role":             "Role",
	"phone":            "Phone",
	"email":            "Email",
	"degree":           "Degree",
	"university":       "University",
	"gpa":              "GPA",
	"company":          "Company",
	"location":         "Location",
	"start_date":       "Start date",
	"end_date":         "End date",
	"environment":      "Environment",
	"responsibilities": "Responsibilities",
	"job_description":  "Job description",
	"company_name":     "Company name",
	"message":          "Message",
}

// Validate applies the rule for a single field and returns a user-facing
// message, or "" when the value passes.
func Validate(key, value string, ctx Context) string {
	trimmed := strings.TrimSpace(value)

	switch key {
	case "password":
		if trimmed == "" {
			if ctx.IsUpdate {
				return ""
			}
			return msgPasswordRequired
		}
		if len(trimmed) < passwordMinLen {
			return msgPasswordTooShort
		}
		return ""
	case "username":
		if trimmed == "" {
			return requiredMessage(key)
		}
		if ctx.Signup && !emailShape.MatchString(trimmed) {
			return msgUsernameEmail
		}
		return ""
	default:
		if trimmed == "" {
			return requiredMessage(key)
		}
		return ""
	}
}

// ValidateEndDate checks chronological order of an experience entry. The rule
// only applies when both dates parse; otherwise the generic required rule for
// end_date stands on its own.
func ValidateEndDate(startDate, endDate string) string {
	if msg := Validate("end_date", endDate, Context{}); msg != "" {
		return msg
	}
	start, okStart := parseDate(startDate)
	end, okEnd := parseDate(endDate)
	if okStart && okEnd && end.Before(start) {
		return msgEndBeforeStart
	}
	return ""
}

// ValidateResponsibilities requires at least one entry surviving a trim
// filter.
func ValidateResponsibilities(items []string) string {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return ""
		}
	}
	return msgResponsibilities
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"January 2006",
	"Jan 2006",
}

func parseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func requiredMessage(key string) string {
	label, ok := fieldLabels[key]
	if !ok {
		label = "This field"
	}
	return label + " is required"
}
