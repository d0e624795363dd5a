package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Field limits.
const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 65535
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateIssue checks an Issue for constraint violations.
// It returns a *ValidationError if any rules fail, or nil if the issue is valid.
func ValidateIssue(i *Issue) error {
	var ve ValidationError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "title", Message: "is required"})
	} else if len([]rune(title)) > MaxTitleLength {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "title",
			Message: fmt.Sprintf("must be %d characters or fewer", MaxTitleLength),
		})
	}

	if len([]rune(i.Description)) > MaxDescriptionLength {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "description",
			Message: fmt.Sprintf("must be %d characters or fewer", MaxDescriptionLength),
		})
	}

	if !i.Status.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   "status",
			Message: fmt.Sprintf("invalid value %q", i.Status),
		})
	}

	// Avatar references are URLs; relative paths are allowed.
	if i.AssigneeImage != "" {
		if _, err := url.Parse(i.AssigneeImage); err != nil {
			ve.Errors = append(ve.Errors, FieldError{Field: "assignee_image", Message: "is not a valid URL"})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
