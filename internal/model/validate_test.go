package model

import (
	"strings"
	"testing"
)

// validIssue returns an Issue that passes all validation rules.
func validIssue() Issue {
	return Issue{
		Title:  "Login button misaligned",
		Status: StatusOpen,
	}
}

// fieldErrors extracts a *ValidationError from err or fails the test.
func fieldErrors(t *testing.T, err error) []FieldError {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	return ve.Errors
}

// hasFieldError reports whether the error list contains an error for the given field.
func hasFieldError(errs []FieldError, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestValidate_Valid(t *testing.T) {
	i := validIssue()
	if err := ValidateIssue(&i); err != nil {
		t.Errorf("expected valid issue, got: %v", err)
	}
}

func TestValidate_TitleRequired(t *testing.T) {
	i := validIssue()
	i.Title = "  \t\n "
	errs := fieldErrors(t, ValidateIssue(&i))
	if !hasFieldError(errs, "title") {
		t.Error("expected error on field 'title' for whitespace-only title")
	}
}

func TestValidate_TitleLength(t *testing.T) {
	i := validIssue()
	i.Title = strings.Repeat("a", MaxTitleLength)
	if err := ValidateIssue(&i); err != nil {
		t.Errorf("title with exactly %d chars should be valid, got: %v", MaxTitleLength, err)
	}
	i.Title = strings.Repeat("a", MaxTitleLength+1)
	errs := fieldErrors(t, ValidateIssue(&i))
	if !hasFieldError(errs, "title") {
		t.Error("expected error on field 'title' for overlong title")
	}
}

func TestValidate_DescriptionTooLong(t *testing.T) {
	i := validIssue()
	i.Description = strings.Repeat("d", MaxDescriptionLength+1)
	errs := fieldErrors(t, ValidateIssue(&i))
	if !hasFieldError(errs, "description") {
		t.Error("expected error on field 'description'")
	}
}

func TestValidate_InvalidStatus(t *testing.T) {
	i := validIssue()
	i.Status = "DONE"
	errs := fieldErrors(t, ValidateIssue(&i))
	if !hasFieldError(errs, "status") {
		t.Error("expected error on field 'status'")
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	i := Issue{Status: "nope"}
	errs := fieldErrors(t, ValidateIssue(&i))
	if len(errs) != 2 {
		t.Errorf("expected 2 errors, got %d: %v", len(errs), errs)
	}
	msg := (&ValidationError{Errors: errs}).Error()
	if !strings.HasPrefix(msg, "validation failed: ") {
		t.Errorf("unexpected message %q", msg)
	}
}
