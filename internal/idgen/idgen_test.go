package idgen

import (
	"regexp"
	"testing"
)

func TestNewIssueID_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(IssuePrefix) + `[a-z0-9]{8}$`)
	for i := 0; i < 100; i++ {
		id, err := NewIssueID()
		if err != nil {
			t.Fatalf("NewIssueID() error on iteration %d: %v", i, err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("NewIssueID() = %q, does not match %s", id, pattern)
		}
	}
}

func TestNewIssueID_Uniqueness(t *testing.T) {
	const count = 10_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id, err := NewIssueID()
		if err != nil {
			t.Fatalf("NewIssueID() error on iteration %d: %v", i, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}

func TestNormalize(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"a1b2c3d4", "iss-a1b2c3d4"},
		{"iss-a1b2c3d4", "iss-a1b2c3d4"},
		{"  a1 ", "iss-a1"},
		{"", ""},
	} {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
