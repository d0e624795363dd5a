// Package idgen generates issue identifiers backed by nanoid.
package idgen

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// IssuePrefix marks every issue identifier.
const IssuePrefix = "iss-"

// alphabet is lowercase-only so ids are easy to type in the CLI.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters generated (excluding the prefix).
const Length = 8

// NewIssueID returns a fresh issue identifier.
func NewIssueID() (string, error) {
	return withPrefix(IssuePrefix)
}

func withPrefix(prefix string) (string, error) {
	id, err := nanoid.Generate(alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// Normalize accepts an id with or without the issue prefix and returns the
// prefixed form, so "a1b2c3d4" and "iss-a1b2c3d4" name the same issue.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || strings.HasPrefix(id, IssuePrefix) {
		return id
	}
	return IssuePrefix + id
}
