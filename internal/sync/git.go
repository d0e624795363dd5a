package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultCommitMessage is used when GitDestination has no message set.
const DefaultCommitMessage = "export: update issues snapshot"

// GitDestination writes the export to a file in a local clone, commits it
// when it changed, and pushes.
type GitDestination struct {
	repo    string // path to the local clone
	file    string // file path within the repo
	branch  string
	message string
}

// NewGitDestination creates a git destination. repo is the path to an
// existing local clone.
func NewGitDestination(repo, file, branch string) *GitDestination {
	return &GitDestination{
		repo:    repo,
		file:    file,
		branch:  branch,
		message: DefaultCommitMessage,
	}
}

// Name returns "git:<file>".
func (d *GitDestination) Name() string { return "git:" + d.file }

// Write replaces the tracked file with data, then commits and pushes when
// the content changed.
func (d *GitDestination) Write(ctx context.Context, data []byte) error {
	if _, err := d.git(ctx, "checkout", d.branch); err != nil {
		return err
	}

	// The remote may not have the branch yet.
	_, _ = d.git(ctx, "pull", "--ff-only", "origin", d.branch)

	path := filepath.Join(d.repo, d.file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	if _, err := d.git(ctx, "add", d.file); err != nil {
		return err
	}

	changed, err := d.stagedChanges(ctx)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if _, err := d.git(ctx, "commit", "-m", d.message); err != nil {
		return err
	}
	if _, err := d.git(ctx, "push", "origin", d.branch); err != nil {
		return err
	}
	return nil
}

// stagedChanges reports whether the index differs from HEAD.
// git diff --quiet exits 1 on differences.
func (d *GitDestination) stagedChanges(ctx context.Context) (bool, error) {
	_, err := d.git(ctx, "diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

func (d *GitDestination) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.repo
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}
