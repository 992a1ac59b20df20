// Package gitsource produces raw diff text from a local repository, the
// collaborator feeding the segmenter in CLI mode.
package gitsource

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

type Source struct {
	workDir string
}

func New(workDir string) *Source {
	return &Source{workDir: workDir}
}

// Fetch updates the base ref from origin so the diff compares against the
// remote's current state. A missing remote is not fatal for local use.
func (s *Source) Fetch(ctx context.Context, ref string) error {
	if err := validateRef(ref); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "git", "fetch", "origin", ref)
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git fetch origin %s: %w: %s", ref, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Diff returns the unified diff of HEAD against the merge base with baseRef,
// matching what a PR against that branch would contain.
func (s *Source) Diff(ctx context.Context, baseRef string) (string, error) {
	if err := validateRef(baseRef); err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, "git", "diff", baseRef+"...HEAD", "--")
	if s.workDir != "" {
		cmd.Dir = s.workDir
	}

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git diff %s...HEAD: %w", baseRef, err)
	}

	return string(out), nil
}

// validateRef rejects refs that git would parse as flags.
func validateRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("base ref cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("invalid ref %q: must not start with -", ref)
	}
	return nil
}
