/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package gitdiff collects the working tree's pending changes.
//
// Repository discovery and branch identification go through go-git; the
// diff text itself comes from the git CLI, whose output format is the
// contract reviewers (and models) know.
package gitdiff

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Diff is the combined pending change set of a working tree.
type Diff struct {
	// Branch is the checked-out branch name, or the abbreviated ref when
	// detached.
	Branch string
	// Staged is the output of `git diff --cached`.
	Staged string
	// Unstaged is the output of `git diff`.
	Unstaged string
}

// Empty reports whether there are no pending changes at all.
func (d *Diff) Empty() bool {
	return strings.TrimSpace(d.Staged) == "" && strings.TrimSpace(d.Unstaged) == ""
}

// Combined returns staged and unstaged changes as one diff text.
func (d *Diff) Combined() string {
	return d.Staged + "\n" + d.Unstaged
}

// Collect gathers the pending changes of the repository containing dir.
// It fails if dir is not inside a git repository.
func Collect(ctx context.Context, dir string) (*Diff, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s is not inside a git repository", dir)
		}
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	branch := ""
	if head, err := repo.Head(); err == nil {
		branch = head.Name().Short()
	}

	staged, err := runGitDiff(ctx, dir, "--cached")
	if err != nil {
		return nil, err
	}
	unstaged, err := runGitDiff(ctx, dir)
	if err != nil {
		return nil, err
	}

	return &Diff{
		Branch:   branch,
		Staged:   staged,
		Unstaged: unstaged,
	}, nil
}

func runGitDiff(ctx context.Context, dir string, extra ...string) (string, error) {
	args := append([]string{"-C", dir, "diff"}, extra...)
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("git diff failed: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", fmt.Errorf("running git diff: %w", err)
	}
	return string(out), nil
}
