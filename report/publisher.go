/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
)

// commitMessage is used for the create-or-update commit on the remote file.
const commitMessage = "Add AI-generated summary"

// PublishError reports a failed remote write. It is non-fatal: by the time
// publishing runs, the local artifact has already been written.
type PublishError struct {
	Owner string
	Repo  string
	Path  string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publishing %s to %s/%s: %v", e.Path, e.Owner, e.Repo, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}

// Publisher pushes the rendered report into the source repository.
type Publisher interface {
	Publish(ctx context.Context, owner, repo, content string) error
}

// GitHubPublisher creates or updates the report file via the contents API.
type GitHubPublisher struct {
	client *github.Client
	path   string
}

// NewGitHubPublisher creates a publisher writing to path in the target
// repository's default branch. An empty path selects DefaultFilename.
func NewGitHubPublisher(client *github.Client, path string) *GitHubPublisher {
	if path == "" {
		path = DefaultFilename
	}
	return &GitHubPublisher{client: client, path: path}
}

// Publish implements Publisher. An existing file is updated in place using
// its current blob SHA; a missing one is created.
func (p *GitHubPublisher) Publish(ctx context.Context, owner, repo, content string) error {
	log := clog.FromContext(ctx)

	opts := &github.RepositoryContentFileOptions{
		Message: github.Ptr(commitMessage),
		Content: []byte(content),
	}

	existing, _, _, err := p.client.Repositories.GetContents(ctx, owner, repo, p.path, nil)
	switch {
	case err == nil && existing != nil:
		opts.SHA = github.Ptr(existing.GetSHA())
		if _, _, err := p.client.Repositories.UpdateFile(ctx, owner, repo, p.path, opts); err != nil {
			return &PublishError{Owner: owner, Repo: repo, Path: p.path, Err: err}
		}
	case isNotFound(err):
		if _, _, err := p.client.Repositories.CreateFile(ctx, owner, repo, p.path, opts); err != nil {
			return &PublishError{Owner: owner, Repo: repo, Path: p.path, Err: err}
		}
	default:
		return &PublishError{Owner: owner, Repo: repo, Path: p.path, Err: err}
	}

	log.With("owner", owner).With("repo", repo).With("path", p.path).
		Info("Published report to repository")
	return nil
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
