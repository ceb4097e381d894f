/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package fetch

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v84/github"
)

// NotFoundError reports that the repository does not exist or is not visible
// with the current credentials.
type NotFoundError struct {
	Owner string
	Repo  string
	Err   error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("repository %s/%s not found", e.Owner, e.Repo)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// AuthError reports that the request was rejected for lack of a valid
// credential.
type AuthError struct {
	Owner string
	Repo  string
	Err   error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed for %s/%s: %v", e.Owner, e.Repo, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// classify maps a go-github error onto the fetcher's typed errors.
func classify(owner, repo string, err error) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		// Rate limits are transient, not auth failures; surface as-is.
		return err
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return &NotFoundError{Owner: owner, Repo: repo, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Owner: owner, Repo: repo, Err: err}
		}
	}
	return err
}

// isRetryable classifies transient GitHub API errors: rate limits and
// server-side failures.
func isRetryable(err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode >= 500
	}
	return false
}
