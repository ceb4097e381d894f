/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package fetch retrieves a repository's text files from GitHub.
//
// The fetcher walks the repository's git tree recursively, downloads each
// blob, and filters by file extension. Files that do not decode as UTF-8
// text (vendored binaries, images, archives) are skipped with a warning
// rather than failing the run; the skip is logged per file so the policy is
// visible in the output.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"github.com/repolens/repolens/retry"
	"golang.org/x/oauth2"
)

// SourceFile is one text file fetched from the repository.
type SourceFile struct {
	// Path is the file's path relative to the repository root.
	Path string
	// Content is the decoded file content.
	Content string
	// Extension is the file's extension including the dot, e.g. ".py".
	Extension string
}

// Fetcher lists and downloads repository files.
type Fetcher struct {
	client      *github.Client
	retryConfig retry.Config
}

// NewFetcher creates a Fetcher over the given GitHub client.
func NewFetcher(client *github.Client) *Fetcher {
	return &Fetcher{
		client:      client,
		retryConfig: retry.DefaultConfig(),
	}
}

// NewGitHubClient builds a GitHub API client. An empty token yields an
// unauthenticated client restricted to public repositories.
func NewGitHubClient(ctx context.Context, token string) *github.Client {
	var hc *http.Client
	if token != "" {
		hc = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	}
	return github.NewClient(hc)
}

// Fetch enumerates every file in the repository's default branch and returns
// those whose extension is in extFilter. An empty filter accepts all files.
// It fails with *NotFoundError if the repository is missing or inaccessible
// and *AuthError if credentials are rejected.
func (f *Fetcher) Fetch(ctx context.Context, owner, repo string, extFilter []string) ([]SourceFile, error) {
	log := clog.FromContext(ctx)

	accept := normalizeExtensions(extFilter)

	tree, err := retry.Do(ctx, f.retryConfig, "get_tree", isRetryable, func() (*github.Tree, error) {
		t, _, err := f.client.Git.GetTree(ctx, owner, repo, "HEAD", true)
		return t, err
	})
	if err != nil {
		return nil, classify(owner, repo, err)
	}

	if tree.GetTruncated() {
		log.With("owner", owner).With("repo", repo).
			Warn("Repository tree was truncated by the API; some files will be missing")
	}

	var files []SourceFile
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		p := entry.GetPath()
		ext := path.Ext(p)
		if len(accept) > 0 {
			if _, ok := accept[ext]; !ok {
				continue
			}
		}

		content, err := retry.Do(ctx, f.retryConfig, "get_blob", isRetryable, func() ([]byte, error) {
			data, _, err := f.client.Git.GetBlobRaw(ctx, owner, repo, entry.GetSHA())
			return data, err
		})
		if err != nil {
			return nil, classify(owner, repo, fmt.Errorf("fetching %s: %w", p, err))
		}

		if !isText(content) {
			log.With("path", p).Info("Skipping binary file")
			continue
		}

		files = append(files, SourceFile{
			Path:      p,
			Content:   string(content),
			Extension: ext,
		})
	}

	log.With("owner", owner).With("repo", repo).
		With("files", len(files)).
		Info("Fetched repository files")

	return files, nil
}

// normalizeExtensions builds a lookup set, tolerating entries given without
// the leading dot ("py" and ".py" are equivalent).
func normalizeExtensions(exts []string) map[string]struct{} {
	accept := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		accept[e] = struct{}{}
	}
	return accept
}

// isText reports whether content decodes as UTF-8 with no NUL bytes.
func isText(content []byte) bool {
	if bytes.IndexByte(content, 0) != -1 {
		return false
	}
	return utf8.Valid(content)
}
