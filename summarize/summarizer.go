/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package summarize turns fetched source files into natural-language
// summaries via the generation backend: one round trip per file, then one
// more to synthesize a repository-level narrative.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/repolens/repolens/fetch"
	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/promptbuilder"
)

// DefaultContentLimit caps how many bytes of a file are embedded in a
// prompt. Local models have small context windows; content beyond the limit
// is truncated with a marker rather than failing the file.
const DefaultContentLimit = 48 * 1024

// truncationMarker is appended to content that was cut at the limit.
const truncationMarker = "\n... [truncated]"

// FileSummary pairs a file path with its generated summary.
type FileSummary struct {
	Path    string `yaml:"path"`
	Summary string `yaml:"summary"`
}

// fileRequest binds one file into the per-file prompt.
type fileRequest struct {
	Path    string `xml:"path"`
	Content string `xml:"content"`
}

func (r *fileRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindXML("file", r)
}

// repoRequest binds the collected file summaries into the synthesis prompt.
type repoRequest struct {
	summaries []FileSummary
}

func (r *repoRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindYAML("summaries", r.summaries)
}

// Summarizer produces per-file and repository-level summaries.
type Summarizer struct {
	fileExec     *generate.Executor[*fileRequest]
	repoExec     *generate.Executor[*repoRequest]
	contentLimit int
}

// Option is a functional option for configuring a Summarizer.
type Option func(*Summarizer) error

// WithContentLimit overrides the per-file content byte limit.
func WithContentLimit(limit int) Option {
	return func(s *Summarizer) error {
		if limit <= 0 {
			return fmt.Errorf("content limit must be positive, got %d", limit)
		}
		s.contentLimit = limit
		return nil
	}
}

// NewSummarizer creates a Summarizer over the given generation client.
func NewSummarizer(client generate.Interface, opts ...Option) (*Summarizer, error) {
	fileExec, err := generate.NewExecutor[*fileRequest](client, filePrompt)
	if err != nil {
		return nil, err
	}
	repoExec, err := generate.NewExecutor[*repoRequest](client, repoPrompt)
	if err != nil {
		return nil, err
	}

	s := &Summarizer{
		fileExec:     fileExec,
		repoExec:     repoExec,
		contentLimit: DefaultContentLimit,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return s, nil
}

// SummarizeFile produces a summary for one source file. The backend's text
// is returned unmodified.
func (s *Summarizer) SummarizeFile(ctx context.Context, file fetch.SourceFile) (FileSummary, error) {
	content := file.Content
	if len(content) > s.contentLimit {
		clog.FromContext(ctx).With("path", file.Path).
			With("size", len(content)).
			With("limit", s.contentLimit).
			Warn("File exceeds content limit, truncating")
		content = truncate(content, s.contentLimit) + truncationMarker
	}

	summary, err := s.fileExec.Execute(ctx, &fileRequest{Path: file.Path, Content: content})
	if err != nil {
		return FileSummary{}, fmt.Errorf("summarizing %s: %w", file.Path, err)
	}
	return FileSummary{Path: file.Path, Summary: summary}, nil
}

// SummarizeRepository synthesizes a single narrative from all per-file
// summaries. It runs once per run, after every file summary exists.
func (s *Summarizer) SummarizeRepository(ctx context.Context, summaries []FileSummary) (string, error) {
	if len(summaries) == 0 {
		return "", errors.New("no file summaries to synthesize")
	}
	return s.repoExec.Execute(ctx, &repoRequest{summaries: summaries})
}

// truncate cuts s at limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	s = s[:limit]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
