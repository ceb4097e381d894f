/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline runs one end-to-end explanation: fetch the repository,
// summarize each file, synthesize the repository narrative, write the
// report, and optionally publish it. Execution is strictly sequential; each
// stage consumes the complete output of the previous one.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/repolens/repolens/fetch"
	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/report"
	"github.com/repolens/repolens/summarize"
)

// Result is the outcome of one run.
type Result struct {
	// LocalPath is where the report was written.
	LocalPath string
	// Report is the assembled report.
	Report *report.Report
	// PublishErr records a failed publish. Publishing failures are
	// non-fatal: the local artifact was already written.
	PublishErr error
	// Skipped counts files that were fetched but failed to summarize.
	Skipped int
}

// Fetcher enumerates and downloads a repository's files.
type Fetcher interface {
	Fetch(ctx context.Context, owner, repo string, extFilter []string) ([]fetch.SourceFile, error)
}

// Pipeline wires the stages of a run together.
type Pipeline struct {
	fetcher    Fetcher
	summarizer *summarize.Summarizer
	writer     *report.Writer
	publisher  report.Publisher // nil disables publishing
}

// New creates a Pipeline. Passing a nil publisher disables publishing.
func New(fetcher Fetcher, summarizer *summarize.Summarizer, writer *report.Writer, publisher report.Publisher) (*Pipeline, error) {
	if fetcher == nil || summarizer == nil || writer == nil {
		return nil, errors.New("fetcher, summarizer, and writer are required")
	}
	return &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
		writer:     writer,
		publisher:  publisher,
	}, nil
}

// Run executes the full pipeline for one repository.
//
// Failures at the fetch stage and an unreachable backend abort the run. A
// single file failing to summarize is logged and skipped, matching the rest
// of the files still being useful. A publish failure is recorded on the
// Result rather than returned: the local write has already succeeded.
func (p *Pipeline) Run(ctx context.Context, owner, repo string, extensions []string, model string) (*Result, error) {
	log := clog.FromContext(ctx)

	files, err := p.fetcher.Fetch(ctx, owner, repo, extensions)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found in %s/%s matching the extension filter", owner, repo)
	}

	summaries := make([]summarize.FileSummary, 0, len(files))
	skipped := 0
	for i, file := range files {
		log.With("path", file.Path).
			Infof("Summarizing file %d/%d", i+1, len(files))

		fs, err := p.summarizer.SummarizeFile(ctx, file)
		if err != nil {
			var unavailable *generate.BackendUnavailableError
			if errors.As(err, &unavailable) {
				return nil, err
			}
			log.With("path", file.Path).With("error", err).
				Error("Failed to summarize file, skipping")
			skipped++
			continue
		}
		summaries = append(summaries, fs)
	}

	if len(summaries) == 0 {
		return nil, fmt.Errorf("failed to summarize any of the %d files", len(files))
	}

	overview, err := p.summarizer.SummarizeRepository(ctx, summaries)
	if err != nil {
		return nil, fmt.Errorf("synthesizing repository summary: %w", err)
	}

	rep := &report.Report{
		Owner:    owner,
		Repo:     repo,
		Model:    model,
		Overview: overview,
		Files:    summaries,
	}

	localPath, err := p.writer.Write(ctx, rep)
	if err != nil {
		return nil, err
	}

	result := &Result{
		LocalPath: localPath,
		Report:    rep,
		Skipped:   skipped,
	}

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, owner, repo, rep.Render()); err != nil {
			log.With("error", err).Error("Publishing report failed; local artifact is intact")
			result.PublishErr = err
		}
	}

	return result, nil
}
