/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/config"
	"github.com/repolens/repolens/fetch"
	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/pipeline"
	"github.com/repolens/repolens/report"
	"github.com/repolens/repolens/summarize"
)

func newExplainCommand() *cobra.Command {
	var (
		owner      string
		repo       string
		extensions []string
		model      string
		backendURL string
		output     string
		publish    bool
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Summarize a GitHub repository with a local model",
		Long: `Fetches the repository's files, summarizes each one with the local
model backend, synthesizes a repository-level narrative, and writes the
result to a local markdown report. With --publish the report is also
committed back to the repository.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := clog.FromContext(ctx)

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if owner != "" {
				cfg.Owner = owner
			}
			if repo != "" {
				cfg.Repo = repo
			}
			if len(extensions) > 0 {
				cfg.Extensions = extensions
			}
			if model != "" {
				cfg.Model = model
			}
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}
			if output != "" {
				cfg.Output = output
			}
			if cmd.Flags().Changed("publish") {
				cfg.Publish = publish
			}
			if cfg.Owner == "" || cfg.Repo == "" {
				return errors.New("a repository is required: pass --owner and --repo or set REPOLENS_OWNER and REPOLENS_REPO")
			}

			client, err := generate.NewClient(cfg.BackendURL, generate.WithModel(cfg.Model))
			if err != nil {
				return err
			}
			summarizer, err := summarize.NewSummarizer(client, summarize.WithContentLimit(cfg.ContentLimit))
			if err != nil {
				return err
			}

			gh := fetch.NewGitHubClient(ctx, cfg.GitHubToken)
			var publisher report.Publisher
			if cfg.Publish {
				if cfg.GitHubToken == "" {
					return errors.New("publishing requires GITHUB_TOKEN")
				}
				publisher = report.NewGitHubPublisher(gh, cfg.Output)
			}

			p, err := pipeline.New(fetch.NewFetcher(gh), summarizer, report.NewWriter(cfg.Output), publisher)
			if err != nil {
				return err
			}

			log.With("owner", cfg.Owner).With("repo", cfg.Repo).
				With("model", cfg.Model).
				Info("Explaining repository")

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			result, err := p.Run(ctx, cfg.Owner, cfg.Repo, cfg.Extensions, cfg.Model)
			if err != nil {
				return explainError(cfg, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Summary saved to %s\n", result.LocalPath)
			if result.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Skipped %d file(s) that failed to summarize\n", result.Skipped)
			}
			if result.PublishErr != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Publishing failed (local report is intact): %v\n", result.PublishErr)
			} else if cfg.Publish {
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s to %s/%s\n", report.DefaultFilename, cfg.Owner, cfg.Repo)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "repository owner")
	cmd.Flags().StringVar(&repo, "repo", "", "repository name")
	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "file extensions to include, e.g. .py,.go (default: all files)")
	cmd.Flags().StringVar(&model, "model", "", "model name served by the backend")
	cmd.Flags().StringVar(&backendURL, "backend-url", "", "OpenAI-compatible backend endpoint")
	cmd.Flags().StringVar(&output, "output", "", "local report path")
	cmd.Flags().BoolVar(&publish, "publish", false, "commit the report back to the repository")
	return cmd
}

// explainError decorates the common failure modes with actionable hints.
func explainError(cfg *config.Config, err error) error {
	var notFound *fetch.NotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w (check the owner/repo spelling, or set GITHUB_TOKEN for private repositories)", err)
	}
	var auth *fetch.AuthError
	if errors.As(err, &auth) {
		return fmt.Errorf("%w (check that GITHUB_TOKEN is valid and has repo access)", err)
	}
	var unavailable *generate.BackendUnavailableError
	if errors.As(err, &unavailable) {
		return fmt.Errorf("%w (is the backend running? try: ollama pull %s)", err, cfg.Model)
	}
	return err
}
