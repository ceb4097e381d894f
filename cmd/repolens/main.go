/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package main implements the repolens CLI: explain a GitHub repository with
// a local model, draft a PR description from the working tree, or serve the
// backend over MCP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := clog.New(slog.Default().Handler())
	ctx = clog.WithLogger(ctx, log)

	root := &cobra.Command{
		Use:           "repolens",
		Short:         "Explain repositories and draft PR descriptions with a local model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExplainCommand())
	root.AddCommand(newPRDescCommand())
	root.AddCommand(newServeCommand())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
