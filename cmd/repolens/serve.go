/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repolens/repolens/config"
	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/mcpserve"
)

func newServeCommand() *cobra.Command {
	var backendURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the local model backend as an MCP server on stdio",
		Long: `Serves a generate_completion tool over the Model Context Protocol on
stdin/stdout, backed by the configured OpenAI-compatible endpoint. Any MCP
client, including "repolens prdesc", can use it for text generation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if backendURL != "" {
				cfg.BackendURL = backendURL
			}

			s, err := mcpserve.New(func(model string) (generate.Interface, error) {
				return generate.NewClient(cfg.BackendURL, generate.WithModel(model))
			})
			if err != nil {
				return err
			}
			if err := mcpserve.ServeStdio(s); err != nil {
				return fmt.Errorf("MCP server exited: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&backendURL, "backend-url", "", "OpenAI-compatible backend endpoint")
	return cmd
}
