/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/repolens/repolens/config"
	"github.com/repolens/repolens/gitdiff"
	"github.com/repolens/repolens/prdesc"
)

func newPRDescCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prdesc [server-command] [server-args...]",
		Short: "Draft a PR description from the working tree's pending changes",
		Long: `Collects the staged and unstaged git diff of the current repository
and asks an MCP server for a pull request description. The server command
may be given as arguments or via MCP_SERVER_COMMAND / MCP_SERVER_ARGS.
When neither is set, "repolens serve" is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := clog.FromContext(ctx)

			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}

			command := cfg.MCPServerCommand
			serverArgs := cfg.MCPArgs()
			if len(args) > 0 {
				command = args[0]
				serverArgs = args[1:]
			}
			if command == "" {
				// Serve our own backend over MCP by default.
				exe, err := os.Executable()
				if err != nil {
					return fmt.Errorf("no MCP server configured and the executable path is unknown: %w", err)
				}
				command = exe
				serverArgs = []string{"serve"}
			}

			dir, err := os.Getwd()
			if err != nil {
				return err
			}
			diff, err := gitdiff.Collect(ctx, dir)
			if err != nil {
				return err
			}
			if diff.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes detected in git repository.")
				return nil
			}

			log.With("command", command).
				With("args", strings.Join(serverArgs, " ")).
				Info("Connecting to MCP server")

			ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()

			rpc, err := prdesc.Spawn(ctx, command, serverArgs...)
			if err != nil {
				return err
			}
			defer rpc.Close()

			g, err := prdesc.NewGenerator(rpc)
			if err != nil {
				return err
			}
			description, err := g.Generate(ctx, diff)
			if err != nil {
				var noTool *prdesc.NoToolError
				if errors.As(err, &noTool) {
					return fmt.Errorf("%w (point MCP_SERVER_COMMAND at a server with a text generation tool)", err)
				}
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintln(out, "GENERATED PR DESCRIPTION")
			fmt.Fprintln(out, strings.Repeat("=", 40))
			fmt.Fprintln(out)
			fmt.Fprintln(out, description)
			return nil
		},
	}
	return cmd
}
