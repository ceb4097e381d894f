/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package config loads runtime configuration from the environment, with an
// optional .env file layered underneath.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config is the environment-driven configuration shared by all commands.
// Flags may override individual fields after loading.
type Config struct {
	// Owner and Repo identify the repository to explain.
	Owner string `env:"REPOLENS_OWNER"`
	Repo  string `env:"REPOLENS_REPO"`

	// Extensions is a comma-separated extension filter, e.g. ".py,.go".
	// Empty means all files.
	Extensions []string `env:"REPOLENS_EXTENSIONS"`

	// Model is the model name the backend serves.
	Model string `env:"REPOLENS_MODEL,default=llama3"`

	// BackendURL is the OpenAI-compatible endpoint of the local backend.
	BackendURL string `env:"REPOLENS_BACKEND_URL,default=http://localhost:11434/v1"`

	// Output is the local report path.
	Output string `env:"REPOLENS_OUTPUT,default=SUMMARY.md"`

	// Publish pushes the report back to the repository when set.
	Publish bool `env:"REPOLENS_PUBLISH,default=false"`

	// GitHubToken authenticates GitHub API calls. Optional for public
	// repositories, required for publishing.
	GitHubToken string `env:"GITHUB_TOKEN"`

	// ContentLimit bounds the bytes of a file embedded in a prompt.
	ContentLimit int `env:"REPOLENS_CONTENT_LIMIT,default=49152"`

	// Timeout bounds one end-to-end run. Local models are slow; the
	// default is generous but finite.
	Timeout time.Duration `env:"REPOLENS_TIMEOUT,default=30m"`

	// MCPServerCommand and MCPServerArgs name the MCP server the prdesc
	// command spawns when no command is given on the CLI.
	MCPServerCommand string `env:"MCP_SERVER_COMMAND"`
	MCPServerArgs    string `env:"MCP_SERVER_ARGS"`
}

// Load reads .env (when present) and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		clog.FromContext(ctx).With("error", err).Warn("Skipping unreadable .env file")
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment: %w", err)
	}
	cfg.Extensions = normalize(cfg.Extensions)
	return &cfg, nil
}

// MCPArgs splits the configured MCP server arguments on whitespace.
func (c *Config) MCPArgs() []string {
	return strings.Fields(c.MCPServerArgs)
}

// normalize trims entries and drops empty ones, so trailing commas and
// stray spaces in the filter are harmless.
func normalize(exts []string) []string {
	var out []string
	for _, e := range exts {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
