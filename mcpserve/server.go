/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package mcpserve exposes the local generation backend as an MCP server
// speaking stdio, so MCP clients (including the prdesc command) can use it
// for text generation.
package mcpserve

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/genmetrics"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ClientFactory creates a generation client for the requested model. The
// serve command binds this to the configured backend URL.
type ClientFactory func(model string) (generate.Interface, error)

// New builds the MCP server with the generate_completion tool registered.
func New(factory ClientFactory) (*server.MCPServer, error) {
	if factory == nil {
		return nil, errors.New("a client factory is required")
	}

	s := server.NewMCPServer(
		"repolens",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	tool := mcp.NewTool("generate_completion",
		mcp.WithDescription("Generate text using the local model backend"),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt to generate text for"),
		),
		mcp.WithString("model",
			mcp.Description(fmt.Sprintf("The model to use (default: %s)", generate.DefaultModel)),
		),
	)
	s.AddTool(tool, completionHandler(factory))
	return s, nil
}

// ServeStdio runs the server over stdin/stdout until the client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// completionHandler resolves the requested model to a client and runs the
// completion. Generation failures come back as tool errors rather than
// protocol errors, so the client sees the message.
func completionHandler(factory ClientFactory) server.ToolHandlerFunc {
	metrics := genmetrics.NewGenAI("repolens.mcpserve")
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log := clog.FromContext(ctx)

		prompt, err := req.RequireString("prompt")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		model := req.GetString("model", generate.DefaultModel)

		client, err := factory(model)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("creating client for model %q: %v", model, err)), nil
		}

		log.With("model", model).Info("Handling generate_completion")
		metrics.RecordToolCall(ctx, model, "generate_completion")
		text, err := client.Complete(ctx, prompt)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error: %v", err)), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}
