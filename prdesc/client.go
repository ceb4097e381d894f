/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package prdesc

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// RPC is the slice of an MCP session the generator needs: discover tools and
// call one. The stdio transport satisfies it; tests provide their own.
type RPC interface {
	Initialize(ctx context.Context, req mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, req mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// Spawn starts the given command as an MCP server speaking stdio and
// completes the initialize handshake. The caller owns the returned session
// and must Close it.
func Spawn(ctx context.Context, command string, args ...string) (RPC, error) {
	c, err := client.NewStdioMCPClient(command, os.Environ(), args...)
	if err != nil {
		return nil, fmt.Errorf("starting MCP server %q: %w", command, err)
	}

	var initReq mcp.InitializeRequest
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "repolens",
		Version: "dev",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, fmt.Errorf("initializing MCP session with %q: %w", command, err)
	}
	return c, nil
}
