/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package prdesc generates pull request descriptions from the working tree's
// pending changes by delegating text generation to an MCP server over stdio.
package prdesc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/chainguard-dev/clog"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repolens/repolens/gitdiff"
	"github.com/repolens/repolens/promptbuilder"
)

// DefaultDiffLimit bounds the diff text embedded in the prompt, keeping the
// request inside typical local model context windows.
const DefaultDiffLimit = 10_000

const promptTemplate = `You are an expert software engineer. Please generate a comprehensive Pull Request description for the following code changes.
Include:
1. A clear title.
2. A summary of changes.
3. A list of modified files and key changes in each.
4. Any potential risks or things to note.

{{changes}}`

// preferredTools are recognized generation tool names, in order of
// preference. When none matches, any tool whose name mentions chat or
// generate is accepted.
var preferredTools = []string{"generate_completion", "chat", "generate", "summarize", "completion"}

// NoToolError reports that the connected MCP server exposes no tool usable
// for text generation.
type NoToolError struct {
	// Available lists the tool names the server did expose.
	Available []string
}

func (e *NoToolError) Error() string {
	if len(e.Available) == 0 {
		return "MCP server exposes no tools"
	}
	return fmt.Sprintf("no text generation tool found among: %s", strings.Join(e.Available, ", "))
}

// ToolCallError reports a failed or error-flagged tool invocation.
type ToolCallError struct {
	Tool string
	Err  error
}

func (e *ToolCallError) Error() string {
	return fmt.Sprintf("calling MCP tool %q: %v", e.Tool, e.Err)
}

func (e *ToolCallError) Unwrap() error { return e.Err }

// changesRequest carries the diff into the prompt.
type changesRequest struct {
	Branch string `xml:"branch,omitempty"`
	Diff   string `xml:"diff"`
}

func (r *changesRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindXML("changes", r)
}

// Generator produces PR descriptions over an established MCP session.
type Generator struct {
	rpc       RPC
	diffLimit int
}

// Option configures a Generator.
type Option func(*Generator) error

// WithDiffLimit overrides the diff byte budget embedded in the prompt.
func WithDiffLimit(limit int) Option {
	return func(g *Generator) error {
		if limit <= 0 {
			return fmt.Errorf("diff limit must be positive, got %d", limit)
		}
		g.diffLimit = limit
		return nil
	}
}

// NewGenerator creates a Generator on top of an MCP session.
func NewGenerator(rpc RPC, opts ...Option) (*Generator, error) {
	if rpc == nil {
		return nil, errors.New("an MCP session is required")
	}
	g := &Generator{rpc: rpc, diffLimit: DefaultDiffLimit}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Generate asks the MCP server for a PR description covering diff. It fails
// with a *NoToolError when the server has no generation tool, and with a
// *ToolCallError when the chosen tool's invocation fails.
func (g *Generator) Generate(ctx context.Context, diff *gitdiff.Diff) (string, error) {
	log := clog.FromContext(ctx)

	if diff.Empty() {
		return "", errors.New("no pending changes to describe")
	}

	tools, err := g.rpc.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return "", fmt.Errorf("listing MCP tools: %w", err)
	}

	tool, err := selectTool(tools.Tools)
	if err != nil {
		return "", err
	}
	log.With("tool", tool.Name).Info("Selected MCP generation tool")

	prompt, err := buildPrompt(diff, g.diffLimit)
	if err != nil {
		return "", err
	}

	var callReq mcp.CallToolRequest
	callReq.Params.Name = tool.Name
	callReq.Params.Arguments = mapArguments(tool, prompt)

	result, err := g.rpc.CallTool(ctx, callReq)
	if err != nil {
		return "", &ToolCallError{Tool: tool.Name, Err: err}
	}
	if result.IsError {
		return "", &ToolCallError{Tool: tool.Name, Err: fmt.Errorf("tool reported an error: %s", flattenText(result.Content))}
	}

	text := flattenText(result.Content)
	if strings.TrimSpace(text) == "" {
		return "", &ToolCallError{Tool: tool.Name, Err: errors.New("tool returned no text content")}
	}
	return text, nil
}

func buildPrompt(diff *gitdiff.Diff, limit int) (string, error) {
	p, err := promptbuilder.NewPrompt(promptTemplate)
	if err != nil {
		return "", err
	}
	req := &changesRequest{
		Branch: diff.Branch,
		Diff:   truncate(diff.Combined(), limit),
	}
	bound, err := req.Bind(p)
	if err != nil {
		return "", err
	}
	return bound.Build()
}

// truncate cuts s to at most limit bytes on a rune boundary.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// selectTool picks a generation tool: an exact preferred name first, then
// any tool whose name mentions chat or generate.
func selectTool(tools []mcp.Tool) (*mcp.Tool, error) {
	byName := make(map[string]*mcp.Tool, len(tools))
	names := make([]string, 0, len(tools))
	for i := range tools {
		byName[tools[i].Name] = &tools[i]
		names = append(names, tools[i].Name)
	}

	for _, want := range preferredTools {
		if t, ok := byName[want]; ok {
			return t, nil
		}
	}
	for i := range tools {
		lower := strings.ToLower(tools[i].Name)
		if strings.Contains(lower, "chat") || strings.Contains(lower, "generate") {
			return &tools[i], nil
		}
	}
	return nil, &NoToolError{Available: names}
}

// mapArguments shapes the prompt to the tool's input schema. Chat-style
// tools get a messages list; prompt/text parameters get the string directly;
// otherwise the first declared parameter receives it.
func mapArguments(tool *mcp.Tool, prompt string) map[string]any {
	props := tool.InputSchema.Properties

	if _, ok := props["messages"]; ok {
		return map[string]any{
			"messages": []map[string]any{{"role": "user", "content": prompt}},
		}
	}
	if _, ok := props["prompt"]; ok {
		return map[string]any{"prompt": prompt}
	}
	if _, ok := props["text"]; ok {
		return map[string]any{"text": prompt}
	}
	for name := range props {
		return map[string]any{name: prompt}
	}
	return map[string]any{}
}

// flattenText joins all text content items of a tool result.
func flattenText(content []mcp.Content) string {
	var parts []string
	for _, c := range content {
		if tc, ok := c.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
