/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package mcpserve

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repolens/repolens/generate"
)

// fakeClient echoes its prompt, recording the model it was created for.
type fakeClient struct {
	model string
	err   error
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.model + ": " + prompt, nil
}

func factoryFor(t *testing.T, failWith error) ClientFactory {
	t.Helper()
	return func(model string) (generate.Interface, error) {
		return &fakeClient{model: model, err: failWith}, nil
	}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = "generate_completion"
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	var sb strings.Builder
	for _, c := range res.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}
	return sb.String()
}

func TestCompletionHandlerGenerates(t *testing.T) {
	t.Parallel()

	handler := completionHandler(factoryFor(t, nil))
	res, err := handler(context.Background(), callReq(map[string]any{
		"prompt": "describe this change",
		"model":  "mistral",
	}))
	if err != nil {
		t.Fatalf("handler = %v", err)
	}
	if res.IsError {
		t.Fatalf("handler returned tool error: %s", resultText(t, res))
	}
	if got := resultText(t, res); got != "mistral: describe this change" {
		t.Errorf("result = %q, want model-prefixed echo", got)
	}
}

func TestCompletionHandlerDefaultsModel(t *testing.T) {
	t.Parallel()

	handler := completionHandler(factoryFor(t, nil))
	res, err := handler(context.Background(), callReq(map[string]any{
		"prompt": "hello",
	}))
	if err != nil {
		t.Fatalf("handler = %v", err)
	}
	if got, want := resultText(t, res), generate.DefaultModel+": hello"; got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
}

func TestCompletionHandlerRequiresPrompt(t *testing.T) {
	t.Parallel()

	handler := completionHandler(factoryFor(t, nil))
	res, err := handler(context.Background(), callReq(map[string]any{}))
	if err != nil {
		t.Fatalf("handler = %v, want tool error instead", err)
	}
	if !res.IsError {
		t.Error("missing prompt accepted, want tool error")
	}
}

func TestCompletionHandlerSurfacesBackendFailure(t *testing.T) {
	t.Parallel()

	backendErr := &generate.BackendUnavailableError{
		BaseURL: generate.DefaultBaseURL,
		Err:     errors.New("connection refused"),
	}
	handler := completionHandler(factoryFor(t, backendErr))
	res, err := handler(context.Background(), callReq(map[string]any{
		"prompt": "hello",
	}))
	if err != nil {
		t.Fatalf("handler = %v, want tool error instead", err)
	}
	if !res.IsError {
		t.Fatal("backend failure not flagged as tool error")
	}
	if got := resultText(t, res); !strings.Contains(got, "connection refused") {
		t.Errorf("tool error %q does not surface the cause", got)
	}
}

func TestNewRequiresFactory(t *testing.T) {
	t.Parallel()

	if _, err := New(nil); err == nil {
		t.Error("New(nil) succeeded, want error")
	}
	if _, err := New(factoryFor(t, nil)); err != nil {
		t.Errorf("New() = %v", err)
	}
}
