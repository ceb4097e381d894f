/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package generate_test

import (
	"context"
	"strings"
	"testing"

	"github.com/repolens/repolens/generate"
	"github.com/repolens/repolens/promptbuilder"
)

// echoClient returns the prompt it was given, so tests can see what the
// executor built.
type echoClient struct{}

func (echoClient) Complete(_ context.Context, prompt string) (string, error) {
	return prompt, nil
}

type greetRequest struct {
	Name string `xml:"name"`
}

func (r *greetRequest) Bind(p *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	return p.BindXML("request", r)
}

func TestExecutorBindsRequest(t *testing.T) {
	t.Parallel()

	prompt := promptbuilder.MustNewPrompt(`Greet:

{{request}}`)
	exec, err := generate.NewExecutor[*greetRequest](echoClient{}, prompt)
	if err != nil {
		t.Fatalf("NewExecutor() = %v", err)
	}

	got, err := exec.Execute(context.Background(), &greetRequest{Name: "ada"})
	if err != nil {
		t.Fatalf("Execute() = %v", err)
	}
	if !strings.Contains(got, "<name>ada</name>") {
		t.Errorf("Execute() built prompt %q, want bound request", got)
	}
}

func TestExecutorValidatesArguments(t *testing.T) {
	t.Parallel()

	prompt := promptbuilder.MustNewPrompt(`{{request}}`)
	if _, err := generate.NewExecutor[*greetRequest](nil, prompt); err == nil {
		t.Error("nil client accepted, want error")
	}
	if _, err := generate.NewExecutor[*greetRequest](echoClient{}, nil); err == nil {
		t.Error("nil prompt accepted, want error")
	}
}
