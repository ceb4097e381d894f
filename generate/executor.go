/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/repolens/repolens/promptbuilder"
)

// Executor runs a fixed prompt template against a generation client,
// binding a request into the template for each call.
type Executor[Request promptbuilder.Bindable] struct {
	client Interface
	prompt *promptbuilder.Prompt
}

// NewExecutor creates an Executor over the given client and template.
func NewExecutor[Request promptbuilder.Bindable](client Interface, prompt *promptbuilder.Prompt) (*Executor[Request], error) {
	if client == nil {
		return nil, errors.New("client cannot be nil")
	}
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}
	return &Executor[Request]{client: client, prompt: prompt}, nil
}

// Execute binds the request into the template, sends the built prompt, and
// returns the backend's raw text response.
func (e *Executor[Request]) Execute(ctx context.Context, request Request) (string, error) {
	bound, err := request.Bind(e.prompt)
	if err != nil {
		return "", fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := bound.Build()
	if err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}

	clog.FromContext(ctx).With("prompt_length", len(prompt)).
		Debug("Executing bound prompt")

	return e.client.Complete(ctx, prompt)
}
