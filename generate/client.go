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
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/repolens/repolens/genmetrics"
	"github.com/repolens/repolens/promptbuilder"
	"github.com/repolens/repolens/retry"
)

// DefaultBaseURL is Ollama's OpenAI-compatible endpoint.
const DefaultBaseURL = "http://localhost:11434/v1"

// DefaultModel is the baseline model used when none is configured.
const DefaultModel = "llama3"

// Interface is the public interface for one-shot text generation.
type Interface interface {
	// Complete sends a single prompt and returns the backend's raw text
	// response unmodified.
	Complete(ctx context.Context, prompt string) (string, error)
}

// client provides the private implementation over the OpenAI SDK.
type client struct {
	api                openai.Client
	baseURL            string
	modelName          string
	systemInstructions *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	retryConfig        retry.Config
	genaiMetrics       *genmetrics.GenAI
}

// NewClient creates a generation client against the given base URL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (Interface, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &client{
		baseURL:   baseURL,
		modelName: DefaultModel,
		// temperature 0 keeps summaries as deterministic as the backend allows
		temperature:  0,
		retryConfig:  retry.DefaultConfig(),
		genaiMetrics: genmetrics.NewGenAI("repolens.generate"),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	// Ollama ignores the API key but the SDK requires one to be set.
	c.api = openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey("unused"),
	)

	return c, nil
}

// Complete implements Interface.
func (c *client) Complete(ctx context.Context, prompt string) (string, error) {
	log := clog.FromContext(ctx)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if c.systemInstructions != nil {
		system, err := c.systemInstructions.Build()
		if err != nil {
			return "", fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.modelName),
		Messages:    messages,
		Temperature: openai.Float(c.temperature),
	}
	if c.maxTokens > 0 {
		params.MaxTokens = openai.Int(c.maxTokens)
	}

	log.With("model", c.modelName).
		With("prompt_length", len(prompt)).
		Debug("Sending completion request")

	completion, err := retry.Do(ctx, c.retryConfig, "chat_completion", isRetryable, func() (*openai.ChatCompletion, error) {
		return c.api.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		var apierr *openai.Error
		if !errors.As(err, &apierr) {
			// The request never produced an HTTP response: the backend is
			// down, not merely unhappy.
			return "", &BackendUnavailableError{BaseURL: c.baseURL, Err: err}
		}
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		c.genaiMetrics.RecordTokens(ctx, c.modelName, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("backend returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
