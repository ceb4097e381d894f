/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"errors"
	"fmt"

	"github.com/repolens/repolens/promptbuilder"
	"github.com/repolens/repolens/retry"
)

// Option is a functional option for configuring a Client.
type Option func(*client) error

// WithModel sets the model identifier sent to the backend.
func WithModel(model string) Option {
	return func(c *client) error {
		if model == "" {
			return errors.New("model cannot be empty")
		}
		c.modelName = model
		return nil
	}
}

// WithTemperature sets the sampling temperature.
// Zero keeps responses as deterministic as the backend allows.
func WithTemperature(temperature float64) Option {
	return func(c *client) error {
		if temperature < 0.0 || temperature > 2.0 {
			return fmt.Errorf("temperature must be between 0.0 and 2.0, got %f", temperature)
		}
		c.temperature = temperature
		return nil
	}
}

// WithMaxTokens caps the completion length. Zero leaves the cap unset.
func WithMaxTokens(tokens int64) Option {
	return func(c *client) error {
		if tokens < 0 {
			return fmt.Errorf("max tokens cannot be negative, got %d", tokens)
		}
		c.maxTokens = tokens
		return nil
	}
}

// WithSystemInstructions sets a system prompt sent ahead of every request.
func WithSystemInstructions(prompt *promptbuilder.Prompt) Option {
	return func(c *client) error {
		if prompt == nil {
			return errors.New("system instructions prompt cannot be nil")
		}
		c.systemInstructions = prompt
		return nil
	}
}

// WithRetryConfig overrides the retry behavior for transient backend errors.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *client) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		c.retryConfig = cfg
		return nil
	}
}
