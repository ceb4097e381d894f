/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package genmetrics provides OpenTelemetry metrics for generation calls.
package genmetrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI holds counters for token usage and tool invocations. The model name
// is a dimension on every metric, so one instance serves all backends.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	toolCalls        metric.Int64Counter
}

// NewGenAI creates a GenAI metrics instance on the named meter. If a counter
// fails to initialize it degrades to a no-op rather than failing the caller.
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	toolCalls, err := meter.Int64Counter("genai.tool.calls",
		metric.WithDescription("The number of tool invocations"),
		metric.WithUnit("{calls}"))
	if err != nil {
		slog.Warn("Failed to create tool call counter, metrics will be disabled", "error", err, "meter", meterName)
		toolCalls = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		toolCalls:        toolCalls,
	}
}

// RecordTokens records prompt and completion token usage for one call.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64) {
	attrs := metric.WithAttributes(attribute.String("model", model))
	m.promptTokens.Add(ctx, promptTokens, attrs)
	m.completionTokens.Add(ctx, completionTokens, attrs)
}

// RecordToolCall records one tool invocation against the named tool.
func (m *GenAI) RecordToolCall(ctx context.Context, model, toolName string) {
	m.toolCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("model", model),
		attribute.String("tool", toolName),
	))
}
