/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package generate is the client for the local text-generation backend.
//
// The backend is Ollama, spoken to through its OpenAI-compatible endpoint
// using the OpenAI Go SDK; any server implementing the same surface works.
// Two layers are provided:
//
//   - Client sends one raw prompt and returns one completion, with bounded
//     retry on transient errors and token-usage metrics.
//   - Executor wraps a Client with a promptbuilder template, binding a
//     request into the template before each call.
//
// If the backend cannot be reached at all, calls fail with
// *BackendUnavailableError so callers can abort the run cleanly.
package generate
