/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package promptbuilder provides typed prompt templates with explicit
// placeholder bindings.
//
// Templates use {{name}} placeholders. Template text and developer-chosen
// values are bound as string literals; runtime data (file contents, diffs,
// summaries) is bound structurally as XML or YAML so that untrusted content
// stays clearly delimited inside the prompt:
//
//	prompt := promptbuilder.MustNewPrompt(`Summarize this file:
//
//	{{file}}`)
//	bound, err := prompt.BindXML("file", file)
//	text, err := bound.Build()
//
// Build fails if any placeholder is left unbound, so a prompt cannot be sent
// with a hole in it.
package promptbuilder
