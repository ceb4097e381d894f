/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/repolens/repolens/promptbuilder"
)

func TestNewPromptCollectsPlaceholders(t *testing.T) {
	t.Parallel()

	p, err := promptbuilder.NewPrompt(`Summarize {{path}} given {{content}} and {{path}} again`)
	if err != nil {
		t.Fatalf("NewPrompt() = %v", err)
	}

	want := map[string]struct{}{
		"path":    {},
		"content": {},
	}
	if diff := cmp.Diff(want, p.Placeholders()); diff != "" {
		t.Errorf("Placeholders() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPromptRejectsMalformedTemplates(t *testing.T) {
	t.Parallel()

	if _, err := promptbuilder.NewPrompt(`Hello {{name`); err == nil {
		t.Error("NewPrompt with unclosed binding succeeded, want error")
	}
	if _, err := promptbuilder.NewPrompt(`Hello {{}}`); err == nil {
		t.Error("NewPrompt with empty identifier succeeded, want error")
	}
	if _, err := promptbuilder.NewPrompt(`Hello {{first name}}`); err == nil {
		t.Error("NewPrompt with spaces in identifier succeeded, want error")
	}
}

func TestBuildFailsOnUnboundPlaceholder(t *testing.T) {
	t.Parallel()

	p := promptbuilder.MustNewPrompt(`Hello {{name}}`)
	if _, err := p.Build(); err == nil {
		t.Fatal("Build() succeeded with unbound placeholder, want error")
	} else if !strings.Contains(err.Error(), "unbound placeholder: name") {
		t.Errorf("Build() error = %v, want mention of unbound placeholder", err)
	}
}

func TestBindStringLiteral(t *testing.T) {
	t.Parallel()

	p := promptbuilder.MustNewPrompt(`You are reviewing {{repo}}.`)
	bound, err := p.BindStringLiteral("repo", "octocat/hello-world")
	if err != nil {
		t.Fatalf("BindStringLiteral() = %v", err)
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	if want := "You are reviewing octocat/hello-world."; got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestBindIsImmutable(t *testing.T) {
	t.Parallel()

	p := promptbuilder.MustNewPrompt(`{{greeting}}`)
	if _, err := p.BindStringLiteral("greeting", "hello"); err != nil {
		t.Fatalf("BindStringLiteral() = %v", err)
	}

	// The original prompt must remain unbound.
	if _, err := p.Build(); err == nil {
		t.Error("original prompt built successfully after binding a copy")
	}
}

func TestBindRejectsUnknownAndDoubleBinds(t *testing.T) {
	t.Parallel()

	p := promptbuilder.MustNewPrompt(`{{a}}`)

	if _, err := p.BindStringLiteral("b", "x"); err == nil {
		t.Error("binding unknown placeholder succeeded, want error")
	}

	bound, err := p.BindStringLiteral("a", "x")
	if err != nil {
		t.Fatalf("BindStringLiteral() = %v", err)
	}
	if _, err := bound.BindStringLiteral("a", "y"); err == nil {
		t.Error("double bind succeeded, want error")
	}
}

func TestBindXML(t *testing.T) {
	t.Parallel()

	type file struct {
		Path    string `xml:"path"`
		Content string `xml:"content"`
	}

	p := promptbuilder.MustNewPrompt(`Summarize:

{{file}}`)
	bound, err := p.BindXML("file", file{Path: "main.go", Content: "package main"})
	if err != nil {
		t.Fatalf("BindXML() = %v", err)
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	for _, want := range []string{"<path>main.go</path>", "<content>package main</content>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() = %q, want it to contain %q", got, want)
		}
	}
}

func TestBindYAML(t *testing.T) {
	t.Parallel()

	type entry struct {
		Path    string `yaml:"path"`
		Summary string `yaml:"summary"`
	}

	p := promptbuilder.MustNewPrompt(`{{summaries}}`)
	bound, err := p.BindYAML("summaries", []entry{
		{Path: "a.py", Summary: "prints one"},
		{Path: "b.py", Summary: "prints two"},
	})
	if err != nil {
		t.Fatalf("BindYAML() = %v", err)
	}

	got, err := bound.Build()
	if err != nil {
		t.Fatalf("Build() = %v", err)
	}
	for _, want := range []string{"path: a.py", "summary: prints one", "path: b.py"} {
		if !strings.Contains(got, want) {
			t.Errorf("Build() = %q, want it to contain %q", got, want)
		}
	}
}
