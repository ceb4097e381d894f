/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral only accepts untyped string constants, keeping template text
// and developer-supplied values out of reach of runtime data.
type stringLiteral string

// Prompt is a template with {{placeholder}} bindings. Prompts are immutable;
// every Bind* call returns a new Prompt with the binding applied.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses a template literal and records its placeholders.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)

	// Walk the template once to collect placeholder names. Substitution
	// happens later in Build, so each placeholder resolves to itself here.
	tmpl, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Prompt{
		template: tmpl,
		bindings: bindings,
	}, nil
}

// Placeholders returns the set of placeholder names found in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// BindStringLiteral binds a literal string value to a placeholder.
// The value comes from the developer, not from user or repository content.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.bind(name, &literalBinding{val: string(value)})
}

// BindXML binds structured data to a placeholder, marshaled as indented XML.
// This is the path for runtime data: the markup keeps untrusted content
// clearly delimited inside the prompt.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.bind(name, &xmlBinding{data: data})
}

// BindYAML binds structured data to a placeholder, marshaled as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.bind(name, &yamlBinding{data: data})
}

func (p *Prompt) bind(name string, b binding) (*Prompt, error) {
	if err := existsAndUnbound(p.bindings, name); err != nil {
		return nil, err
	}
	newPrompt := &Prompt{
		template: p.template,
		bindings: maps.Clone(p.bindings),
	}
	newPrompt.bindings[name] = b
	return newPrompt, nil
}

// Build renders the final prompt, failing if any placeholder is unbound.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, binding := range p.bindings {
		val, err := binding.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walkTemplate(p.template, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		// Unreachable: NewPrompt and Build tokenize identically.
		return "", fmt.Errorf("internal error: binding %q not found", name)
	})
}
