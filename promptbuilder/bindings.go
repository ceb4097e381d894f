/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"encoding/xml"
	"fmt"

	"gopkg.in/yaml.v3"
)

// binding is a value that will be substituted into the template at Build time.
type binding interface {
	value() (string, error)
}

// unboundBinding is the initial state of every placeholder.
type unboundBinding struct {
	name string
}

func (u *unboundBinding) value() (string, error) {
	return "", fmt.Errorf("unbound placeholder: %s", u.name)
}

// literalBinding holds a compile-time string from the developer.
type literalBinding struct {
	val string
}

func (l *literalBinding) value() (string, error) {
	return l.val, nil
}

// xmlBinding marshals its data as indented XML.
type xmlBinding struct {
	data any
}

func (x *xmlBinding) value() (string, error) {
	bytes, err := xml.MarshalIndent(x.data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return string(bytes), nil
}

// yamlBinding marshals its data as YAML.
type yamlBinding struct {
	data any
}

func (y *yamlBinding) value() (string, error) {
	bytes, err := yaml.Marshal(y.data)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(bytes), nil
}

// existsAndUnbound rejects binds against unknown or already-bound placeholders.
func existsAndUnbound(bindings map[string]binding, name string) error {
	b, exists := bindings[name]
	if !exists {
		return fmt.Errorf("binding %q not found in template", name)
	}
	if _, isUnbound := b.(*unboundBinding); !isUnbound {
		return fmt.Errorf("binding %q already bound", name)
	}
	return nil
}
