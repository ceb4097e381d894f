/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

// Bindable is a request type that knows how to bind its own values into a
// Prompt. Generation clients accept Bindable requests so that each request
// carries its data into the template without the client knowing the shape.
type Bindable interface {
	// Bind returns a new prompt with the receiver's values bound.
	Bind(prompt *Prompt) (*Prompt, error)
}

// Noop is a Bindable that passes the prompt through unchanged.
type Noop struct{}

// Bind implements Bindable.
func (Noop) Bind(prompt *Prompt) (*Prompt, error) {
	return prompt, nil
}
