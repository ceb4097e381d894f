/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"context"
	"fmt"
	"os"

	"github.com/chainguard-dev/clog"
)

// Writer writes the rendered report to local storage.
type Writer struct {
	path string
}

// NewWriter creates a Writer targeting the given local path.
// An empty path selects DefaultFilename in the working directory.
func NewWriter(path string) *Writer {
	if path == "" {
		path = DefaultFilename
	}
	return &Writer{path: path}
}

// Write renders the report and writes it to the configured path, returning
// the path written.
func (w *Writer) Write(ctx context.Context, r *Report) (string, error) {
	content := r.Render()
	if err := os.WriteFile(w.path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing report to %s: %w", w.path, err)
	}
	clog.FromContext(ctx).With("path", w.path).
		With("bytes", len(content)).
		Info("Wrote report")
	return w.path, nil
}
