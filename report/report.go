/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package report serializes a run's summaries into a Markdown document,
// writes it locally, and optionally publishes it back to the repository.
package report

import (
	"fmt"
	"strings"

	"github.com/repolens/repolens/summarize"
)

// DefaultFilename is the artifact written locally and published remotely.
const DefaultFilename = "SUMMARY.md"

// Report is the complete output of one run: the repository narrative plus
// every per-file summary, in fetch order.
type Report struct {
	Owner    string
	Repo     string
	Model    string
	Overview string
	Files    []summarize.FileSummary
}

// Render produces the Markdown document. Rendering is deterministic: the
// same report always yields byte-identical output.
func (r *Report) Render() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Repository Summary: %s/%s\n\n", r.Owner, r.Repo)
	fmt.Fprintf(&sb, "Generated by RepoLens using %s\n\n", r.Model)
	sb.WriteString("---\n\n")

	sb.WriteString("## Overall Summary\n\n")
	sb.WriteString(r.Overview)
	sb.WriteString("\n\n---\n\n")

	sb.WriteString("## File-by-File Breakdown\n\n")
	for _, f := range r.Files {
		fmt.Fprintf(&sb, "### %s\n\n", f.Path)
		sb.WriteString(f.Summary)
		sb.WriteString("\n\n---\n\n")
	}

	return sb.String()
}
