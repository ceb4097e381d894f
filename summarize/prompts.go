/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package summarize

import "github.com/repolens/repolens/promptbuilder"

// filePrompt asks for a summary of a single file. The file's path and
// content are bound as XML so the untrusted content stays delimited.
var filePrompt = promptbuilder.MustNewPrompt(`You are a senior software engineer. Summarize what the following file does.

Explain its main functions, logic, and purpose in clear language.

{{file}}

Provide a concise but comprehensive summary.`)

// repoPrompt asks for a single narrative synthesized from all per-file
// summaries, bound as a YAML list of path/summary pairs.
var repoPrompt = promptbuilder.MustNewPrompt(`You are an AI technical writer. Combine these file summaries into a single, high-level explanation of what the entire repository does, how its components fit together, and what could be improved.

Summaries:

{{summaries}}

Provide a well-structured summary that includes:
1. Overall purpose of the repository
2. Architecture and how components interact
3. Key technologies and patterns used
4. Potential improvements or areas of concern`)
