/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package generate

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

// BackendUnavailableError reports that the generation backend could not be
// reached. It aborts the run: nothing can be summarized without a backend.
type BackendUnavailableError struct {
	BaseURL string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("generation backend unavailable at %s: %v", e.BaseURL, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error {
	return e.Err
}

// isRetryable classifies transient backend errors: rate limits, server
// errors, and transport failures where no HTTP response arrived.
func isRetryable(err error) bool {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429, 500, 502, 503, 504:
			return true
		}
		return false
	}
	// No structured API error means the request never completed.
	return true
}
