/*
Copyright 2026 RepoLens Authors
SPDX-License-Identifier: Apache-2.0
*/

package report_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/google/go-github/v84/github"
	"github.com/repolens/repolens/report"
)

func newTestPublisher(t *testing.T, h http.Handler) (*report.GitHubPublisher, func()) {
	t.Helper()
	srv := httptest.NewServer(h)
	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatalf("parsing test server URL: %v", err)
	}
	client.BaseURL = base
	return report.NewGitHubPublisher(client, ""), srv.Close
}

func TestPublishUpdatesExistingFile(t *testing.T) {
	t.Parallel()

	var gotSHA string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/SUMMARY.md", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"type":"file","name":"SUMMARY.md","path":"SUMMARY.md","sha":"oldsha"}`)
		case http.MethodPut:
			var body struct {
				Message string `json:"message"`
				SHA     string `json:"sha"`
			}
			json.NewDecoder(r.Body).Decode(&body)
			gotSHA = body.SHA
			fmt.Fprint(w, `{"content":{"path":"SUMMARY.md"}}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	pub, done := newTestPublisher(t, mux)
	defer done()

	if err := pub.Publish(context.Background(), "octocat", "demo", "# Summary"); err != nil {
		t.Fatalf("Publish() = %v", err)
	}
	if gotSHA != "oldsha" {
		t.Errorf("update sent sha %q, want %q", gotSHA, "oldsha")
	}
}

func TestPublishCreatesMissingFile(t *testing.T) {
	t.Parallel()

	var created bool
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/demo/contents/SUMMARY.md", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Not Found"}`)
		case http.MethodPut:
			created = true
			fmt.Fprint(w, `{"content":{"path":"SUMMARY.md"}}`)
		}
	})

	pub, done := newTestPublisher(t, mux)
	defer done()

	if err := pub.Publish(context.Background(), "octocat", "demo", "# Summary"); err != nil {
		t.Fatalf("Publish() = %v", err)
	}
	if !created {
		t.Error("expected a create PUT for the missing file")
	}
}

func TestPublishFailureIsTyped(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Bad credentials"}`)
	})

	pub, done := newTestPublisher(t, mux)
	defer done()

	err := pub.Publish(context.Background(), "octocat", "demo", "# Summary")
	var pubErr *report.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("Publish() = %v, want *PublishError", err)
	}
	if pubErr.Owner != "octocat" || pubErr.Repo != "demo" || pubErr.Path != "SUMMARY.md" {
		t.Errorf("PublishError = %+v, want owner/repo/path populated", pubErr)
	}
}
