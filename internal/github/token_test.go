package github

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// stubGH puts a fake gh executing script on an otherwise empty PATH.
func stubGH(t *testing.T, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test uses a shell script gh stub")
	}
	dir := t.TempDir()
	if script != "" {
		if err := os.WriteFile(filepath.Join(dir, "gh"), []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
			t.Fatalf("WriteFile gh stub failed: %v", err)
		}
	}
	t.Setenv("PATH", dir)
}

func TestResolveAuthToken(t *testing.T) {
	tests := []struct {
		name        string
		provided    string
		githubToken string
		ghToken     string
		ghScript    string
		wantToken   string
		wantSource  AuthTokenSource
	}{
		{name: "explicit wins", provided: " explicit ", githubToken: "env-token", wantToken: "explicit", wantSource: AuthTokenSourceExplicit},
		{name: "GITHUB_TOKEN", githubToken: "env-token", ghToken: "gh-env", wantToken: "env-token", wantSource: "env:GITHUB_TOKEN"},
		{name: "GH_TOKEN", ghToken: "gh-env", ghScript: "echo cli-token", wantToken: "gh-env", wantSource: "env:GH_TOKEN"},
		{name: "gh cli", ghScript: "echo cli-token", wantToken: "cli-token", wantSource: AuthTokenSourceGitHubCL},
		{name: "gh not logged in", ghScript: "exit 1"},
		{name: "nothing available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.githubToken)
			t.Setenv("GH_TOKEN", tt.ghToken)
			stubGH(t, tt.ghScript)

			tok, src, err := ResolveAuthToken(context.Background(), tt.provided)
			if err != nil {
				t.Fatalf("ResolveAuthToken error: %v", err)
			}
			if tok != tt.wantToken {
				t.Fatalf("token: want %q, got %q", tt.wantToken, tok)
			}
			if src != tt.wantSource {
				t.Fatalf("source: want %q, got %q", tt.wantSource, src)
			}
		})
	}
}

func TestResolveAuthToken_GitHubCLIErrors(t *testing.T) {
	t.Run("multi-line output", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		stubGH(t, `printf 'line1\nline2\n'`)

		if _, _, err := ResolveAuthToken(context.Background(), ""); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "")
		stubGH(t, "echo cli-token")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := ResolveAuthToken(ctx, "")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}
