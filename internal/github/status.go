package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/go-github/v81/github"
)

// Commit status states accepted by GitHub.
const (
	StateSuccess = "success"
	StateFailure = "failure"
	StateError   = "error"
)

// maxDescription is GitHub's limit for a commit status description.
const maxDescription = 140

// Status is the outcome published for one commit.
type Status struct {
	Owner       string
	Repo        string
	SHA         string
	State       string
	Context     string
	Description string
	TargetURL   string
}

func (s Status) validate() error {
	if s.Owner == "" || s.Repo == "" || s.SHA == "" {
		return errors.New("owner, repo and sha are required")
	}
	switch s.State {
	case StateSuccess, StateFailure, StateError:
	default:
		return fmt.Errorf("unsupported state %q", s.State)
	}
	if s.Context == "" {
		return errors.New("context is required")
	}
	return nil
}

// PublishStatus creates a commit status.
func (c *Client) PublishStatus(ctx context.Context, s Status) (*github.RepoStatus, error) {
	if c == nil || c.Client == nil {
		return nil, errors.New("github client is nil")
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("publish status: %w", err)
	}

	desc := []rune(s.Description)
	if len(desc) > maxDescription {
		desc = desc[:maxDescription]
	}
	body := &github.RepoStatus{
		State:       github.Ptr(s.State),
		Context:     github.Ptr(s.Context),
		Description: github.Ptr(string(desc)),
	}
	if s.TargetURL != "" {
		body.TargetURL = github.Ptr(s.TargetURL)
	}

	path := fmt.Sprintf("repos/%s/%s/statuses/%s",
		url.PathEscape(s.Owner), url.PathEscape(s.Repo), url.PathEscape(s.SHA))
	req, err := c.Client.NewRequest(http.MethodPost, path, body)
	if err != nil {
		return nil, fmt.Errorf("publish status: %w", err)
	}

	created := new(github.RepoStatus)
	if _, err := c.Client.Do(ctx, req, created); err != nil {
		return nil, fmt.Errorf("publish status for %s/%s@%s: %w", s.Owner, s.Repo, s.SHA, err)
	}
	return created, nil
}
