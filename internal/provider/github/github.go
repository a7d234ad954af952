package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"
	"github.com/wrapupdev/wrapup/internal/provider"
)

// GitHubProvider implements provider.Provider for GitHub.
type GitHubProvider struct {
	client *github.Client
	token  string
}

// Option configures the GitHub provider.
type Option func(*GitHubProvider)

// WithBaseURL sets a custom base URL (for testing or GitHub Enterprise).
func WithBaseURL(url string) Option {
	return func(p *GitHubProvider) {
		p.client.BaseURL, _ = p.client.BaseURL.Parse(url + "/")
	}
}

// New creates a new GitHub provider.
func New(token string, opts ...Option) *GitHubProvider {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}
	client := github.NewClient(httpClient)

	p := &GitHubProvider{
		client: client,
		token:  token,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// tokenTransport adds authorization header to requests.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return http.DefaultTransport.RoundTrip(req)
}

// Name returns the provider name.
func (p *GitHubProvider) Name() string {
	return "github"
}

// GetComment fetches a comment by ID, trying the endpoint family for the
// given kind first and falling back to the other. The returned comment's
// Kind records which family answered, so updates can target the same one.
func (p *GitHubProvider) GetComment(ctx context.Context, owner, repo string, id int64, kind provider.CommentKind) (*provider.Comment, error) {
	first, second := provider.IssueComment, provider.ReviewComment
	if kind == provider.ReviewComment {
		first, second = second, first
	}

	c, firstErr := p.getComment(ctx, owner, repo, id, first)
	if firstErr == nil {
		return c, nil
	}
	c, secondErr := p.getComment(ctx, owner, repo, id, second)
	if secondErr == nil {
		return c, nil
	}
	return nil, fmt.Errorf("fetching comment %d as %s comment: %v (fallback as %s comment: %v)", id, first, firstErr, second, secondErr)
}

func (p *GitHubProvider) getComment(ctx context.Context, owner, repo string, id int64, kind provider.CommentKind) (*provider.Comment, error) {
	if kind == provider.ReviewComment {
		c, _, err := p.client.PullRequests.GetComment(ctx, owner, repo, id)
		if err != nil {
			return nil, err
		}
		return &provider.Comment{
			ID:        c.GetID(),
			Body:      c.GetBody(),
			Author:    c.GetUser().GetLogin(),
			Kind:      provider.ReviewComment,
			CreatedAt: c.GetCreatedAt().Time,
		}, nil
	}

	c, _, err := p.client.Issues.GetComment(ctx, owner, repo, id)
	if err != nil {
		return nil, err
	}
	return &provider.Comment{
		ID:        c.GetID(),
		Body:      c.GetBody(),
		Author:    c.GetUser().GetLogin(),
		Kind:      provider.IssueComment,
		CreatedAt: c.GetCreatedAt().Time,
	}, nil
}

// UpdateComment replaces a comment's body via the given endpoint family.
func (p *GitHubProvider) UpdateComment(ctx context.Context, owner, repo string, id int64, kind provider.CommentKind, body string) error {
	if kind == provider.ReviewComment {
		_, _, err := p.client.PullRequests.EditComment(ctx, owner, repo, id, &github.PullRequestComment{
			Body: &body,
		})
		if err != nil {
			return fmt.Errorf("updating review comment: %w", err)
		}
		return nil
	}

	_, _, err := p.client.Issues.EditComment(ctx, owner, repo, id, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return fmt.Errorf("updating issue comment: %w", err)
	}
	return nil
}
