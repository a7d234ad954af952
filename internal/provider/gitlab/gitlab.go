package gitlab

import (
	"context"
	"fmt"
	"net/url"

	"github.com/wrapupdev/wrapup/internal/provider"
	"github.com/xanzy/go-gitlab"
)

// GitLabProvider implements provider.Provider for GitLab. Comments live on a
// merge request as notes, addressed by the MR IID plus the note ID; GitLab
// has a single note endpoint family, so the comment kind is ignored.
type GitLabProvider struct {
	client *gitlab.Client
	token  string
	mrIID  int
}

// Option configures the GitLab provider.
type Option func(*GitLabProvider)

// WithBaseURL sets a custom base URL (for testing or self-hosted GitLab).
func WithBaseURL(baseURL string) Option {
	return func(p *GitLabProvider) {
		p.client, _ = gitlab.NewClient(p.token, gitlab.WithBaseURL(baseURL+"/api/v4"))
	}
}

// New creates a new GitLab provider for notes on the given merge request.
func New(token string, mrIID int, opts ...Option) *GitLabProvider {
	client, _ := gitlab.NewClient(token)
	p := &GitLabProvider{client: client, token: token, mrIID: mrIID}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider name.
func (p *GitLabProvider) Name() string {
	return "gitlab"
}

// projectPath encodes owner/repo for GitLab API.
func projectPath(owner, repo string) string {
	return url.PathEscape(owner + "/" + repo)
}

// GetComment fetches a merge request note by ID.
func (p *GitLabProvider) GetComment(ctx context.Context, owner, repo string, id int64, kind provider.CommentKind) (*provider.Comment, error) {
	note, _, err := p.client.Notes.GetMergeRequestNote(projectPath(owner, repo), p.mrIID, int(id), gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetching merge request note: %w", err)
	}

	result := &provider.Comment{
		ID:     int64(note.ID),
		Body:   note.Body,
		Author: note.Author.Username,
		Kind:   provider.IssueComment,
	}
	if note.CreatedAt != nil {
		result.CreatedAt = *note.CreatedAt
	}

	return result, nil
}

// UpdateComment replaces a merge request note's body.
func (p *GitLabProvider) UpdateComment(ctx context.Context, owner, repo string, id int64, kind provider.CommentKind, body string) error {
	_, _, err := p.client.Notes.UpdateMergeRequestNote(projectPath(owner, repo), p.mrIID, int(id), &gitlab.UpdateMergeRequestNoteOptions{
		Body: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("updating merge request note: %w", err)
	}
	return nil
}
