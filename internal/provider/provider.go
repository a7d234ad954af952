package provider

import "context"

// Provider defines the interface for platform comment operations.
type Provider interface {
	// Name returns the provider name (github, gitlab).
	Name() string

	// GetComment fetches a comment by ID. Providers with more than one
	// comment endpoint family try the given kind first, then fall back to
	// the other; the returned comment records the family that answered.
	GetComment(ctx context.Context, owner, repo string, id int64, kind CommentKind) (*Comment, error)

	// UpdateComment replaces a comment's body via the given endpoint family.
	UpdateComment(ctx context.Context, owner, repo string, id int64, kind CommentKind, body string) error
}
