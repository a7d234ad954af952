package provider

import "time"

// CommentKind identifies which endpoint family a comment belongs to. GitHub
// serves pull-request review comments and issue comments from different
// endpoints; providers with a single family ignore the kind.
type CommentKind string

const (
	IssueComment  CommentKind = "issue"
	ReviewComment CommentKind = "review"
)

// Comment represents a comment on a pull/merge request.
type Comment struct {
	ID        int64
	Body      string
	Author    string
	Kind      CommentKind
	CreatedAt time.Time
}
