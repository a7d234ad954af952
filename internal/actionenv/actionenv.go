// Package actionenv resolves the updater's inputs from the GitHub Actions
// environment.
package actionenv

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/sethvargo/go-githubactions"
)

// Context carries the facts the updater reads from the surrounding workflow
// run. It is resolved once at startup; no field is consulted lazily.
type Context struct {
	Owner string
	Repo  string
	RunID int64

	// CommentID is the tracking comment to rewrite.
	CommentID int64

	// IsReviewComment is true when the triggering event targets a
	// pull-request review comment rather than an issue comment.
	IsReviewComment bool

	// ActionFailed reports whether the job's main step failed.
	ActionFailed bool

	TriggerUsername string
	BranchName      string
	BranchLink      string

	// OutputFile is the path of the execution metrics file.
	OutputFile string
}

// Resolve reads the workflow environment. It fails only when the values the
// updater cannot proceed without (repository, comment ID) are missing.
func Resolve(action *githubactions.Action) (*Context, error) {
	ghctx, err := action.Context()
	if err != nil {
		return nil, fmt.Errorf("reading actions context: %w", err)
	}

	owner, repo := ghctx.Repo()
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("GITHUB_REPOSITORY is not set")
	}

	id, err := strconv.ParseInt(action.Getenv("CLAUDE_COMMENT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing CLAUDE_COMMENT_ID: %w", err)
	}

	c := &Context{
		Owner:           owner,
		Repo:            repo,
		RunID:           ghctx.RunID,
		CommentID:       id,
		IsReviewComment: ghctx.EventName == "pull_request_review_comment",
		ActionFailed:    action.Getenv("CLAUDE_SUCCESS") == "false",
		TriggerUsername: action.Getenv("TRIGGER_USERNAME"),
		BranchName:      action.Getenv("CLAUDE_BRANCH"),
		BranchLink:      action.Getenv("CLAUDE_BRANCH_LINK"),
		OutputFile:      action.Getenv("OUTPUT_FILE"),
	}

	if c.OutputFile == "" {
		if tmp := action.Getenv("RUNNER_TEMP"); tmp != "" {
			c.OutputFile = filepath.Join(tmp, "claude-execution-output.json")
		}
	}

	return c, nil
}

// JobURL returns the run URL for the current workflow job.
func (c *Context) JobURL() string {
	return fmt.Sprintf("https://github.com/%s/%s/actions/runs/%d", c.Owner, c.Repo, c.RunID)
}
