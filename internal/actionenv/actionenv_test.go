package actionenv

import (
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-githubactions"
)

func fakeAction(env map[string]string) *githubactions.Action {
	return githubactions.New(githubactions.WithGetenv(func(key string) string {
		return env[key]
	}))
}

func TestResolve(t *testing.T) {
	action := fakeAction(map[string]string{
		"GITHUB_REPOSITORY": "owner/repo",
		"GITHUB_RUN_ID":     "12345",
		"GITHUB_EVENT_NAME": "issue_comment",
		"CLAUDE_COMMENT_ID": "42",
		"CLAUDE_SUCCESS":    "false",
		"TRIGGER_USERNAME":  "trigger-user",
		"CLAUDE_BRANCH":     "claude/issue-7",
		"RUNNER_TEMP":       "/tmp/runner",
	})

	ctx, err := Resolve(action)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if ctx.Owner != "owner" || ctx.Repo != "repo" {
		t.Errorf("Owner/Repo = %q/%q, want owner/repo", ctx.Owner, ctx.Repo)
	}
	if ctx.CommentID != 42 {
		t.Errorf("CommentID = %d, want %d", ctx.CommentID, 42)
	}
	if !ctx.ActionFailed {
		t.Error("ActionFailed = false, want true")
	}
	if ctx.IsReviewComment {
		t.Error("IsReviewComment = true, want false")
	}
	if ctx.TriggerUsername != "trigger-user" {
		t.Errorf("TriggerUsername = %q, want %q", ctx.TriggerUsername, "trigger-user")
	}
	if ctx.BranchName != "claude/issue-7" {
		t.Errorf("BranchName = %q, want %q", ctx.BranchName, "claude/issue-7")
	}

	wantOutput := filepath.Join("/tmp/runner", "claude-execution-output.json")
	if ctx.OutputFile != wantOutput {
		t.Errorf("OutputFile = %q, want %q", ctx.OutputFile, wantOutput)
	}

	wantURL := "https://github.com/owner/repo/actions/runs/12345"
	if ctx.JobURL() != wantURL {
		t.Errorf("JobURL() = %q, want %q", ctx.JobURL(), wantURL)
	}
}

func TestResolve_ReviewCommentEvent(t *testing.T) {
	action := fakeAction(map[string]string{
		"GITHUB_REPOSITORY": "owner/repo",
		"GITHUB_RUN_ID":     "12345",
		"GITHUB_EVENT_NAME": "pull_request_review_comment",
		"CLAUDE_COMMENT_ID": "42",
		"CLAUDE_SUCCESS":    "true",
	})

	ctx, err := Resolve(action)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if !ctx.IsReviewComment {
		t.Error("IsReviewComment = false, want true")
	}
	if ctx.ActionFailed {
		t.Error("ActionFailed = true, want false")
	}
}

func TestResolve_ExplicitOutputFile(t *testing.T) {
	action := fakeAction(map[string]string{
		"GITHUB_REPOSITORY": "owner/repo",
		"CLAUDE_COMMENT_ID": "42",
		"OUTPUT_FILE":       "/custom/output.json",
		"RUNNER_TEMP":       "/tmp/runner",
	})

	ctx, err := Resolve(action)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if ctx.OutputFile != "/custom/output.json" {
		t.Errorf("OutputFile = %q, want %q", ctx.OutputFile, "/custom/output.json")
	}
}

func TestResolve_MissingCommentID(t *testing.T) {
	action := fakeAction(map[string]string{
		"GITHUB_REPOSITORY": "owner/repo",
	})

	if _, err := Resolve(action); err == nil {
		t.Error("Resolve() expected error for missing comment ID, got nil")
	}
}

func TestResolve_MissingRepository(t *testing.T) {
	action := fakeAction(map[string]string{
		"CLAUDE_COMMENT_ID": "42",
	})

	if _, err := Resolve(action); err == nil {
		t.Error("Resolve() expected error for missing repository, got nil")
	}
}
