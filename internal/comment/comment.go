// Package comment rewrites a job's tracking comment into its final form.
//
// While a job runs, the tracking comment carries a working placeholder and a
// spinner. Once the job concludes, UpdateBody replaces that scaffolding with a
// status header, a job link, and an optional branch link, preserving whatever
// else the comment accumulated (todo lists, progress notes). The rewrite is a
// pure function of its input: no clocks, no randomness, no I/O.
package comment

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/wrapupdev/wrapup/internal/metadata"
)

// UpdateInput carries the facts needed to rewrite a tracking comment.
// Optional fields degrade to omitted clauses rather than errors.
type UpdateInput struct {
	// CurrentBody is the existing comment content, possibly containing the
	// working placeholder and stale header or link lines from a prior run.
	CurrentBody string

	// ActionFailed reports whether the triggering job ended in failure.
	ActionFailed bool

	// Execution holds the job's execution metrics; nil when the metadata
	// file was absent or unreadable. Only DurationMS affects the output.
	Execution *metadata.ExecutionDetails

	// JobURL is the absolute URL of the job run. Always rendered.
	JobURL string

	// BranchName names a branch to advertise. When empty, a name is
	// recovered from BranchLink if possible.
	BranchName string

	// BranchLink is legacy link text whose URL encodes a branch name after
	// a /tree/ path segment. Consulted only when BranchName is empty.
	BranchLink string

	// TriggerUsername is the user who triggered the job. When empty, a
	// mention is recovered from CurrentBody if possible.
	TriggerUsername string
}

var (
	// workingPattern matches the working placeholder phrase together with
	// any adjacent inline spinner image markup.
	workingPattern = regexp.MustCompile(`(?:<img[^>]*>\s*)?Claude Code is working(?:…|\.\.\.)?(?:\s*<img[^>]*>)?`)

	// mentionPattern matches an @-prefixed username token.
	mentionPattern = regexp.MustCompile(`@([A-Za-z0-9][A-Za-z0-9_-]*)`)

	// treeLinkPattern captures the branch name from a markdown link whose
	// URL ends in a /tree/<branch> segment.
	treeLinkPattern = regexp.MustCompile(`\(https?://[^()\s]+/tree/([^()\s]+)\)`)
)

// UpdateBody produces the final comment body for a concluded job. The same
// input always yields a byte-identical result, and feeding a prior output
// back in as CurrentBody does not duplicate header or link lines.
func UpdateBody(in UpdateInput) string {
	duration := ""
	if in.Execution != nil && in.Execution.DurationMS != nil && *in.Execution.DurationMS > 0 {
		duration = formatDuration(*in.Execution.DurationMS)
	}

	var b strings.Builder
	b.WriteString(header(in.ActionFailed, resolveUsername(in), duration))
	b.WriteString("\n")
	fmt.Fprintf(&b, "—— [View job](%s)", in.JobURL)

	if branch := resolveBranch(in); branch != "" {
		owner, repo := ownerRepo(in.JobURL)
		b.WriteString("\n")
		fmt.Fprintf(&b, "• [`%s`](https://github.com/%s/%s/tree/%s)", branch, owner, repo, branch)
	}

	b.WriteString("\n\n---\n")
	b.WriteString(cleanBody(in.CurrentBody))
	return b.String()
}

// formatDuration renders a millisecond count as "45s" or "1m 14s", rounding
// down to whole seconds.
func formatDuration(ms int64) string {
	if ms < 60000 {
		return fmt.Sprintf("%ds", ms/1000)
	}
	return fmt.Sprintf("%dm %ds", ms/60000, (ms%60000)/1000)
}

// header assembles the bold status line.
func header(failed bool, username, duration string) string {
	if failed {
		if duration != "" {
			return fmt.Sprintf("**Claude encountered an error after %s**", duration)
		}
		return "**Claude encountered an error**"
	}

	var b strings.Builder
	b.WriteString("**Claude finished ")
	if username != "" {
		b.WriteString("@" + username + "'s task")
	} else {
		b.WriteString("the task")
	}
	if duration != "" {
		b.WriteString(" in " + duration)
	}
	b.WriteString("**")
	return b.String()
}

// resolveUsername prefers the supplied trigger username, then falls back to
// the first mention found after the working placeholder in the current body.
// When no placeholder is present the whole body is scanned.
func resolveUsername(in UpdateInput) string {
	if in.TriggerUsername != "" {
		return in.TriggerUsername
	}

	body := in.CurrentBody
	if loc := workingPattern.FindStringIndex(body); loc != nil {
		body = body[loc[1]:]
	}
	if m := mentionPattern.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

// resolveBranch prefers an explicit branch name, then falls back to parsing
// the legacy link text.
func resolveBranch(in UpdateInput) string {
	if in.BranchName != "" {
		return in.BranchName
	}
	if m := treeLinkPattern.FindStringSubmatch(in.BranchLink); m != nil {
		return m[1]
	}
	return ""
}

// ownerRepo extracts the first two path segments of the job URL. Malformed
// URLs degrade to empty strings, propagated as-is into the branch link.
func ownerRepo(jobURL string) (string, string) {
	u, err := url.Parse(jobURL)
	if err != nil {
		return "", ""
	}
	parts := strings.SplitN(strings.Trim(u.Path, "/"), "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	return parts[0], parts[1]
}

// cleanBody strips the working placeholder and every stale header or link
// line, then drops any separator left dangling at the top so the preserved
// remainder starts at real content.
func cleanBody(body string) string {
	body = workingPattern.ReplaceAllString(body, "")

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if staleLine(line) {
			continue
		}
		kept = append(kept, line)
	}

	return trimLeadingSeparators(strings.Join(kept, "\n"))
}

// staleLine reports whether a line belongs to a previous header block or a
// legacy link and must be removed wholesale before reassembly.
func staleLine(line string) bool {
	if strings.Contains(line, "[View job run](") ||
		strings.Contains(line, "[View job](") ||
		strings.Contains(line, "[View branch](") {
		return true
	}

	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "**Claude finished") ||
		strings.HasPrefix(trimmed, "**Claude encountered an error") ||
		strings.HasPrefix(trimmed, "• [`")
}

// trimLeadingSeparators removes blank lines and "---" rules at the start of
// the preserved content. Rerunning the rewrite on its own output would
// otherwise stack separators.
func trimLeadingSeparators(s string) string {
	for {
		s = strings.TrimLeft(s, " \t\n")
		if s == "---" {
			return ""
		}
		if rest, ok := strings.CutPrefix(s, "---\n"); ok {
			s = rest
			continue
		}
		return s
	}
}
