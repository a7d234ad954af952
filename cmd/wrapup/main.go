package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-githubactions"
	"github.com/wrapupdev/wrapup/internal/actionenv"
	"github.com/wrapupdev/wrapup/internal/comment"
	"github.com/wrapupdev/wrapup/internal/config"
	"github.com/wrapupdev/wrapup/internal/metadata"
	"github.com/wrapupdev/wrapup/internal/provider"
	"github.com/wrapupdev/wrapup/internal/provider/github"
	"github.com/wrapupdev/wrapup/internal/provider/gitlab"
)

var version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "update":
		runUpdate(os.Args[2:])
	case "version":
		fmt.Printf("wrapup v%s\n", version)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: wrapup <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  update   Rewrite the tracking comment for the concluded job")
	fmt.Println("  version  Print version information")
}

func runUpdate(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	configPath := fs.String("config", "wrapup.yaml", "Path to config file")
	envFile := fs.String("env-file", "", "Path to .env file (optional)")
	fs.Parse(args)

	// Load .env file if specified or exists
	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			log.Printf("Warning: could not load env file %s: %v", *envFile, err)
		}
	} else {
		godotenv.Load(".env")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	actx, err := actionenv.Resolve(githubactions.New())
	if err != nil {
		log.Fatalf("Failed to resolve workflow context: %v", err)
	}

	// Missing or unreadable metrics are non-fatal; the header simply omits
	// the duration clause.
	var details *metadata.ExecutionDetails
	if actx.OutputFile != "" {
		details, err = metadata.Load(actx.OutputFile)
		if err != nil {
			log.Printf("Warning: no execution details: %v", err)
			details = nil
		}
	}

	p, err := buildProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to configure provider: %v", err)
	}

	kind := provider.IssueComment
	if actx.IsReviewComment {
		kind = provider.ReviewComment
	}

	ctx := context.Background()
	c, err := p.GetComment(ctx, actx.Owner, actx.Repo, actx.CommentID, kind)
	if err != nil {
		log.Fatalf("Failed to fetch comment: %v", err)
	}

	body := comment.UpdateBody(comment.UpdateInput{
		CurrentBody:     c.Body,
		ActionFailed:    actx.ActionFailed,
		Execution:       details,
		JobURL:          actx.JobURL(),
		BranchName:      actx.BranchName,
		BranchLink:      actx.BranchLink,
		TriggerUsername: actx.TriggerUsername,
	})

	// Write back through the endpoint family that answered the fetch.
	if err := p.UpdateComment(ctx, actx.Owner, actx.Repo, c.ID, c.Kind, body); err != nil {
		log.Fatalf("Failed to update comment: %v", err)
	}

	log.Printf("Updated comment %d on %s/%s via %s", c.ID, actx.Owner, actx.Repo, p.Name())
}

func buildProvider(cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case "", "github":
		var opts []github.Option
		if cfg.Providers.GitHub.BaseURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.Providers.GitHub.BaseURL))
		}
		return github.New(cfg.Providers.GitHub.Token, opts...), nil
	case "gitlab":
		var opts []gitlab.Option
		if cfg.Providers.GitLab.BaseURL != "" {
			opts = append(opts, gitlab.WithBaseURL(cfg.Providers.GitLab.BaseURL))
		}
		return gitlab.New(cfg.Providers.GitLab.Token, cfg.Providers.GitLab.MRIID, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
