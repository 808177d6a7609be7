package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v2"

	"github.com/905timur/reddit-content-cleaner/internal/backup"
	"github.com/905timur/reddit-content-cleaner/internal/cleaner"
	"github.com/905timur/reddit-content-cleaner/internal/config"
	"github.com/905timur/reddit-content-cleaner/internal/executor"
	"github.com/905timur/reddit-content-cleaner/internal/report"
	"github.com/905timur/reddit-content-cleaner/internal/rules"
	"github.com/905timur/reddit-content-cleaner/internal/source"
)

const (
	backupFile = "deleted_content.txt"
	auditFile  = "data/audit.ndjson"
	mediaDir   = "post_media"
)

func main() {
	godotenv.Load()

	app := &cli.App{
		Name:  "reddit-content-cleaner",
		Usage: "bulk-remove your own reddit posts and comments by rule",
	}
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "path to the cleaner config file",
			Value: config.DefaultPath,
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "preview the run without editing or deleting anything",
		},
		&cli.BoolFlag{
			Name:  "banned",
			Usage: "skip edits for accounts that can no longer edit",
		},
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "confirm destructive operations without prompting",
		},
		&cli.BoolFlag{
			Name:  "estimate",
			Usage: "count what the rule would remove, then stop",
		},
		&cli.IntFlag{
			Name:  "estimate-limit",
			Usage: "max items scanned per stream when estimating",
			Value: 1000,
		},
		&cli.BoolFlag{
			Name:    "log-json",
			Usage:   "log as JSON instead of console output",
			EnvVars: []string{"LOG_JSON"},
		},
		&cli.StringFlag{
			Name:  "excluded-subs-csv",
			Usage: "optional CSV of extra excluded subreddits",
			Value: "excluded_subs.csv",
		},
		&cli.StringFlag{
			Name:  "excluded-keywords-csv",
			Usage: "optional CSV of extra excluded keywords",
			Value: "excluded_keywords.csv",
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:      "comments-older-than",
			Usage:     "remove comments older than the given number of days",
			ArgsUsage: "<days>",
			Action: func(cctx *cli.Context) error {
				days, err := argInt(cctx, "days")
				if err != nil {
					return err
				}
				rule, err := rules.NewOlderThan(days)
				if err != nil {
					return err
				}
				return runRule(cctx, rule)
			},
		},
		{
			Name:  "negative-karma",
			Usage: "remove comments with a negative score",
			Action: func(cctx *cli.Context) error {
				return runRule(cctx, rules.NewNegativeScore())
			},
		},
		{
			Name:  "low-engagement",
			Usage: "remove comments with 1 karma and no replies",
			Action: func(cctx *cli.Context) error {
				return runRule(cctx, rules.NewLowEngagement())
			},
		},
		{
			Name:  "all-posts",
			Usage: "remove every post (requires --yes)",
			Action: func(cctx *cli.Context) error {
				return runRule(cctx, rules.NewAllPosts())
			},
		},
		{
			Name:      "posts-older-than",
			Usage:     "remove posts older than the given number of days",
			ArgsUsage: "<days>",
			Action: func(cctx *cli.Context) error {
				days, err := argInt(cctx, "days")
				if err != nil {
					return err
				}
				rule, err := rules.NewOlderThanPosts(days)
				if err != nil {
					return err
				}
				return runRule(cctx, rule)
			},
		},
		{
			Name:      "posts-under-score",
			Usage:     "remove posts scoring under the given threshold",
			ArgsUsage: "<score>",
			Action: func(cctx *cli.Context) error {
				score, err := argInt(cctx, "score")
				if err != nil {
					return err
				}
				return runRule(cctx, rules.NewUnderScorePosts(score))
			},
		},
		{
			Name:      "subreddit",
			Usage:     "remove all content from a specific subreddit",
			ArgsUsage: "<name>",
			Action: func(cctx *cli.Context) error {
				rule, err := rules.NewBySubreddit(cctx.Args().First())
				if err != nil {
					return err
				}
				return runRule(cctx, rule)
			},
		},
		{
			Name:      "keyword",
			Usage:     "remove all content containing a keyword",
			ArgsUsage: "<word>",
			Action: func(cctx *cli.Context) error {
				rule, err := rules.NewByKeyword(cctx.Args().First())
				if err != nil {
					return err
				}
				return runRule(cctx, rule)
			},
		},
		{
			Name:  "report",
			Usage: "serve charts of removed content from the audit log",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "port",
					Value:   "8080",
					EnvVars: []string{"PORT"},
				},
			},
			Action: func(cctx *cli.Context) error {
				return report.StartServer(auditFile, cctx.String("port"))
			},
		},
		{
			Name:  "show-config",
			Usage: "print the resolved configuration",
			Action: func(cctx *cli.Context) error {
				fileCfg, err := config.Load(cctx.String("config"))
				if err != nil {
					return err
				}
				fmt.Printf("%+v\n", fileCfg)
				return nil
			},
		},
	}

	app.RunAndExitOnError()
}

func runRule(cctx *cli.Context, rule rules.Rule) error {
	log := newLogger(cctx.Bool("log-json"))

	fileCfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return err
	}
	runCfg, err := fileCfg.RunConfig()
	if err != nil {
		return err
	}
	if cctx.Bool("dry-run") {
		runCfg.DryRun = true
	}
	if cctx.Bool("banned") {
		runCfg.BannedMode = true
	}
	runCfg.Confirmed = cctx.Bool("yes")

	policy := fileCfg.Policy(cctx.String("excluded-subs-csv"), cctx.String("excluded-keywords-csv"))

	src, err := source.New()
	if err != nil {
		return err
	}

	exec := executor.New(src, runCfg, log)
	rec := backup.NewRecorder(backupFile, auditFile)
	media := backup.NewMediaArchiver(mediaDir, log)
	runner := cleaner.NewRunner(src, exec, rec, media, log)

	ctx := cctx.Context

	if cctx.Bool("estimate") {
		n, err := runner.Estimate(ctx, rule, policy, cctx.Int("estimate-limit"))
		if err != nil {
			return err
		}
		fmt.Printf("Rule %s would remove up to %d items.\n", rule, n)
		return nil
	}

	if rule.Kind == rules.AllPosts && !runCfg.Confirmed {
		n, err := runner.Estimate(ctx, rule, policy, cctx.Int("estimate-limit"))
		if err != nil {
			return err
		}
		fmt.Printf("This removes every post on the account (up to %d found). Re-run with --yes to confirm.\n", n)
		return nil
	}

	res, runErr := runner.Run(ctx, rule, runCfg, policy)
	fmt.Printf("Processed %d items, removed %d, skipped %d.\n", res.Processed, res.Removed, res.Skipped())
	return runErr
}

func newLogger(jsonOut bool) *slog.Logger {
	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{TimeFormat: time.Kitchen})
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func argInt(cctx *cli.Context, name string) (int, error) {
	if cctx.NArg() < 1 {
		return 0, fmt.Errorf("missing required argument: %s", name)
	}
	n, err := strconv.Atoi(cctx.Args().First())
	if err != nil {
		return 0, fmt.Errorf("argument %s must be an integer: %w", name, err)
	}
	return n, nil
}
