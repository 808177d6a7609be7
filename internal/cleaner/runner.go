package cleaner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/905timur/reddit-content-cleaner/internal/backup"
	"github.com/905timur/reddit-content-cleaner/internal/domain"
	"github.com/905timur/reddit-content-cleaner/internal/executor"
	"github.com/905timur/reddit-content-cleaner/internal/rules"
)

// Runner drives one cleanup run to completion for a single rule. Strictly
// sequential: items are acted on in listing order, one at a time, with the
// executor's delay between acted-on items.
type Runner struct {
	src    domain.ContentSource
	exec   *executor.Executor
	backup *backup.Recorder
	media  *backup.MediaArchiver // nil disables media archiving
	log    *slog.Logger
}

func NewRunner(src domain.ContentSource, exec *executor.Executor, rec *backup.Recorder, media *backup.MediaArchiver, log *slog.Logger) *Runner {
	return &Runner{src: src, exec: exec, backup: rec, media: media, log: log}
}

// Run processes the account's history under rule and returns the counters.
// Transient per-item failures are skips. A transient listing failure ends
// the run early, returned alongside the partial counters so the caller can
// tell a truncated run from a complete one; auth-class failures abort
// immediately.
func (r *Runner) Run(ctx context.Context, rule rules.Rule, cfg domain.RunConfig, policy domain.ExclusionPolicy) (domain.RunResult, error) {
	var res domain.RunResult

	if err := cfg.Validate(); err != nil {
		return res, err
	}
	if rule.Kind == rules.AllPosts && !cfg.Confirmed {
		return res, &domain.ValidationError{Field: "confirmed", Reason: "removing all posts requires explicit confirmation"}
	}

	// One cutoff for the whole batch; age predicates must not drift as the
	// run sleeps between items.
	now := time.Now().UTC()

	r.log.Info("run started", "rule", rule.String(), "dry_run", cfg.DryRun, "banned_mode", cfg.BannedMode)

	var streamErr error
	for _, kind := range rule.Targets() {
		stream := r.stream(ctx, kind)
		for {
			item, err := stream.Next(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				if domain.IsFatal(err) {
					r.log.Error("run aborted", "err", err)
					return res, err
				}
				// Truncated listing: keep the partial counters, but the
				// caller must be able to tell this run from a complete one.
				r.log.Error("stream failed, abandoning remaining items", "kind", string(kind), "err", err)
				streamErr = err
				break
			}

			res.Processed++
			if !rules.Eligible(item, rule, policy, now) {
				r.log.Debug("item skipped", "id", item.FullID, "reason", "not eligible")
				continue
			}

			if err := r.act(ctx, item, cfg); err != nil {
				if domain.IsFatal(err) {
					r.log.Error("run aborted", "id", item.FullID, "err", err)
					return res, err
				}
				r.log.Warn("item skipped", "id", item.FullID, "reason", "action failed", "err", err)
				continue
			}

			res.Removed++
			r.log.Info("item removed", "id", item.FullID, "sub", item.Subreddit, "score", item.Score)
			r.exec.Pause()
		}
		if streamErr != nil {
			break
		}
	}

	r.log.Info("run summary", "rule", rule.String(), "processed", res.Processed, "removed", res.Removed, "skipped", res.Skipped())
	return res, streamErr
}

// act runs the full edit -> archive -> backup -> delete sequence for one
// eligible item. Backup and media failures are logged and swallowed; only
// the remote actions can fail the item.
func (r *Runner) act(ctx context.Context, item *domain.ContentItem, cfg domain.RunConfig) error {
	if !cfg.BannedMode && editable(item) {
		if err := r.exec.EditBody(ctx, item); err != nil {
			return err
		}
	}

	if item.Kind == domain.KindPost && r.media != nil && !cfg.DryRun {
		if err := r.media.Archive(item.URL); err != nil {
			r.log.Warn("media archive failed", "id", item.FullID, "err", err)
		}
	}

	if cfg.BackupEnabled && !cfg.DryRun {
		rec := domain.BackupRecord{
			Kind:      item.Kind,
			Timestamp: time.Now().UTC(),
			Score:     item.Score,
			Subreddit: item.Subreddit,
			Title:     item.Title,
			Body:      item.Body,
			URL:       item.URL,
		}
		if err := r.backup.Record(rec); err != nil {
			r.log.Warn("backup write failed", "id", item.FullID, "err", err)
		}
	}

	return r.exec.Delete(ctx, item)
}

// editable: comments always get their body replaced first; posts only when
// they are text posts with something to overwrite. Link posts cannot be
// edited at all.
func editable(item *domain.ContentItem) bool {
	switch item.Kind {
	case domain.KindComment:
		return true
	case domain.KindPost:
		return item.IsSelf && item.Body != ""
	}
	return false
}

func (r *Runner) stream(ctx context.Context, kind domain.ContentKind) domain.ContentStream {
	if kind == domain.KindPost {
		return r.src.Posts(ctx)
	}
	return r.src.Comments(ctx)
}

// Estimate counts the items rule would remove, scanning at most max items
// per target stream. Best effort only: remote pagination can shift between
// the count pass and the action pass.
func (r *Runner) Estimate(ctx context.Context, rule rules.Rule, policy domain.ExclusionPolicy, max int) (int, error) {
	now := time.Now().UTC()
	count := 0
	for _, kind := range rule.Targets() {
		stream := r.stream(ctx, kind)
		for scanned := 0; scanned < max; scanned++ {
			item, err := stream.Next(ctx)
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return count, err
			}
			if rules.Eligible(item, rule, policy, now) {
				count++
			}
		}
	}
	return count, nil
}
