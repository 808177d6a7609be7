package executor

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

// Executor performs the remote edit/delete calls under the run's throttle
// policy. It never retries on its own: failures come back tagged and the
// orchestrator decides between skip and abort.
type Executor struct {
	src   domain.ContentSource
	cfg   domain.RunConfig
	log   *slog.Logger
	sleep func(time.Duration)
	rng   *rand.Rand
}

func New(src domain.ContentSource, cfg domain.RunConfig, log *slog.Logger) *Executor {
	return &Executor{
		src:   src,
		cfg:   cfg,
		log:   log,
		sleep: time.Sleep,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithSleep replaces the delay sleeper, letting callers observe or
// neutralize Pause.
func (e *Executor) WithSleep(fn func(time.Duration)) *Executor {
	e.sleep = fn
	return e
}

// EditBody replaces the item's body with the configured replacement text.
// In dry-run mode the call is simulated and logged only.
func (e *Executor) EditBody(ctx context.Context, item *domain.ContentItem) error {
	if e.cfg.DryRun {
		e.log.Info("dry run: would edit", "id", item.FullID, "sub", item.Subreddit)
		return nil
	}
	return e.src.Edit(ctx, item, e.cfg.ReplacementText)
}

// Delete removes the item from the remote source. Simulated in dry-run mode.
func (e *Executor) Delete(ctx context.Context, item *domain.ContentItem) error {
	if e.cfg.DryRun {
		e.log.Info("dry run: would delete", "id", item.FullID, "sub", item.Subreddit)
		return nil
	}
	return e.src.Delete(ctx, item)
}

// Pause blocks for a uniform random duration in [MinDelay, MaxDelay],
// inclusive. Skipped entirely in dry-run mode so previews stay fast.
func (e *Executor) Pause() {
	if e.cfg.DryRun {
		return
	}
	d := e.cfg.MinDelay
	if span := e.cfg.MaxDelay - e.cfg.MinDelay; span > 0 {
		d += time.Duration(e.rng.Int63n(int64(span) + 1))
	}
	e.sleep(d)
}
