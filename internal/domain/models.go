package domain

import (
	"context"
	"strings"
	"time"
)

// ContentKind tags the two item variants.
type ContentKind string

const (
	KindComment ContentKind = "comment"
	KindPost    ContentKind = "post"
)

// ContentItem is one piece of the account's history, fetched read-only per
// run. It is invalid after a successful delete.
type ContentItem struct {
	FullID    string // thing fullname (t1_/t3_ prefixed), used for edit/delete
	ID        string
	Kind      ContentKind
	Subreddit string
	Title     string // posts only
	Body      string // comment body or post selftext
	URL       string // posts only
	Score     int
	Replies   int // comments only
	Created   time.Time
	IsSelf    bool // posts only: text post rather than a link
	IsOwner   bool
}

// RunConfig holds the per-run settings, resolved once and never mutated.
type RunConfig struct {
	ReplacementText string
	MinDelay        time.Duration
	MaxDelay        time.Duration
	DryRun          bool
	BackupEnabled   bool
	BannedMode      bool

	// Confirmed is the caller-supplied precondition for destructive rules
	// that require it (remove-all-posts). The core never prompts.
	Confirmed bool
}

func (c RunConfig) Validate() error {
	if c.MinDelay < 0 || c.MaxDelay < 0 {
		return &ValidationError{Field: "delay", Reason: "delays must be non-negative"}
	}
	if c.MinDelay > c.MaxDelay {
		return &ValidationError{Field: "delay", Reason: "min_delay exceeds max_delay"}
	}
	return nil
}

// ExclusionPolicy protects content from every rule. An item matching either
// list is never eligible, no matter which rule is active.
type ExclusionPolicy struct {
	Subreddits []string
	Keywords   []string
}

func (p ExclusionPolicy) ExcludesSubreddit(name string) bool {
	for _, s := range p.Subreddits {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// ExcludesBody reports whether any excluded keyword appears in body,
// case-insensitive. An empty body matches nothing.
func (p ExclusionPolicy) ExcludesBody(body string) bool {
	if body == "" {
		return false
	}
	lower := strings.ToLower(body)
	for _, k := range p.Keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// RunResult reports what one run did. Produced fresh per invocation.
type RunResult struct {
	Processed int
	Removed   int
}

func (r RunResult) Skipped() int { return r.Processed - r.Removed }

// BackupRecord is the snapshot taken just before an item is destroyed.
type BackupRecord struct {
	Kind      ContentKind
	Timestamp time.Time
	Score     int
	Subreddit string
	Title     string
	Body      string
	URL       string
}

// ContentStream yields items lazily in remote listing order. Next returns
// io.EOF once the stream is drained. Streams are finite and not restartable.
type ContentStream interface {
	Next(ctx context.Context) (*ContentItem, error)
}

// ContentSource is the remote account session a cleanup run works against.
type ContentSource interface {
	Comments(ctx context.Context) ContentStream
	Posts(ctx context.Context) ContentStream
	Edit(ctx context.Context, item *ContentItem, text string) error
	Delete(ctx context.Context, item *ContentItem) error
}
