package rules

import (
	"fmt"
	"strings"
	"time"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

// Kind selects one cleanup criterion.
type Kind int

const (
	OlderThan Kind = iota
	NegativeScore
	LowEngagement
	AllPosts
	OlderThanPosts
	UnderScorePosts
	BySubreddit
	ByKeyword
)

// Rule is an immutable cleanup criterion, constructed once per invocation via the
// New* helpers. Only the payload field matching the kind is meaningful.
type Rule struct {
	Kind      Kind
	Days      int
	Score     int
	Subreddit string
	Keyword   string
}

func NewOlderThan(days int) (Rule, error) {
	if days < 0 {
		return Rule{}, &domain.ValidationError{Field: "days", Reason: "must be non-negative"}
	}
	return Rule{Kind: OlderThan, Days: days}, nil
}

func NewNegativeScore() Rule { return Rule{Kind: NegativeScore} }

func NewLowEngagement() Rule { return Rule{Kind: LowEngagement} }

func NewAllPosts() Rule { return Rule{Kind: AllPosts} }

func NewOlderThanPosts(days int) (Rule, error) {
	if days < 0 {
		return Rule{}, &domain.ValidationError{Field: "days", Reason: "must be non-negative"}
	}
	return Rule{Kind: OlderThanPosts, Days: days}, nil
}

func NewUnderScorePosts(score int) Rule { return Rule{Kind: UnderScorePosts, Score: score} }

func NewBySubreddit(name string) (Rule, error) {
	if strings.TrimSpace(name) == "" {
		return Rule{}, &domain.ValidationError{Field: "subreddit", Reason: "must not be empty"}
	}
	return Rule{Kind: BySubreddit, Subreddit: name}, nil
}

func NewByKeyword(word string) (Rule, error) {
	if strings.TrimSpace(word) == "" {
		return Rule{}, &domain.ValidationError{Field: "keyword", Reason: "must not be empty"}
	}
	return Rule{Kind: ByKeyword, Keyword: word}, nil
}

func (r Rule) String() string {
	switch r.Kind {
	case OlderThan:
		return fmt.Sprintf("comments-older-than(%d days)", r.Days)
	case NegativeScore:
		return "negative-karma"
	case LowEngagement:
		return "low-engagement"
	case AllPosts:
		return "all-posts"
	case OlderThanPosts:
		return fmt.Sprintf("posts-older-than(%d days)", r.Days)
	case UnderScorePosts:
		return fmt.Sprintf("posts-under-score(%d)", r.Score)
	case BySubreddit:
		return fmt.Sprintf("subreddit(%s)", r.Subreddit)
	case ByKeyword:
		return fmt.Sprintf("keyword(%s)", r.Keyword)
	}
	return "unknown"
}

// Targets reports which content streams the rule wants, in the order the
// orchestrator should drain them.
func (r Rule) Targets() []domain.ContentKind {
	switch r.Kind {
	case OlderThan, NegativeScore, LowEngagement:
		return []domain.ContentKind{domain.KindComment}
	case AllPosts, OlderThanPosts, UnderScorePosts:
		return []domain.ContentKind{domain.KindPost}
	default:
		return []domain.ContentKind{domain.KindComment, domain.KindPost}
	}
}

// Eligible decides whether item falls to rule. The exclusion policy always
// wins over the rule. now must be captured once per run so the age cutoff
// stays consistent across the whole batch.
func Eligible(item *domain.ContentItem, r Rule, policy domain.ExclusionPolicy, now time.Time) bool {
	if policy.ExcludesSubreddit(item.Subreddit) || policy.ExcludesBody(item.Body) {
		return false
	}
	switch r.Kind {
	case OlderThan:
		return olderThan(item, r.Days, now)
	case NegativeScore:
		return item.Kind == domain.KindComment && item.Score < 0
	case LowEngagement:
		return item.Kind == domain.KindComment && item.Score == 1 && item.Replies == 0
	case AllPosts:
		return item.Kind == domain.KindPost
	case OlderThanPosts:
		return item.Kind == domain.KindPost && olderThan(item, r.Days, now)
	case UnderScorePosts:
		return item.Kind == domain.KindPost && item.Score < r.Score
	case BySubreddit:
		return strings.EqualFold(item.Subreddit, r.Subreddit)
	case ByKeyword:
		return matchesKeyword(item, r.Keyword)
	}
	return false
}

func olderThan(item *domain.ContentItem, days int, now time.Time) bool {
	return now.Sub(item.Created) >= time.Duration(days)*24*time.Hour
}

// matchesKeyword checks the body for comments, and body plus title for
// posts. An empty body never matches on its own.
func matchesKeyword(item *domain.ContentItem, word string) bool {
	w := strings.ToLower(word)
	if item.Body != "" && strings.Contains(strings.ToLower(item.Body), w) {
		return true
	}
	if item.Kind == domain.KindPost && item.Title != "" && strings.Contains(strings.ToLower(item.Title), w) {
		return true
	}
	return false
}
