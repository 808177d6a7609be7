package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

var now = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func testComment() *domain.ContentItem {
	return &domain.ContentItem{
		FullID:    "t1_abc",
		ID:        "abc",
		Kind:      domain.KindComment,
		Subreddit: "AskReddit",
		Body:      "some comment text",
		Score:     5,
		Created:   now.AddDate(0, 0, -10),
		IsOwner:   true,
	}
}

func testPost() *domain.ContentItem {
	return &domain.ContentItem{
		FullID:    "t3_def",
		ID:        "def",
		Kind:      domain.KindPost,
		Subreddit: "programming",
		Title:     "A post title",
		Body:      "post selftext",
		Score:     3,
		Created:   now.AddDate(0, 0, -100),
		IsSelf:    true,
		IsOwner:   true,
	}
}

func allRules(t *testing.T) []Rule {
	t.Helper()
	older, err := NewOlderThan(1)
	require.NoError(t, err)
	olderPosts, err := NewOlderThanPosts(1)
	require.NoError(t, err)
	bySub, err := NewBySubreddit("AskReddit")
	require.NoError(t, err)
	byKw, err := NewByKeyword("text")
	require.NoError(t, err)
	return []Rule{
		older,
		NewNegativeScore(),
		NewLowEngagement(),
		NewAllPosts(),
		olderPosts,
		NewUnderScorePosts(100),
		bySub,
		byKw,
	}
}

func TestExcludedSubredditBlocksEveryRule(t *testing.T) {
	policy := domain.ExclusionPolicy{Subreddits: []string{"askreddit", "programming"}}

	for _, rule := range allRules(t) {
		item := testComment()
		item.Score = -10
		assert.False(t, Eligible(item, rule, policy, now), "rule %s", rule)

		post := testPost()
		assert.False(t, Eligible(post, rule, policy, now), "rule %s", rule)
	}
}

func TestExcludedKeywordBlocksEveryRule(t *testing.T) {
	policy := domain.ExclusionPolicy{Keywords: []string{"COMMENT"}}

	for _, rule := range allRules(t) {
		item := testComment()
		item.Score = -10
		assert.False(t, Eligible(item, rule, policy, now), "rule %s", rule)
	}
}

func TestOlderThanBoundary(t *testing.T) {
	rule, err := NewOlderThan(30)
	require.NoError(t, err)

	item := testComment()
	item.Created = now.Add(-30 * 24 * time.Hour)
	assert.True(t, Eligible(item, rule, domain.ExclusionPolicy{}, now), "exactly n days old is eligible")

	item.Created = now.Add(-30*24*time.Hour + time.Second)
	assert.False(t, Eligible(item, rule, domain.ExclusionPolicy{}, now), "one second short of n days is not")
}

func TestNegativeScore(t *testing.T) {
	rule := NewNegativeScore()

	item := testComment()
	item.Score = -1
	assert.True(t, Eligible(item, rule, domain.ExclusionPolicy{}, now))

	item.Score = 0
	assert.False(t, Eligible(item, rule, domain.ExclusionPolicy{}, now))

	post := testPost()
	post.Score = -5
	assert.False(t, Eligible(post, rule, domain.ExclusionPolicy{}, now), "comment-only rule ignores posts")
}

func TestLowEngagement(t *testing.T) {
	rule := NewLowEngagement()

	cases := []struct {
		score    int
		replies  int
		eligible bool
	}{
		{1, 0, true},
		{1, 1, false},
		{2, 0, false},
		{0, 0, false},
	}
	for _, tc := range cases {
		item := testComment()
		item.Score = tc.score
		item.Replies = tc.replies
		assert.Equal(t, tc.eligible, Eligible(item, rule, domain.ExclusionPolicy{}, now),
			"score=%d replies=%d", tc.score, tc.replies)
	}
}

func TestAllPosts(t *testing.T) {
	rule := NewAllPosts()
	assert.True(t, Eligible(testPost(), rule, domain.ExclusionPolicy{}, now))
	assert.False(t, Eligible(testComment(), rule, domain.ExclusionPolicy{}, now))
}

func TestUnderScorePosts(t *testing.T) {
	rule := NewUnderScorePosts(5)

	post := testPost()
	post.Score = 4
	assert.True(t, Eligible(post, rule, domain.ExclusionPolicy{}, now))

	post.Score = 5
	assert.False(t, Eligible(post, rule, domain.ExclusionPolicy{}, now), "threshold is exclusive")

	item := testComment()
	item.Score = -10
	assert.False(t, Eligible(item, rule, domain.ExclusionPolicy{}, now), "post-only rule ignores comments")
}

func TestBySubredditCaseInsensitive(t *testing.T) {
	rule, err := NewBySubreddit("askreddit")
	require.NoError(t, err)

	assert.True(t, Eligible(testComment(), rule, domain.ExclusionPolicy{}, now))
	assert.False(t, Eligible(testPost(), rule, domain.ExclusionPolicy{}, now))
}

func TestByKeyword(t *testing.T) {
	rule, err := NewByKeyword("Comment")
	require.NoError(t, err)

	assert.True(t, Eligible(testComment(), rule, domain.ExclusionPolicy{}, now))

	empty := testComment()
	empty.Body = ""
	assert.False(t, Eligible(empty, rule, domain.ExclusionPolicy{}, now), "empty body never matches")

	titleRule, err := NewByKeyword("post TITLE")
	require.NoError(t, err)
	assert.True(t, Eligible(testPost(), titleRule, domain.ExclusionPolicy{}, now), "post titles are searched too")
}

func TestConstructorsReject(t *testing.T) {
	var ve *domain.ValidationError

	_, err := NewOlderThan(-1)
	require.ErrorAs(t, err, &ve)

	_, err = NewOlderThanPosts(-5)
	require.ErrorAs(t, err, &ve)

	_, err = NewBySubreddit("  ")
	require.ErrorAs(t, err, &ve)

	_, err = NewByKeyword("")
	require.ErrorAs(t, err, &ve)
}

func TestTargets(t *testing.T) {
	assert.Equal(t, []domain.ContentKind{domain.KindComment}, NewNegativeScore().Targets())
	assert.Equal(t, []domain.ContentKind{domain.KindPost}, NewAllPosts().Targets())

	bySub, err := NewBySubreddit("golang")
	require.NoError(t, err)
	assert.Equal(t, []domain.ContentKind{domain.KindComment, domain.KindPost}, bySub.Targets())
}
