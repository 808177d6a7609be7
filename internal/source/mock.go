package source

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

// MockSource implements domain.ContentSource against in-memory fixtures. It
// records every edit/delete so tests can assert on call order, and mock-mode
// runs never touch the real API.
type MockSource struct {
	CommentItems []*domain.ContentItem
	PostItems    []*domain.ContentItem

	// Calls holds "edit:<fullID>" / "delete:<fullID>" in invocation order.
	Calls []string

	FailEdit   map[string]error
	FailDelete map[string]error

	// CommentsErr/PostsErr end the matching stream with an error after its
	// items, instead of a clean EOF.
	CommentsErr error
	PostsErr    error
}

// NewMockSource returns a source pre-filled with fake history, handy for
// exercising a full run without credentials.
func NewMockSource() *MockSource {
	now := time.Now().UTC()
	ms := &MockSource{}
	for i := 0; i < 25; i++ {
		ms.CommentItems = append(ms.CommentItems, &domain.ContentItem{
			FullID:    fmt.Sprintf("t1_mock%d", i),
			ID:        fmt.Sprintf("mock%d", i),
			Kind:      domain.KindComment,
			Subreddit: "golang",
			Body:      fmt.Sprintf("simulated comment #%d", i),
			Score:     rand.Intn(20) - 5,
			Created:   now.AddDate(0, 0, -rand.Intn(400)),
			IsOwner:   true,
		})
	}
	for i := 0; i < 10; i++ {
		ms.PostItems = append(ms.PostItems, &domain.ContentItem{
			FullID:    fmt.Sprintf("t3_mock%d", i),
			ID:        fmt.Sprintf("mock%d", i),
			Kind:      domain.KindPost,
			Subreddit: "programming",
			Title:     fmt.Sprintf("Simulated post #%d", i),
			Body:      fmt.Sprintf("simulated selftext #%d", i),
			Score:     rand.Intn(50),
			Created:   now.AddDate(0, 0, -rand.Intn(400)),
			IsSelf:    true,
			IsOwner:   true,
		})
	}
	return ms
}

func (m *MockSource) Comments(ctx context.Context) domain.ContentStream {
	return &sliceStream{items: m.CommentItems, failWith: m.CommentsErr}
}

func (m *MockSource) Posts(ctx context.Context) domain.ContentStream {
	return &sliceStream{items: m.PostItems, failWith: m.PostsErr}
}

func (m *MockSource) Edit(ctx context.Context, item *domain.ContentItem, text string) error {
	m.Calls = append(m.Calls, "edit:"+item.FullID)
	if err := m.FailEdit[item.FullID]; err != nil {
		return err
	}
	return nil
}

func (m *MockSource) Delete(ctx context.Context, item *domain.ContentItem) error {
	m.Calls = append(m.Calls, "delete:"+item.FullID)
	if err := m.FailDelete[item.FullID]; err != nil {
		return err
	}
	return nil
}

// Edits returns the fullIDs that were edited, in order.
func (m *MockSource) Edits() []string { return m.byOp("edit:") }

// Deletes returns the fullIDs that were deleted, in order.
func (m *MockSource) Deletes() []string { return m.byOp("delete:") }

func (m *MockSource) byOp(prefix string) []string {
	var out []string
	for _, c := range m.Calls {
		if len(c) > len(prefix) && c[:len(prefix)] == prefix {
			out = append(out, c[len(prefix):])
		}
	}
	return out
}
