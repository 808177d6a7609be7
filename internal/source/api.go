package source

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

const pageSize = 100

// APISource is the authenticated Reddit session backing a cleanup run. All
// calls go through a shared token-bucket limiter so the randomized run delay
// always has a hard floor under it.
type APISource struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPISource(id, secret, user, pass, userAgent string) (*APISource, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APISource{client: client, limiter: limiter}, nil
}

func (s *APISource) Comments(ctx context.Context) domain.ContentStream {
	return &pageStream{fetch: s.commentPage}
}

func (s *APISource) Posts(ctx context.Context) domain.ContentStream {
	return &pageStream{fetch: s.postPage}
}

func (s *APISource) commentPage(ctx context.Context, after string) ([]*domain.ContentItem, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	opts := &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: pageSize, After: after},
	}
	comments, resp, err := s.client.User.Comments(ctx, opts)
	if err != nil {
		return nil, "", classify("list comments", "", err)
	}

	items := make([]*domain.ContentItem, 0, len(comments))
	for _, c := range comments {
		item := &domain.ContentItem{
			FullID:    c.FullID,
			ID:        c.ID,
			Kind:      domain.KindComment,
			Subreddit: c.SubredditName,
			Body:      c.Body,
			Score:     c.Score,
			Replies:   len(c.Replies.Comments),
			IsOwner:   true,
		}
		if c.Created != nil {
			item.Created = c.Created.Time.UTC()
		}
		items = append(items, item)
	}
	return items, resp.After, nil
}

func (s *APISource) postPage(ctx context.Context, after string) ([]*domain.ContentItem, string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	opts := &reddit.ListUserOverviewOptions{
		ListOptions: reddit.ListOptions{Limit: pageSize, After: after},
	}
	posts, resp, err := s.client.User.Posts(ctx, opts)
	if err != nil {
		return nil, "", classify("list posts", "", err)
	}

	items := make([]*domain.ContentItem, 0, len(posts))
	for _, p := range posts {
		item := &domain.ContentItem{
			FullID:    p.FullID,
			ID:        p.ID,
			Kind:      domain.KindPost,
			Subreddit: p.SubredditName,
			Title:     p.Title,
			Body:      p.Body,
			URL:       p.URL,
			Score:     p.Score,
			IsSelf:    p.IsSelfPost,
			IsOwner:   true,
		}
		if p.Created != nil {
			item.Created = p.Created.Time.UTC()
		}
		items = append(items, item)
	}
	return items, resp.After, nil
}

func (s *APISource) Edit(ctx context.Context, item *domain.ContentItem, text string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	var err error
	switch item.Kind {
	case domain.KindComment:
		_, _, err = s.client.Comment.Edit(ctx, item.FullID, text)
	case domain.KindPost:
		_, _, err = s.client.Post.Edit(ctx, item.FullID, text)
	}
	if err != nil {
		return classify("edit", item.FullID, err)
	}
	return nil
}

func (s *APISource) Delete(ctx context.Context, item *domain.ContentItem) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	var err error
	switch item.Kind {
	case domain.KindComment:
		_, err = s.client.Comment.Delete(ctx, item.FullID)
	case domain.KindPost:
		_, err = s.client.Post.Delete(ctx, item.FullID)
	}
	if err != nil {
		return classify("delete", item.FullID, err)
	}
	return nil
}

// classify tags remote failures: auth-class responses abort the run, rate
// limits and everything else stay transient and become per-item skips.
func classify(op, id string, err error) error {
	fatal := false
	var rle *reddit.RateLimitError
	var re *reddit.ErrorResponse
	switch {
	case errors.As(err, &rle):
		// transient by definition
	case errors.As(err, &re):
		if re.Response != nil {
			code := re.Response.StatusCode
			fatal = code == http.StatusUnauthorized || code == http.StatusForbidden
		}
	}
	return &domain.ActionError{Op: op, ItemID: id, Fatal: fatal, Err: err}
}
