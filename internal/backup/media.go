package backup

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

var mediaExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".mp4"}

// MediaArchiver saves a post's linked media locally before the post is
// deleted. Archive failures are reported upward but must never block the
// deletion itself.
type MediaArchiver struct {
	Dir    string
	client *retryablehttp.Client
	log    *slog.Logger
}

func NewMediaArchiver(dir string, log *slog.Logger) *MediaArchiver {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil
	return &MediaArchiver{Dir: dir, client: client, log: log}
}

// Archive downloads rawURL into the media directory when it points at a
// known media extension. Anything else is ignored without error.
func (m *MediaArchiver) Archive(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}
	if !isMediaPath(u.Path) {
		return nil
	}

	if err := os.MkdirAll(m.Dir, 0755); err != nil {
		return err
	}

	resp, err := m.client.Get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("media fetch status: %d", resp.StatusCode)
	}

	dst := filepath.Join(m.Dir, path.Base(u.Path))
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return err
	}
	m.log.Info("archived media", "file", dst)
	return nil
}

func isMediaPath(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range mediaExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
