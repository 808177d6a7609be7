package backup

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

func testDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRecorder(t *testing.T) *Recorder {
	t.Helper()
	dir := t.TempDir()
	return NewRecorder(filepath.Join(dir, "deleted_content.txt"), filepath.Join(dir, "audit.ndjson"))
}

func TestRecordWritesBlock(t *testing.T) {
	r := newTestRecorder(t)

	ts := time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC)
	err := r.Record(domain.BackupRecord{
		Kind:      domain.KindPost,
		Timestamp: ts,
		Score:     42,
		Subreddit: "golang",
		Title:     "My post",
		Body:      "selftext here",
		URL:       "https://example.com/x.png",
	})
	require.NoError(t, err)

	data, err := os.ReadFile(r.BackupPath)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Type: post\n")
	assert.Contains(t, text, "Timestamp: 2026-08-20T10:30:00Z\n")
	assert.Contains(t, text, "Score: 42\n")
	assert.Contains(t, text, "Sub: golang\n")
	assert.Contains(t, text, "Title: My post\n")
	assert.Contains(t, text, "Content: selftext here\n")
	assert.Contains(t, text, "URL: https://example.com/x.png\n")
	assert.Equal(t, 1, strings.Count(text, separator))
}

func TestRecordSubstitutesPlaceholders(t *testing.T) {
	r := newTestRecorder(t)

	require.NoError(t, r.Record(domain.BackupRecord{Kind: domain.KindComment, Score: 1}))

	data, err := os.ReadFile(r.BackupPath)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "Sub: [unknown]\n")
	assert.Contains(t, text, "Content: [empty]\n")
	assert.NotContains(t, text, "0001-01-01", "zero timestamp must be replaced")
}

func TestRecordIsAppendOnly(t *testing.T) {
	r := newTestRecorder(t)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Record(domain.BackupRecord{
			Kind:      domain.KindComment,
			Timestamp: time.Now().UTC(),
			Subreddit: "golang",
			Body:      "body",
		}))
	}

	data, err := os.ReadFile(r.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), separator))

	f, err := os.Open(r.AuditPath)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e AuditEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		assert.Equal(t, "golang", e.Subreddit)
		lines++
	}
	assert.Equal(t, 3, lines)
}

func TestArchiveIgnoresNonMedia(t *testing.T) {
	dir := t.TempDir()
	m := NewMediaArchiver(filepath.Join(dir, "media"), testDiscardLogger())

	require.NoError(t, m.Archive(""))
	require.NoError(t, m.Archive("https://example.com/some/page"))
	require.NoError(t, m.Archive("::not a url::"))

	_, err := os.Stat(filepath.Join(dir, "media"))
	assert.True(t, os.IsNotExist(err), "no media directory for non-media URLs")
}
