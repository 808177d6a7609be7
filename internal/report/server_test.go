package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/905timur/reddit-content-cleaner/internal/backup"
)

func TestLoadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.ndjson")
	data := `{"kind":"comment","timestamp":"2026-08-20T10:00:00Z","score":-3,"subreddit":"golang"}
{"kind":"post","timestamp":"2026-08-20T10:01:00Z","score":12,"subreddit":"programming","title":"x"}
not json
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	entries := loadEntries(path)
	require.Len(t, entries, 2, "malformed lines are skipped")
	assert.Equal(t, "golang", entries[0].Subreddit)
	assert.Equal(t, "programming", entries[1].Subreddit)

	assert.Empty(t, loadEntries(filepath.Join(t.TempDir(), "missing.ndjson")))
}

func TestScoreBuckets(t *testing.T) {
	entries := []backup.AuditEntry{
		{Score: -1}, {Score: 0}, {Score: 1}, {Score: 5}, {Score: 11}, {Score: 1},
	}

	labels, counts := scoreBuckets(entries)
	assert.Equal(t, []string{"<0", "0", "1", "2-10", ">10"}, labels)
	assert.Equal(t, []int{1, 1, 2, 1, 1}, counts)
}
