package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

const separator = "--------------------------------------------------"

// AuditEntry is the NDJSON projection of a backup record, consumed by the
// report dashboard. The full original body lives only in the backup file.
type AuditEntry struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Score     int       `json:"score"`
	Subreddit string    `json:"subreddit"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// Recorder appends one human-readable block per removed item to the backup
// file, plus one NDJSON line to the audit file. Append is the only
// operation; prior records are never touched.
type Recorder struct {
	BackupPath string
	AuditPath  string

	mu sync.Mutex
}

func NewRecorder(backupPath, auditPath string) *Recorder {
	return &Recorder{BackupPath: backupPath, AuditPath: auditPath}
}

// Record appends rec to both destinations. A malformed record must never
// block the batch: missing fields get placeholders, and a write failure
// comes back as a recoverable BackupError.
func (r *Recorder) Record(rec domain.BackupRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec = withPlaceholders(rec)
	if err := r.appendBlock(rec); err != nil {
		return &domain.BackupError{Err: err}
	}
	if err := r.appendAudit(rec); err != nil {
		return &domain.BackupError{Err: err}
	}
	return nil
}

func withPlaceholders(rec domain.BackupRecord) domain.BackupRecord {
	if rec.Kind == "" {
		rec.Kind = domain.ContentKind("unknown")
	}
	if rec.Subreddit == "" {
		rec.Subreddit = "[unknown]"
	}
	if rec.Body == "" {
		rec.Body = "[empty]"
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}
	return rec
}

func (r *Recorder) appendBlock(rec domain.BackupRecord) error {
	f, err := openAppend(r.BackupPath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "Type: %s\n", rec.Kind)
	fmt.Fprintf(f, "Timestamp: %s\n", rec.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(f, "Score: %d\n", rec.Score)
	fmt.Fprintf(f, "Sub: %s\n", rec.Subreddit)
	if rec.Kind == domain.KindPost {
		fmt.Fprintf(f, "Title: %s\n", rec.Title)
	}
	fmt.Fprintf(f, "Content: %s\n", rec.Body)
	if rec.Kind == domain.KindPost && rec.URL != "" {
		fmt.Fprintf(f, "URL: %s\n", rec.URL)
	}
	_, err = fmt.Fprintln(f, separator)
	return err
}

func (r *Recorder) appendAudit(rec domain.BackupRecord) error {
	f, err := openAppend(r.AuditPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(AuditEntry{
		Kind:      string(rec.Kind),
		Timestamp: rec.Timestamp.UTC(),
		Score:     rec.Score,
		Subreddit: rec.Subreddit,
		Title:     rec.Title,
		URL:       rec.URL,
	})
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}
