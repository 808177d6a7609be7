package config

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/905timur/reddit-content-cleaner/internal/domain"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// Policy merges the config-file exclusion lists with the optional CSV
// lists, deduplicating case-insensitively. Missing CSV files are fine.
func (f File) Policy(subsCSV, keywordsCSV string) domain.ExclusionPolicy {
	subs := append([]string{}, f.ExcludedSubs...)
	if extra, err := loadSubs(subsCSV); err == nil {
		subs = append(subs, extra...)
	}

	keywords := append([]string{}, f.ExcludedKeywords...)
	if extra, err := loadKeywords(keywordsCSV); err == nil {
		keywords = append(keywords, extra...)
	}

	return domain.ExclusionPolicy{
		Subreddits: dedupe(subs),
		Keywords:   dedupe(keywords),
	}
}

func loadSubs(path string) ([]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	var subs []string
	for _, rec := range rows {
		if len(rec) == 0 {
			continue
		}
		// Validation (fail-soft)
		sub := strings.TrimSpace(rec[0])
		if !subNameRegex.MatchString(sub) {
			continue
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func loadKeywords(path string) ([]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	var kws []string
	for _, rec := range rows {
		if len(rec) == 0 {
			continue
		}
		kw := strings.TrimSpace(rec[0])
		if kw == "" {
			continue
		}
		kws = append(kws, strings.ToLower(kw))
	}
	return kws, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(stripBOM(f))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	ch, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if ch != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}

// dedupe drops case-insensitive duplicates, keeping first-seen casing.
func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
