package report

import (
	"bufio"
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/905timur/reddit-content-cleaner/internal/backup"
)

// StartServer renders removal statistics from the audit file.
func StartServer(auditFile, port string) error {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		entries := loadEntries(auditFile)

		// 1. Removals per subreddit
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Removed Content by Subreddit"}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		subCounts := make(map[string]int)
		for _, e := range entries {
			subCounts[e.Subreddit]++
		}

		var pieItems []opts.PieData
		for k, v := range subCounts {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
		}
		pie.AddSeries("Removed", pieItems)

		// 2. Score distribution of what was removed
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Score Distribution"}))

		labels, counts := scoreBuckets(entries)
		var barY []opts.BarData
		for _, c := range counts {
			barY = append(barY, opts.BarData{Value: c})
		}
		bar.SetXAxis(labels).AddSeries("Items", barY)

		pie.Render(w)
		bar.Render(w)
	})

	return http.ListenAndServe(":"+port, nil)
}

func loadEntries(path string) []backup.AuditEntry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var entries []backup.AuditEntry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e backup.AuditEntry
		if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
			entries = append(entries, e)
		}
	}
	return entries
}

var bucketOrder = []string{"<0", "0", "1", "2-10", ">10"}

func scoreBuckets(entries []backup.AuditEntry) ([]string, []int) {
	counts := make(map[string]int)
	for _, e := range entries {
		switch {
		case e.Score < 0:
			counts["<0"]++
		case e.Score == 0:
			counts["0"]++
		case e.Score == 1:
			counts["1"]++
		case e.Score <= 10:
			counts["2-10"]++
		default:
			counts[">10"]++
		}
	}
	labels := append([]string{}, bucketOrder...)
	out := make([]int, len(labels))
	for i, l := range labels {
		out[i] = counts[l]
	}
	return labels, out
}
