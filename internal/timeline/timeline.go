// Package timeline buckets scored reviews by calendar month and tracks
// how average tone moves month over month.
package timeline

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/KaramelBytes/staylens-cli/internal/anomaly"
)

// Bucket is one calendar month of reviews. AverageSentiment is the
// mean tone rescaled from [-1, 1] to [0, 1]. ChangePct is the percent
// change against the previous bucket, absent for the first bucket and
// for buckets following a zero average.
type Bucket struct {
	Month            string   `json:"month"` // "MM/YY"
	AverageSentiment float64  `json:"average_sentiment"`
	ReviewCount      int      `json:"review_count"`
	ChangePct        *float64 `json:"change_pct,omitempty"`
}

// Build groups rows by calendar year and month, sorted chronologically
// (January before November, not the lexicographic "1/24" vs "11/24"
// order). Rows whose timestamp fails to parse are skipped.
func Build(rows []anomaly.ScoredRow) []Bucket {
	type acc struct {
		sum   float64
		count int
	}
	months := make(map[time.Time]*acc)
	for _, r := range rows {
		t, err := time.Parse("2006-01-02 15:04:05", r.Row.CreatedAt)
		if err != nil {
			continue
		}
		key := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		a := months[key]
		if a == nil {
			a = &acc{}
			months[key] = a
		}
		a.sum += r.Score
		a.count++
	}
	keys := make([]time.Time, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	buckets := make([]Bucket, 0, len(keys))
	var prev *Bucket
	for _, k := range keys {
		a := months[k]
		// Rescale mean tone from [-1, 1] onto [0, 1].
		avg := (a.sum/float64(a.count) + 1) / 2
		b := Bucket{
			Month:            fmt.Sprintf("%d/%02d", int(k.Month()), k.Year()%100),
			AverageSentiment: avg,
			ReviewCount:      a.count,
		}
		if prev != nil && prev.AverageSentiment != 0 {
			change := (avg - prev.AverageSentiment) / prev.AverageSentiment * 100
			change = math.Round(change*10) / 10
			b.ChangePct = &change
		}
		buckets = append(buckets, b)
		prev = &buckets[len(buckets)-1]
	}
	return buckets
}
