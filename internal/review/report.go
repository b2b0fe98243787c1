package review

import (
	"fmt"
	"sort"
	"strings"
)

type removalCause int

const (
	causeMissing removalCause = iota
	causeDuplicate
	causeInvalidDate
)

// Report summarizes one normalization pass: row counts, the breakdown
// by removal cause, the language distribution over accepted rows and a
// bounded list of per-row removal reasons in input order.
type Report struct {
	OriginalRows int `json:"original_rows"`
	CleanedRows  int `json:"cleaned_rows"`
	RemovedRows  int `json:"removed_rows"`

	MissingRemoved      int `json:"missing_removed"`
	DuplicatesRemoved   int `json:"duplicates_removed"`
	InvalidDatesRemoved int `json:"invalid_dates_removed"`

	Languages map[string]int `json:"languages"`

	Reasons []string `json:"reasons"`
	// ReasonsOmitted counts dropped rows whose reason fell past the cap.
	ReasonsOmitted int `json:"reasons_omitted,omitempty"`
}

// NewReport returns an empty report ready to accumulate.
func NewReport() *Report {
	return &Report{Languages: make(map[string]int)}
}

func (r *Report) drop(cause removalCause, maxReasons int, reason string) {
	switch cause {
	case causeMissing:
		r.MissingRemoved++
	case causeDuplicate:
		r.DuplicatesRemoved++
	case causeInvalidDate:
		r.InvalidDatesRemoved++
	}
	if len(r.Reasons) < maxReasons {
		r.Reasons = append(r.Reasons, reason)
	} else {
		r.ReasonsOmitted++
	}
}

// Text renders the report as a plain-text summary in the same compact
// section style as the anomaly and timeline outputs.
func (r *Report) Text() string {
	var b strings.Builder
	b.WriteString("[PREPROCESSING REPORT]\n")
	b.WriteString(fmt.Sprintf("Original rows: %d\n", r.OriginalRows))
	b.WriteString(fmt.Sprintf("Cleaned rows:  %d\n", r.CleanedRows))
	b.WriteString(fmt.Sprintf("Removed rows:  %d\n", r.RemovedRows))

	b.WriteString("\n[REMOVAL BREAKDOWN]\n")
	b.WriteString(fmt.Sprintf("- missing data:  %d\n", r.MissingRemoved))
	b.WriteString(fmt.Sprintf("- duplicates:    %d\n", r.DuplicatesRemoved))
	b.WriteString(fmt.Sprintf("- invalid dates: %d\n", r.InvalidDatesRemoved))

	if len(r.Languages) > 0 {
		b.WriteString("\n[LANGUAGES]\n")
		langs := make([]string, 0, len(r.Languages))
		for l := range r.Languages {
			langs = append(langs, l)
		}
		sort.Strings(langs)
		for _, l := range langs {
			count := r.Languages[l]
			pct := 0.0
			if r.CleanedRows > 0 {
				pct = float64(count) * 100.0 / float64(r.CleanedRows)
			}
			b.WriteString(fmt.Sprintf("- %s: %d (%.1f%%)\n", l, count, pct))
		}
	}

	if len(r.Reasons) > 0 {
		b.WriteString("\n[REMOVED ROWS]\n")
		for _, reason := range r.Reasons {
			b.WriteString(fmt.Sprintf("- %s\n", reason))
		}
		if r.ReasonsOmitted > 0 {
			b.WriteString(fmt.Sprintf("… and %d more\n", r.ReasonsOmitted))
		}
	}
	return b.String()
}
