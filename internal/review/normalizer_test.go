package review_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/staylens-cli/internal/review"
	"github.com/KaramelBytes/staylens-cli/internal/tabular"
)

// fixedNow keeps the date plausibility window stable across test runs.
var fixedNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func rec(id, listing, date, comments string) tabular.Record {
	return tabular.Record{
		"id":            id,
		"listing_id":    listing,
		"date":          date,
		"comments":      comments,
		"neighbourhood": "Centrum",
	}
}

func TestNormalizeHappyPath(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	rows, rep := n.Normalize([]tabular.Record{
		rec("1", "100", "2024-05-01", "Lovely stay"),
		rec("2", "100", "2024-05-02", "Quiet and clean"),
	})
	if len(rows) != 2 || rep.CleanedRows != 2 || rep.RemovedRows != 0 {
		t.Fatalf("expected 2 clean rows, got rows=%d report=%+v", len(rows), rep)
	}
	if rows[0].CreatedAt != "2024-05-01 00:00:00" {
		t.Fatalf("timestamp not canonical: %q", rows[0].CreatedAt)
	}
	if rows[0].Language != "en" || rows[0].NeedsTranslation {
		t.Fatalf("language defaulting broken: %+v", rows[0])
	}
}

func TestNormalizeRemovalCauses(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	rows, rep := n.Normalize([]tabular.Record{
		rec("1", "100", "2024-05-01", "First review"),
		rec("", "", "2024-05-01", "No identifiers at all"),
		rec("2", "100", "2024-05-01", ""),
		rec("1", "100", "2024-05-03", "Duplicate of the first"),
		rec("3", "100", "1999-01-01", "Too old"),
		rec("4", "100", "not-a-date", "Bad date"),
	})
	if len(rows) != 1 {
		t.Fatalf("expected 1 surviving row, got %d", len(rows))
	}
	if rep.MissingRemoved != 2 || rep.DuplicatesRemoved != 1 || rep.InvalidDatesRemoved != 2 {
		t.Fatalf("unexpected breakdown: %+v", rep)
	}
	if rep.OriginalRows != 6 || rep.RemovedRows != 5 {
		t.Fatalf("unexpected totals: %+v", rep)
	}
	if len(rep.Reasons) != 5 {
		t.Fatalf("expected one reason per dropped row, got %v", rep.Reasons)
	}
	if !strings.Contains(rep.Reasons[0], "row 2") {
		t.Fatalf("reasons should carry 1-based row numbers: %q", rep.Reasons[0])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	rows, _ := n.Normalize([]tabular.Record{
		rec("1", "100", "2024-05-01", "Great location"),
		rec("2", "101", "2024-06-01", "Trop bruyant"),
	})
	// Feed the cleaned output back in as raw records.
	again := make([]tabular.Record, len(rows))
	for i, r := range rows {
		again[i] = tabular.Record{
			"review_id":     r.ReviewID,
			"listing_id":    r.ListingID,
			"date":          r.CreatedAt,
			"comments":      r.Text,
			"neighbourhood": r.Neighbourhood,
			"language":      r.Language,
		}
	}
	n2 := &review.Normalizer{Now: fixedNow}
	rows2, rep2 := n2.Normalize(again)
	if len(rows2) != len(rows) || rep2.RemovedRows != 0 {
		t.Fatalf("normalize not idempotent: %+v", rep2)
	}
}

func TestNormalizeDerivedIdentifier(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	r := tabular.Record{
		"listing_id": "42",
		"date":       "2024-05-01",
		"comments":   "Same text same day",
	}
	dup := tabular.Record{
		"listing_id": "42",
		"date":       "2024-05-01",
		"comments":   "Same text same day",
	}
	rows, rep := n.Normalize([]tabular.Record{r, dup})
	if len(rows) != 1 || rep.DuplicatesRemoved != 1 {
		t.Fatalf("derived composite id should dedupe, got %d rows, %+v", len(rows), rep)
	}
}

func TestNormalizeDerivedIdentifierMultiByte(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	rows, _ := n.Normalize([]tabular.Record{{
		"listing_id": "42",
		"date":       "2024-05-01",
		"comments":   "素晴らしい部屋でしたまた泊まりたい", // 17 characters
	}})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	id := rows[0].ReviewID
	if !utf8.ValidString(id) {
		t.Fatalf("derived id contains invalid UTF-8: %q", id)
	}
	if !strings.HasSuffix(id, "素晴らしい部屋でしたまた泊まりた") {
		t.Fatalf("prefix should cut on a character boundary: %q", id)
	}
}

func TestNormalizeLanguageTagging(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	r := rec("1", "100", "2024-05-01", "Muy bonito")
	r["language"] = " ES "
	rows, rep := n.Normalize([]tabular.Record{r})
	if rows[0].Language != "es" || !rows[0].NeedsTranslation {
		t.Fatalf("language tagging broken: %+v", rows[0])
	}
	if rep.Languages["es"] != 1 {
		t.Fatalf("language distribution missing accepted row: %+v", rep.Languages)
	}
}

func TestNormalizeReasonCap(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow, MaxReasons: 2}
	records := make([]tabular.Record, 5)
	for i := range records {
		records[i] = rec("", "", "2024-05-01", "") // all missing data
	}
	_, rep := n.Normalize(records)
	if len(rep.Reasons) != 2 || rep.ReasonsOmitted != 3 {
		t.Fatalf("reason cap broken: %d reasons, %d omitted", len(rep.Reasons), rep.ReasonsOmitted)
	}
	if rep.MissingRemoved != 5 {
		t.Fatalf("capped reasons must still count removals: %+v", rep)
	}
}

func TestCleanTextMojibake(t *testing.T) {
	cases := []struct{ in, want string }{
		{"donâ€™t miss it", "don't miss it"},
		{"trÃ¨s agrÃ©able", "très agréable"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		if got := review.CleanText(tc.in); got != tc.want {
			t.Fatalf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestReportText(t *testing.T) {
	n := &review.Normalizer{Now: fixedNow}
	_, rep := n.Normalize([]tabular.Record{
		rec("1", "100", "2024-05-01", "Good"),
		rec("2", "100", "1999-01-01", "Old"),
	})
	text := rep.Text()
	for _, want := range []string{
		"[PREPROCESSING REPORT]", "Original rows: 2", "Cleaned rows:  1",
		"invalid dates: 1", "[LANGUAGES]", "en: 1 (100.0%)", "row 2",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("report text missing %q:\n%s", want, text)
		}
	}
}
