package review

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/KaramelBytes/staylens-cli/internal/tabular"
)

// Earliest calendar year a review may carry. Exports predating the
// platform are treated as invalid dates.
const minReviewYear = 2008

// Timestamp layout of cleaned rows.
const canonicalTimeLayout = "2006-01-02 15:04:05"

// Layouts accepted for the raw created-at field, tried in order.
var acceptedTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// Normalizer turns raw records into cleaned rows. State (the duplicate
// set, counters) lives on the instance so tests can run isolated
// normalizers without cross-test leakage.
type Normalizer struct {
	// MaxReasons bounds the per-row removal reasons kept in the
	// report; 0 means DefaultMaxReasons. Dropped rows past the cap
	// are still counted.
	MaxReasons int
	// Now anchors the upper bound of the valid date range; zero
	// means time.Now(). Tests pin it for reproducibility.
	Now time.Time
}

// DefaultMaxReasons caps the removal-reason list when the caller does
// not choose a bound.
const DefaultMaxReasons = 50

// Normalize validates and cleans records in input order. Each record
// passes three checks in fixed order, stopping at the first failure:
// required fields, duplicate identifier, date plausibility. Failures
// are never fatal; the row is dropped, counted under exactly one
// cause, and recorded with its 1-based input row number.
func (n *Normalizer) Normalize(records []tabular.Record) ([]*Review, *Report) {
	rep := NewReport()
	rep.OriginalRows = len(records)
	maxReasons := n.MaxReasons
	if maxReasons <= 0 {
		maxReasons = DefaultMaxReasons
	}
	now := n.Now
	if now.IsZero() {
		now = time.Now()
	}

	seen := make(map[string]struct{}, len(records))
	rows := make([]*Review, 0, len(records))
	for i, rec := range records {
		rowNum := i + 1

		text := CleanText(FieldValue(rec, FieldComments))
		listingID := FieldValue(rec, FieldListingID)
		if text == "" || (FieldValue(rec, FieldReviewID) == "" && listingID == "") {
			rep.drop(causeMissing, maxReasons,
				fmt.Sprintf("row %d: missing data (no review text or identifier)", rowNum))
			continue
		}

		id := reviewIdentifier(rec, listingID, text)
		if _, dup := seen[id]; dup {
			rep.drop(causeDuplicate, maxReasons,
				fmt.Sprintf("row %d: duplicate review id %s", rowNum, id))
			continue
		}

		rawDate := FieldValue(rec, FieldDate)
		created, ok := parseReviewDate(rawDate, now)
		if !ok {
			rep.drop(causeInvalidDate, maxReasons,
				fmt.Sprintf("row %d: invalid date %q", rowNum, rawDate))
			continue
		}

		seen[id] = struct{}{}
		lang := strings.ToLower(FieldValue(rec, FieldLanguage))
		if lang == "" {
			lang = "en"
		}
		rows = append(rows, &Review{
			ReviewID:         id,
			ListingID:        listingID,
			Neighbourhood:    FieldValue(rec, FieldNeighbourhood),
			CreatedAt:        created.Format(canonicalTimeLayout),
			Language:         lang,
			Text:             text,
			NeedsTranslation: lang != "en",
		})
		rep.Languages[lang]++
	}
	rep.CleanedRows = len(rows)
	rep.RemovedRows = rep.OriginalRows - rep.CleanedRows
	return rows, rep
}

// reviewIdentifier returns the explicit review id, or derives a stable
// composite from listing id, date and a short text prefix when the
// export carries none.
func reviewIdentifier(rec tabular.Record, listingID, text string) string {
	if id := FieldValue(rec, FieldReviewID); id != "" {
		return id
	}
	// Slice on rune boundaries so multi-byte text never leaves an
	// invalid UTF-8 fragment in the derived id.
	prefix := text
	if utf8.RuneCountInString(prefix) > 16 {
		prefix = string([]rune(prefix)[:16])
	}
	return fmt.Sprintf("%s|%s|%s", listingID, FieldValue(rec, FieldDate), prefix)
}

// parseReviewDate accepts the known layouts and enforces the
// [2008-01-01, now] plausibility window.
func parseReviewDate(raw string, now time.Time) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedTimeLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if t.Year() < minReviewYear || t.After(now) {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
