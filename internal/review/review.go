// Package review holds the cleaned review row model and the normalizer
// that turns raw parsed records into validated rows plus a processing
// report.
package review

import (
	"strings"

	"github.com/KaramelBytes/staylens-cli/internal/tabular"
)

// Review is one cleaned, validated review row. Rows are immutable once
// produced; a new ingest fully replaces the previous set.
type Review struct {
	ReviewID         string `json:"review_id"`
	ListingID        string `json:"listing_id"`
	Neighbourhood    string `json:"neighbourhood"`
	CreatedAt        string `json:"created_at"` // "YYYY-MM-DD HH:MM:SS"
	Language         string `json:"language"`
	Text             string `json:"raw_text"`
	NeedsTranslation bool   `json:"needs_translation"`
}

// CSVHeader is the column order of the cleaned CSV artifact.
var CSVHeader = []string{
	"review_id", "listing_id", "neighbourhood", "created_at",
	"language", "raw_text", "needs_translation",
}

// CSVRow renders the review in CSVHeader order.
func (r *Review) CSVRow() []string {
	needs := "false"
	if r.NeedsTranslation {
		needs = "true"
	}
	return []string{
		r.ReviewID, r.ListingID, r.Neighbourhood, r.CreatedAt,
		r.Language, r.Text, needs,
	}
}

// Canonical field names resolved from header variants.
const (
	FieldReviewID      = "review_id"
	FieldListingID     = "listing_id"
	FieldDate          = "date"
	FieldComments      = "comments"
	FieldNeighbourhood = "neighbourhood"
	FieldLanguage      = "language"
)

// fieldSynonyms maps canonical field names to header spellings seen in
// the wild. Lookup is case- and whitespace-insensitive; unrecognized
// columns stay in the raw record but are ignored downstream.
var fieldSynonyms = map[string][]string{
	FieldReviewID:      {"id", "review_id", "reviewid", "review id"},
	FieldListingID:     {"listing_id", "listingid", "listing id", "property_id"},
	FieldDate:          {"date", "created_at", "created", "review_date", "reviewed_at"},
	FieldComments:      {"comments", "comment", "review", "review_text", "text", "body"},
	FieldNeighbourhood: {"neighbourhood", "neighborhood", "neighbourhood_cleansed", "area", "district"},
	FieldLanguage:      {"language", "lang", "locale"},
}

// FieldValue resolves a canonical field from a raw record by trying its
// known header spellings. Returns the trimmed value, or "" when no
// variant is present.
func FieldValue(rec tabular.Record, field string) string {
	for _, name := range fieldSynonyms[field] {
		for key, val := range rec {
			if strings.EqualFold(strings.TrimSpace(key), name) {
				if v := strings.TrimSpace(val); v != "" {
					return v
				}
			}
		}
	}
	return ""
}
