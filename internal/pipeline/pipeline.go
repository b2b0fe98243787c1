// Package pipeline wires the stages together: parse, structure check,
// normalize, score, detect, aggregate. Data flows strictly downward;
// each ingest processes one full row set and supersedes the previous
// one.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/staylens-cli/internal/anomaly"
	"github.com/KaramelBytes/staylens-cli/internal/oracle"
	"github.com/KaramelBytes/staylens-cli/internal/review"
	"github.com/KaramelBytes/staylens-cli/internal/tabular"
	"github.com/KaramelBytes/staylens-cli/internal/timeline"
)

// Options configures one pipeline run. The zero value parses
// comma-delimited input, uses the lexicon scorer only and the z-score
// anomaly strategy.
type Options struct {
	Delimiter       rune
	ExpectedHeaders []string
	MaxReasons      int
	Strategy        anomaly.Strategy
	// Scorer, when set, supplies external scores in place of the
	// lexicon ones. Failures fall back to the lexicon per batch.
	Scorer    oracle.Scorer
	BatchSize int
	// Now pins the date-validation window for tests.
	Now time.Time
}

// Result is everything one run produces. When StructuralErrors is
// non-empty the run aborted before row processing and all other
// derived fields are empty.
type Result struct {
	RunID            string
	Headers          []string
	StructuralErrors []string
	Rows             []*review.Review
	Report           *review.Report
	Scored           []anomaly.ScoredRow
	Anomalies        []anomaly.Record
	Timeline         []timeline.Bucket
}

// Run executes the full pipeline over raw delimited text.
func Run(ctx context.Context, text string, opts Options) *Result {
	res := &Result{RunID: uuid.NewString()}
	delim := opts.Delimiter
	if delim == 0 {
		delim = ','
	}
	tab := tabular.Parse(text, delim)
	res.Headers = tab.Headers

	if errs := tabular.ValidateStructure(tab.Headers, opts.ExpectedHeaders); len(errs) > 0 {
		res.StructuralErrors = errs
		res.Report = review.NewReport()
		return res
	}

	n := &review.Normalizer{MaxReasons: opts.MaxReasons, Now: opts.Now}
	res.Rows, res.Report = n.Normalize(tab.Records)

	res.Scored = Enrich(ctx, res.Rows, opts.Scorer, opts.BatchSize)

	detector := &anomaly.Detector{Strategy: opts.Strategy}
	res.Anomalies = detector.Detect(res.Scored)
	res.Timeline = timeline.Build(res.Scored)
	return res
}
