package pipeline

import (
	"context"

	"github.com/KaramelBytes/staylens-cli/internal/anomaly"
	"github.com/KaramelBytes/staylens-cli/internal/oracle"
	"github.com/KaramelBytes/staylens-cli/internal/review"
	"github.com/KaramelBytes/staylens-cli/internal/sentiment"
)

// DefaultBatchSize is the oracle batch size when the caller does not
// choose one.
const DefaultBatchSize = 25

// Enrich scores rows, preserving input order. Without a scorer every
// row gets the lexicon score. With one, texts go out in batches and
// each successful result replaces the lexicon score for its row; a
// failed batch silently keeps the lexicon scores, so no row is ever
// left unscored and a bad batch never aborts the run.
func Enrich(ctx context.Context, rows []*review.Review, scorer oracle.Scorer, batchSize int) []anomaly.ScoredRow {
	scored := make([]anomaly.ScoredRow, len(rows))
	for i, r := range rows {
		scored[i] = anomaly.ScoredRow{Row: r, Score: sentiment.Score(r.Text).Score}
	}
	if scorer == nil {
		return scored
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = rows[i].Text
		}
		results, err := scorer.ScoreBatch(ctx, texts)
		if err != nil || len(results) != len(texts) {
			continue // lexicon scores stand for this batch
		}
		for i := start; i < end; i++ {
			scored[i] = MergeExternal(scored[i], results[i-start])
		}
	}
	return scored
}

// MergeExternal folds one oracle result into a scored row: the
// external score replaces the lexicon score when it is inside the
// valid [-1, 1] range, otherwise the row is returned unchanged. Pure
// so it can be tested without any transport.
func MergeExternal(row anomaly.ScoredRow, ext oracle.Result) anomaly.ScoredRow {
	if ext.Score < -1 || ext.Score > 1 {
		return row
	}
	row.Score = ext.Score
	return row
}
