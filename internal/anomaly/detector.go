package anomaly

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/staylens-cli/internal/review"
)

// Anomaly types.
const (
	TypeSentimentNegative = "sentiment_negative"
	TypeSentimentPositive = "sentiment_positive"
	TypeSentimentNeutral  = "sentiment_neutral"
	TypeSuspicious        = "suspicious"
	TypeLanguage          = "language"
	TypeComplaint         = "complaint"
)

// Detection thresholds.
const (
	// FlagThreshold is the effective anomaly score (two standard
	// deviations) past which a row is flagged.
	FlagThreshold = 2.0
	// classifyBand is the ±1.5σ band separating directional sentiment
	// anomalies from statistically deviant but flat content.
	classifyBand = 1.5
	// languageBar is the lower sigma bar for flagging non-English rows.
	languageBar = 1.5
	// suspiciousMaxLen is the character count under which a row is
	// always flagged as likely low-effort, regardless of its z-score.
	suspiciousMaxLen = 15
)

// complaintTerms mark explicitly escalation-worthy reviews. A row
// whose text contains one of these while scoring negative is flagged
// as a complaint independent of the z-score gate.
var complaintTerms = []string{
	"refund", "scam", "fraud", "complaint", "never again", "unacceptable",
}

// ScoredRow pairs a cleaned row with its tone score. Score comes from
// the lexicon scorer or, when present, from the oracle in its place.
// ExternalAnomaly optionally overrides the strategy score for the
// threshold test; baseline numbers are still used for classification.
type ScoredRow struct {
	Row             *review.Review
	Score           float64
	ExternalAnomaly *float64
}

// Record is one flagged anomaly.
type Record struct {
	ReviewID       string  `json:"review_id"`
	Type           string  `json:"type"`
	Reason         string  `json:"reason"`
	AnomalyScore   float64 `json:"anomaly_score"`
	SentimentScore float64 `json:"sentiment_score"`
	Neighbourhood  string  `json:"neighbourhood"`
	CreatedAt      string  `json:"created_at"`
}

// Detector flags deviating rows against neighbourhood baselines. The
// zero value uses the z-score strategy and computed baselines; tests
// and callers may inject BaselineOverrides per neighbourhood.
type Detector struct {
	Strategy          Strategy
	BaselineOverrides map[string]Baseline
}

// Detect scores every row against its peer-group baseline and returns
// flagged anomalies in input-row order. Per row the directional
// classification is emitted first, then the independent suspicious,
// language and complaint flags.
func (d *Detector) Detect(rows []ScoredRow) []Record {
	if len(rows) == 0 {
		return nil
	}
	strategy := d.Strategy
	if strategy == nil {
		strategy = ZScoreStrategy{}
	}
	baselines, global := ComputeBaselines(rows)
	for key, b := range d.BaselineOverrides {
		baselines[key] = b
	}

	var out []Record
	for _, r := range rows {
		base, ok := baselines[r.Row.Neighbourhood]
		if !ok {
			base = global
		}
		deviation := math.Abs(r.Score - base.Mean)
		zScore := deviation / base.StdDev
		langRisk := 0.0
		if r.Row.NeedsTranslation {
			langRisk = 1.0
		}
		effective := strategy.Score(zScore, langRisk)
		if r.ExternalAnomaly != nil {
			effective = *r.ExternalAnomaly
		}

		// Inclusive: a row sitting exactly at two standard deviations
		// is flagged.
		if effective >= FlagThreshold {
			out = append(out, Record{
				ReviewID: r.Row.ReviewID,
				Type:     classify(r.Score, base),
				Reason: fmt.Sprintf("score %.2f deviates from neighbourhood mean %.2f (anomaly score %.2f)",
					r.Score, base.Mean, effective),
				AnomalyScore:   effective,
				SentimentScore: r.Score,
				Neighbourhood:  r.Row.Neighbourhood,
				CreatedAt:      r.Row.CreatedAt,
			})
		}
		// Characters, not bytes: multi-byte scripts must not slip past
		// the gate on byte length.
		if chars := utf8.RuneCountInString(r.Row.Text); chars < suspiciousMaxLen {
			out = append(out, Record{
				ReviewID: r.Row.ReviewID,
				Type:     TypeSuspicious,
				Reason: fmt.Sprintf("likely low-effort: text is %d characters (score %.2f, neighbourhood mean %.2f)",
					chars, r.Score, base.Mean),
				AnomalyScore:   effective,
				SentimentScore: r.Score,
				Neighbourhood:  r.Row.Neighbourhood,
				CreatedAt:      r.Row.CreatedAt,
			})
		}
		if r.Row.NeedsTranslation && zScore > languageBar {
			out = append(out, Record{
				ReviewID: r.Row.ReviewID,
				Type:     TypeLanguage,
				Reason: fmt.Sprintf("non-English review (%s) with score %.2f against neighbourhood mean %.2f",
					r.Row.Language, r.Score, base.Mean),
				AnomalyScore:   zScore,
				SentimentScore: r.Score,
				Neighbourhood:  r.Row.Neighbourhood,
				CreatedAt:      r.Row.CreatedAt,
			})
		}
		if r.Score < 0 && containsComplaintTerm(r.Row.Text) {
			out = append(out, Record{
				ReviewID: r.Row.ReviewID,
				Type:     TypeComplaint,
				Reason: fmt.Sprintf("complaint language with score %.2f against neighbourhood mean %.2f",
					r.Score, base.Mean),
				AnomalyScore:   effective,
				SentimentScore: r.Score,
				Neighbourhood:  r.Row.Neighbourhood,
				CreatedAt:      r.Row.CreatedAt,
			})
		}
	}
	return out
}

// classify places a flagged row's raw score against the ±1.5σ band.
func classify(score float64, base Baseline) string {
	switch {
	case score < base.Mean-classifyBand*base.StdDev:
		return TypeSentimentNegative
	case score > base.Mean+classifyBand*base.StdDev:
		return TypeSentimentPositive
	default:
		return TypeSentimentNeutral
	}
}

func containsComplaintTerm(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range complaintTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
