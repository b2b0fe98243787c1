package anomaly_test

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/staylens-cli/internal/anomaly"
	"github.com/KaramelBytes/staylens-cli/internal/review"
)

func scored(id, neighbourhood, text string, score float64) anomaly.ScoredRow {
	return anomaly.ScoredRow{
		Row: &review.Review{
			ReviewID:      id,
			Neighbourhood: neighbourhood,
			CreatedAt:     "2024-05-01 00:00:00",
			Language:      "en",
			Text:          text,
		},
		Score: score,
	}
}

func TestComputeBaselineFloorsStdDev(t *testing.T) {
	b := anomaly.ComputeBaseline([]float64{0.5, 0.5, 0.5, 0.5, 0.5})
	if b.StdDev != anomaly.StdDevFloor {
		t.Fatalf("homogeneous group should hit the stdDev floor, got %v", b.StdDev)
	}
	if b.Mean != 0.5 || b.SampleCount != 5 {
		t.Fatalf("unexpected baseline: %+v", b)
	}
}

func TestSmallGroupsBorrowGlobalBaseline(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Tiny", "a perfectly ordinary stay here", 0.2),
		scored("2", "Big", "fine fine fine fine", 0.2),
		scored("3", "Big", "fine fine fine fine", 0.2),
		scored("4", "Big", "fine fine fine fine", 0.2),
		scored("5", "Big", "fine fine fine fine", 0.2),
		scored("6", "Big", "fine fine fine fine", 0.2),
	}
	baselines, global := anomaly.ComputeBaselines(rows)
	if _, ok := baselines["Tiny"]; ok {
		t.Fatal("group below 5 samples must not get its own baseline")
	}
	if _, ok := baselines["Big"]; !ok {
		t.Fatal("group with 5 samples should get its own baseline")
	}
	if global.SampleCount != 6 {
		t.Fatalf("global baseline should cover all rows: %+v", global)
	}
}

// Five rows of [0.1 0.1 0.1 0.1 0.9] form their own baseline
// (mean 0.26, std 0.32) and the 0.9 row lands exactly at z=2.0,
// which must flag as sentiment_positive.
func TestExactTwoSigmaFlagsPositive(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Jordaan", "steady text of usual length", 0.1),
		scored("2", "Jordaan", "steady text of usual length", 0.1),
		scored("3", "Jordaan", "steady text of usual length", 0.1),
		scored("4", "Jordaan", "steady text of usual length", 0.1),
		scored("5", "Jordaan", "gushing text of usual length", 0.9),
	}
	d := &anomaly.Detector{}
	got := d.Detect(rows)
	if len(got) != 1 {
		t.Fatalf("expected exactly one anomaly, got %d: %+v", len(got), got)
	}
	rec := got[0]
	if rec.ReviewID != "5" || rec.Type != anomaly.TypeSentimentPositive {
		t.Fatalf("expected row 5 flagged sentiment_positive, got %+v", rec)
	}
	if math.Abs(rec.AnomalyScore-2.0) > 1e-9 {
		t.Fatalf("expected anomaly score 2.0, got %v", rec.AnomalyScore)
	}
	if !strings.Contains(rec.Reason, "0.90") || !strings.Contains(rec.Reason, "0.26") {
		t.Fatalf("reason should embed score and baseline mean: %q", rec.Reason)
	}
}

func TestShortTextAlwaysSuspicious(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Centrum", "nice", 0.0),
		scored("2", "Centrum", "a long enough review text", 0.0),
		scored("3", "Centrum", "a long enough review text", 0.0),
		scored("4", "Centrum", "a long enough review text", 0.0),
		scored("5", "Centrum", "a long enough review text", 0.0),
	}
	d := &anomaly.Detector{}
	got := d.Detect(rows)
	if len(got) != 1 || got[0].Type != anomaly.TypeSuspicious || got[0].ReviewID != "1" {
		t.Fatalf("short text should flag suspicious regardless of z-score: %+v", got)
	}
	if !strings.Contains(got[0].Reason, "low-effort") {
		t.Fatalf("suspicious reason should mention low effort: %q", got[0].Reason)
	}
}

func TestSuspiciousCountsCharactersNotBytes(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Noord", "素晴らしい", 0.0), // 5 characters, 15 bytes
		scored("2", "Noord", "exactly 15 char", 0.0),
		scored("3", "Noord", "a long enough review text", 0.0),
		scored("4", "Noord", "a long enough review text", 0.0),
		scored("5", "Noord", "a long enough review text", 0.0),
	}
	d := &anomaly.Detector{}
	got := d.Detect(rows)
	if len(got) != 1 || got[0].ReviewID != "1" || got[0].Type != anomaly.TypeSuspicious {
		t.Fatalf("5-character multi-byte text should flag suspicious: %+v", got)
	}
	if !strings.Contains(got[0].Reason, "5 characters") {
		t.Fatalf("reason should count characters, not bytes: %q", got[0].Reason)
	}
}

func TestLanguageFlagUsesLowerBar(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Centrum", "steady text of usual length", 0.1),
		scored("2", "Centrum", "steady text of usual length", 0.1),
		scored("3", "Centrum", "steady text of usual length", 0.1),
		scored("4", "Centrum", "steady text of usual length", 0.1),
		scored("5", "Centrum", "ein sehr guter aufenthalt hier", 0.9),
	}
	rows[4].Row.Language = "de"
	rows[4].Row.NeedsTranslation = true
	d := &anomaly.Detector{}
	got := d.Detect(rows)
	var foundLanguage bool
	for _, rec := range got {
		if rec.Type == anomaly.TypeLanguage {
			foundLanguage = true
			if rec.ReviewID != "5" {
				t.Fatalf("wrong row flagged for language: %+v", rec)
			}
		}
	}
	if !foundLanguage {
		t.Fatalf("non-English row beyond 1.5 sigma should flag language: %+v", got)
	}
}

func TestBaselineOverridesAndExternalScore(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "Oost", "a long enough review text", -0.9),
	}
	ext := 3.5
	rows[0].ExternalAnomaly = &ext
	d := &anomaly.Detector{
		BaselineOverrides: map[string]anomaly.Baseline{
			"Oost": {Mean: 0.2, StdDev: 0.3, SampleCount: 50},
		},
	}
	got := d.Detect(rows)
	if len(got) != 1 {
		t.Fatalf("expected 1 anomaly, got %+v", got)
	}
	if got[0].AnomalyScore != 3.5 {
		t.Fatalf("external anomaly score should drive the threshold test: %+v", got[0])
	}
	// Classification still uses the baseline: -0.9 < 0.2 - 1.5*0.3.
	if got[0].Type != anomaly.TypeSentimentNegative {
		t.Fatalf("classification should use baseline numbers: %+v", got[0])
	}
}

func TestComplaintFlag(t *testing.T) {
	rows := []anomaly.ScoredRow{
		scored("1", "West", "terrible place, i want a refund", -0.5),
		scored("2", "West", "a long enough review text", 0.1),
		scored("3", "West", "a long enough review text", 0.1),
		scored("4", "West", "a long enough review text", 0.1),
		scored("5", "West", "a long enough review text", 0.1),
	}
	d := &anomaly.Detector{}
	var complaints int
	for _, rec := range d.Detect(rows) {
		if rec.Type == anomaly.TypeComplaint {
			complaints++
			if rec.ReviewID != "1" {
				t.Fatalf("wrong row flagged complaint: %+v", rec)
			}
		}
	}
	if complaints != 1 {
		t.Fatalf("expected one complaint flag, got %d", complaints)
	}
}

func TestStrategies(t *testing.T) {
	z := anomaly.ZScoreStrategy{}
	if got := z.Score(2.4, 1); got != 2.4 {
		t.Fatalf("zscore strategy should pass through, got %v", got)
	}
	b := anomaly.BlendStrategy{}
	if got := b.Score(2.0, 1); math.Abs(got-(0.7*2.0+0.3)) > 1e-12 {
		t.Fatalf("blend strategy weighting broken, got %v", got)
	}
	if anomaly.StrategyByName("blend").Name() != "blend" {
		t.Fatal("strategy lookup broken for blend")
	}
	if anomaly.StrategyByName("anything-else").Name() != "zscore" {
		t.Fatal("unknown strategy should fall back to zscore")
	}
}
