// Package anomaly flags statistically unusual reviews relative to
// their neighbourhood peer group. Baselines are neighbourhood-local so
// naturally terse or naturally critical areas are not flagged
// wholesale against a single global threshold.
package anomaly

import "math"

// Baseline statistics for one peer group.
//
// StdDev is floored at 0.2 so homogeneous groups don't produce runaway
// z-scores, and groups under 5 samples borrow the dataset-wide
// baseline instead of their own noisy one. Both constants are
// deliberate statistical choices, not tunables.
const (
	MinGroupSamples = 5
	StdDevFloor     = 0.2
)

// Baseline is the mean/stdDev reference a row's score is compared to.
type Baseline struct {
	Mean        float64 `json:"mean"`
	StdDev      float64 `json:"std_dev"`
	SampleCount int     `json:"sample_count"`
}

// ComputeBaseline builds a Baseline from raw scores, applying the
// stdDev floor.
func ComputeBaseline(scores []float64) Baseline {
	n := len(scores)
	if n == 0 {
		return Baseline{StdDev: StdDevFloor}
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(n)
	var sq float64
	for _, s := range scores {
		d := s - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(n))
	if std < StdDevFloor {
		std = StdDevFloor
	}
	return Baseline{Mean: mean, StdDev: std, SampleCount: n}
}

// ComputeBaselines groups scores by neighbourhood key and returns the
// per-group baselines (for groups meeting MinGroupSamples) plus the
// dataset-wide fallback baseline.
func ComputeBaselines(rows []ScoredRow) (map[string]Baseline, Baseline) {
	groups := make(map[string][]float64)
	all := make([]float64, 0, len(rows))
	for _, r := range rows {
		key := r.Row.Neighbourhood
		groups[key] = append(groups[key], r.Score)
		all = append(all, r.Score)
	}
	global := ComputeBaseline(all)
	baselines := make(map[string]Baseline, len(groups))
	for key, scores := range groups {
		if len(scores) < MinGroupSamples {
			continue
		}
		baselines[key] = ComputeBaseline(scores)
	}
	return baselines, global
}
