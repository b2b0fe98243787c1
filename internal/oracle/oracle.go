// Package oracle talks to the optional remote sentiment service. The
// service is best effort: batching, caching and retry live entirely
// here, and every failure path degrades to the local lexicon scorer
// upstream. The core pipeline never waits on or special-cases it.
package oracle

import "context"

// Result is the per-text answer the service returns: a tone score in
// [-1, 1] and an ISO-ish language code. It matches the shape the
// lexicon path produces so the pipeline can consume either.
type Result struct {
	Score    float64 `json:"score"`
	Language string  `json:"language"`
}

// Scorer is the minimal interface a sentiment backend implements.
type Scorer interface {
	ScoreBatch(ctx context.Context, texts []string) ([]Result, error)
}

// Provider identifiers used for scorer selection.
const (
	ProviderRemote  = "remote"
	ProviderLexicon = "lexicon"
)

// ScorerFactory builds a Scorer from the generic config below.
type ScorerFactory func(ScorerConfig) Scorer

// ScorerConfig carries the knobs shared by scorer backends.
type ScorerConfig struct {
	BaseURL string
	APIKey  string

	HTTPTimeoutSec   int
	RetryMaxAttempts int
	RetryBaseDelayMs int
	RetryMaxDelayMs  int

	Cache *Cache
}

var registry = map[string]ScorerFactory{}

// RegisterScorer registers a provider name with its factory.
func RegisterScorer(name string, f ScorerFactory) { registry[name] = f }

// GetScorer creates a Scorer for the given provider if registered.
func GetScorer(name string, cfg ScorerConfig) (Scorer, bool) {
	if f, ok := registry[name]; ok {
		return f(cfg), true
	}
	return nil, false
}

func init() {
	RegisterScorer(ProviderRemote, func(c ScorerConfig) Scorer {
		return NewClientFromConfig(c)
	})
	RegisterScorer(ProviderLexicon, func(ScorerConfig) Scorer {
		return LexiconScorer{}
	})
}
