// Package sentiment implements a bounded lexicon heuristic for the
// emotional tone of review text. Scores live in [-1, 1]; the scorer is
// pure and deterministic so baselines computed from it are reproducible.
package sentiment

import "strings"

// Label values for a ToneResult.
const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// Label thresholds and modifier window sizes. The 3-token negation
// lookback and 1-token intensifier lookback are part of the contract:
// they decide phrases like "not very good".
const (
	labelThreshold    = 0.1
	intensifierFactor = 1.5
	negationLookback  = 3
)

// ToneResult is the scored tone of one text.
type ToneResult struct {
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
	Label     string  `json:"label"`
}

// Score rates the emotional tone of text. Tokens matching the positive
// or negative lexicon contribute +1/-1, multiplied by 1.5 when the
// immediately preceding token is an intensifier, and sign-flipped when
// a negation appears within the 3 preceding tokens (nearest negation
// wins). The final score is the mean contribution over all
// sentiment-bearing tokens, normalized by the maximum per-token weight
// so an intensified term always outranks a plain one inside [-1, 1];
// a text with no sentiment tokens scores 0 and labels neutral.
func Score(text string) ToneResult {
	tokens := Tokenize(text)
	var sum float64
	var hits int
	for i, tok := range tokens {
		var polarity float64
		switch {
		case IsPositive(tok):
			polarity = 1
		case IsNegative(tok):
			polarity = -1
		default:
			continue
		}
		weight := 1.0
		if i > 0 && IsIntensifier(tokens[i-1]) {
			weight = intensifierFactor
		}
		for back := 1; back <= negationLookback && i-back >= 0; back++ {
			if IsNegation(tokens[i-back]) {
				polarity = -polarity
				break
			}
		}
		sum += polarity * weight
		hits++
	}
	var score float64
	if hits > 0 {
		// Mean contribution lives in [-1.5, 1.5]; dividing by the
		// intensifier factor maps it onto [-1, 1] without flattening
		// "very good" and "good" to the same clamped value.
		score = clamp(sum/float64(hits)/intensifierFactor, -1, 1)
	}
	return ToneResult{Score: score, Magnitude: abs(score), Label: labelFor(score)}
}

// Tokenize lowercases text, strips ASCII punctuation and splits on
// whitespace. Apostrophes are stripped, so "don't" tokenizes to "dont".
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		default:
			// punctuation and non-ASCII marks drop out
		}
	}
	return strings.Fields(b.String())
}

func labelFor(score float64) string {
	switch {
	case score > labelThreshold:
		return LabelPositive
	case score < -labelThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
