package oracle

import (
	"context"

	"github.com/KaramelBytes/staylens-cli/internal/sentiment"
)

// LexiconScorer adapts the local lexicon scorer to the Scorer
// interface. It never fails, which makes it the universal fallback
// when the remote service is unreachable or misbehaving.
type LexiconScorer struct{}

// ScoreBatch scores every text locally. Language detection is out of
// the lexicon's scope, so results carry an empty language code and the
// caller keeps the row's own tag.
func (LexiconScorer) ScoreBatch(_ context.Context, texts []string) ([]Result, error) {
	out := make([]Result, len(texts))
	for i, t := range texts {
		out[i] = Result{Score: sentiment.Score(t).Score}
	}
	return out, nil
}
