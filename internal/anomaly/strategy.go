package anomaly

// Strategy turns a row's standardized deviation and language risk into
// the effective anomaly score tested against the flag threshold. The
// upstream system computed two different formulas at different call
// sites; they are kept here as two named, independently selectable
// strategies rather than silently merged.
type Strategy interface {
	Name() string
	Score(zScore, languageRisk float64) float64
}

// Blend weighting between standardized sentiment deviation and
// language risk.
const (
	blendDeviationWeight = 0.7
	blendLanguageWeight  = 0.3
)

// ZScoreStrategy uses the pure standardized deviation.
type ZScoreStrategy struct{}

func (ZScoreStrategy) Name() string { return "zscore" }

func (ZScoreStrategy) Score(zScore, _ float64) float64 { return zScore }

// BlendStrategy mixes the standardized deviation with a language-risk
// term: 0.7 of the z-score plus 0.3 of the risk. With risk in [0, 1]
// a non-English row moves at most 0.3 toward the flag threshold.
type BlendStrategy struct{}

func (BlendStrategy) Name() string { return "blend" }

func (BlendStrategy) Score(zScore, languageRisk float64) float64 {
	return blendDeviationWeight*zScore + blendLanguageWeight*languageRisk
}

// StrategyByName resolves a CLI strategy name; unknown names fall back
// to the z-score strategy.
func StrategyByName(name string) Strategy {
	if name == "blend" {
		return BlendStrategy{}
	}
	return ZScoreStrategy{}
}
