package sentiment

// Fixed word lists for the lexicon scorer. Kept small and ASCII on
// purpose: this is a bounded heuristic, not language understanding.

var positiveWords = map[string]struct{}{
	"amazing": {}, "awesome": {}, "beautiful": {}, "best": {},
	"charming": {}, "clean": {}, "comfortable": {}, "convenient": {},
	"cozy": {}, "delightful": {}, "enjoyable": {}, "excellent": {},
	"fantastic": {}, "friendly": {}, "good": {}, "great": {},
	"helpful": {}, "lovely": {}, "nice": {}, "peaceful": {},
	"perfect": {}, "pleasant": {}, "quiet": {}, "recommend": {},
	"spacious": {}, "spotless": {}, "stunning": {}, "superb": {},
	"welcoming": {}, "wonderful": {},
}

var negativeWords = map[string]struct{}{
	"awful": {}, "bad": {}, "broken": {}, "cold": {},
	"cramped": {}, "dirty": {}, "disappointing": {}, "dreadful": {},
	"filthy": {}, "horrible": {}, "loud": {}, "mediocre": {},
	"noisy": {}, "poor": {}, "rude": {}, "smelly": {},
	"terrible": {}, "uncomfortable": {}, "unpleasant": {}, "unsafe": {},
	"worst": {},
}

var intensifierWords = map[string]struct{}{
	"absolutely": {}, "extremely": {}, "incredibly": {}, "really": {},
	"so": {}, "totally": {}, "truly": {}, "very": {},
}

var negationWords = map[string]struct{}{
	"cannot": {}, "cant": {}, "didnt": {}, "doesnt": {},
	"dont": {}, "isnt": {}, "never": {}, "no": {},
	"not": {}, "wasnt": {}, "werent": {}, "wont": {},
}

// IsPositive reports whether token is in the positive lexicon.
func IsPositive(token string) bool { _, ok := positiveWords[token]; return ok }

// IsNegative reports whether token is in the negative lexicon.
func IsNegative(token string) bool { _, ok := negativeWords[token]; return ok }

// IsIntensifier reports whether token amplifies the following sentiment term.
func IsIntensifier(token string) bool { _, ok := intensifierWords[token]; return ok }

// IsNegation reports whether token flips the sign of a nearby sentiment term.
func IsNegation(token string) bool { _, ok := negationWords[token]; return ok }
