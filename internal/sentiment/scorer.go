package sentiment

import (
	"errors"
	"math"
	"strings"
)

// TextScorer scores a raw text fragment in [-1,1]. A scorer errors when
// it cannot produce a meaningful score for the text.
type TextScorer interface {
	Score(text string) (float64, error)
}

// ErrUnscorable is returned when a scorer finds nothing to score.
var ErrUnscorable = errors.New("sentiment: no scorable tokens")

// Fixed vocabulary for the keyword fallback heuristic.
var (
	positiveWords = []string{"rally", "highs", "bullish", "gains", "optimism", "rate cut"}
	negativeWords = []string{"drop", "crash", "bearish", "losses", "concerns", "sell-off"}
)

// KeywordScore is the heuristic of last resort:
// (positiveHits - negativeHits) / (positiveHits + negativeHits + 1).
// Defined for any input; empty or neutral text scores 0.
func KeywordScore(text string) float64 {
	lower := strings.ToLower(text)
	pos, neg := 0, 0
	for _, w := range positiveWords {
		pos += strings.Count(lower, w)
	}
	for _, w := range negativeWords {
		neg += strings.Count(lower, w)
	}
	return float64(pos-neg) / float64(pos+neg+1)
}

// DefaultScorers returns the two independent lexical scorers whose mean
// forms the per-sample score.
func DefaultScorers() []TextScorer {
	return []TextScorer{newValenceScorer(), newPolarityScorer()}
}

// valenceScorer scores with a weighted valence lexicon, simple negation
// handling, and intensity boosters, normalizing the raw sum into (-1,1).
type valenceScorer struct {
	lexicon  map[string]float64
	boosters map[string]float64
	negators map[string]bool
}

func newValenceScorer() *valenceScorer {
	return &valenceScorer{
		lexicon: map[string]float64{
			"rally": 2.1, "surge": 2.4, "soar": 2.6, "gain": 1.8, "gains": 1.8,
			"jump": 1.6, "climb": 1.4, "advance": 1.3, "record": 1.5, "highs": 1.9,
			"high": 0.9, "bullish": 2.5, "optimism": 2.0, "optimistic": 2.0,
			"upbeat": 1.8, "strong": 1.4, "growth": 1.6, "profit": 1.7,
			"profits": 1.7, "beat": 1.5, "beats": 1.5, "upgrade": 1.8,
			"outperform": 1.9, "recovery": 1.5, "rebound": 1.6, "boom": 2.2,
			"crash": -3.1, "plunge": -2.7, "plummet": -2.8, "drop": -1.7,
			"drops": -1.7, "fall": -1.5, "falls": -1.5, "slump": -2.2,
			"slide": -1.6, "tumble": -2.0, "bearish": -2.5, "losses": -2.0,
			"loss": -1.8, "weak": -1.3, "fear": -2.1, "fears": -2.1,
			"concern": -1.4, "concerns": -1.4, "worry": -1.6, "worries": -1.6,
			"downgrade": -1.9, "selloff": -2.3, "sell-off": -2.3, "panic": -2.8,
			"recession": -2.4, "crisis": -2.6, "default": -2.2, "miss": -1.4,
			"misses": -1.4, "volatile": -0.9, "uncertainty": -1.3,
		},
		boosters: map[string]float64{
			"very": 1.3, "extremely": 1.5, "sharply": 1.4, "heavily": 1.3,
			"slightly": 0.7, "marginally": 0.6,
		},
		negators: map[string]bool{"not": true, "no": true, "never": true, "without": true},
	}
}

func (v *valenceScorer) Score(text string) (float64, error) {
	tokens := tokenize(text)
	sum := 0.0
	hits := 0
	for i, tok := range tokens {
		val, ok := v.lexicon[tok]
		if !ok {
			continue
		}
		if i > 0 {
			if mult, ok := v.boosters[tokens[i-1]]; ok {
				val *= mult
			}
		}
		for j := max(0, i-2); j < i; j++ {
			if v.negators[tokens[j]] {
				val = -val
				break
			}
		}
		sum += val
		hits++
	}
	if hits == 0 {
		return 0, ErrUnscorable
	}
	// Sigmoid-style normalization keeps the score in (-1,1) regardless
	// of how many lexicon hits the sample produced.
	return sum / math.Sqrt(sum*sum+15), nil
}

// polarityScorer averages per-word polarities from a small independent
// lexicon, in the manner of pattern-based polarity analyzers.
type polarityScorer struct {
	polarity map[string]float64
}

func newPolarityScorer() *polarityScorer {
	return &polarityScorer{
		polarity: map[string]float64{
			"good": 0.7, "great": 0.8, "positive": 0.6, "best": 1.0,
			"better": 0.5, "improve": 0.4, "improved": 0.4, "improving": 0.4,
			"success": 0.7, "successful": 0.7, "robust": 0.5, "healthy": 0.5,
			"attractive": 0.5, "confident": 0.6, "confidence": 0.5,
			"stable": 0.3, "steady": 0.2, "support": 0.2, "hope": 0.4,
			"bad": -0.7, "worse": -0.6, "worst": -1.0, "negative": -0.6,
			"poor": -0.6, "decline": -0.5, "declining": -0.5, "risk": -0.3,
			"risks": -0.3, "risky": -0.5, "trouble": -0.6, "pressure": -0.4,
			"warning": -0.5, "warn": -0.5, "warns": -0.5, "doubt": -0.5,
			"fragile": -0.6, "turmoil": -0.8, "gloom": -0.7, "grim": -0.7,
		},
	}
}

func (p *polarityScorer) Score(text string) (float64, error) {
	tokens := tokenize(text)
	sum := 0.0
	hits := 0
	for _, tok := range tokens {
		if val, ok := p.polarity[tok]; ok {
			sum += val
			hits++
		}
	}
	if hits == 0 {
		return 0, ErrUnscorable
	}
	return sum / float64(hits), nil
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-'
	})
}
