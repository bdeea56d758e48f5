package sentiment

import (
	"context"
	"strings"

	"intraday-trader/internal/auditlog"
	"intraday-trader/internal/logger"
	"intraday-trader/internal/types"
)

// Sentiment thresholds are fixed configuration, not derived.
const (
	bullishThreshold = 0.2
	bearishThreshold = -0.2
)

// Number of independent news draws per evaluation, and how many universe
// instruments to fall back to when no mention is found.
const (
	sampleDraws    = 3
	fallbackPrefix = 5
)

// NewsProvider supplies the headline fragments for one draw.
type NewsProvider interface {
	Headlines(ctx context.Context) []string
}

// Aggregator combines news text into one categorical market sentiment per
// evaluation cycle.
type Aggregator struct {
	news     NewsProvider
	scorers  []TextScorer
	universe []types.Instrument
	audit    *auditlog.Log
}

func NewAggregator(news NewsProvider, scorers []TextScorer, universe []types.Instrument, audit *auditlog.Log) *Aggregator {
	return &Aggregator{news: news, scorers: scorers, universe: universe, audit: audit}
}

// Evaluate draws three independent samples, averages their scores, and
// derives the label plus the mentioned-instrument list. Always succeeds;
// absent or unscorable text degrades to a Neutral zero score.
func (a *Aggregator) Evaluate(ctx context.Context) types.SentimentReading {
	total := 0.0
	seen := map[string]bool{}
	var mentioned []types.Instrument

	for draw := 0; draw < sampleDraws; draw++ {
		sample := strings.Join(a.news.Headlines(ctx), " ")
		total += a.scoreSample(sample)

		lower := strings.ToLower(sample)
		for _, ins := range a.universe {
			if seen[ins.Symbol] {
				continue
			}
			base := strings.ToLower(strings.SplitN(ins.Symbol, ".", 2)[0])
			if strings.Contains(lower, ins.Name) || strings.Contains(lower, base) {
				seen[ins.Symbol] = true
				mentioned = append(mentioned, ins)
			}
		}
	}

	score := total / sampleDraws
	label := labelFor(score)

	if len(mentioned) == 0 {
		n := fallbackPrefix
		if n > len(a.universe) {
			n = len(a.universe)
		}
		mentioned = append(mentioned, a.universe[:n]...)
	}

	symbols := make([]string, len(mentioned))
	for i, ins := range mentioned {
		symbols[i] = ins.Symbol
	}
	if a.audit != nil {
		a.audit.Sentiment(label, score, symbols)
	}
	logger.Info(ctx, "Sentiment evaluated", "label", label, "score", score, "instruments", symbols)

	return types.SentimentReading{Label: label, Score: score, Mentioned: mentioned}
}

// scoreSample averages the independent scorers; if every scorer fails it
// falls back to the keyword heuristic, which is defined for any text.
func (a *Aggregator) scoreSample(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	sum := 0.0
	ok := 0
	for _, s := range a.scorers {
		v, err := s.Score(text)
		if err != nil {
			continue
		}
		sum += v
		ok++
	}
	if ok == 0 {
		return KeywordScore(text)
	}
	return sum / float64(ok)
}

func labelFor(score float64) types.Label {
	switch {
	case score > bullishThreshold:
		return types.Bullish
	case score < bearishThreshold:
		return types.Bearish
	default:
		return types.Neutral
	}
}
