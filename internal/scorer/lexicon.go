package scorer

import (
	"github.com/jonreiter/govader"

	"call-insights-go/internal/config"
	"call-insights-go/internal/types"
)

// LexiconScorer computes VADER polarity scores locally. It never fails: no
// network, no model download, deterministic for a given text.
type LexiconScorer struct {
	cfg      config.Config
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewLexiconScorer(cfg config.Config) *LexiconScorer {
	return &LexiconScorer{cfg: cfg, analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Score computes the four polarity components for the segment text. The
// compound score becomes the normalized Score; the discrete Sentiment label
// is derived from it with the configured cutoffs. Intensity is fixed at 3 so
// categorical-path consumers that read it see the neutral default.
func (s *LexiconScorer) Score(segment types.Segment) types.ScoredSegment {
	p := s.analyzer.PolarityScores(segment.Text)
	polarity := &types.PolarityScores{
		Negative: p.Negative,
		Neutral:  p.Neutral,
		Positive: p.Positive,
		Compound: p.Compound,
	}
	return types.ScoredSegment{
		Segment:   segment,
		Sentiment: s.Categorize(p.Compound),
		Intensity: 3,
		Score:     p.Compound,
		Polarity:  polarity,
		Status:    types.StatusSuccess,
	}
}

// Categorize maps a compound score to a discrete label: >= +0.05 positive,
// <= -0.05 negative, neutral otherwise (cutoffs from config).
func (s *LexiconScorer) Categorize(compound float64) string {
	switch {
	case compound >= s.cfg.PositiveCutoff:
		return types.SentimentPositive
	case compound <= s.cfg.NegativeCutoff:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}
