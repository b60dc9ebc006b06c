package analyzer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/config"
	"call-insights-go/internal/parser"
	"call-insights-go/internal/scorer"
	"call-insights-go/internal/types"
)

// scriptedService replies with a fixed sequence of categorical answers.
type scriptedService struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedService) Complete(string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[s.calls%len(s.replies)]
	s.calls++
	return reply, nil
}

func segments() []types.Segment {
	return []types.Segment{
		{Speaker: "Customer", Text: "Estoy muy molesto", Timestamp: "00:00"},
		{Speaker: "Agent", Text: "Entiendo, vamos a solucionarlo", Timestamp: "00:30"},
		{Speaker: "Customer", Text: "Gracias, perfecto", Timestamp: "01:00"},
	}
}

func TestAnalyzeFullCallRejectsEmptyInput(t *testing.T) {
	a := New(config.Default(), scorer.NewLexiconScorer(config.Default()))
	_, err := a.AnalyzeFullCall(nil)
	require.ErrorIs(t, err, ErrNoSegments)
}

func TestAnalyzeFullCallCategorical(t *testing.T) {
	cfg := config.Default()
	svc := &scriptedService{replies: []string{
		"Sentimiento: Negativo\nIntensidad: 4\nContexto: queja",
		"Sentimiento: Neutral\nIntensidad: 3\nContexto: gestión",
		"Sentimiento: Positivo\nIntensidad: 5\nContexto: resuelto",
	}}
	a := New(cfg, scorer.NewCategoricalScorer(cfg, svc))

	analysis, err := a.AnalyzeFullCall(segments())
	require.NoError(t, err)

	assert.Len(t, analysis.AnalyzedSegments, 3)
	assert.Len(t, analysis.CustomerTrajectory, 2)
	assert.NotEmpty(t, analysis.CallID)

	m := analysis.Metrics
	assert.Equal(t, 3, m.TotalSegments)
	assert.Equal(t, 3, m.SuccessfulAnalyses)
	assert.Zero(t, m.ErrorCount)
	// customer trajectory: -4 -> +5
	assert.InDelta(t, 9, m.CustomerImprovement, 1e-9)
	assert.True(t, m.CallSuccess)
	// fewer than 4 segments total: no overall trend
	assert.Zero(t, m.OverallImprovement)

	s := analysis.Summary
	assert.Equal(t, 1, s.SentimentDistribution[types.SentimentPositive])
	assert.Equal(t, 1, s.SentimentDistribution[types.SentimentNeutral])
	assert.Equal(t, 1, s.SentimentDistribution[types.SentimentNegative])
	assert.Equal(t, "highly_successful", s.CallOutcome)
	assert.InDelta(t, 4.0, s.AverageIntensity, 1e-9)
	assert.Equal(t, 3, s.TotalExchanges)

	assert.InDelta(t, 100, analysis.Health.Accuracy, 1e-9)
	assert.NotEmpty(t, analysis.Recommendations)
}

func TestAnalyzeFullCallErrorContainment(t *testing.T) {
	cfg := config.Default()
	svc := &scriptedService{err: errors.New("boom")}
	a := New(cfg, scorer.NewCategoricalScorer(cfg, svc))

	analysis, err := a.AnalyzeFullCall(segments())
	require.NoError(t, err, "a fully failed call still completes")

	m := analysis.Metrics
	assert.Equal(t, 3, m.TotalSegments)
	assert.Equal(t, 3, m.ErrorCount)
	assert.Zero(t, m.SuccessfulAnalyses)
	assert.Equal(t, m.TotalSegments, m.ErrorCount+m.SuccessfulAnalyses)
	assert.Zero(t, analysis.Health.Accuracy)

	for _, seg := range analysis.AnalyzedSegments {
		assert.Equal(t, types.StatusError, seg.Status)
		assert.Equal(t, types.SentimentNeutral, seg.Sentiment)
		assert.Equal(t, 3, seg.Intensity)
		assert.Contains(t, seg.Context, "Error: boom")
	}
}

func TestAnalyzeFullCallMetricsInvariant(t *testing.T) {
	cfg := config.Default()
	// second reply unparseable but still a success; classifier never errors
	svc := &scriptedService{replies: []string{
		"Sentiment: Negative\nIntensity: 2",
		"garbage",
		"Sentiment: Positive\nIntensity: 4",
	}}
	a := New(cfg, scorer.NewCategoricalScorer(cfg, svc))
	analysis, err := a.AnalyzeFullCall(segments())
	require.NoError(t, err)

	m := analysis.Metrics
	assert.Equal(t, len(analysis.AnalyzedSegments), m.TotalSegments)
	assert.Equal(t, m.TotalSegments, m.ErrorCount+m.SuccessfulAnalyses)
}

func TestEndToEndLexicon(t *testing.T) {
	cfg := config.Default()
	text := "Customer: I am upset\nAgent: Sorry\nCustomer: Thanks, resolved now"

	parsed, err := parser.Parse(text, parser.FormatSimple)
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	require.True(t, parser.Validate(parsed).Valid)

	a := New(cfg, scorer.NewLexiconScorer(cfg))
	analysis, err := a.AnalyzeFullCall(parsed)
	require.NoError(t, err)

	require.Len(t, analysis.CustomerTrajectory, 2)
	first := analysis.CustomerTrajectory[0].Score
	last := analysis.CustomerTrajectory[1].Score
	assert.Negative(t, first, "'I am upset' reads negative")
	assert.Positive(t, last, "'Thanks, resolved now' reads positive")

	assert.InDelta(t, last-first, analysis.Metrics.CustomerImprovement, 1e-9)
	assert.True(t, analysis.Metrics.CallSuccess)
}

func TestTrendReport(t *testing.T) {
	cfg := config.Default()
	a := New(cfg, scorer.NewLexiconScorer(cfg))

	analysis := types.CallAnalysis{
		CustomerTrajectory: []types.ScoredSegment{
			{Score: -0.8}, {Score: -0.5}, {Score: 0.0}, {Score: 0.3}, {Score: 0.6},
		},
	}
	report := a.TrendReport(analysis, false)
	// n < 6: all windows equal the overall mean, so no movement either way
	assert.InDelta(t, -0.08, report.Windows.First, 1e-9)
	assert.Zero(t, report.RawImprovement)
	assert.Equal(t, "remained stable", report.Trend)
	assert.LessOrEqual(t, report.RecoveryIndex, 0.0)
}

func TestDominantSentimentTieBreak(t *testing.T) {
	// equal counts resolve positive > neutral > negative
	segs := []types.ScoredSegment{
		{Sentiment: types.SentimentNegative, Intensity: 3},
		{Sentiment: types.SentimentPositive, Intensity: 3},
	}
	s := buildSummary(segs, 0)
	assert.Equal(t, types.SentimentPositive, s.DominantSentiment)

	segs = []types.ScoredSegment{
		{Sentiment: types.SentimentNegative, Intensity: 3},
		{Sentiment: types.SentimentNeutral, Intensity: 3},
	}
	s = buildSummary(segs, 0)
	assert.Equal(t, types.SentimentNeutral, s.DominantSentiment)

	segs = []types.ScoredSegment{
		{Sentiment: types.SentimentNegative, Intensity: 1},
		{Sentiment: types.SentimentNegative, Intensity: 2},
		{Sentiment: types.SentimentPositive, Intensity: 3},
	}
	s = buildSummary(segs, 0)
	assert.Equal(t, types.SentimentNegative, s.DominantSentiment)
}
