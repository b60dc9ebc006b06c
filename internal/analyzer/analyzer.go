// Package analyzer runs the full-call pipeline: score every segment, split
// out the customer trajectory, and derive metrics, summary, health and
// recommendations.
package analyzer

import (
	"errors"
	"fmt"
	"time"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/config"
	"call-insights-go/internal/logger"
	"call-insights-go/internal/scorer"
	"call-insights-go/internal/types"
)

// ErrNoSegments is the single fatal precondition: analysis of zero segments.
var ErrNoSegments = errors.New("no call segments provided")

// Analyzer wires a scoring strategy into the call pipeline.
type Analyzer struct {
	cfg    config.Config
	scorer scorer.SegmentScorer
}

func New(cfg config.Config, s scorer.SegmentScorer) *Analyzer {
	return &Analyzer{cfg: cfg, scorer: s}
}

// AnalyzeFullCall scores every segment in order and assembles the aggregate
// result. Per-segment scoring failures degrade that segment and the analysis
// still completes; only empty input is rejected.
func (a *Analyzer) AnalyzeFullCall(segments []types.Segment) (types.CallAnalysis, error) {
	if len(segments) == 0 {
		return types.CallAnalysis{}, ErrNoSegments
	}

	now := time.Now()
	callID := fmt.Sprintf("call_%s", now.Format("20060102_150405"))
	log := logger.New().WithCall(callID)

	analyzed := make([]types.ScoredSegment, 0, len(segments))
	for i, seg := range segments {
		log.WithField("segment", fmt.Sprintf("%d/%d", i+1, len(segments))).
			WithField("speaker", seg.Speaker).Debug("analyzing segment")
		analyzed = append(analyzed, a.scorer.Score(seg))
	}

	customer := a.filterCustomer(analyzed)
	customerImprovement := aggregator.Improvement(customer)
	overallImprovement := aggregator.OverallImprovement(analyzed)

	successes, errorCount := 0, 0
	for _, seg := range analyzed {
		if seg.Status == types.StatusError {
			errorCount++
		} else {
			successes++
		}
	}

	result := types.CallAnalysis{
		CallID:             callID,
		Timestamp:          now.Format(time.RFC3339),
		AnalyzedSegments:   analyzed,
		CustomerTrajectory: customer,
		Metrics: types.Metrics{
			CustomerImprovement: customerImprovement,
			OverallImprovement:  overallImprovement,
			CallSuccess:         customerImprovement > 0,
			TotalSegments:       len(analyzed),
			SuccessfulAnalyses:  successes,
			ErrorCount:          errorCount,
		},
		Summary: buildSummary(analyzed, customerImprovement),
		Health: types.Health{
			Volatility:      aggregator.Volatility(customer),
			TimeInSentiment: aggregator.TimeInSentiment(customer),
			Accuracy:        float64(successes) / float64(len(analyzed)) * 100,
		},
		Recommendations: actionable.Recommendations(customerImprovement),
	}

	log.WithField("total_segments", len(analyzed)).
		WithField("errors", errorCount).
		WithField("call_success", result.Metrics.CallSuccess).
		Info("call analysis complete")
	return result, nil
}

// TrendReport derives the windowed lexicon-path verdict for an analysis.
func (a *Analyzer) TrendReport(analysis types.CallAnalysis, solved bool) actionable.TrendReport {
	w := aggregator.Windows(aggregator.Scores(analysis.CustomerTrajectory))
	return actionable.BuildTrendReport(a.cfg, w, solved)
}

func (a *Analyzer) filterCustomer(segments []types.ScoredSegment) []types.ScoredSegment {
	var out []types.ScoredSegment
	for _, seg := range segments {
		if a.cfg.IsCustomer(seg.Speaker) {
			out = append(out, seg)
		}
	}
	return out
}
