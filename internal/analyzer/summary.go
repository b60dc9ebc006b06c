package analyzer

import (
	"math"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/types"
)

// dominantOrder is the deterministic tie-break for the dominant sentiment:
// positive wins over neutral, neutral over negative.
var dominantOrder = []string{
	types.SentimentPositive,
	types.SentimentNeutral,
	types.SentimentNegative,
}

// buildSummary assembles the distribution, intensity and outcome view of the
// full analyzed sequence (not customer-only).
func buildSummary(segments []types.ScoredSegment, improvement float64) types.Summary {
	distribution := map[string]int{
		types.SentimentPositive: 0,
		types.SentimentNeutral:  0,
		types.SentimentNegative: 0,
	}
	intensitySum := 0
	for _, seg := range segments {
		distribution[seg.Sentiment]++
		intensitySum += seg.Intensity
	}

	avgIntensity := 0.0
	if len(segments) > 0 {
		avgIntensity = float64(intensitySum) / float64(len(segments))
	}

	dominant := dominantOrder[0]
	best := -1
	for _, label := range dominantOrder {
		if distribution[label] > best {
			best = distribution[label]
			dominant = label
		}
	}

	return types.Summary{
		ImprovementScore:      round2(improvement),
		SentimentDistribution: distribution,
		AverageIntensity:      round2(avgIntensity),
		CallOutcome:           actionable.Outcome(improvement),
		DominantSentiment:     dominant,
		TotalExchanges:        len(segments),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
