// Package actionable turns trajectory signals into the call verdict: the
// recovery index, trend label, outcome classification, the human-readable
// narrative and the recommendation list.
package actionable

import (
	"fmt"

	"call-insights-go/internal/aggregator"
	"call-insights-go/internal/config"
)

// Trend labels for the first-to-middle movement.
const (
	TrendStable   = "remained stable"
	TrendImproved = "improved"
	TrendWorsened = "worsened"
)

// Outcome labels for the categorical improvement score.
const (
	OutcomeHighlySuccessful = "highly_successful"
	OutcomeSuccessful       = "successful"
	OutcomeNeutral          = "neutral"
	OutcomeNeedsAttention   = "needs_attention"
)

// RecoveryIndex blends the sentiment delta with the resolution flag into a
// bounded index. Solved calls map the delta into ~[0,1] (a sentiment drop on
// a solved call is a costly-but-resolved case, scaled by half); unsolved
// calls can never score above 0.
func RecoveryIndex(firstAvg, lastAvg float64, solved bool) float64 {
	delta := lastAvg - firstAvg
	if solved {
		if lastAvg < firstAvg {
			return 0.5 * (1 + delta)
		}
		return (delta + 1) / 2
	}
	if delta > 0 {
		return 0
	}
	return delta
}

// RecoveryPercent is the recovery index on a percentage scale.
func RecoveryPercent(firstAvg, lastAvg float64, solved bool) float64 {
	return RecoveryIndex(firstAvg, lastAvg, solved) * 100
}

// Trend classifies the first-to-middle movement, treating anything inside the
// configured tolerance as stable.
func Trend(cfg config.Config, firstAvg, middleAvg float64) string {
	diff := middleAvg - firstAvg
	switch {
	case diff < cfg.TrendTolerance && diff > -cfg.TrendTolerance:
		return TrendStable
	case diff > 0:
		return TrendImproved
	default:
		return TrendWorsened
	}
}

// Outcome classifies the customer improvement score.
func Outcome(improvement float64) string {
	switch {
	case improvement > 2:
		return OutcomeHighlySuccessful
	case improvement > 0:
		return OutcomeSuccessful
	case improvement > -2:
		return OutcomeNeutral
	default:
		return OutcomeNeedsAttention
	}
}

// SentimentCategory maps a window average to a discrete label using the
// configured compound cutoffs.
func SentimentCategory(cfg config.Config, avg float64) string {
	switch {
	case avg >= cfg.PositiveCutoff:
		return "positive"
	case avg <= cfg.NegativeCutoff:
		return "negative"
	default:
		return "neutral"
	}
}

// Narrative builds the one-sentence trend summary from the initial sentiment,
// the trend, the final sentiment and the resolution flag. Three solved
// variants keyed by the final sentiment, one unsolved variant.
func Narrative(initialSentiment, trend, finalSentiment string, solved bool) string {
	if !solved {
		return fmt.Sprintf(
			"The call began with a %s sentiment, %s during the mid part of the call, and finally ended with a %s tone as the agent was not able to solve the problem.",
			initialSentiment, trend, finalSentiment)
	}
	switch finalSentiment {
	case "positive":
		return fmt.Sprintf(
			"The call began with a %s sentiment, %s during the mid part of the call, and finally ended with a %s tone as the agent was able to solve the problem.",
			initialSentiment, trend, finalSentiment)
	case "neutral":
		return fmt.Sprintf(
			"The call began with a %s sentiment, %s during the mid part of the call, and although it ended with a %s tone, the agent managed to solve the problem.",
			initialSentiment, trend, finalSentiment)
	default:
		return fmt.Sprintf(
			"The call began with a %s sentiment, %s during the mid part of the call, and although it ended with a %s tone, the problem was successfully resolved.",
			initialSentiment, trend, finalSentiment)
	}
}

// TrendReport is the full lexicon-path verdict for one call.
type TrendReport struct {
	Windows          aggregator.WindowAverages `json:"windows"`
	RawImprovement   float64                   `json:"raw_improvement"`
	Solved           bool                      `json:"solved"`
	RecoveryIndex    float64                   `json:"recovery_index"`
	RecoveryPercent  float64                   `json:"recovery_percent"`
	InitialSentiment string                    `json:"initial_sentiment"`
	MiddleSentiment  string                    `json:"middle_sentiment"`
	FinalSentiment   string                    `json:"final_sentiment"`
	Trend            string                    `json:"trend"`
	Narrative        string                    `json:"narrative"`
}

// BuildTrendReport assembles the verdict from the window averages and the
// resolution flag.
func BuildTrendReport(cfg config.Config, w aggregator.WindowAverages, solved bool) TrendReport {
	trend := Trend(cfg, w.First, w.Middle)
	initial := SentimentCategory(cfg, w.First)
	middle := SentimentCategory(cfg, w.Middle)
	final := SentimentCategory(cfg, w.Last)
	index := RecoveryIndex(w.First, w.Last, solved)
	return TrendReport{
		Windows:          w,
		RawImprovement:   w.Last - w.First,
		Solved:           solved,
		RecoveryIndex:    index,
		RecoveryPercent:  index * 100,
		InitialSentiment: initial,
		MiddleSentiment:  middle,
		FinalSentiment:   final,
		Trend:            trend,
		Narrative:        Narrative(initial, trend, final, solved),
	}
}

// Recommendations derives the advice list from the customer improvement
// score. A proactive follow-up suggestion is appended whenever the customer
// trajectory declined at all.
func Recommendations(customerImprovement float64) []string {
	var recs []string
	switch {
	case customerImprovement > 1:
		recs = append(recs, "Excellent customer experience - call resolved successfully")
	case customerImprovement > 0:
		recs = append(recs, "Customer sentiment improved during the call")
	case customerImprovement < -1:
		recs = append(recs, "Customer satisfaction declined - follow-up recommended")
	default:
		recs = append(recs, "Customer sentiment remained stable")
	}
	if customerImprovement < 0 {
		recs = append(recs, "Consider proactive follow-up call")
	}
	return recs
}
