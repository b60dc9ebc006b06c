// Package aggregator reduces a scored segment sequence to trajectory signals:
// directional window averages, improvement deltas, volatility and
// time-in-sentiment proportions. Everything here reads only the normalized
// numeric score of a segment, so both scoring backends flow through unchanged.
package aggregator

import (
	"math"

	"call-insights-go/internal/types"
)

// WindowAverages are the beginning/middle/end means of a trajectory.
type WindowAverages struct {
	First  float64 `json:"first_avg"`
	Middle float64 `json:"middle_avg"`
	Last   float64 `json:"last_avg"`
}

// Windows partitions scores into first/middle/last windows sized by the total
// count n and returns each window's mean:
//
//	n < 6         whole-sequence mean for all three
//	6 <= n < 10   first 2 / 2 centered at n/2 / last 2
//	10 <= n < 30  first 3 / 5 centered at n/2 / last 3
//	n >= 30       first 5 / 5 centered at n/2 / last 5
//
// Centered windows are clipped to the available range.
func Windows(scores []float64) WindowAverages {
	n := len(scores)
	if n == 0 {
		return WindowAverages{}
	}

	switch {
	case n < 6:
		overall := mean(scores)
		return WindowAverages{First: overall, Middle: overall, Last: overall}
	case n < 10:
		mid := n / 2
		return WindowAverages{
			First:  mean(scores[:2]),
			Middle: mean(clip(scores, mid-1, mid+1)),
			Last:   mean(scores[n-2:]),
		}
	case n < 30:
		return WindowAverages{
			First:  mean(scores[:3]),
			Middle: centeredMean(scores),
			Last:   mean(scores[n-3:]),
		}
	default:
		return WindowAverages{
			First:  mean(scores[:5]),
			Middle: centeredMean(scores),
			Last:   mean(scores[n-5:]),
		}
	}
}

// centeredMean averages a 5-wide window starting at max(0, n/2-2).
func centeredMean(scores []float64) float64 {
	start := len(scores)/2 - 2
	if start < 0 {
		start = 0
	}
	return mean(clip(scores, start, start+5))
}

func clip(scores []float64, lo, hi int) []float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(scores) {
		hi = len(scores)
	}
	return scores[lo:hi]
}

// Scores extracts the normalized numeric score of each segment.
func Scores(segments []types.ScoredSegment) []float64 {
	out := make([]float64, len(segments))
	for i, seg := range segments {
		out[i] = seg.Score
	}
	return out
}

// Improvement is the first-to-last score delta of a trajectory, 0 when fewer
// than 2 segments exist.
func Improvement(segments []types.ScoredSegment) float64 {
	if len(segments) < 2 {
		return 0
	}
	return segments[len(segments)-1].Score - segments[0].Score
}

// OverallImprovement compares the average score of the second half of the
// whole call against the first half, split at len/2. Fewer than 4 segments
// is too short for a trend and yields 0.
func OverallImprovement(segments []types.ScoredSegment) float64 {
	if len(segments) < 4 {
		return 0
	}
	scores := Scores(segments)
	mid := len(scores) / 2
	return mean(scores[mid:]) - mean(scores[:mid])
}

// Volatility is the population standard deviation of the trajectory scores,
// 0 for an empty trajectory.
func Volatility(segments []types.ScoredSegment) float64 {
	if len(segments) == 0 {
		return 0
	}
	scores := Scores(segments)
	m := mean(scores)
	variance := 0.0
	for _, s := range scores {
		d := s - m
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(scores)))
}

// TimeInSentiment returns the percentage of segments in each sentiment
// category. All three keys are always present; an empty trajectory yields
// zeros rather than dividing by zero.
func TimeInSentiment(segments []types.ScoredSegment) map[string]float64 {
	out := map[string]float64{
		types.SentimentPositive: 0,
		types.SentimentNeutral:  0,
		types.SentimentNegative: 0,
	}
	if len(segments) == 0 {
		return out
	}
	for _, seg := range segments {
		out[seg.Sentiment]++
	}
	total := float64(len(segments))
	for k := range out {
		out[k] = out[k] / total * 100
	}
	return out
}

func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
