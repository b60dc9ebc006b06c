package types

// Segment is one speaker utterance from a parsed conversation.
type Segment struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // "MM:SS" or "N/A"
}

// Analysis status values for a scored segment.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Sentiment labels shared by both scoring backends.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// PolarityScores is the four-component output of the lexicon backend.
// Negative+Neutral+Positive sum to 1; Compound is in [-1, 1].
type PolarityScores struct {
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
	Positive float64 `json:"pos"`
	Compound float64 `json:"compound"`
}

// ScoredSegment is a Segment plus the result of one sentiment analysis.
// It is created once by a scorer and never re-scored.
//
// Score is the backend-agnostic numeric value everything downstream reads:
// sentiment value × intensity for the categorical backend, compound for the
// lexicon backend. Polarity is nil on the categorical path.
type ScoredSegment struct {
	Segment
	Sentiment   string          `json:"sentiment"`
	Intensity   int             `json:"intensity"`
	Context     string          `json:"context"`
	Score       float64         `json:"score"`
	Polarity    *PolarityScores `json:"polarity,omitempty"`
	RawResponse string          `json:"raw_response,omitempty"`
	Status      string          `json:"analysis_status"`
}

// Metrics are the per-call scalar results.
type Metrics struct {
	CustomerImprovement float64 `json:"customer_improvement"`
	OverallImprovement  float64 `json:"overall_improvement"`
	CallSuccess         bool    `json:"call_success"`
	TotalSegments       int     `json:"total_segments"`
	SuccessfulAnalyses  int     `json:"successful_analyses"`
	ErrorCount          int     `json:"error_count"`
}

// Summary aggregates the full analyzed sequence.
type Summary struct {
	ImprovementScore      float64        `json:"improvement_score"`
	SentimentDistribution map[string]int `json:"sentiment_distribution"`
	AverageIntensity      float64        `json:"average_intensity"`
	CallOutcome           string         `json:"call_outcome"`
	DominantSentiment     string         `json:"dominant_sentiment"`
	TotalExchanges        int            `json:"total_exchanges"`
}

// Health carries the customer-trajectory quality metrics reported alongside
// the summary: sentiment volatility, proportion of segments in each sentiment,
// and the share of segments that analyzed without error.
type Health struct {
	Volatility      float64            `json:"volatility"`
	TimeInSentiment map[string]float64 `json:"time_in_sentiment"`
	Accuracy        float64            `json:"accuracy"`
}

// CallAnalysis is the aggregate result of analyzing one full call.
type CallAnalysis struct {
	CallID             string          `json:"call_id"`
	Timestamp          string          `json:"timestamp"`
	AnalyzedSegments   []ScoredSegment `json:"analyzed_segments"`
	CustomerTrajectory []ScoredSegment `json:"customer_trajectory"`
	Metrics            Metrics         `json:"metrics"`
	Summary            Summary         `json:"summary"`
	Health             Health          `json:"health"`
	Recommendations    []string        `json:"recommendations"`
}

// CallRecord is one row of a batch dataset: a transcript to analyze.
type CallRecord struct {
	CallID     string `json:"call_id"`
	Transcript string `json:"transcript"`
	Format     string `json:"format,omitempty"`
	AudioURL   string `json:"audio_url,omitempty"`
}
