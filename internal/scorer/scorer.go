// Package scorer assigns a sentiment result to individual conversation
// segments. Two interchangeable strategies exist: a categorical one that
// delegates classification to an external text-completion service, and a
// deterministic local lexicon one. Downstream code reads only the normalized
// numeric Score each strategy sets, so the rest of the pipeline never
// branches on the backend.
package scorer

import "call-insights-go/internal/types"

// SegmentScorer scores one segment. Implementations must absorb every
// failure: a segment that cannot be scored comes back degraded to
// neutral/intensity-3 with Status set to error, never as a returned error.
type SegmentScorer interface {
	Score(segment types.Segment) types.ScoredSegment
}

// TextCompletionService is the external LLM collaborator the categorical
// strategy talks to. Complete blocks until the service replies or fails.
type TextCompletionService interface {
	Complete(prompt string) (string, error)
}
