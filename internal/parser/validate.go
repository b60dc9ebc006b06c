package parser

import (
	"strings"

	"call-insights-go/internal/types"
)

// Stats describe a validated segment sequence.
type Stats struct {
	TotalSegments int            `json:"total_segments"`
	Speakers      []string       `json:"speakers"`
	SpeakerCounts map[string]int `json:"speaker_counts,omitempty"`
	AvgTextLength float64        `json:"avg_text_length,omitempty"`
}

// Validation is the outcome of a structural soundness check.
type Validation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
	Stats Stats  `json:"stats"`
}

// Validate checks that segments form a minimally viable conversation:
// at least 2 segments and at least 2 distinct speakers (labels compared
// case-insensitively). The returned stats keep the original label casing.
func Validate(segments []types.Segment) Validation {
	if len(segments) == 0 {
		return Validation{Valid: false, Error: "No valid segments found"}
	}

	var speakers []string
	seen := map[string]bool{}
	counts := map[string]int{}
	textLen := 0
	for _, seg := range segments {
		key := strings.ToLower(seg.Speaker)
		if !seen[key] {
			seen[key] = true
			speakers = append(speakers, seg.Speaker)
		}
		counts[seg.Speaker]++
		textLen += len(seg.Text)
	}

	if len(segments) < 2 {
		return Validation{
			Valid: false,
			Error: "Conversation too short (minimum 2 segments required)",
			Stats: Stats{TotalSegments: len(segments), Speakers: speakers},
		}
	}
	if len(seen) < 2 {
		return Validation{
			Valid: false,
			Error: "Conversation needs at least 2 different speakers",
			Stats: Stats{TotalSegments: len(segments), Speakers: speakers},
		}
	}

	return Validation{
		Valid: true,
		Stats: Stats{
			TotalSegments: len(segments),
			Speakers:      speakers,
			SpeakerCounts: counts,
			AvgTextLength: float64(textLen) / float64(len(segments)),
		},
	}
}
