package config

import "strings"

// Config is the process-wide analysis configuration. It is built once at
// startup and treated as read-only afterwards; every component receives it
// explicitly rather than reading globals.
type Config struct {
	// SpeakerAliases maps a role ("customer", "agent") to the lower-cased
	// speaker labels that count as that role.
	SpeakerAliases map[string][]string

	// SentimentValues maps a categorical sentiment label to its numeric value.
	SentimentValues map[string]float64

	// Lexicon compound cutoffs for discretizing a compound score.
	PositiveCutoff float64
	NegativeCutoff float64

	// TrendTolerance is the dead band below which first-to-middle movement
	// counts as stable.
	TrendTolerance float64

	// Chat completion settings for the categorical backend.
	Chat ChatSettings

	// Prompt templates.
	SegmentPrompt    string // default per-segment prompt (Spanish banking)
	GeneralPrompt    string // English fallback template
	ResolutionPrompt string // solved/not-solved classification prompt
}

// ChatSettings mirror the external completion service parameters.
type ChatSettings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Default returns the stock configuration for Spanish banking calls.
func Default() Config {
	return Config{
		SpeakerAliases: map[string][]string{
			"customer": {"customer", "cliente", "client"},
			"agent":    {"agent", "agente", "operador", "gestor"},
		},
		SentimentValues: map[string]float64{
			"negative": -1,
			"neutral":  0,
			"positive": 1,
		},
		PositiveCutoff: 0.05,
		NegativeCutoff: -0.05,
		TrendTolerance: 0.01,
		Chat: ChatSettings{
			Model:       "command-r",
			Temperature: 0.1,
			MaxTokens:   200,
		},
		SegmentPrompt:    defaultSegmentPrompt,
		GeneralPrompt:    generalSegmentPrompt,
		ResolutionPrompt: resolutionPrompt,
	}
}

// IsCustomer reports whether the speaker label belongs to the customer alias
// set. Matching is case-insensitive; callers pass the raw label.
func (c Config) IsCustomer(speaker string) bool {
	return c.hasAlias("customer", speaker)
}

// IsAgent reports whether the speaker label belongs to the agent alias set.
func (c Config) IsAgent(speaker string) bool {
	return c.hasAlias("agent", speaker)
}

func (c Config) hasAlias(role, speaker string) bool {
	lower := strings.ToLower(strings.TrimSpace(speaker))
	for _, alias := range c.SpeakerAliases[role] {
		if lower == alias {
			return true
		}
	}
	return false
}

// SentimentValue returns the numeric value for a categorical label, 0 for
// anything unknown.
func (c Config) SentimentValue(sentiment string) float64 {
	return c.SentimentValues[sentiment]
}
