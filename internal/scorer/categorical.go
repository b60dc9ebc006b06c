package scorer

import (
	"fmt"
	"strings"

	"call-insights-go/internal/config"
	"call-insights-go/internal/types"
)

// CategoricalScorer classifies segments through a text-completion service and
// parses the labeled free-text reply (Sentiment/Intensity/Context lines).
type CategoricalScorer struct {
	cfg     config.Config
	service TextCompletionService
	prompt  string
}

// NewCategoricalScorer builds a scorer using the default segment prompt.
func NewCategoricalScorer(cfg config.Config, service TextCompletionService) *CategoricalScorer {
	return &CategoricalScorer{cfg: cfg, service: service, prompt: cfg.SegmentPrompt}
}

// WithPrompt overrides the prompt template. The template may reference
// {speaker}, {text} and {timestamp}.
func (s *CategoricalScorer) WithPrompt(template string) *CategoricalScorer {
	if strings.TrimSpace(template) != "" {
		s.prompt = template
	}
	return s
}

// Score classifies one segment. Service failures degrade the segment to the
// neutral/intensity-3 default with the failure recorded in Context.
func (s *CategoricalScorer) Score(segment types.Segment) types.ScoredSegment {
	prompt := RenderPrompt(s.prompt, segment)

	reply, err := s.service.Complete(prompt)
	if err != nil {
		return s.errorResult(segment, err.Error())
	}
	return s.parseReply(reply, segment)
}

// RenderPrompt fills the {speaker}, {text} and {timestamp} placeholders.
// A missing timestamp renders as "N/A".
func RenderPrompt(template string, segment types.Segment) string {
	ts := segment.Timestamp
	if ts == "" {
		ts = "N/A"
	}
	r := strings.NewReplacer(
		"{speaker}", segment.Speaker,
		"{text}", segment.Text,
		"{timestamp}", ts,
	)
	return r.Replace(template)
}

// parseReply extracts the three labeled fields from the service reply.
// Labels match in English or Spanish; anything unrecognized keeps the
// neutral/3 defaults rather than erroring.
func (s *CategoricalScorer) parseReply(reply string, segment types.Segment) types.ScoredSegment {
	result := types.ScoredSegment{
		Segment:     segment,
		Sentiment:   types.SentimentNeutral,
		Intensity:   3,
		RawResponse: reply,
		Status:      types.StatusSuccess,
	}

	for _, line := range strings.Split(strings.TrimSpace(reply), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Sentimiento:") || strings.HasPrefix(line, "Sentiment:"):
			_, value, _ := strings.Cut(line, ":")
			result.Sentiment = parseSentiment(value)
		case strings.HasPrefix(line, "Intensidad:") || strings.HasPrefix(line, "Intensity:"):
			_, value, _ := strings.Cut(line, ":")
			if n, ok := firstDigit(value); ok {
				result.Intensity = clampIntensity(n)
			}
		case strings.HasPrefix(line, "Contexto:") || strings.HasPrefix(line, "Context:"):
			_, value, _ := strings.Cut(line, ":")
			result.Context = strings.TrimSpace(value)
		}
	}

	result.Score = s.cfg.SentimentValue(result.Sentiment) * float64(result.Intensity)
	return result
}

func (s *CategoricalScorer) errorResult(segment types.Segment, msg string) types.ScoredSegment {
	return types.ScoredSegment{
		Segment:     segment,
		Sentiment:   types.SentimentNeutral,
		Intensity:   3,
		Context:     fmt.Sprintf("Error: %s", msg),
		Score:       0,
		RawResponse: fmt.Sprintf("ERROR: %s", msg),
		Status:      types.StatusError,
	}
}

// parseSentiment infers the label by substring match, defaulting to neutral.
func parseSentiment(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case strings.Contains(v, "positivo") || strings.Contains(v, "positive"):
		return types.SentimentPositive
	case strings.Contains(v, "negativo") || strings.Contains(v, "negative"):
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

// firstDigit returns the first decimal digit character in value.
func firstDigit(value string) (int, bool) {
	for _, r := range value {
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
	}
	return 0, false
}

func clampIntensity(n int) int {
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}
