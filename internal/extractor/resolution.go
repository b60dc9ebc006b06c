package extractor

import (
	"encoding/json"
	"strings"

	"call-insights-go/internal/config"
	"call-insights-go/internal/logger"
)

// CompletionService is the slice of the chat client the classifier needs.
type CompletionService interface {
	Complete(prompt string) (string, error)
}

// ResolutionClassifier asks the completion service whether the customer's
// issue was solved. Any failure or malformed reply counts as not solved;
// the caller never sees an error.
type ResolutionClassifier struct {
	cfg     config.Config
	service CompletionService
}

func NewResolutionClassifier(cfg config.Config, service CompletionService) *ResolutionClassifier {
	return &ResolutionClassifier{cfg: cfg, service: service}
}

type resolutionReply struct {
	Solved int `json:"solved"`
}

// Solved classifies the full transcript. Expects a reply containing a JSON
// object {"solved": 0|1}; tolerates surrounding prose and markdown fences.
func (r *ResolutionClassifier) Solved(transcript string) bool {
	log := logger.New().WithField("component", "resolution-classifier")

	prompt := strings.ReplaceAll(r.cfg.ResolutionPrompt, "{transcript}", transcript)
	reply, err := r.service.Complete(prompt)
	if err != nil {
		log.WithError(err).Warn("resolution classification failed, treating as unresolved")
		return false
	}

	raw := ExtractJSON(reply)
	if raw == "" {
		log.Warn("no JSON object in resolution reply")
		return false
	}
	var parsed resolutionReply
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.WithError(err).Warn("malformed resolution reply")
		return false
	}
	return parsed.Solved == 1
}

// ExtractJSON finds the first balanced JSON object in a string, stripping
// common markdown fences first.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
