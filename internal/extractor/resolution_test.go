package extractor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"call-insights-go/internal/config"
)

type fakeService struct {
	reply string
	err   error
	seen  string
}

func (f *fakeService) Complete(prompt string) (string, error) {
	f.seen = prompt
	return f.reply, f.err
}

func TestSolved(t *testing.T) {
	cfg := config.Default()

	cases := []struct {
		name  string
		reply string
		err   error
		want  bool
	}{
		{"plain solved", `{"solved": 1}`, nil, true},
		{"plain unsolved", `{"solved": 0}`, nil, false},
		{"fenced reply", "Here is the result:\n```json\n{\"solved\": 1}\n```", nil, true},
		{"prose around object", `I think {"solved": 1} based on the transcript.`, nil, true},
		{"no json at all", "the issue was solved", nil, false},
		{"malformed json", `{"solved": }`, nil, false},
		{"service error", "", errors.New("timeout"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeService{reply: tc.reply, err: tc.err}
			r := NewResolutionClassifier(cfg, svc)
			assert.Equal(t, tc.want, r.Solved("Customer: hola\nAgent: resuelto"))
		})
	}
}

func TestSolvedPromptCarriesTranscript(t *testing.T) {
	svc := &fakeService{reply: `{"solved": 0}`}
	NewResolutionClassifier(config.Default(), svc).Solved("Customer: mi tarjeta falla")
	assert.Contains(t, svc.seen, "Customer: mi tarjeta falla")
	assert.NotContains(t, svc.seen, "{transcript}")
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, ExtractJSON(`{"a": 1}`))
	assert.Equal(t, `{"a": 1}`, ExtractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": {"b": 2}}`, ExtractJSON(`prefix {"a": {"b": 2}} suffix`))
	assert.Empty(t, ExtractJSON("no object here"))
	assert.Empty(t, ExtractJSON(`{"unbalanced": 1`))
	assert.Empty(t, ExtractJSON(""))
}
