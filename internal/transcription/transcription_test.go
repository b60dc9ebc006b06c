package transcription

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAlternatesAndOverridesSpeakers(t *testing.T) {
	c := &Client{}
	result := c.format(transcriptStatus{
		Status:        "completed",
		Text:          "full text",
		Confidence:    0.87,
		LanguageCode:  "es",
		AudioDuration: 95000,
		Utterances: []utterance{
			{Speaker: "A", Text: "Buenos días, ¿en qué puedo ayudarle?", Start: 0},
			{Speaker: "B", Text: "Tengo un problema con mi tarjeta", Start: 4000},
			{Speaker: "A", Text: "Voy a revisar su cuenta", Start: 65000},
			{Speaker: "B", Text: "Gracias", Start: 90000},
		},
	})

	require.Len(t, result.Segments, 4)
	// keyword overrides pin the first two roles, alternation covers the rest
	assert.Equal(t, "Agent", result.Segments[0].Speaker)
	assert.Equal(t, "Customer", result.Segments[1].Speaker)
	assert.Equal(t, "Agent", result.Segments[2].Speaker)
	assert.Equal(t, "Customer", result.Segments[3].Speaker)

	assert.Equal(t, "00:00", result.Segments[0].Timestamp)
	assert.Equal(t, "00:04", result.Segments[1].Timestamp)
	assert.Equal(t, "01:05", result.Segments[2].Timestamp)
	assert.Equal(t, "01:30", result.Segments[3].Timestamp)

	assert.Contains(t, result.FormattedConversation, "Agent: Buenos días")
	assert.Contains(t, result.FormattedConversation, "Customer: Tengo un problema con mi tarjeta")
	assert.Equal(t, "full text", result.FullTranscript)
	assert.InDelta(t, 95, result.AudioDurationSec, 1e-9)
	assert.Equal(t, 2, result.TotalSpeakers)
	assert.Equal(t, "es", result.LanguageDetected)
}

func TestFormatKeywordOverrideBeatsAlternation(t *testing.T) {
	c := &Client{}
	result := c.format(transcriptStatus{
		Utterances: []utterance{
			// two customer complaints in a row stay Customer despite alternation
			{Speaker: "A", Text: "Necesito ayuda con mi cuenta", Start: 0},
			{Speaker: "A", Text: "Estoy molesto con el servicio", Start: 3000},
		},
	})
	require.Len(t, result.Segments, 2)
	assert.Equal(t, "Customer", result.Segments[0].Speaker)
	assert.Equal(t, "Customer", result.Segments[1].Speaker)
}

func TestFormatSkipsEmptyUtterances(t *testing.T) {
	c := &Client{}
	result := c.format(transcriptStatus{
		Utterances: []utterance{
			{Speaker: "A", Text: "   ", Start: 0},
			{Speaker: "B", Text: "Hola", Start: 1000},
		},
	})
	require.Len(t, result.Segments, 1)
	assert.Equal(t, "Hola", result.Segments[0].Text)
}

func TestTranscribeMock(t *testing.T) {
	t.Setenv("USE_MOCK_TRANSCRIBE", "true")
	result, err := NewClient().Transcribe(nil, "es")
	require.NoError(t, err)
	require.Len(t, result.Segments, 3)
	assert.Equal(t, "Agent", result.Segments[0].Speaker)
	assert.Equal(t, "Customer", result.Segments[1].Speaker)
	assert.NotEmpty(t, result.FormattedConversation)
}
