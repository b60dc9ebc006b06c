package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"call-insights-go/internal/types"
)

func TestParseSimple(t *testing.T) {
	text := "Customer: I am upset\nAgent: Sorry\nCustomer: Thanks, resolved now"
	segments, err := Parse(text, FormatSimple)
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "Customer", segments[0].Speaker)
	assert.Equal(t, "I am upset", segments[0].Text)
	assert.Equal(t, "Agent", segments[1].Speaker)

	// two segments per 30-second slot
	assert.Equal(t, "00:00", segments[0].Timestamp)
	assert.Equal(t, "00:30", segments[1].Timestamp)
	assert.Equal(t, "01:00", segments[2].Timestamp)
}

func TestParseSimpleSkipsMalformedLines(t *testing.T) {
	text := "no colon here\nCustomer: hello\n: missing speaker\nAgent:\n  \nAgent: hi"
	segments, err := Parse(text, FormatSimple)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Customer", segments[0].Speaker)
	assert.Equal(t, "Agent", segments[1].Speaker)
}

func TestParseSimpleIdempotent(t *testing.T) {
	segments, err := Parse(SimpleExample, FormatSimple)
	require.NoError(t, err)
	require.NotEmpty(t, segments)

	// re-serialize as Speaker: Text lines and parse again
	var lines []string
	for _, s := range segments {
		lines = append(lines, fmt.Sprintf("%s: %s", s.Speaker, s.Text))
	}
	again, err := Parse(strings.Join(lines, "\n"), FormatSimple)
	require.NoError(t, err)
	require.Len(t, again, len(segments))
	for i := range segments {
		assert.Equal(t, segments[i].Speaker, again[i].Speaker)
		assert.Equal(t, segments[i].Text, again[i].Text)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, format := range []Format{FormatSimple, FormatTimestamped, FormatJSON} {
		segments, err := Parse("   \n  ", format)
		assert.NoError(t, err)
		assert.Empty(t, segments)
	}
}

func TestParseTimestamped(t *testing.T) {
	segments, err := Parse(TimestampedExample, FormatTimestamped)
	require.NoError(t, err)
	require.Len(t, segments, 7)
	assert.Equal(t, "00:30", segments[0].Timestamp)
	assert.Equal(t, "Customer", segments[0].Speaker)
	assert.Equal(t, "Estoy muy molesto con el servicio", segments[0].Text)
	assert.Equal(t, "03:30", segments[6].Timestamp)
}

func TestParseTimestampedSkipsUnmatchedLines(t *testing.T) {
	text := "[00:30] Customer: fine\nCustomer: no timestamp\n[01:00] missing inner colon\n[bad] Agent: bad stamp\n[01:30] Agent: ok"
	segments, err := Parse(text, FormatTimestamped)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "Customer", segments[0].Speaker)
	assert.Equal(t, "Agent", segments[1].Speaker)
}

func TestParseJSON(t *testing.T) {
	segments, err := Parse(JSONExample, FormatJSON)
	require.NoError(t, err)
	require.Len(t, segments, 7)
	assert.Equal(t, "Customer", segments[0].Speaker)
	assert.Equal(t, "00:30", segments[0].Timestamp)
}

func TestParseJSONDefaultsAndSkips(t *testing.T) {
	text := `[
		{"speaker": "Customer", "text": "hello"},
		{"speaker": "", "text": "no speaker"},
		{"text": "missing speaker"},
		{"speaker": "Agent"},
		"not an object",
		{"speaker": "Agent", "text": "hi", "timestamp": "00:30"}
	]`
	segments, err := Parse(text, FormatJSON)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, "N/A", segments[0].Timestamp)
	assert.Equal(t, "00:30", segments[1].Timestamp)
}

func TestParseJSONMalformedTopLevel(t *testing.T) {
	for _, text := range []string{`{"speaker": "x"}`, `not json at all`} {
		segments, err := Parse(text, FormatJSON)
		assert.Error(t, err)
		assert.Empty(t, segments)
	}
}

func TestParseFormatNames(t *testing.T) {
	f, err := ParseFormat("Simple Format")
	require.NoError(t, err)
	assert.Equal(t, FormatSimple, f)

	f, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	v := Validate(nil)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Error, "No valid segments")

	one := []types.Segment{{Speaker: "Customer", Text: "hi"}}
	v = Validate(one)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Error, "too short")

	sameSpeaker := []types.Segment{
		{Speaker: "Customer", Text: "hi"},
		{Speaker: "customer", Text: "still me"},
	}
	v = Validate(sameSpeaker)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Error, "2 different speakers")

	ok := []types.Segment{
		{Speaker: "Customer", Text: "hi"},
		{Speaker: "Agent", Text: "hello"},
		{Speaker: "Customer", Text: "thanks a lot"},
	}
	v = Validate(ok)
	require.True(t, v.Valid)
	assert.Equal(t, 3, v.Stats.TotalSegments)
	assert.Len(t, v.Stats.Speakers, 2)
	assert.Equal(t, 2, v.Stats.SpeakerCounts["Customer"])
	assert.InDelta(t, float64(len("hi")+len("hello")+len("thanks a lot"))/3, v.Stats.AvgTextLength, 1e-9)
}

func TestValidateMonotonicity(t *testing.T) {
	segments := []types.Segment{
		{Speaker: "Customer", Text: "a"},
		{Speaker: "Agent", Text: "b"},
		{Speaker: "Customer", Text: "c"},
	}
	require.True(t, Validate(segments).Valid)

	// removing the agent flips validity with the speaker-count reason
	trimmed := []types.Segment{segments[0], segments[2]}
	v := Validate(trimmed)
	assert.False(t, v.Valid)
	assert.Contains(t, v.Error, "2 different speakers")
}
