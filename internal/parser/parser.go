// Package parser turns raw conversation text into ordered speaker segments
// and checks that the result is a viable dialogue.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"call-insights-go/internal/types"
)

// Format selects one of the three accepted conversation syntaxes.
type Format string

const (
	FormatSimple      Format = "simple"      // Speaker: Text
	FormatTimestamped Format = "timestamped" // [MM:SS] Speaker: Text
	FormatJSON        Format = "json"        // [{"speaker": ..., "text": ..., "timestamp": ...}]
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple", "simple format", "":
		return FormatSimple, nil
	case "timestamped", "timestamped format":
		return FormatTimestamped, nil
	case "json", "json format":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unknown format type: %s", name)
}

var timestampedLine = regexp.MustCompile(`^\[(\d{1,2}:\d{2})\]\s*(.+)`)

// Parse splits raw conversation text into segments according to format.
// Malformed lines are skipped; a malformed JSON document yields an error and
// no segments. Empty input yields an empty slice, not an error.
func Parse(text string, format Format) ([]types.Segment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	switch format {
	case FormatSimple:
		return parseSimple(text), nil
	case FormatTimestamped:
		return parseTimestamped(text), nil
	case FormatJSON:
		return parseJSON(text)
	}
	return nil, fmt.Errorf("unknown format type: %s", format)
}

// parseSimple handles "Speaker: Text" lines. The first colon splits; lines
// without a colon or with an empty side are skipped. Synthetic timestamps pack
// two segments into each 30-second slot.
func parseSimple(text string) []types.Segment {
	var segments []types.Segment
	counter := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, ":") {
			continue
		}
		speaker, content, _ := strings.Cut(line, ":")
		speaker = strings.TrimSpace(speaker)
		content = strings.TrimSpace(content)
		if speaker == "" || content == "" {
			continue
		}
		segments = append(segments, types.Segment{
			Speaker:   speaker,
			Text:      content,
			Timestamp: fmt.Sprintf("%02d:%02d", counter/2, (counter%2)*30),
		})
		counter++
	}
	return segments
}

// parseTimestamped handles "[MM:SS] Speaker: Text" lines. Lines missing the
// bracketed timestamp or the inner colon are skipped.
func parseTimestamped(text string) []types.Segment {
	var segments []types.Segment
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := timestampedLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		content := strings.TrimSpace(m[2])
		if !strings.Contains(content, ":") {
			continue
		}
		speaker, body, _ := strings.Cut(content, ":")
		speaker = strings.TrimSpace(speaker)
		body = strings.TrimSpace(body)
		if speaker == "" || body == "" {
			continue
		}
		segments = append(segments, types.Segment{
			Speaker:   speaker,
			Text:      body,
			Timestamp: m[1],
		})
	}
	return segments
}

// jsonSegment tolerates any JSON value per field so that malformed elements
// degrade instead of failing the whole array.
type jsonSegment struct {
	Speaker   any `json:"speaker"`
	Text      any `json:"text"`
	Timestamp any `json:"timestamp"`
}

// parseJSON handles a JSON array of {speaker, text, timestamp?} objects.
// Elements missing speaker or text are skipped. A document that is not a
// valid JSON array is reported as an error with zero segments.
func parseJSON(text string) ([]types.Segment, error) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(text), &items); err != nil {
		return nil, fmt.Errorf("invalid JSON format: %w", err)
	}

	var segments []types.Segment
	for _, raw := range items {
		var item jsonSegment
		if err := json.Unmarshal(raw, &item); err != nil {
			continue // not an object
		}
		speaker := strings.TrimSpace(coerceString(item.Speaker))
		body := strings.TrimSpace(coerceString(item.Text))
		if speaker == "" || body == "" {
			continue
		}
		timestamp := strings.TrimSpace(coerceString(item.Timestamp))
		if timestamp == "" {
			timestamp = "N/A"
		}
		segments = append(segments, types.Segment{
			Speaker:   speaker,
			Text:      body,
			Timestamp: timestamp,
		})
	}
	return segments, nil
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}
