// Package transcription is the audio-to-text collaborator: it uploads a
// recording, requests a diarized transcript and polls until completion. The
// analysis core never imports this package's client directly; it consumes the
// formatted segments.
package transcription

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"call-insights-go/internal/logger"
	"call-insights-go/internal/types"
)

var httpClient = &http.Client{Timeout: 12 * time.Second}

// TranscriptResult is the formatted output of one transcription run.
type TranscriptResult struct {
	Segments              []types.Segment `json:"segments"`
	FormattedConversation string          `json:"formatted_conversation"`
	FullTranscript        string          `json:"full_transcript"`
	Confidence            float64         `json:"confidence"`
	LanguageDetected      string          `json:"language_detected"`
	AudioDurationSec      float64         `json:"audio_duration"`
	TotalSpeakers         int             `json:"total_speakers"`
}

type utterance struct {
	Speaker    string  `json:"speaker"`
	Text       string  `json:"text"`
	Start      int     `json:"start"` // milliseconds
	Confidence float64 `json:"confidence"`
}

type transcriptStatus struct {
	ID            string      `json:"id"`
	Status        string      `json:"status"` // queued, processing, completed, error
	Error         string      `json:"error,omitempty"`
	Text          string      `json:"text"`
	Confidence    float64     `json:"confidence"`
	LanguageCode  string      `json:"language_code"`
	AudioDuration int         `json:"audio_duration"` // milliseconds
	Utterances    []utterance `json:"utterances"`
}

// Client talks to an AssemblyAI-style transcription API. Configure with
// TRANSCRIBE_URL and TRANSCRIBE_API_KEY; USE_MOCK_TRANSCRIBE=true returns a
// canned conversation for offline runs.
type Client struct {
	host   string
	apiKey string
}

func NewClient() *Client {
	return &Client{
		host:   strings.TrimRight(os.Getenv("TRANSCRIBE_URL"), "/"),
		apiKey: os.Getenv("TRANSCRIBE_API_KEY"),
	}
}

// Transcribe uploads the audio bytes, requests a diarized transcript for two
// expected speakers, polls until done and formats the utterances as segments.
func (c *Client) Transcribe(audio []byte, language string) (TranscriptResult, error) {
	if os.Getenv("USE_MOCK_TRANSCRIBE") == "true" {
		return c.format(transcriptStatus{
			Status:       "completed",
			Text:         "Tengo un problema con mi tarjeta. Voy a revisar su cuenta.",
			Confidence:   0.9,
			LanguageCode: language,
			Utterances: []utterance{
				{Speaker: "A", Text: "Buenos días, ¿en qué puedo ayudarle?", Start: 0, Confidence: 0.9},
				{Speaker: "B", Text: "Tengo un problema con mi tarjeta", Start: 4000, Confidence: 0.9},
				{Speaker: "A", Text: "Voy a revisar su cuenta", Start: 9000, Confidence: 0.9},
			},
		}), nil
	}

	log := logger.New().WithField("module", "transcription")
	if c.host == "" {
		return TranscriptResult{}, errors.New("TRANSCRIBE_URL not set")
	}

	uploadURL, err := c.upload(audio)
	if err != nil {
		return TranscriptResult{}, err
	}
	log.WithField("upload_url", uploadURL).Info("audio uploaded")

	id, err := c.submit(uploadURL, language)
	if err != nil {
		return TranscriptResult{}, err
	}

	final, err := c.poll(id)
	if err != nil {
		return TranscriptResult{}, err
	}
	log.WithField("transcript_id", id).Info("transcription completed")
	return c.format(final), nil
}

func (c *Client) upload(audio []byte) (string, error) {
	req, _ := http.NewRequest("POST", c.host+"/upload", bytes.NewReader(audio))
	req.Header.Set("authorization", c.apiKey)
	var resp struct {
		UploadURL string `json:"upload_url"`
	}
	if err := doJSON(req, &resp); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if resp.UploadURL == "" {
		return "", errors.New("upload returned no url")
	}
	return resp.UploadURL, nil
}

func (c *Client) submit(audioURL, language string) (string, error) {
	payload, _ := json.Marshal(map[string]any{
		"audio_url":         audioURL,
		"language_code":     language,
		"speaker_labels":    true,
		"speakers_expected": 2,
		"punctuate":         true,
		"format_text":       true,
		"dual_channel":      false,
	})
	req, _ := http.NewRequest("POST", c.host+"/transcript", bytes.NewReader(payload))
	req.Header.Set("authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	var resp transcriptStatus
	if err := doJSON(req, &resp); err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	if resp.ID == "" {
		return "", errors.New("transcription request returned no id")
	}
	return resp.ID, nil
}

func (c *Client) poll(id string) (transcriptStatus, error) {
	for i := 0; i < 60; i++ {
		time.Sleep(3 * time.Second)
		req, _ := http.NewRequest("GET", c.host+"/transcript/"+id, nil)
		req.Header.Set("authorization", c.apiKey)
		var s transcriptStatus
		if err := doJSON(req, &s); err != nil {
			continue
		}
		switch s.Status {
		case "completed":
			return s, nil
		case "error":
			return transcriptStatus{}, fmt.Errorf("transcription failed: %s", s.Error)
		}
	}
	return transcriptStatus{}, errors.New("transcription timeout")
}

// format converts raw utterances into conversation segments. Speaker names
// are a best-effort heuristic: alternate starting from Agent, then override
// when greeting or complaint keywords identify the role. Millisecond offsets
// become MM:SS timestamps.
func (c *Client) format(data transcriptStatus) TranscriptResult {
	distinct := map[string]bool{}
	segments := make([]types.Segment, 0, len(data.Utterances))
	var lines []string

	for i, u := range data.Utterances {
		distinct[u.Speaker] = true
		text := strings.TrimSpace(u.Text)
		if text == "" {
			continue
		}

		name := "Agent"
		if i > 0 && len(segments) > 0 && segments[len(segments)-1].Speaker == "Agent" {
			name = "Customer"
		}
		lower := strings.ToLower(text)
		if containsAny(lower, agentKeywords) {
			name = "Agent"
		} else if containsAny(lower, customerKeywords) {
			name = "Customer"
		}

		segments = append(segments, types.Segment{
			Speaker:   name,
			Text:      text,
			Timestamp: fmt.Sprintf("%02d:%02d", u.Start/60000, (u.Start%60000)/1000),
		})
		lines = append(lines, fmt.Sprintf("%s: %s", name, text))
	}

	return TranscriptResult{
		Segments:              segments,
		FormattedConversation: strings.Join(lines, "\n"),
		FullTranscript:        data.Text,
		Confidence:            data.Confidence,
		LanguageDetected:      data.LanguageCode,
		AudioDurationSec:      float64(data.AudioDuration) / 1000,
		TotalSpeakers:         len(distinct),
	}
}

var agentKeywords = []string{"buenos días", "buenas tardes", "¿en qué puedo ayudarle?", "banco"}

var customerKeywords = []string{"tengo un problema", "necesito ayuda", "estoy molesto"}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func doJSON(req *http.Request, target interface{}) error {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 12 * time.Second
	var lastErr error
	op := func() error {
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("request rejected: %s", string(body))
			return backoff.Permanent(lastErr)
		}
		if len(body) == 0 {
			lastErr = errors.New("empty body")
			return lastErr
		}
		if err := json.Unmarshal(body, target); err != nil {
			lastErr = fmt.Errorf("json decode error: %v body=%s", err, string(body))
			return lastErr
		}
		return nil
	}
	if err := backoff.Retry(op, bo); err != nil {
		return lastErr
	}
	return nil
}
