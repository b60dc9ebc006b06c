// Package export renders a CallAnalysis into the three output artifacts:
// a JSON document, a flattened CSV and a plain-text report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"call-insights-go/internal/types"
)

// Metadata heads the export document.
type Metadata struct {
	CallID    string        `json:"call_id"`
	Timestamp string        `json:"timestamp"`
	Summary   types.Summary `json:"summary"`
}

// SegmentRow is one flattened segment in the export document and CSV.
type SegmentRow struct {
	Timestamp string `json:"timestamp"`
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	Sentiment string `json:"sentiment"`
	Intensity int    `json:"intensity"`
	Context   string `json:"context"`
	Status    string `json:"status"`
}

// Document is the clean export form of a CallAnalysis.
type Document struct {
	Metadata Metadata      `json:"metadata"`
	Metrics  types.Metrics `json:"metrics"`
	Segments []SegmentRow  `json:"segments"`
}

// Build flattens an analysis for export.
func Build(analysis types.CallAnalysis) Document {
	doc := Document{
		Metadata: Metadata{
			CallID:    analysis.CallID,
			Timestamp: analysis.Timestamp,
			Summary:   analysis.Summary,
		},
		Metrics:  analysis.Metrics,
		Segments: make([]SegmentRow, 0, len(analysis.AnalyzedSegments)),
	}
	for _, seg := range analysis.AnalyzedSegments {
		doc.Segments = append(doc.Segments, SegmentRow{
			Timestamp: seg.Timestamp,
			Speaker:   seg.Speaker,
			Text:      seg.Text,
			Sentiment: seg.Sentiment,
			Intensity: seg.Intensity,
			Context:   seg.Context,
			Status:    seg.Status,
		})
	}
	return doc
}

// JSON renders the full analysis (not just the export document) with
// indentation, preserving every segment field for round-tripping.
func JSON(analysis types.CallAnalysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}

// DocumentJSON renders the flattened export document.
func DocumentJSON(analysis types.CallAnalysis) ([]byte, error) {
	return json.MarshalIndent(Build(analysis), "", "  ")
}

// CSV renders one header row plus one row per analyzed segment.
func CSV(analysis types.CallAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Timestamp", "Speaker", "Text", "Sentiment", "Intensity", "Context", "Status"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range Build(analysis).Segments {
		record := []string{
			row.Timestamp,
			row.Speaker,
			row.Text,
			row.Sentiment,
			strconv.Itoa(row.Intensity),
			row.Context,
			row.Status,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Report renders the plain-text summary report.
func Report(analysis types.CallAnalysis) string {
	yesNo := "No"
	if analysis.Metrics.CallSuccess {
		yesNo = "Yes"
	}
	dist := analysis.Summary.SentimentDistribution
	return fmt.Sprintf(`CALL SENTIMENT ANALYSIS
=======================

ID: %s
Date: %s

METRICS:
- Customer Improvement: %+.2f
- Call Success: %s
- Total Segments: %d

OUTCOME: %s

DISTRIBUTION:
- Positive: %d
- Neutral: %d
- Negative: %d
`,
		analysis.CallID,
		time.Now().Format("2006-01-02 15:04"),
		analysis.Metrics.CustomerImprovement,
		yesNo,
		analysis.Metrics.TotalSegments,
		analysis.Summary.CallOutcome,
		dist[types.SentimentPositive],
		dist[types.SentimentNeutral],
		dist[types.SentimentNegative],
	)
}

// Filename builds a timestamped export filename base.
func Filename(prefix string) string {
	if prefix == "" {
		prefix = "call_analysis"
	}
	return fmt.Sprintf("%s_%s", prefix, time.Now().Format("20060102_150405"))
}
