// Package dataset loads call transcripts from an Excel workbook for batch
// analysis. Column positions are auto-detected from the header row.
package dataset

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"call-insights-go/internal/types"
)

// Load reads the first sheet and returns one CallRecord per data row that
// carries a non-empty transcript. Rows without a transcript are skipped
// quietly.
func Load(path string) ([]types.CallRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("no data rows")
	}

	idIdx, transcriptIdx, formatIdx, audioIdx := detectColumns(rows[0])

	var out []types.CallRecord
	for i, r := range rows {
		if i == 0 {
			continue
		}
		record := types.CallRecord{}
		if idIdx >= 0 && idIdx < len(r) {
			record.CallID = strings.TrimSpace(r[idIdx])
		}
		if record.CallID == "" {
			record.CallID = fmt.Sprintf("row_%d", i)
		}
		if transcriptIdx >= 0 && transcriptIdx < len(r) {
			record.Transcript = strings.TrimSpace(r[transcriptIdx])
		}
		if formatIdx >= 0 && formatIdx < len(r) {
			record.Format = strings.TrimSpace(r[formatIdx])
		}
		if audioIdx >= 0 && audioIdx < len(r) {
			record.AudioURL = strings.TrimSpace(r[audioIdx])
		}
		if record.Transcript == "" {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// detectColumns matches header names by keyword, first match wins.
func detectColumns(header []string) (idIdx, transcriptIdx, formatIdx, audioIdx int) {
	idIdx, transcriptIdx, formatIdx, audioIdx = -1, -1, -1, -1
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case transcriptIdx == -1 && (strings.Contains(l, "transcript") || strings.Contains(l, "conversation") || strings.Contains(l, "text")):
			transcriptIdx = i
		case idIdx == -1 && strings.Contains(l, "id"):
			idIdx = i
		case formatIdx == -1 && strings.Contains(l, "format"):
			formatIdx = i
		case audioIdx == -1 && (strings.Contains(l, "audio") || strings.Contains(l, "record") || strings.Contains(l, "url")):
			audioIdx = i
		}
	}
	// transcripts commonly sit in the second column when headers are unnamed
	if transcriptIdx == -1 && len(header) > 1 {
		transcriptIdx = 1
	}
	return idIdx, transcriptIdx, formatIdx, audioIdx
}
