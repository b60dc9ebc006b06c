package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"call-insights-go/internal/actionable"
	"call-insights-go/internal/analyzer"
	"call-insights-go/internal/config"
	"call-insights-go/internal/dataset"
	"call-insights-go/internal/extractor"
	"call-insights-go/internal/logger"
	"call-insights-go/internal/parser"
	"call-insights-go/internal/scorer"
	"call-insights-go/internal/types"
)

type analyzeRequest struct {
	Text         string `json:"text"`
	Format       string `json:"format"`        // simple | timestamped | json
	Scorer       string `json:"scorer"`        // categorical | lexicon
	CustomPrompt string `json:"custom_prompt"` // optional, categorical only
}

type analyzeResponse struct {
	Analysis    types.CallAnalysis      `json:"analysis"`
	TrendReport *actionable.TrendReport `json:"trend_report,omitempty"`
	Warning     string                  `json:"warning,omitempty"`
	DurationMs  int64                   `json:"duration_ms"`
}

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "call-insights-go").Info("starting service")

	cfg := config.Default()
	completion := extractor.NewClient(cfg.Chat)
	resolver := extractor.NewResolutionClassifier(cfg, completion)

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// analyze endpoint: parse -> validate -> score -> aggregate
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			reqLog.WithError(err).Warn("bad request body")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		format, err := parser.ParseFormat(req.Format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var warning string
		segments, err := parser.Parse(req.Text, format)
		if err != nil {
			// malformed top-level input degrades to zero segments
			warning = err.Error()
			reqLog.WithError(err).Warn("parse failure")
		}

		validation := parser.Validate(segments)
		if !validation.Valid {
			reqLog.WithField("reason", validation.Error).Warn("validation failed")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(validation)
			return
		}

		var seg scorer.SegmentScorer
		lexicon := req.Scorer == "lexicon"
		if lexicon {
			seg = scorer.NewLexiconScorer(cfg)
		} else {
			seg = scorer.NewCategoricalScorer(cfg, completion).WithPrompt(req.CustomPrompt)
		}

		start := time.Now()
		a := analyzer.New(cfg, seg)
		analysis, err := a.AnalyzeFullCall(segments)
		if err != nil {
			reqLog.WithError(err).Warn("analysis rejected")
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		resp := analyzeResponse{
			Analysis:   analysis,
			Warning:    warning,
			DurationMs: time.Since(start).Milliseconds(),
		}
		if lexicon {
			report := a.TrendReport(analysis, resolver.Solved(req.Text))
			resp.TrendReport = &report
		}
		reqLog.WithField("duration_ms", resp.DurationMs).
			WithField("segments", len(analysis.AnalyzedSegments)).Info("analysis finished")

		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	// batch endpoint: analyze the first N transcripts of the dataset with the
	// lexicon scorer for a quick offline demo
	mux.HandleFunc("/analyze/batch", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "batch")
		dataPath := envOr("DATASET_PATH", "call_transcripts.xlsx")
		records, err := dataset.Load(dataPath)
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		limit := 5
		if len(records) < limit {
			limit = len(records)
		}

		a := analyzer.New(cfg, scorer.NewLexiconScorer(cfg))
		var out []analyzeResponse
		for _, rec := range records[:limit] {
			recLog := reqLog.WithField("batch_call", rec.CallID)
			format, err := parser.ParseFormat(rec.Format)
			if err != nil {
				format = parser.FormatSimple
			}
			segments, err := parser.Parse(rec.Transcript, format)
			if err != nil || len(segments) == 0 {
				recLog.Warn("skipping unparseable transcript")
				continue
			}
			start := time.Now()
			analysis, err := a.AnalyzeFullCall(segments)
			if err != nil {
				recLog.WithError(err).Warn("analysis rejected")
				continue
			}
			report := a.TrendReport(analysis, resolver.Solved(rec.Transcript))
			out = append(out, analyzeResponse{
				Analysis:    analysis,
				TrendReport: &report,
				DurationMs:  time.Since(start).Milliseconds(),
			})
		}
		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.Encode(out)
	})

	addr := fmt.Sprintf(":%s", envOr("PORT", "8080"))
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
