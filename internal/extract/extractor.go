// Package extract drives the LLM request/retry protocol and hands coerced
// output to the normalization engine. Its caller only ever sees a canonical
// record: on total failure that record is the schema default, never an error.
package extract

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/elten-metaal/drawings-extractor/internal/llm"
	"github.com/elten-metaal/drawings-extractor/internal/normalize"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// Config holds orchestrator behavior knobs.
type Config struct {
	MaxChars    int           // document character ceiling; default 20000
	MaxAttempts int           // total attempts; default 3
	BackoffBase time.Duration // linear backoff base; default 1.5s
}

// Extractor turns raw drawing text into a canonical record via the
// generative-model collaborator.
type Extractor struct {
	Logger    *slog.Logger
	Cfg       Config
	Generator llm.TextGenerator
	Profiles  llm.ProfileSource

	// sleep is swappable so tests can count backoff delays.
	sleep func(time.Duration)
}

func NewExtractor(cfg Config, gen llm.TextGenerator, profiles llm.ProfileSource, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxChars <= 0 {
		cfg.MaxChars = 20000
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.BackoffBase <= 0 {
		cfg.BackoffBase = 1500 * time.Millisecond
	}
	return &Extractor{
		Logger:    logger,
		Cfg:       cfg,
		Generator: gen,
		Profiles:  profiles,
		sleep:     time.Sleep,
	}
}

// ExtractFields requests structured metadata for the given drawing text and
// returns the normalized record. Transport errors, blocked prompts, empty
// responses, and unparseable output are each retried up to the attempt limit
// with linear backoff; after exhaustion the schema-default empty record is
// returned and the last error is logged.
func (e *Extractor) ExtractFields(ctx context.Context, documentText string) schema.Record {
	rid := uuid.New().String()
	start := time.Now()

	if isBlank(documentText) {
		e.Logger.Warn("extract.empty_input", "req_id", rid)
		return schema.Empty()
	}

	truncated := documentText
	if len(truncated) > e.Cfg.MaxChars {
		truncated = truncateUTF8(truncated, e.Cfg.MaxChars)
		e.Logger.Debug("extract.truncated",
			"req_id", rid,
			"original_len", len(documentText),
			"max_chars", e.Cfg.MaxChars,
		)
	}

	profileJSON := ""
	if e.Profiles != nil {
		p, err := e.Profiles.ProfileJSON()
		if err != nil {
			e.Logger.Warn("extract.profile_unavailable", "req_id", rid, "error", err)
		} else {
			profileJSON = p
		}
	}

	prompt := llm.BuildPrompt(profileJSON, truncated)
	e.Logger.Info("extract.start",
		"req_id", rid,
		"text_len", len(truncated),
		"prompt_len", len(prompt),
		"has_profile", profileJSON != "",
	)

	var lastErr error
	for attempt := 1; attempt <= e.Cfg.MaxAttempts; attempt++ {
		data, err := e.attempt(ctx, prompt)
		if err == nil {
			rec := normalize.Normalize(data, truncated)
			e.verifyShape(rid, rec)
			e.Logger.Info("extract.ok",
				"req_id", rid,
				"attempt", attempt,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return rec
		}

		lastErr = err
		e.Logger.Warn("extract.attempt_failed",
			"req_id", rid,
			"attempt", attempt,
			"max_attempts", e.Cfg.MaxAttempts,
			"error", err,
			"retryable_class", classify(err),
		)
		if attempt < e.Cfg.MaxAttempts {
			e.sleep(time.Duration(attempt) * e.Cfg.BackoffBase)
		}
	}

	e.Logger.Error("extract.exhausted",
		"req_id", rid,
		"attempts", e.Cfg.MaxAttempts,
		"last_error", lastErr,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return schema.Empty()
}

// attempt performs a single request/validate/coerce cycle.
func (e *Extractor) attempt(ctx context.Context, prompt string) (map[string]any, error) {
	res, err := e.Generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if res.Blocked {
		return nil, &llm.BlockedError{Reason: res.BlockReason}
	}
	return llm.CoerceJSON(res.Text)
}

// verifyShape logs (never fails) when a normalized record does not round-trip
// to the canonical JSON shape.
func (e *Extractor) verifyShape(rid string, rec schema.Record) {
	if err := schema.ValidateRecord(rec); err != nil {
		b, _ := json.Marshal(rec)
		e.Logger.Error("extract.shape_violation", "req_id", rid, "error", err, "record", string(b))
	}
}

func classify(err error) string {
	switch {
	case errors.Is(err, llm.ErrSoftBlocked):
		return "soft_blocked"
	case errors.Is(err, llm.ErrEmptyOutput):
		return "empty_output"
	case errors.Is(err, llm.ErrMalformedOutput):
		return "malformed_output"
	default:
		return "transport"
	}
}

// truncateUTF8 cuts s to at most max bytes without splitting a rune. The
// source text is full of multibyte glyphs (±, µ, diacritics), so a plain byte
// slice could ship invalid UTF-8 to the service.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
