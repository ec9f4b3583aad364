package common

import (
	"errors"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"GOOGLE_API_KEY", "GEMINI_MODEL", "LLM_MAX_CHARS", "LLM_BACKOFF_BASE", "OCR_LANG", "OCR_DPI", "DB_PATH"} {
		t.Setenv(k, "")
	}
	cfg := LoadConfig()

	if cfg.LLM.Model != "gemini-1.5-flash-8b" {
		t.Errorf("model = %q", cfg.LLM.Model)
	}
	if cfg.LLM.MaxChars != 20000 {
		t.Errorf("max chars = %d", cfg.LLM.MaxChars)
	}
	if cfg.LLM.BackoffBase != 1500*time.Millisecond {
		t.Errorf("backoff base = %v", cfg.LLM.BackoffBase)
	}
	if cfg.OCR.Language != "nld+eng" {
		t.Errorf("ocr language = %q", cfg.OCR.Language)
	}
	if cfg.OCR.DPI != 350 {
		t.Errorf("ocr dpi = %d", cfg.OCR.DPI)
	}
	if cfg.Store.Path != "drawings.db" {
		t.Errorf("store path = %q", cfg.Store.Path)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "k-123")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("LLM_MAX_CHARS", "5000")
	t.Setenv("LLM_BACKOFF_BASE", "200ms")
	t.Setenv("OCR_DPI", "600")
	t.Setenv("CLIENT", "acme")

	cfg := LoadConfig()
	if cfg.LLM.APIKey != "k-123" || cfg.LLM.Model != "gemini-1.5-pro" {
		t.Fatalf("llm config = %+v", cfg.LLM)
	}
	if cfg.LLM.MaxChars != 5000 || cfg.LLM.BackoffBase != 200*time.Millisecond {
		t.Fatalf("llm limits = %+v", cfg.LLM)
	}
	if cfg.OCR.DPI != 600 {
		t.Fatalf("ocr dpi = %d", cfg.OCR.DPI)
	}
	if cfg.Profiles.Client != "acme" {
		t.Fatalf("client = %q", cfg.Profiles.Client)
	}
}

func TestLoadConfigBadNumberFallsBack(t *testing.T) {
	t.Setenv("LLM_MAX_CHARS", "not-a-number")
	cfg := LoadConfig()
	if cfg.LLM.MaxChars != 20000 {
		t.Fatalf("max chars = %d, want default on parse failure", cfg.LLM.MaxChars)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	cfg := LoadConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("missing API key must fail validation")
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("error type = %T, want *AppError", err)
	}

	t.Setenv("GOOGLE_API_KEY", "k")
	if err := LoadConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
