package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/elten-metaal/drawings-extractor/internal/common"
	"github.com/elten-metaal/drawings-extractor/internal/extract"
	"github.com/elten-metaal/drawings-extractor/internal/llm/gemini"
	"github.com/elten-metaal/drawings-extractor/internal/ocr"
	"github.com/elten-metaal/drawings-extractor/internal/profiles"
)

// Extracts one drawing file and prints the canonical record as indented JSON.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "drawings-extractor <file.pdf|file.png>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	textExtractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Language:  cfg.OCR.Language,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)

	ocrRes, err := textExtractor.Extract(ctx, path)
	if err != nil {
		logger.Error("text extraction failed", "path", path, "error", err)
		os.Exit(1)
	}
	text := ocr.Normalize(ocrRes.Text)
	if text == "" {
		logger.Error("no text could be extracted", "path", path, "method", ocrRes.Method)
		os.Exit(1)
	}
	logger.Info("text extraction OK",
		"path", path,
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"chars", len(text),
		"confidence", ocrRes.Confidence,
	)

	client := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	profileLoader := profiles.NewLoader(cfg.Profiles.Dir, cfg.Profiles.Client, logger)

	extractor := extract.NewExtractor(extract.Config{
		MaxChars:    cfg.LLM.MaxChars,
		BackoffBase: cfg.LLM.BackoffBase,
	}, client, profileLoader, logger)

	rec := extractor.ExtractFields(ctx, text)

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Error("marshal record", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
