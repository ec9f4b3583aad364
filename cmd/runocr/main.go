package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/elten-metaal/drawings-extractor/internal/common"
	"github.com/elten-metaal/drawings-extractor/internal/ocr"
)

// OCR debug tool: runs stage 1 only and reports what the extractor saw.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runocr <file.pdf|file.png>")
		os.Exit(2)
	}
	path := os.Args[1]

	cfg := common.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Language:  cfg.OCR.Language,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, path)
	dur := time.Since(start)

	if err != nil {
		logger.Error("text extraction failed",
			"path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	text := ocr.Normalize(res.Text)
	preview := text
	if len(preview) > 400 {
		preview = preview[:400]
	}
	logger.Info("text extraction OK",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"chars", len(text),
		"confidence", res.Confidence,
		"warnings", res.Warnings,
		"duration_ms", dur.Milliseconds(),
		"preview", preview,
	)
}
