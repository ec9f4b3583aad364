// Package ocr turns a drawing file into plain text. PDFs get a direct
// text-layer pass first (pdfcpu); scanned documents fall back to rasterizing
// with pdftoppm and running tesseract, the layered strategy the rest of the
// system treats as opaque.
package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/extract"
)

// minTextLayerChars is the significance threshold below which a text-layer
// result is treated as absent and OCR kicks in.
const minTextLayerChars = 32

type Config struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Language string // tesseract language pack(s), default "nld+eng"
	DPI      int    // rasterization DPI for scanned PDFs, default 350
	MaxPages int    // 0 = no limit
	PSM      int    // tesseract page segmentation mode; 0 = tool default
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "nld+eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 350
	}
	return &Extractor{cfg: cfg, runner: execRunner{}, logger: logger}
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("ocr.start", "path", path, "ext", ext)

	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err := e.extractPDF(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	case constants.IMAGE:
		res, err := e.extractImage(ctx, path)
		res.Duration = time.Since(start)
		return res, err
	default:
		e.logger.Error("ocr.unsupported_extension", "extension", ext)
		return extract.TextExtractionResult{}, fmt.Errorf("unsupported extension: %q", ext)
	}
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	text, pages, hasImages, err := e.textLayer(path)
	if err == nil && len(Normalize(text)) >= minTextLayerChars {
		norm := Normalize(text)
		e.logger.Info("ocr.text_layer_ok", "path", path, "pages", pages, "chars", len(norm))
		return extract.TextExtractionResult{
			Text:       norm,
			Pages:      pages,
			Method:     "pdf-text",
			Language:   e.cfg.Language,
			Confidence: heuristicConfidence(norm),
		}, nil
	}

	var warns []string
	if err != nil {
		warns = append(warns, err.Error())
		e.logger.Warn("ocr.text_layer_failed", "path", path, "error", err)
	} else {
		e.logger.Warn("ocr.text_layer_insignificant", "path", path, "has_images", hasImages)
	}

	text, pages, w, err := e.rasterOCR(ctx, path)
	warns = append(warns, w...)
	if err != nil {
		return extract.TextExtractionResult{Warnings: warns}, err
	}
	norm := Normalize(text)
	return extract.TextExtractionResult{
		Text:       norm,
		Pages:      pages,
		Method:     "pdf-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
		Confidence: heuristicConfidence(norm),
	}, nil
}

func (e *Extractor) extractImage(ctx context.Context, path string) (extract.TextExtractionResult, error) {
	txt, warns, err := e.tesseract(ctx, path)
	if err != nil {
		return extract.TextExtractionResult{Warnings: warns}, err
	}
	norm := Normalize(txt)
	return extract.TextExtractionResult{
		Text:       norm,
		Pages:      1,
		Method:     "image-ocr",
		Language:   e.cfg.Language,
		Warnings:   warns,
		Confidence: heuristicConfidence(norm),
	}, nil
}
