package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/extract"
	"github.com/elten-metaal/drawings-extractor/internal/ocr"
	"github.com/elten-metaal/drawings-extractor/internal/repository"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// Result is the outcome of processing one file.
type Result struct {
	Record     schema.Record
	Status     constants.RunStatus
	OCR        extract.TextExtractionResult
	Extraction *repository.Extraction
}

// Processor coordinates OCR (text extract) then LLM extraction, and persists
// the outcome when a repository is attached.
type Processor struct {
	Logger    *slog.Logger
	OCR       extract.TextExtractor
	Extractor *extract.Extractor
	Repo      repository.ExtractionRepository
}

func NewProcessor(logger *slog.Logger, textExtractor extract.TextExtractor, fieldExtractor *extract.Extractor, repo repository.ExtractionRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, OCR: textExtractor, Extractor: fieldExtractor, Repo: repo}
}

// ProcessFile runs the two stages over one drawing file. OCR failures are
// terminal; an empty OCR result short-circuits with an empty record instead
// of spending an LLM call on it.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	ocrRes, err := p.OCR.Extract(ctx, path)
	if err != nil {
		p.Logger.Error("processor.ocr.failed", "path", path, "err", err)
		p.persist(ctx, path, schema.Empty(), constants.RunStatusFailed, err.Error(), ocrRes)
		return Result{Record: schema.Empty(), Status: constants.RunStatusFailed, OCR: ocrRes}, err
	}
	p.Logger.Info("processor.ocr.ok",
		"path", path,
		"method", ocrRes.Method,
		"pages", ocrRes.Pages,
		"chars", len(ocrRes.Text),
		"confidence", ocrRes.Confidence,
	)

	text := ocr.Normalize(ocrRes.Text)
	if text == "" {
		p.Logger.Warn("processor.ocr.empty", "path", path, "method", ocrRes.Method)
		rec := schema.Empty()
		ext := p.persist(ctx, path, rec, constants.RunStatusOCREmpty, "", ocrRes)
		return Result{Record: rec, Status: constants.RunStatusOCREmpty, OCR: ocrRes, Extraction: ext}, nil
	}

	rec := p.Extractor.ExtractFields(ctx, text)
	status := constants.RunStatusExtracted
	if rec.IsEmpty() {
		status = constants.RunStatusExtractEmpty
	}
	p.Logger.Info("processor.extract.ok",
		"path", path,
		"status", string(status),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	ext := p.persist(ctx, path, rec, status, "", ocrRes)
	return Result{Record: rec, Status: status, OCR: ocrRes, Extraction: ext}, nil
}

func (p *Processor) persist(ctx context.Context, path string, rec schema.Record, status constants.RunStatus, errMsg string, ocrRes extract.TextExtractionResult) *repository.Extraction {
	if p.Repo == nil {
		return nil
	}
	e := &repository.Extraction{
		SourcePath:    path,
		Record:        rec,
		Status:        string(status),
		ErrorMessage:  errMsg,
		OCRMethod:     ocrRes.Method,
		OCRConfidence: float64(ocrRes.Confidence),
	}
	if rec.DrawingNumber != nil {
		e.DrawingNumber = *rec.DrawingNumber
	}
	if rec.Revision != nil {
		e.Revision = *rec.Revision
	}
	if err := p.Repo.Save(ctx, e); err != nil {
		p.Logger.Error("processor.persist.failed", "path", path, "err", err)
		return nil
	}
	return e
}
