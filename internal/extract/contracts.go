package extract

import (
	"context"
	"time"
)

// TextExtractor is stage 1: file -> text. Implementations may layer a direct
// text-layer pass over a raster OCR fallback; callers only see the text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	Method     string // "pdf-text" | "pdf-ocr" | "image-ocr"
	Language   string
	Duration   time.Duration
	Warnings   []string
	Confidence float32
}
