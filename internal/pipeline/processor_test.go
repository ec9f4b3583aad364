package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/extract"
	"github.com/elten-metaal/drawings-extractor/internal/llm"
	"github.com/elten-metaal/drawings-extractor/internal/repository"
)

type fakeTextExtractor struct {
	text string
	err  error
}

func (f *fakeTextExtractor) Extract(context.Context, string) (extract.TextExtractionResult, error) {
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{
		Text:       f.text,
		Pages:      1,
		Method:     "pdf-text",
		Confidence: 0.7,
	}, nil
}

type fakeGenerator struct {
	text  string
	calls int
}

func (f *fakeGenerator) Generate(context.Context, string) (llm.GenerateResult, error) {
	f.calls++
	return llm.GenerateResult{Text: f.text}, nil
}

type memRepo struct {
	saved []*repository.Extraction
}

func (m *memRepo) Save(_ context.Context, e *repository.Extraction) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	m.saved = append(m.saved, e)
	return nil
}

func (m *memRepo) GetByID(context.Context, uuid.UUID) (*repository.Extraction, error) {
	return nil, errors.New("not implemented")
}

func (m *memRepo) ListAll(context.Context) ([]*repository.Extraction, error) {
	return m.saved, nil
}

func newFieldExtractor(gen llm.TextGenerator) *extract.Extractor {
	e := extract.NewExtractor(extract.Config{BackoffBase: time.Millisecond}, gen, nil, slog.Default())
	return e
}

func TestProcessFileHappyPath(t *testing.T) {
	gen := &fakeGenerator{text: `{"Material_Grade": "304", "Drawing_Number": "EM-7", "Revision": "C"}`}
	repo := &memRepo{}
	p := NewProcessor(nil,
		&fakeTextExtractor{text: "Materiaal 304, tekening EM-7"},
		newFieldExtractor(gen),
		repo,
	)

	res, err := p.ProcessFile(context.Background(), "/d/em-7.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != constants.RunStatusExtracted {
		t.Fatalf("status = %q, want EXTRACTED", res.Status)
	}
	if res.Record.MaterialGrade == nil || *res.Record.MaterialGrade != "304" {
		t.Fatalf("Material_Grade = %v", res.Record.MaterialGrade)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d, want 1", len(repo.saved))
	}
	saved := repo.saved[0]
	if saved.Status != string(constants.RunStatusExtracted) {
		t.Fatalf("persisted status = %q", saved.Status)
	}
	if saved.DrawingNumber != "EM-7" || saved.Revision != "C" {
		t.Fatalf("persisted identifiers = %q / %q", saved.DrawingNumber, saved.Revision)
	}
	if saved.OCRMethod != "pdf-text" {
		t.Fatalf("persisted ocr method = %q", saved.OCRMethod)
	}
}

func TestProcessFileEmptyOCRShortCircuits(t *testing.T) {
	gen := &fakeGenerator{text: `{}`}
	repo := &memRepo{}
	p := NewProcessor(nil,
		&fakeTextExtractor{text: "   \n\t "},
		newFieldExtractor(gen),
		repo,
	)

	res, err := p.ProcessFile(context.Background(), "/d/blank.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != constants.RunStatusOCREmpty {
		t.Fatalf("status = %q, want OCR_EMPTY", res.Status)
	}
	if gen.calls != 0 {
		t.Fatalf("LLM must not be called for empty OCR, calls = %d", gen.calls)
	}
	if !res.Record.IsEmpty() {
		t.Fatalf("record must be empty, got %+v", res.Record)
	}
	if len(repo.saved) != 1 || repo.saved[0].Status != string(constants.RunStatusOCREmpty) {
		t.Fatalf("persisted = %+v", repo.saved)
	}
}

func TestProcessFileOCRFailureIsTerminal(t *testing.T) {
	gen := &fakeGenerator{text: `{}`}
	repo := &memRepo{}
	p := NewProcessor(nil,
		&fakeTextExtractor{err: errors.New("pdftoppm: not found")},
		newFieldExtractor(gen),
		repo,
	)

	res, err := p.ProcessFile(context.Background(), "/d/broken.pdf")
	if err == nil {
		t.Fatal("OCR failure must surface")
	}
	if res.Status != constants.RunStatusFailed {
		t.Fatalf("status = %q, want FAILED", res.Status)
	}
	if gen.calls != 0 {
		t.Fatal("LLM must not be called after OCR failure")
	}
	if len(repo.saved) != 1 || repo.saved[0].ErrorMessage == "" {
		t.Fatalf("failure must be persisted with an error message, got %+v", repo.saved)
	}
}

func TestProcessFileEmptyExtraction(t *testing.T) {
	gen := &fakeGenerator{text: `{}`}
	p := NewProcessor(nil,
		&fakeTextExtractor{text: "some drawing text without any recognizable metadata"},
		newFieldExtractor(gen),
		nil,
	)

	res, err := p.ProcessFile(context.Background(), "/d/vague.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Status != constants.RunStatusExtractEmpty {
		t.Fatalf("status = %q, want EXTRACT_EMPTY", res.Status)
	}
	if res.Extraction != nil {
		t.Fatal("no repository attached, Extraction must be nil")
	}
}
