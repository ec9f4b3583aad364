package ocr

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestScanContentStream(t *testing.T) {
	stream := strings.Join([]string{
		"BT",
		"/F1 12 Tf",
		"(Materiaal: 304) Tj",
		"0 -14 Td",
		"[(Tol) (erantie)] TJ",
		"T*",
		"(Rev B) '",
		"ET",
	}, "\n")

	got := scanContentStream([]byte(stream))
	if !strings.Contains(got, "Materiaal: 304") {
		t.Fatalf("missing Tj text in %q", got)
	}
	if !strings.Contains(got, "Tolerantie") {
		t.Fatalf("TJ array strings must concatenate, got %q", got)
	}
	if !strings.Contains(got, "Rev B") {
		t.Fatalf("missing ' text in %q", got)
	}
}

func TestUnescapePDFString(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`plain`, "plain"},
		{`a\(b\)c`, "a(b)c"},
		{`line1\nline2`, "line1\nline2"},
		{`back\\slash`, `back\slash`},
		{`\261 0.1`, "\261 0.1"}, // octal 261
		{`\53`, "+"},             // two-digit octal
	}
	for _, c := range cases {
		if got := unescapePDFString([]byte(c.in)); got != c.want {
			t.Errorf("unescapePDFString(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	in := "Titel\r\n\r\n\r\n\r\nMateriaal:\t304   \n  regel  met   spaties  \n"
	got := Normalize(in)
	if strings.Contains(got, "\r") {
		t.Fatal("carriage returns must be gone")
	}
	if strings.Contains(got, "\n\n\n") {
		t.Fatal("blank-line runs must collapse to one blank line")
	}
	if strings.Contains(got, "  ") {
		t.Fatalf("space runs must collapse, got %q", got)
	}
	if strings.HasSuffix(got, "\n") || strings.HasSuffix(got, " ") {
		t.Fatalf("trailing whitespace must be trimmed, got %q", got)
	}
}

func TestHeuristicConfidence(t *testing.T) {
	blank := heuristicConfidence("")
	rich := heuristicConfidence("Materiaal 304, tolerantie ±0.1 volgens tekening EM-1 Rev B " + strings.Repeat("x", 200))
	if rich <= blank {
		t.Fatalf("rich text %v must outscore blank %v", rich, blank)
	}
	if rich > 1.0 {
		t.Fatalf("confidence %v above 1.0", rich)
	}
}

// fakeRunner scripts pdftoppm and tesseract without running anything.
type fakeRunner struct {
	pageTexts []string
	calls     []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	if strings.Contains(name, "pdftoppm") {
		prefix := args[len(args)-1]
		for i := range f.pageTexts {
			if err := os.WriteFile(fmt.Sprintf("%s-%d.png", prefix, i+1), []byte("png"), 0o644); err != nil {
				return nil, nil, err
			}
		}
		return nil, nil, nil
	}
	if strings.Contains(name, "tesseract") {
		img := args[0]
		for i := range f.pageTexts {
			if strings.HasSuffix(img, fmt.Sprintf("-%d.png", i+1)) {
				return []byte(f.pageTexts[i]), nil, nil
			}
		}
		return []byte(f.pageTexts[0]), nil, nil
	}
	return nil, nil, fmt.Errorf("unexpected command %q", name)
}

func TestRasterOCRJoinsPages(t *testing.T) {
	runner := &fakeRunner{pageTexts: []string{"page one text", "page two text"}}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	text, pages, _, err := e.rasterOCR(context.Background(), "drawing.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 2 {
		t.Fatalf("pages = %d, want 2", pages)
	}
	if !strings.Contains(text, "page one text") || !strings.Contains(text, "page two text") {
		t.Fatalf("text = %q", text)
	}
	if !strings.Contains(text, "\f") {
		t.Fatal("pages must be separated by a form feed")
	}
}

func TestRasterOCRRespectsMaxPages(t *testing.T) {
	runner := &fakeRunner{pageTexts: []string{"one", "two", "three"}}
	e := NewExtractor(Config{MaxPages: 2}, nil)
	e.runner = runner

	_, pages, _, err := e.rasterOCR(context.Background(), "drawing.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pages != 2 {
		t.Fatalf("pages = %d, want 2 (capped)", pages)
	}
}

func TestExtractImageUsesTesseractDirectly(t *testing.T) {
	runner := &fakeRunner{pageTexts: []string{"Materiaal 316L tolerantie ±0,2"}}
	e := NewExtractor(Config{}, nil)
	e.runner = runner

	res, err := e.Extract(context.Background(), "scan.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != "image-ocr" {
		t.Fatalf("method = %q, want image-ocr", res.Method)
	}
	if res.Pages != 1 {
		t.Fatalf("pages = %d, want 1", res.Pages)
	}
	if !strings.Contains(res.Text, "316L") {
		t.Fatalf("text = %q", res.Text)
	}
	if res.Confidence <= 0 {
		t.Fatal("confidence must be scored")
	}
	for _, call := range runner.calls {
		if strings.Contains(call, "pdftoppm") {
			t.Fatal("image input must not rasterize")
		}
	}
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	if _, err := e.Extract(context.Background(), "drawing.step"); err == nil {
		t.Fatal("unsupported extension must error")
	}
}
