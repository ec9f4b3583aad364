package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

func sampleRecord() schema.Record {
	grade := "316L"
	drawing := "EM-1042"
	rev := "B"
	finish := "grind flush"
	rec := schema.Empty()
	rec.MaterialGrade = &grade
	rec.DrawingNumber = &drawing
	rec.Revision = &rev
	rec.WeldFinish = &finish
	rec.BreakSharpEdges = true
	rec.WeldingNotes = []string{"stitch weld 50/200", "grind smooth"}
	rec.Notes = []string{"see detail A"}
	rec.SurfaceRoughness = &schema.SurfaceRoughness{Parameter: "Ra", Value: "3.2", Unit: "µm"}
	rec.GeometricalTolerancing = &schema.Tolerancing{Standard: "ISO 2768", Scope: "mK"}
	rec.TolerancesGeneralLinear = &schema.ToleranceTable{
		Unit:  "mm",
		Bands: map[string]string{"0-20": "±0.1", ">2000": "±2"},
	}
	return rec
}

func TestColumnsLayout(t *testing.T) {
	if len(Columns) != 31 {
		t.Fatalf("column count = %d, want 31", len(Columns))
	}
	if Columns[0] != "PDF_Filename" {
		t.Fatalf("first column = %q", Columns[0])
	}
	if Columns[len(Columns)-1] != "Notes" {
		t.Fatalf("last column = %q", Columns[len(Columns)-1])
	}
}

func TestFlattenRecord(t *testing.T) {
	row := FlattenRecord("drawing.pdf", sampleRecord())
	if len(row) != len(Columns) {
		t.Fatalf("row width %d != header width %d", len(row), len(Columns))
	}

	byCol := map[string]string{}
	for i, c := range Columns {
		byCol[c] = row[i]
	}
	checks := map[string]string{
		"PDF_Filename":                     "drawing.pdf",
		"Drawing_Number":                   "EM-1042",
		"Revision":                         "B",
		"Material_Grade":                   "316L",
		"Surface_Roughness_Parameter":      "Ra",
		"Surface_Roughness_Unit":           "µm",
		"Geometrical_Tolerancing_Standard": "ISO 2768",
		"Geometrical_Tolerancing_Scope":    "mK",
		"Break_Sharp_Edges":                "true",
		"Retaining_Ring_Grooves_Sharp":     "false",
		"Welding_Notes":                    "stitch weld 50/200 | grind smooth",
		"Weld_Finish":                      "grind flush",
		"Tol_General_0-20":                 "±0.1",
		"Tol_General_>2000":                "±2",
		"Tol_General_20-200":               "",
		"Tol_Machining_0-20":               "",
		"Notes":                            "see detail A",
	}
	for col, want := range checks {
		if byCol[col] != want {
			t.Errorf("%s = %q, want %q", col, byCol[col], want)
		}
	}
}

func TestFlattenEmptyRecord(t *testing.T) {
	row := FlattenRecord("x.pdf", schema.Empty())
	if len(row) != len(Columns) {
		t.Fatalf("row width %d != header width %d", len(row), len(Columns))
	}
	for i, v := range row[2:] {
		col := Columns[i+2]
		if col == "Break_Sharp_Edges" || col == "Retaining_Ring_Grooves_Sharp" {
			if v != "false" {
				t.Errorf("%s = %q, want false", col, v)
			}
			continue
		}
		if v != "" {
			t.Errorf("%s = %q, want empty", col, v)
		}
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "drawings.csv")
	rows := []Row{
		{Filename: "a.pdf", Record: sampleRecord()},
		{Filename: "b.pdf", Record: schema.Empty()},
	}
	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("rows = %d, want header + 2", len(all))
	}
	if all[0][0] != "PDF_Filename" {
		t.Fatalf("header = %v", all[0][0])
	}
	if all[1][0] != "a.pdf" || all[2][0] != "b.pdf" {
		t.Fatalf("data rows = %q, %q", all[1][0], all[2][0])
	}
}

func TestBuildXLSXProducesWorkbook(t *testing.T) {
	b, err := BuildXLSX([]Row{{Filename: "a.pdf", Record: sampleRecord()}})
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}
	if len(b) == 0 {
		t.Fatal("empty workbook bytes")
	}
	// XLSX is a ZIP container
	if b[0] != 'P' || b[1] != 'K' {
		t.Fatalf("not a zip archive: % x", b[:4])
	}
}

func TestBuildXMLShape(t *testing.T) {
	out, err := BuildXML("drawing.pdf", sampleRecord())
	if err != nil {
		t.Fatalf("BuildXML: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		"<OrderData>",
		"<SourceFile>drawing.pdf</SourceFile>",
		"<DrawingNumber>EM-1042</DrawingNumber>",
		"<MaterialGrade>316L</MaterialGrade>",
		`<Band range="0-20">±0.1</Band>`,
		"<Note>see detail A</Note>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q in:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "<PostTreatment>") {
		t.Error("unset scalar must be omitted")
	}
	if strings.Contains(doc, "<TolerancesMachining>") {
		t.Error("nil table must be omitted")
	}
}

func TestBuildXMLEmptyRecordOmitsOptionalElements(t *testing.T) {
	out, err := BuildXML("x.pdf", schema.Empty())
	if err != nil {
		t.Fatalf("BuildXML: %v", err)
	}
	doc := string(out)
	if strings.Contains(doc, "<Notes>") || strings.Contains(doc, "<SurfaceRoughness>") {
		t.Fatalf("empty record must omit containers:\n%s", doc)
	}
	if !strings.Contains(doc, "<BreakSharpEdges>false</BreakSharpEdges>") {
		t.Fatalf("booleans are always present:\n%s", doc)
	}
}
