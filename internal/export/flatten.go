package export

import (
	"strconv"
	"strings"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// Columns is the flat header layout for tabular exports: identifiers,
// standards, booleans and welding fields, then one column per tolerance band
// per table, notes last.
var Columns = buildColumns()

func buildColumns() []string {
	cols := []string{
		"PDF_Filename",
		"Drawing_Number",
		"Revision",
		"Surface_Roughness_Standard",
		"Surface_Roughness_Parameter",
		"Surface_Roughness_Value",
		"Surface_Roughness_Unit",
		"Geometrical_Tolerancing_Standard",
		"Geometrical_Tolerancing_Scope",
		"Dimensional_Tolerancing_Standard",
		"Dimensional_Tolerancing_Scope",
		"Break_Sharp_Edges",
		"Retaining_Ring_Grooves_Sharp",
		"Welding_Notes",
		"Welding_Designation",
		"Weld_Finish",
		"Post_Treatment",
		"Material_Grade",
	}
	for _, table := range []string{"General", "Machining", "Welded"} {
		for _, band := range constants.BandKeys {
			cols = append(cols, "Tol_"+table+"_"+band)
		}
	}
	return append(cols, "Notes")
}

// FlattenRecord renders one record as a row matching Columns.
func FlattenRecord(filename string, rec schema.Record) []string {
	row := make([]string, 0, len(Columns))
	row = append(row,
		filename,
		deref(rec.DrawingNumber),
		deref(rec.Revision),
	)

	if sr := rec.SurfaceRoughness; sr != nil {
		row = append(row, sr.Standard, sr.Parameter, sr.Value, sr.Unit)
	} else {
		row = append(row, "", "", "", "")
	}
	row = append(row, tolerancingCols(rec.GeometricalTolerancing)...)
	row = append(row, tolerancingCols(rec.DimensionalTolerancing)...)

	row = append(row,
		strconv.FormatBool(rec.BreakSharpEdges),
		strconv.FormatBool(rec.RetainingRingGroovesSharp),
		strings.Join(rec.WeldingNotes, " | "),
		deref(rec.WeldingDesignation),
		deref(rec.WeldFinish),
		deref(rec.PostTreatment),
		deref(rec.MaterialGrade),
	)

	for _, tbl := range []*schema.ToleranceTable{
		rec.TolerancesGeneralLinear,
		rec.TolerancesMachining,
		rec.TolerancesWeldedSheet,
	} {
		for _, band := range constants.BandKeys {
			row = append(row, bandValue(tbl, band))
		}
	}

	return append(row, strings.Join(rec.Notes, " | "))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func tolerancingCols(t *schema.Tolerancing) []string {
	if t == nil {
		return []string{"", ""}
	}
	return []string{t.Standard, t.Scope}
}

func bandValue(t *schema.ToleranceTable, band string) string {
	if t == nil {
		return ""
	}
	return t.Bands[band]
}
