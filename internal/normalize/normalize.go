// Package normalize turns a coerced but untrusted model output object into a
// fully populated, internally consistent drawing record. Pure functions, no
// I/O: identical inputs always produce identical output, and normalizing an
// already-normalized record is a no-op.
package normalize

import (
	"regexp"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

var (
	// Narrative content in a welding designation means the model confused a
	// designation with an instruction; such strings belong in the notes.
	reWeldingNarrative = regexp.MustCompile(`(?i)\b(weld|grind|smooth|finish|corner|length|stitch|continuous)\b`)

	reDrawingNumber = regexp.MustCompile(`(?i)(?:Drawing\s*number|Tekening(?:\s*nummer)?)\s*[:\-]?\s*([A-Za-z0-9_\-/.]+)`)
	reRevision      = regexp.MustCompile(`(?i)(?:Rev(?:ision)?|Revisie)\s*[:\-]?\s*([A-Za-z0-9_\-.]+)`)
)

// Normalize produces the canonical record from a coerced model output object
// and the (truncated) source text the model saw. Unknown keys are dropped,
// missing keys default per shape, and every disambiguation rule degrades to a
// no-op when its preconditions are unmet.
func Normalize(data map[string]any, rawText string) schema.Record {
	rec := schema.Empty()
	if data == nil {
		data = map[string]any{}
	}

	// Projection and scalar/list cleanup.
	rec.MaterialGrade = cleanScalar(data[constants.FieldMaterialGrade])
	rec.WeldingDesignation = cleanScalar(data[constants.FieldWeldingDesignation])
	rec.WeldFinish = cleanScalar(data[constants.FieldWeldFinish])
	rec.PostTreatment = cleanScalar(data[constants.FieldPostTreatment])
	rec.DrawingNumber = cleanScalar(data[constants.FieldDrawingNumber])
	rec.Revision = cleanScalar(data[constants.FieldRevision])
	rec.WeldingNotes = toStringList(data[constants.FieldWeldingNotes])
	rec.Notes = dedupeNotes(toStringList(data[constants.FieldNotes]))

	// Material grade: strip stock-form qualifiers, then fall back to scanning
	// the source text itself.
	if rec.MaterialGrade != nil {
		if cleaned := cleanMaterialGrade(*rec.MaterialGrade); cleaned != "" {
			rec.MaterialGrade = &cleaned
		} else {
			rec.MaterialGrade = nil
		}
	}
	if rec.MaterialGrade == nil {
		if grade := inferMaterialGrade(rawText); grade != "" {
			rec.MaterialGrade = &grade
		}
	}

	// A post-treatment that reads like a material spec is a misclassification:
	// promote the grade when the slot is free, and always clear the field.
	if rec.PostTreatment != nil {
		if grade, ok := matchMaterialGrade(*rec.PostTreatment); ok {
			if rec.MaterialGrade == nil {
				rec.MaterialGrade = &grade
			}
			rec.PostTreatment = nil
		}
	}

	// Welding notes and designation.
	rec.WeldingNotes = dedupeNotes(rec.WeldingNotes)
	if rec.WeldingDesignation != nil && reWeldingNarrative.MatchString(*rec.WeldingDesignation) {
		rec.WeldingNotes = dedupeNotes(append(rec.WeldingNotes, *rec.WeldingDesignation))
		rec.WeldingDesignation = nil
	}

	// Booleans: explicit model values win; otherwise keyword evidence from
	// the source text; otherwise false.
	if v := toBool(data[constants.FieldBreakSharpEdges]); v != nil {
		rec.BreakSharpEdges = *v
	} else {
		rec.BreakSharpEdges = inferFlag(rawText, BreakSharpEdgesKeywords)
	}
	if v := toBool(data[constants.FieldRetainingRingGroovesSharp]); v != nil {
		rec.RetainingRingGroovesSharp = *v
	} else {
		rec.RetainingRingGroovesSharp = inferFlag(rawText, RetainingRingGroovesSharpKeywords)
	}

	// Structured sub-records.
	rec.SurfaceRoughness = normalizeRoughness(data[constants.FieldSurfaceRoughness])
	rec.GeometricalTolerancing = normalizeTolerancing(data[constants.FieldGeometricalTolerancing])
	rec.DimensionalTolerancing = normalizeTolerancing(data[constants.FieldDimensionalTolerancing])

	// Tolerance tables, then the legacy layouts.
	rec.TolerancesGeneralLinear = normalizeTable(data[constants.FieldTolerancesGeneralLinear])
	rec.TolerancesMachining = normalizeTable(data[constants.FieldTolerancesMachining])
	rec.TolerancesWeldedSheet = normalizeTable(data[constants.FieldTolerancesWeldedSheet])
	applyLegacy(data, &rec)

	// Drawing number / revision: labelled-pattern fallback from source text.
	if rec.DrawingNumber == nil {
		if m := reDrawingNumber.FindStringSubmatch(rawText); m != nil {
			v := m[1]
			rec.DrawingNumber = &v
		}
	}
	if rec.Revision == nil {
		if m := reRevision.FindStringSubmatch(rawText); m != nil {
			v := m[1]
			rec.Revision = &v
		}
	}

	return rec
}

// Renormalize re-runs the engine on an already canonical record. Exposed for
// idempotence checks; marshaling through the generic shape mirrors what a
// second pass over persisted output would see.
func Renormalize(rec schema.Record, rawText string) schema.Record {
	return Normalize(recordToMap(rec), rawText)
}

func recordToMap(rec schema.Record) map[string]any {
	m := map[string]any{}
	putScalar := func(key string, v *string) {
		if v != nil {
			m[key] = *v
		}
	}
	putScalar(constants.FieldMaterialGrade, rec.MaterialGrade)
	putScalar(constants.FieldWeldingDesignation, rec.WeldingDesignation)
	putScalar(constants.FieldWeldFinish, rec.WeldFinish)
	putScalar(constants.FieldPostTreatment, rec.PostTreatment)
	putScalar(constants.FieldDrawingNumber, rec.DrawingNumber)
	putScalar(constants.FieldRevision, rec.Revision)
	m[constants.FieldBreakSharpEdges] = rec.BreakSharpEdges
	m[constants.FieldRetainingRingGroovesSharp] = rec.RetainingRingGroovesSharp
	m[constants.FieldWeldingNotes] = toAnyList(rec.WeldingNotes)
	m[constants.FieldNotes] = toAnyList(rec.Notes)
	if rec.SurfaceRoughness != nil {
		m[constants.FieldSurfaceRoughness] = map[string]any{
			"standard":  rec.SurfaceRoughness.Standard,
			"parameter": rec.SurfaceRoughness.Parameter,
			"value":     rec.SurfaceRoughness.Value,
			"unit":      rec.SurfaceRoughness.Unit,
		}
	}
	if rec.GeometricalTolerancing != nil {
		m[constants.FieldGeometricalTolerancing] = map[string]any{
			"standard": rec.GeometricalTolerancing.Standard,
			"scope":    rec.GeometricalTolerancing.Scope,
		}
	}
	if rec.DimensionalTolerancing != nil {
		m[constants.FieldDimensionalTolerancing] = map[string]any{
			"standard": rec.DimensionalTolerancing.Standard,
			"scope":    rec.DimensionalTolerancing.Scope,
		}
	}
	putTable := func(key string, t *schema.ToleranceTable) {
		if t == nil {
			return
		}
		bands := map[string]any{}
		for k, v := range t.Bands {
			bands[k] = v
		}
		m[key] = map[string]any{"unit": t.Unit, "bands": bands}
	}
	putTable(constants.FieldTolerancesGeneralLinear, rec.TolerancesGeneralLinear)
	putTable(constants.FieldTolerancesMachining, rec.TolerancesMachining)
	putTable(constants.FieldTolerancesWeldedSheet, rec.TolerancesWeldedSheet)
	return m
}

func toAnyList(list []string) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = s
	}
	return out
}
