package schema

import "github.com/elten-metaal/drawings-extractor/constants"

// SurfaceRoughness describes the drawing's surface-finish requirement.
type SurfaceRoughness struct {
	Standard  string `json:"standard,omitempty"`
	Parameter string `json:"parameter,omitempty"` // e.g. "Ra"
	Value     string `json:"value,omitempty"`
	Unit      string `json:"unit,omitempty"` // canonical "µm"
}

// Tolerancing describes a geometrical or dimensional tolerancing reference
// (e.g. standard "ISO 2768", scope "mK").
type Tolerancing struct {
	Standard string `json:"standard,omitempty"`
	Scope    string `json:"scope,omitempty"`
}

// ToleranceTable maps dimension-range bands to tolerance strings. Unit is
// lower-cased and defaults to "mm"; absent bands are simply omitted.
type ToleranceTable struct {
	Unit  string            `json:"unit"`
	Bands map[string]string `json:"bands"`
}

// Record is the canonical, schema-complete result of one extraction cycle.
// Every field is present after normalization; unset scalars are null, lists
// are empty, booleans default to false.
type Record struct {
	MaterialGrade             *string           `json:"Material_Grade"`
	SurfaceRoughness          *SurfaceRoughness `json:"Surface_Roughness"`
	GeometricalTolerancing    *Tolerancing      `json:"Geometrical_Tolerancing"`
	DimensionalTolerancing    *Tolerancing      `json:"Dimensional_Tolerancing"`
	BreakSharpEdges           bool              `json:"Break_Sharp_Edges"`
	RetainingRingGroovesSharp bool              `json:"Retaining_Ring_Grooves_Sharp"`
	WeldingNotes              []string          `json:"Welding_Notes"`
	TolerancesGeneralLinear   *ToleranceTable   `json:"Tolerances_General_Linear"`
	TolerancesMachining       *ToleranceTable   `json:"Tolerances_Machining"`
	TolerancesWeldedSheet     *ToleranceTable   `json:"Tolerances_Welded_Sheetmetal"`
	WeldingDesignation        *string           `json:"Welding_Designation"`
	WeldFinish                *string           `json:"Weld_Finish"`
	PostTreatment             *string           `json:"Post_Treatment"`
	Notes                     []string          `json:"Notes"`
	DrawingNumber             *string           `json:"Drawing_Number"`
	Revision                  *string           `json:"Revision"`
}

// Empty returns the schema-default record: all scalars null, lists empty,
// booleans false. This is the caller-visible result on total failure.
func Empty() Record {
	return Record{
		WeldingNotes: []string{},
		Notes:        []string{},
	}
}

// IsEmpty reports whether the record carries no extracted data at all. Used by
// batch callers to flag drawings where the model produced nothing usable.
func (r Record) IsEmpty() bool {
	return r.MaterialGrade == nil &&
		r.SurfaceRoughness == nil &&
		r.GeometricalTolerancing == nil &&
		r.DimensionalTolerancing == nil &&
		!r.BreakSharpEdges &&
		!r.RetainingRingGroovesSharp &&
		len(r.WeldingNotes) == 0 &&
		r.TolerancesGeneralLinear == nil &&
		r.TolerancesMachining == nil &&
		r.TolerancesWeldedSheet == nil &&
		r.WeldingDesignation == nil &&
		r.WeldFinish == nil &&
		r.PostTreatment == nil &&
		len(r.Notes) == 0 &&
		r.DrawingNumber == nil &&
		r.Revision == nil
}

// FieldNames returns the canonical field list in order.
func FieldNames() []string {
	out := make([]string, len(constants.TargetKeys))
	copy(out, constants.TargetKeys)
	return out
}
