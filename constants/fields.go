package constants

// Canonical field names for a drawing metadata record. These exact strings are
// the keys the LLM is asked to return and the keys downstream sinks consume.
const (
	FieldMaterialGrade             = "Material_Grade"
	FieldSurfaceRoughness          = "Surface_Roughness"
	FieldGeometricalTolerancing    = "Geometrical_Tolerancing"
	FieldDimensionalTolerancing    = "Dimensional_Tolerancing"
	FieldBreakSharpEdges           = "Break_Sharp_Edges"
	FieldRetainingRingGroovesSharp = "Retaining_Ring_Grooves_Sharp"
	FieldWeldingNotes              = "Welding_Notes"
	FieldTolerancesGeneralLinear   = "Tolerances_General_Linear"
	FieldTolerancesMachining       = "Tolerances_Machining"
	FieldTolerancesWeldedSheet     = "Tolerances_Welded_Sheetmetal"
	FieldWeldingDesignation        = "Welding_Designation"
	FieldWeldFinish                = "Weld_Finish"
	FieldPostTreatment             = "Post_Treatment"
	FieldNotes                     = "Notes"
	FieldDrawingNumber             = "Drawing_Number"
	FieldRevision                  = "Revision"
)

// TargetKeys is the ordered canonical field list. Ordering matters for
// CSV/XLSX column layout and for prompt construction.
var TargetKeys = []string{
	FieldMaterialGrade,
	FieldSurfaceRoughness,
	FieldGeometricalTolerancing,
	FieldDimensionalTolerancing,
	FieldBreakSharpEdges,
	FieldRetainingRingGroovesSharp,
	FieldWeldingNotes,
	FieldTolerancesGeneralLinear,
	FieldTolerancesMachining,
	FieldTolerancesWeldedSheet,
	FieldWeldingDesignation,
	FieldWeldFinish,
	FieldPostTreatment,
	FieldNotes,
	FieldDrawingNumber,
	FieldRevision,
}

// Legacy field names emitted by earlier prompt-template revisions.
const (
	LegacyFieldTolerancesTable   = "Tolerances_Table"
	LegacyFieldTolerancesGeneral = "Tolerances_General"
	LegacyFieldDrawingNo         = "Drawing_No"
	LegacyFieldRev               = "Rev"
)

// BandKeys are the recognized dimension-range bands of a tolerance table, in
// ascending order. Values are tolerance strings like "±0.2".
var BandKeys = []string{"0-20", "20-200", "200-2000", ">2000"}

// DefaultTableUnit is the unit assumed when a tolerance table omits one.
const DefaultTableUnit = "mm"
