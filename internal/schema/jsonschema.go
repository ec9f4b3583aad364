package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/elten-metaal/drawings-extractor/constants"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// canonical record as a generic map. Used to verify normalized output shape.
func BuildRecordJSONSchema() map[string]any {
	bandProps := map[string]any{}
	for _, b := range constants.BandKeys {
		bandProps[b] = map[string]any{"type": "string"}
	}
	table := map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"unit":  map[string]any{"type": "string"},
			"bands": map[string]any{"type": "object", "properties": bandProps, "additionalProperties": false},
		},
		"required":             []string{"unit", "bands"},
		"additionalProperties": false,
	}
	nullableString := map[string]any{"type": []string{"string", "null"}}
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string", "minLength": 1},
	}

	props := map[string]any{
		constants.FieldMaterialGrade: nullableString,
		constants.FieldSurfaceRoughness: map[string]any{
			"type": []string{"object", "null"},
			"properties": map[string]any{
				"standard":  map[string]any{"type": "string"},
				"parameter": map[string]any{"type": "string"},
				"value":     map[string]any{"type": "string"},
				"unit":      map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
		constants.FieldGeometricalTolerancing:    tolerancingSchema(),
		constants.FieldDimensionalTolerancing:    tolerancingSchema(),
		constants.FieldBreakSharpEdges:           map[string]any{"type": "boolean"},
		constants.FieldRetainingRingGroovesSharp: map[string]any{"type": "boolean"},
		constants.FieldWeldingNotes:              stringList,
		constants.FieldTolerancesGeneralLinear:   table,
		constants.FieldTolerancesMachining:       table,
		constants.FieldTolerancesWeldedSheet:     table,
		constants.FieldWeldingDesignation:        nullableString,
		constants.FieldWeldFinish:                nullableString,
		constants.FieldPostTreatment:             nullableString,
		constants.FieldNotes:                     stringList,
		constants.FieldDrawingNumber:             nullableString,
		constants.FieldRevision:                  nullableString,
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             FieldNames(),
	}
}

func tolerancingSchema() map[string]any {
	return map[string]any{
		"type": []string{"object", "null"},
		"properties": map[string]any{
			"standard": map[string]any{"type": "string"},
			"scope":    map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := compiled.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateRecord checks that a record round-trips to the canonical shape.
func ValidateRecord(r Record) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return ValidateJSONAgainstSchema(BuildRecordJSONSchema(), b)
}
