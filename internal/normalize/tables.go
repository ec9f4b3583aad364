package normalize

import (
	"regexp"
	"strings"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

var (
	rePMVariants = regexp.MustCompile(`±|\+/-|\+-`)
	reDecComma   = regexp.MustCompile(`(\d+),(\d+)`)
)

// normPM canonicalizes a tolerance string: decimal comma to decimal point,
// every plus-or-minus spelling to the single ± glyph.
func normPM(s string) string {
	s = reDecComma.ReplaceAllString(s, "$1.$2")
	s = rePMVariants.ReplaceAllString(s, "±")
	return strings.TrimSpace(s)
}

// normDecimal converts decimal-comma numerics to decimal-point.
func normDecimal(s string) string {
	return strings.TrimSpace(reDecComma.ReplaceAllString(s, "$1.$2"))
}

// normalizeTable coerces an untrusted value into a canonical tolerance table.
// Only the recognized band keys survive; an all-empty bands table is dropped
// to nil. Non-object values yield nil.
func normalizeTable(v any) *schema.ToleranceTable {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	unit := constants.DefaultTableUnit
	if u, ok := obj["unit"].(string); ok {
		if u = strings.ToLower(strings.TrimSpace(u)); u != "" {
			unit = u
		}
	}

	bands := map[string]string{}
	if raw, ok := obj["bands"].(map[string]any); ok {
		for _, key := range constants.BandKeys {
			bv, ok := raw[key].(string)
			if !ok {
				continue
			}
			if bv = normPM(bv); bv != "" {
				bands[key] = bv
			}
		}
	}
	if len(bands) == 0 {
		return nil
	}
	return &schema.ToleranceTable{Unit: unit, Bands: bands}
}
