package normalize

import (
	"strings"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// applyLegacy maps deprecated field layouts from earlier prompt-template
// revisions onto the current record. Additive only: a canonical value already
// populated by the current-schema path is never overwritten.
func applyLegacy(data map[string]any, rec *schema.Record) {
	// Flat single-table field, the old name for the general-linear table.
	if rec.TolerancesGeneralLinear == nil {
		if legacy, ok := data[constants.LegacyFieldTolerancesTable]; ok {
			rec.TolerancesGeneralLinear = normalizeTable(legacy)
		}
	}

	// Scalar remaps from the narrow six-field schema.
	if rec.DrawingNumber == nil {
		rec.DrawingNumber = cleanScalar(data[constants.LegacyFieldDrawingNo])
	}
	if rec.Revision == nil {
		rec.Revision = cleanScalar(data[constants.LegacyFieldRev])
	}

	// The old free-line general tolerance has no scalar home anymore; keep it
	// as a note so the information survives the migration.
	if line := cleanScalar(data[constants.LegacyFieldTolerancesGeneral]); line != nil {
		note := collapseWS(*line)
		if !containsFold(rec.Notes, note) {
			rec.Notes = append(rec.Notes, note)
		}
	}
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}
	return false
}
