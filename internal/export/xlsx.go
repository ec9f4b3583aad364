package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Drawings"

// BuildXLSX returns an XLSX workbook (as bytes) with the same flat layout as
// the CSV export, one sheet, header row first.
func BuildXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)
	if defIndex, _ := f.GetSheetIndex("Sheet1"); defIndex != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for ri, r := range rows {
		values := FlattenRecord(r.Filename, r.Record)
		for ci, v := range values {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	// Widen the identifier and free-text columns
	_ = f.SetColWidth(sheetName, "A", "A", 36) // filename
	_ = f.SetColWidth(sheetName, "B", "C", 18) // drawing number, revision
	_ = f.SetColWidth(sheetName, "N", "N", 48) // welding notes
	last, _ := excelize.ColumnNumberToName(len(Columns))
	_ = f.SetColWidth(sheetName, last, last, 60) // notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
