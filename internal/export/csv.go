package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCSV writes one row per extracted drawing to path, UTF-8 with a header
// row. The parent directory is created if missing.
func WriteCSV(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Columns); err != nil {
		f.Close()
		return fmt.Errorf("csv header: %w", err)
	}
	for _, r := range rows {
		if err := w.Write(FlattenRecord(r.Filename, r.Record)); err != nil {
			f.Close()
			return fmt.Errorf("csv row %s: %w", r.Filename, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("csv flush: %w", err)
	}
	return f.Close()
}
