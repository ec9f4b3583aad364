package export

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// Row is one exported drawing: the source filename plus its extracted record.
type Row struct {
	Filename string
	Record   schema.Record
}

// Service writes batch results to the output directory in the three supported
// formats. CSV and XLSX carry the whole batch, XML is one document per drawing.
type Service struct {
	logger *slog.Logger
	outDir string
}

func NewService(outDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, outDir: outDir}
}

// WriteBatch writes <name>.csv and <name>.xlsx for all rows.
func (s *Service) WriteBatch(name string, rows []Row) error {
	start := time.Now()

	csvPath := filepath.Join(s.outDir, name+".csv")
	if err := WriteCSV(csvPath, rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	xlsxBytes, err := BuildXLSX(rows)
	if err != nil {
		return fmt.Errorf("build xlsx: %w", err)
	}
	xlsxPath := filepath.Join(s.outDir, name+".xlsx")
	if err := os.WriteFile(xlsxPath, xlsxBytes, 0o644); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	s.logger.Info("export.batch.ok",
		"csv", csvPath,
		"xlsx", xlsxPath,
		"rows", len(rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// WriteXML writes one OrderData document per row into an xml/ subdirectory,
// named after the source file.
func (s *Service) WriteXML(rows []Row) error {
	dir := filepath.Join(s.outDir, "xml")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create xml dir: %w", err)
	}
	for _, r := range rows {
		doc, err := BuildXML(r.Filename, r.Record)
		if err != nil {
			return fmt.Errorf("build xml for %s: %w", r.Filename, err)
		}
		base := strings.TrimSuffix(r.Filename, filepath.Ext(r.Filename))
		path := filepath.Join(dir, base+".xml")
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("write xml for %s: %w", r.Filename, err)
		}
	}
	s.logger.Info("export.xml.ok", "dir", dir, "documents", len(rows))
	return nil
}
