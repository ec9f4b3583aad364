package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/elten-metaal/drawings-extractor/constants"
	"github.com/elten-metaal/drawings-extractor/internal/common"
	"github.com/elten-metaal/drawings-extractor/internal/export"
	"github.com/elten-metaal/drawings-extractor/internal/extract"
	"github.com/elten-metaal/drawings-extractor/internal/llm/gemini"
	"github.com/elten-metaal/drawings-extractor/internal/ocr"
	"github.com/elten-metaal/drawings-extractor/internal/pipeline"
	"github.com/elten-metaal/drawings-extractor/internal/profiles"
	repo "github.com/elten-metaal/drawings-extractor/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		dir     = flag.String("dir", "", "directory to process drawings from (required)")
		out     = flag.String("out", "", "output directory (optional, defaults to OUTPUT_DIR)")
		name    = flag.String("name", "drawings", "base name for the CSV/XLSX outputs")
		withXML = flag.Bool("xml", false, "also write one OrderData XML per drawing")
		inmem   = flag.Bool("inmem", false, "use an in-memory SQLite database")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = cfg.Output.Dir
	}

	dbPath := cfg.Store.Path
	if *inmem {
		dbPath = ":memory:"
	}
	db, err := repo.Open(dbPath)
	if err != nil {
		logger.Error("failed to open database", "path", dbPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := repo.Init(db); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	extractionsRepo := repo.NewExtractionRepository(db, logger)

	textExtractor := ocr.NewExtractor(ocr.Config{
		Pdftoppm:  cfg.OCR.Pdftoppm,
		Tesseract: cfg.OCR.Tesseract,
		Language:  cfg.OCR.Language,
		DPI:       cfg.OCR.DPI,
		MaxPages:  cfg.OCR.MaxPages,
	}, logger)

	client := gemini.NewClient(gemini.Config{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)
	profileLoader := profiles.NewLoader(cfg.Profiles.Dir, cfg.Profiles.Client, logger)
	fieldExtractor := extract.NewExtractor(extract.Config{
		MaxChars:    cfg.LLM.MaxChars,
		BackoffBase: cfg.LLM.BackoffBase,
	}, client, profileLoader, logger)

	processor := pipeline.NewProcessor(logger, textExtractor, fieldExtractor, extractionsRepo)

	files, err := listDrawingFiles(*dir)
	if err != nil {
		logger.Error("failed to scan directory", "dir", *dir, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("no drawing files found", "dir", *dir)
		os.Exit(0)
	}
	logger.Info("starting batch", "dir", *dir, "files", len(files))

	var rows []export.Row
	processed := 0
	failures := 0
	for _, path := range files {
		res, err := processor.ProcessFile(ctx, path)
		if err != nil {
			logger.Error("failed to process file", "path", path, "error", err)
			failures++
			continue
		}
		processed++
		rows = append(rows, export.Row{Filename: filepath.Base(path), Record: res.Record})
	}

	exportService := export.NewService(*out, logger)
	if err := exportService.WriteBatch(*name, rows); err != nil {
		logger.Error("failed to write batch exports", "error", err)
		os.Exit(1)
	}
	if *withXML {
		if err := exportService.WriteXML(rows); err != nil {
			logger.Error("failed to write XML exports", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("batch processing complete",
		"files_found", len(files),
		"files_processed", processed,
		"failures", failures,
		"output_dir", *out,
	)
}

func listDrawingFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if _, ok := constants.AllowedExtensions[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool {
		return strings.ToLower(files[i]) < strings.ToLower(files[j])
	})
	return files, nil
}
