package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/elten-metaal/drawings-extractor/internal/common"
	"github.com/elten-metaal/drawings-extractor/internal/schema"
)

// Extraction is one persisted pipeline result.
type Extraction struct {
	ID            uuid.UUID
	SourcePath    string
	DrawingNumber string
	Revision      string
	Record        schema.Record
	Status        string
	ErrorMessage  string
	OCRMethod     string
	OCRConfidence float64
	CreatedAt     time.Time
}

type ExtractionRepository interface {
	Save(ctx context.Context, e *Extraction) error
	GetByID(ctx context.Context, id uuid.UUID) (*Extraction, error)
	ListAll(ctx context.Context) ([]*Extraction, error)
}

type extractionRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewExtractionRepository(db *sql.DB, logger *slog.Logger) ExtractionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &extractionRepository{db: db, logger: logger}
}

func (r *extractionRepository) Save(ctx context.Context, e *Extraction) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	recordJSON, err := json.Marshal(e.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO extractions
			(id, source_path, drawing_number, revision, record_json, status,
			 error_message, ocr_method, ocr_confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			drawing_number = excluded.drawing_number,
			revision       = excluded.revision,
			record_json    = excluded.record_json,
			status         = excluded.status,
			error_message  = excluded.error_message,
			ocr_method     = excluded.ocr_method,
			ocr_confidence = excluded.ocr_confidence`,
		e.ID.String(), e.SourcePath, e.DrawingNumber, e.Revision,
		string(recordJSON), e.Status, e.ErrorMessage, e.OCRMethod,
		e.OCRConfidence, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		r.logger.Error("failed to save extraction", "source_path", e.SourcePath, "error", err)
		return fmt.Errorf("save extraction: %w", err)
	}
	return nil
}

func (r *extractionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Extraction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source_path, drawing_number, revision, record_json, status,
		       error_message, ocr_method, ocr_confidence, created_at
		FROM extractions WHERE id = ?`, id.String())
	e, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", fmt.Sprintf("extraction %s", id), common.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to load extraction", "id", id.String(), "error", err)
		return nil, err
	}
	return e, nil
}

func (r *extractionRepository) ListAll(ctx context.Context) ([]*Extraction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, source_path, drawing_number, revision, record_json, status,
		       error_message, ocr_method, ocr_confidence, created_at
		FROM extractions ORDER BY created_at, source_path`)
	if err != nil {
		r.logger.Error("failed to list extractions", "error", err)
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var result []*Extraction
	for rows.Next() {
		e, err := scanExtraction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (*Extraction, error) {
	var (
		e          Extraction
		id         string
		recordJSON string
		createdAt  string
		errMsg     sql.NullString
		method     sql.NullString
		confidence sql.NullFloat64
		drawingNo  sql.NullString
		revision   sql.NullString
	)
	err := row.Scan(&id, &e.SourcePath, &drawingNo, &revision, &recordJSON,
		&e.Status, &errMsg, &method, &confidence, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scan extraction: %w", err)
	}

	e.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse extraction id %q: %w", id, err)
	}
	if err := json.Unmarshal([]byte(recordJSON), &e.Record); err != nil {
		return nil, fmt.Errorf("unmarshal record for %s: %w", id, err)
	}
	e.DrawingNumber = drawingNo.String
	e.Revision = revision.String
	e.ErrorMessage = errMsg.String
	e.OCRMethod = method.String
	e.OCRConfidence = confidence.Float64
	if ts, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		e.CreatedAt = ts
	}
	return &e, nil
}
