package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/elten-metaal/drawings-extractor/internal/common"
)

// Open opens (creating if needed) the SQLite database at dbPath and applies
// the standard pragmas. Failures unwrap to common.ErrDatabase.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, common.NewAppError("DB_OPEN", fmt.Sprintf("failed to open %s: %v", dbPath, err), common.ErrDatabase)
	}

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=10000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, common.NewAppError("DB_OPEN", fmt.Sprintf("failed to set pragma: %v", err), common.ErrDatabase)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, common.NewAppError("DB_OPEN", fmt.Sprintf("failed to ping %s: %v", dbPath, err), common.ErrDatabase)
	}
	return db, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS extractions (
	id             TEXT PRIMARY KEY,
	source_path    TEXT NOT NULL,
	drawing_number TEXT,
	revision       TEXT,
	record_json    TEXT NOT NULL,
	status         TEXT NOT NULL,
	error_message  TEXT,
	ocr_method     TEXT,
	ocr_confidence REAL,
	created_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_drawing_number ON extractions(drawing_number);
CREATE INDEX IF NOT EXISTS idx_extractions_source_path ON extractions(source_path);
`

// Init creates the schema if it does not exist yet.
func Init(db *sql.DB) error {
	if _, err := db.Exec(schemaDDL); err != nil {
		return common.NewAppError("DB_INIT", fmt.Sprintf("failed to create schema: %v", err), common.ErrDatabase)
	}
	return nil
}
