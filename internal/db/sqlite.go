package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/thesavant42/astrolog/internal/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// New creates a new database connection and initializes the schema
func New(dbPath string) (*DB, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := conn.Exec(createSettingsTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create settings schema: %w", err)
	}

	if _, err := conn.Exec(createImportHistoryTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create import history schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// Save stores the raw text and file name of the last import
func (db *DB) Save(rawText, fileName string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(upsertSetting, KeyLastFileText, rawText); err != nil {
		return fmt.Errorf("failed to save file text: %w", err)
	}
	if _, err := tx.Exec(upsertSetting, KeyLastFileName, fileName); err != nil {
		return fmt.Errorf("failed to save file name: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadLast returns the last saved import. ok is false when nothing is cached.
func (db *DB) LoadLast() (models.ImportSnapshot, bool, error) {
	var snap models.ImportSnapshot

	text, updatedAt, ok, err := db.getSetting(KeyLastFileText)
	if err != nil || !ok {
		return snap, false, err
	}
	name, _, _, err := db.getSetting(KeyLastFileName)
	if err != nil {
		return snap, false, err
	}

	snap.RawText = text
	snap.FileName = name
	snap.ImportedAt, _ = parseTimestamp(updatedAt)
	return snap, true, nil
}

// ClearLast forgets the cached import
func (db *DB) ClearLast() error {
	for _, key := range []string{KeyLastFileText, KeyLastFileName} {
		if _, err := db.conn.Exec(deleteSetting, key); err != nil {
			return fmt.Errorf("failed to clear %s: %w", key, err)
		}
	}
	return nil
}

func (db *DB) getSetting(key string) (value, updatedAt string, ok bool, err error) {
	err = db.conn.QueryRow(selectSetting, key).Scan(&value, &updatedAt)
	if err == sql.ErrNoRows {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return value, updatedAt, true, nil
}

// RecordImport appends an entry to the import history and returns its id
func (db *DB) RecordImport(fileName string, recordCount int) (string, error) {
	id := uuid.NewString()
	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	if _, err := db.conn.Exec(insertImport, id, fileName, recordCount, now); err != nil {
		return "", fmt.Errorf("failed to record import: %w", err)
	}
	return id, nil
}

// GetImportHistory returns the most recent imports, newest first
func (db *DB) GetImportHistory(limit int) ([]models.ImportRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.conn.Query(selectImportHistory, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import history: %w", err)
	}
	defer rows.Close()

	var history []models.ImportRecord
	for rows.Next() {
		var r models.ImportRecord
		var importedAt string
		if err := rows.Scan(&r.ID, &r.FileName, &r.RecordCount, &importedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import: %w", err)
		}
		r.ImportedAt, _ = parseTimestamp(importedAt)
		history = append(history, r)
	}
	return history, rows.Err()
}

// parseTimestamp parses SQLite timestamp formats
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}
