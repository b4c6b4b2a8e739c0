package db

// Keys used in the settings table for the last imported file
const (
	KeyLastFileText = "astroplannerlog:lastFileText"
	KeyLastFileName = "astroplannerlog:lastFileName"
)

// Schema for simple key/value settings (last import cache)
const createSettingsTable = `
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const upsertSetting = `
INSERT INTO settings (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`

const selectSetting = `
SELECT value, updated_at FROM settings WHERE key = ?
`

const deleteSetting = `
DELETE FROM settings WHERE key = ?
`

// Schema for the history of imported files
const createImportHistoryTable = `
CREATE TABLE IF NOT EXISTS import_history (
    id TEXT PRIMARY KEY,
    file_name TEXT NOT NULL,
    record_count INTEGER NOT NULL DEFAULT 0,
    imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_import_history_time ON import_history(imported_at);
`

const insertImport = `
INSERT INTO import_history (id, file_name, record_count, imported_at)
VALUES (?, ?, ?, ?)
`

const selectImportHistory = `
SELECT id, file_name, record_count, imported_at FROM import_history
ORDER BY imported_at DESC, rowid DESC
LIMIT ?
`
