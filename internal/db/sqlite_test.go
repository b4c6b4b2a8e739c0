package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thesavant42/astrolog/internal/logbook"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := New(filepath.Join(t.TempDir(), "nested", "astrolog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

// DB must satisfy the session cache contract
var _ logbook.Cache = (*DB)(nil)

func TestLoadLastEmpty(t *testing.T) {
	database := newTestDB(t)

	_, ok, err := database.LoadLast()

	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveAndLoadLast(t *testing.T) {
	database := newTestDB(t)
	text := "ID\tName\nM31\tAndromeda\n"

	require.NoError(t, database.Save(text, "first.tsv"))
	require.NoError(t, database.Save(text+"M42\tOrion\n", "second.tsv"))

	snap, ok, err := database.LoadLast()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "second.tsv", snap.FileName)
	require.Equal(t, text+"M42\tOrion\n", snap.RawText)
	require.False(t, snap.ImportedAt.IsZero())
}

func TestClearLast(t *testing.T) {
	database := newTestDB(t)
	require.NoError(t, database.Save("ID\nM1", "a.tsv"))

	require.NoError(t, database.ClearLast())

	_, ok, err := database.LoadLast()
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionRestoresFromDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "astrolog.db")

	first, err := New(path)
	require.NoError(t, err)
	s := logbook.NewSession(logbook.WithCache(first))
	s.Import("ID\tLocal Date/Time\nM31\t12.05.2023 22:00\nM42\t01.01.2024 20:30\n", "log.tsv")
	require.NoError(t, first.Close())

	second, err := New(path)
	require.NoError(t, err)
	defer second.Close()

	restored := logbook.NewSession(logbook.WithCache(second))
	name, ok, err := restored.Restore()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "log.tsv", name)
	require.Equal(t, 2, restored.View().TotalCount)
	require.Equal(t, "M42", restored.View().VisibleRecords[0].ID)
}

func TestImportHistory(t *testing.T) {
	database := newTestDB(t)

	firstID, err := database.RecordImport("a.tsv", 10)
	require.NoError(t, err)
	secondID, err := database.RecordImport("b.tsv", 3)
	require.NoError(t, err)
	require.NotEqual(t, firstID, secondID)

	history, err := database.GetImportHistory(5)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "b.tsv", history[0].FileName)
	require.Equal(t, 3, history[0].RecordCount)
	require.Equal(t, secondID, history[0].ID)
	require.Equal(t, "a.tsv", history[1].FileName)

	limited, err := database.GetImportHistory(1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
}

func TestParseTimestamp(t *testing.T) {
	for _, ts := range []string{"2024-01-02 03:04:05", "2024-01-02T03:04:05Z", "2024-01-02T03:04:05.123+01:00"} {
		_, err := parseTimestamp(ts)
		require.NoError(t, err, ts)
	}
	_, err := parseTimestamp("yesterday")
	require.Error(t, err)
}
