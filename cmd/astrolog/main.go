package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/astrolog/internal/config"
	"github.com/thesavant42/astrolog/internal/db"
	"github.com/thesavant42/astrolog/internal/logbook"
	"github.com/thesavant42/astrolog/internal/ui"
)

const historyLimit = 20

func main() {
	// Load .env file if it exists (silently ignore if not found)
	config.LoadDotEnv()

	fileFlag := flag.String("file", "", "AstroPlanner TSV log export to open")
	dbFlag := flag.String("db", "", "Path to SQLite database file (overrides config)")
	configFlag := flag.String("config", "", "Path to YAML config file")
	noCache := flag.Bool("no-cache", false, "Neither restore nor save the last import")
	noSplash := flag.Bool("no-splash", false, "Skip the splash screen")
	historyFlag := flag.Bool("history", false, "List recent imports and exit")
	flag.Parse()

	// Also accept the file as positional argument
	if *fileFlag == "" && flag.NArg() > 0 {
		*fileFlag = flag.Arg(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
	if *dbFlag != "" {
		cfg.DB.Path = *dbFlag
	}
	if *noCache {
		cfg.Cache.Disabled = true
	}

	logger, closeLog := newFileLogger(cfg)
	defer closeLog()

	database, err := db.New(cfg.DB.Path)
	if err != nil {
		ui.PrintError(fmt.Sprintf("Failed to initialize database: %v", err))
		os.Exit(1)
	}
	defer database.Close()

	if *historyFlag {
		history, err := database.GetImportHistory(historyLimit)
		if err != nil {
			ui.PrintError(fmt.Sprintf("Failed to read import history: %v", err))
			os.Exit(1)
		}
		ui.PrintImportHistory(history)
		return
	}

	if !*noSplash {
		ui.ShowSplash()
	}

	opts := []logbook.Option{
		logbook.WithPageSize(cfg.View.PageSize),
		logbook.WithLogger(logger),
	}
	if !cfg.Cache.Disabled {
		opts = append(opts, logbook.WithCache(database))
	}
	session := logbook.NewSession(opts...)

	path := *fileFlag
	if path == "" {
		name, restored, err := session.Restore()
		if err != nil {
			logger.Warn("Could not restore last import", "error", err)
		}
		if restored {
			logger.Info("Resuming last import", "file", name)
		} else {
			path, err = chooseLogFile(database, logger)
			if errors.Is(err, ui.ErrCancelled) {
				return
			}
			if err != nil {
				ui.PrintError(err.Error())
				os.Exit(1)
			}
		}
	}

	if path != "" {
		if err := importFile(session, database, logger, path); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	}

	// Clear screen before launching main TUI
	fmt.Print("\033[H\033[2J")

	err = ui.RunLogViewer(ui.LogViewerConfig{
		Session: session,
		History: database,
		Logger:  logger,
	})
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

// newFileLogger writes logs next to the database since the TUI owns the
// terminal. It falls back to discarding logs when the file cannot be opened.
func newFileLogger(cfg config.Config) (*log.Logger, func()) {
	path := cfg.LogPath()
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0755)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Prefix:          "astrolog",
		Level:           cfg.LogLevel(),
	})
	return logger, func() { f.Close() }
}

// chooseLogFile offers recent files first, then asks for a path
func chooseLogFile(database *db.DB, logger *log.Logger) (string, error) {
	history, err := database.GetImportHistory(historyLimit)
	if err != nil {
		logger.Warn("Could not read import history", "error", err)
	}

	if len(history) > 0 {
		path, err := ui.SelectRecentFile(history)
		if err != nil {
			return "", err
		}
		if path != "" {
			return path, nil
		}
	}

	return ui.PromptForLogFile()
}

// importFile reads, decodes and imports a log file, then records it in the
// import history
func importFile(session *logbook.Session, database *db.DB, logger *log.Logger, path string) error {
	var raw []byte
	err := ui.RunWithSpinner(fmt.Sprintf("Reading %s...", filepath.Base(path)), func() (err error) {
		raw, err = os.ReadFile(path)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to read log file: %w", err)
	}

	session.Import(logbook.DecodeText(raw), filepath.Base(path))

	source := path
	if abs, err := filepath.Abs(path); err == nil {
		source = abs
	}
	if _, err := database.RecordImport(source, session.RecordCount()); err != nil {
		logger.Warn("Failed to record import", "file", source, "error", err)
	}
	return nil
}
