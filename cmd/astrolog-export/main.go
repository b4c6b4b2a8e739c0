// Command astrolog-export filters an AstroPlanner log export without the TUI
// and writes the matching logs as markdown or TSV.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/log"
	"github.com/thesavant42/astrolog/internal/config"
	"github.com/thesavant42/astrolog/internal/db"
	"github.com/thesavant42/astrolog/internal/logbook"
	"github.com/thesavant42/astrolog/internal/models"
	"github.com/thesavant42/astrolog/internal/ui"
)

func main() {
	config.LoadDotEnv()

	fileFlag := flag.String("file", "", "AstroPlanner TSV log export to read")
	fromCache := flag.Bool("from-cache", false, "Read the last import cached by astrolog instead of --file")
	configFlag := flag.String("config", "", "Path to YAML config file")
	search := flag.String("search", "", "Free-text search")
	format := flag.String("format", "md", "Output format: md or tsv")
	output := flag.String("output", "", "Output file (default stdout)")
	verbose := flag.Bool("v", false, "Verbose logging")

	facets := make(map[models.FacetKind]*string, len(models.FacetKinds))
	for _, k := range models.FacetKinds {
		facets[k] = flag.String(string(k), "", fmt.Sprintf("Only logs with this %s", strings.ToLower(k.Title())))
	}
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           log.WarnLevel,
		ReportTimestamp: false,
		Prefix:          "astrolog-export",
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *format != "md" && *format != "tsv" {
		ui.PrintError(fmt.Sprintf("unknown format %q (want md or tsv)", *format))
		os.Exit(2)
	}

	text, name, err := readInput(*fileFlag, *fromCache, *configFlag, *output != "")
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}

	session := logbook.NewSession(logbook.WithLogger(logger))
	session.Import(text, name)
	session.SetSearch(*search)
	for _, k := range models.FacetKinds {
		value := strings.TrimSpace(*facets[k])
		if value == "" {
			continue
		}
		if !session.View().FacetOptions.Contains(k, value) {
			logger.Warn("No log has this value", "facet", k, "value", value)
		}
		if err := session.SetFacet(k, value); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	}

	records := session.Matching()
	var buf bytes.Buffer
	switch *format {
	case "tsv":
		if err := logbook.WriteTSV(&buf, records); err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
	default:
		title := "Observation Log"
		if name != "" {
			title += ": " + name
		}
		buf.WriteString(logbook.RenderMarkdown(title, records, session.Filter(), time.Now()))
	}

	if *output == "" {
		if _, err := io.Copy(os.Stdout, &buf); err != nil {
			logger.Error("Failed to write output", "error", err)
			os.Exit(1)
		}
		return
	}

	if err := os.WriteFile(*output, buf.Bytes(), 0644); err != nil {
		ui.PrintError(fmt.Sprintf("failed to write %s: %v", *output, err))
		os.Exit(1)
	}
	ui.PrintSummary(name, session.View())
	ui.PrintSuccess(fmt.Sprintf("Wrote %d logs to %s", len(records), *output))
}

// readInput returns the raw log text and its display name. The spinner is
// only shown when stdout is not carrying the export itself.
func readInput(path string, fromCache bool, configPath string, showSpinner bool) (string, string, error) {
	if fromCache {
		cfg, err := config.Load(configPath)
		if err != nil {
			return "", "", err
		}
		database, err := db.New(cfg.DB.Path)
		if err != nil {
			return "", "", fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		snap, ok, err := database.LoadLast()
		if err != nil {
			return "", "", fmt.Errorf("failed to load cached import: %w", err)
		}
		if !ok {
			return "", "", fmt.Errorf("no cached import in %s", cfg.DB.Path)
		}
		return snap.RawText, snap.FileName, nil
	}

	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	if path == "" {
		return "", "", fmt.Errorf("--file or --from-cache is required")
	}

	var raw []byte
	var readErr error
	read := func() { raw, readErr = os.ReadFile(path) }

	if showSpinner {
		err := spinner.New().
			Title("Reading " + filepath.Base(path) + "...").
			Action(read).
			Run()
		if err != nil {
			return "", "", fmt.Errorf("spinner error: %w", err)
		}
	} else {
		read()
	}
	if readErr != nil {
		return "", "", fmt.Errorf("failed to read log file: %w", readErr)
	}

	return logbook.DecodeText(raw), filepath.Base(path), nil
}
