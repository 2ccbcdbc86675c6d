package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/deathrjj/nda-dashboard-tui/config"
	"github.com/deathrjj/nda-dashboard-tui/ui"
	"github.com/rivo/tview"
)

// setupLogging sends the log to path; the terminal belongs to the UI.
func setupLogging(path string) (io.Closer, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

func main() {
	cfg, err := config.LoadDashboard()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logFile, err := setupLogging(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()

	app := tview.NewApplication()
	ui.Run(app, cfg)

	if err := app.Run(); err != nil {
		panic(err)
	}
}
