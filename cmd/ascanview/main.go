// Command ascanview is an interactive terminal viewer for ultrasonic A-Scan
// volumes stored in HDF5 files.
//
// Usage:
//
//	ascanview [file.h5]
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/RyanBlaney/sonido-ascan/config"
	"github.com/RyanBlaney/sonido-ascan/export"
	"github.com/RyanBlaney/sonido-ascan/ingest"
	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/tui"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: ascanview [file.h5]")
		os.Exit(2)
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ascanview: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(config.DefaultFileName)
	if err != nil {
		return err
	}

	closeLog := setupLogging(cfg, os.Stderr)
	defer closeLog()

	decoderConfig := ingest.DefaultDecoderConfig()
	decoderConfig.DatasetName = cfg.DatasetName

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()

	logging.Info("Viewer started", logging.Fields{"config": cfg})

	app := tui.New(screen, cfg, ingest.NewDecoder(decoderConfig), export.NewExporter(cfg.ExportScale))
	if len(args) == 1 {
		app.Open(args[0])
	}
	return app.Run()
}

// setupLogging installs the global logger. The screen owns stdout, so logs go
// to a file or nowhere; when the file cannot be opened the problem is
// reported on fallback before the screen starts.
func setupLogging(cfg *config.ViewerConfig, fallback io.Writer) (closeLog func()) {
	if cfg.LogPath == "" {
		logging.SetGlobalLogger(&logging.NoOpLogger{})
		return func() {}
	}

	logger, err := logging.NewZapFileLogger(cfg.LogPath, cfg.Level())
	if err != nil {
		logging.NewWriterLogger(fallback).Warn("File logging disabled", logging.Fields{
			"path":  cfg.LogPath,
			"error": err.Error(),
		})
		logging.SetGlobalLogger(&logging.NoOpLogger{})
		return func() {}
	}

	logging.SetGlobalLogger(logger)
	return func() { logger.Close() }
}
