package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/scan"
)

// DefaultFileName is looked up in the working directory at startup
const DefaultFileName = "ascanview.json"

// ViewerConfig holds the tunables of the viewer. It never changes what the
// pipeline computes, only how it is driven and presented.
type ViewerConfig struct {
	// Input
	DatasetName string `json:"dataset_name"`

	// Interaction
	InitialMode  string  `json:"initial_mode"` // "basic", "smoothed"
	IndexStep    int     `json:"index_step"`   // samples per key press
	ContrastStep float64 `json:"contrast_step"` // fraction per key press

	// Export
	ExportScale int `json:"export_scale"` // nearest-neighbour upsampling factor

	// Logging
	LogPath  string `json:"log_path"` // empty disables logging while the screen is up
	LogLevel string `json:"log_level"`
}

// DefaultViewerConfig returns the configuration used when no file is present
func DefaultViewerConfig() *ViewerConfig {
	return &ViewerConfig{
		DatasetName:  "A-Scans",
		InitialMode:  "basic",
		IndexStep:    5,
		ContrastStep: 0.01,
		ExportScale:  4,
		LogPath:      "ascanview.log",
		LogLevel:     "info",
	}
}

// Load reads a JSON config from path on top of the defaults. A missing file
// is not an error and yields the defaults.
func Load(path string) (*ViewerConfig, error) {
	cfg := DefaultViewerConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the viewer cannot work with
func (c *ViewerConfig) Validate() error {
	if c.DatasetName == "" {
		return fmt.Errorf("dataset_name cannot be empty")
	}
	if c.IndexStep <= 0 || c.IndexStep > scan.Samples {
		return fmt.Errorf("index_step must be in 1..%d, got %d", scan.Samples, c.IndexStep)
	}
	if c.ContrastStep <= 0 || c.ContrastStep > 1 {
		return fmt.Errorf("contrast_step must be in (0, 1], got %v", c.ContrastStep)
	}
	if c.ExportScale <= 0 {
		return fmt.Errorf("export_scale must be positive, got %d", c.ExportScale)
	}
	if _, err := scan.ParseMode(c.InitialMode); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Mode returns the parsed initial analysis mode
func (c *ViewerConfig) Mode() scan.Mode {
	mode, _ := scan.ParseMode(c.InitialMode)
	return mode
}

// Level returns the parsed log level
func (c *ViewerConfig) Level() logging.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}
