// Package ingest reads A-Scan datasets out of scientific data containers and
// hands them to the scan pipeline as a validated cube.
package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/scan"
)

// ErrDatasetMissing reports a container without the expected named dataset.
var ErrDatasetMissing = errors.New("dataset not found")

// Source is an open data container. Dims must be cheap so a misshaped dataset
// can be rejected before anything is allocated.
type Source interface {
	// Dims returns the dimensions of the named dataset or ErrDatasetMissing.
	Dims(name string) ([]int, error)

	// Read fills dst with the dataset in row-major order, converted to float64.
	Read(name string, dst []float64) error

	Close() error
}

// ScanData is a loaded, reshaped dataset.
type ScanData struct {
	Cube     *scan.Cube `json:"-"`
	Path     string     `json:"path"`
	Dataset  string     `json:"dataset"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// BaseName is the file name without directory and extension.
func (d *ScanData) BaseName() string {
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	DatasetName string   `json:"dataset_name"`
	Extensions  []string `json:"extensions"` // accepted file extensions, lower case
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		DatasetName: "A-Scans",
		Extensions:  []string{".hdf", ".h5", ".hdf5"},
	}
}

// OpenFunc opens a container at path.
type OpenFunc func(path string) (Source, error)

// Decoder loads A-Scan cubes from containers
type Decoder struct {
	config *DecoderConfig
	open   OpenFunc
}

// NewDecoder creates a decoder reading HDF5 files
func NewDecoder(config *DecoderConfig) *Decoder {
	return NewDecoderWithOpener(config, OpenHDF5)
}

// NewDecoderWithOpener creates a decoder with a custom container opener
func NewDecoderWithOpener(config *DecoderConfig, open OpenFunc) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config, open: open}
}

// SupportsFile reports whether path has one of the configured extensions.
// An empty extension list accepts everything.
func (d *Decoder) SupportsFile(path string) bool {
	if len(d.config.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range d.config.Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// DecodeFile opens path, validates the dataset and returns the reshaped cube.
// It either returns a complete ScanData or an error, never partial data.
func (d *Decoder) DecodeFile(path string) (*ScanData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "scan_decoder",
		"function":  "DecodeFile",
		"filename":  path,
	})

	logger.Debug("Opening data container")

	src, err := d.open(path)
	if err != nil {
		logger.Error(err, "Failed to open data container")
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer src.Close()

	data, err := d.Decode(src)
	if err != nil {
		logger.Error(err, "Failed to decode dataset")
		return nil, err
	}
	data.Path = path

	logger.Info("Dataset loaded", logging.Fields{
		"dataset": data.Dataset,
		"rows":    data.Cube.Rows(),
		"cols":    data.Cube.Cols(),
		"samples": data.Cube.Samples(),
	})

	return data, nil
}

// Decode reads the configured dataset from an already open source.
func (d *Decoder) Decode(src Source) (*ScanData, error) {
	name := d.config.DatasetName

	dims, err := src.Dims(name)
	if err != nil {
		return nil, err
	}
	if err := scan.CheckFlatShape(dims); err != nil {
		return nil, err
	}

	flat := make([]float64, dims[0]*dims[1])
	if err := src.Read(name, flat); err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", name, err)
	}

	cube, err := scan.Reshape(flat, dims)
	if err != nil {
		return nil, err
	}

	return &ScanData{
		Cube:     cube,
		Dataset:  name,
		LoadedAt: time.Now(),
	}, nil
}
