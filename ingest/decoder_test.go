package ingest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RyanBlaney/sonido-ascan/scan"
)

// memSource is an in-memory container used instead of an HDF5 file.
type memSource struct {
	datasets map[string][]int
	fill     func(i int) float64
	reads    int
	closed   bool
	readErr  error
}

func (m *memSource) Dims(name string) ([]int, error) {
	dims, ok := m.datasets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDatasetMissing, name)
	}
	return dims, nil
}

func (m *memSource) Read(name string, dst []float64) error {
	m.reads++
	if m.readErr != nil {
		return m.readErr
	}
	for i := range dst {
		dst[i] = m.fill(i)
	}
	return nil
}

func (m *memSource) Close() error {
	m.closed = true
	return nil
}

func TestDecodeMissingDataset(t *testing.T) {
	src := &memSource{datasets: map[string][]int{"B-Scans": {scan.FlatRows, scan.Samples}}}
	dec := NewDecoder(nil)

	_, err := dec.Decode(src)
	if !errors.Is(err, ErrDatasetMissing) {
		t.Fatalf("Expected ErrDatasetMissing, got %v", err)
	}
	if src.reads != 0 {
		t.Errorf("Expected no data read, got %d reads", src.reads)
	}
}

func TestDecodeRejectsShapeBeforeReading(t *testing.T) {
	src := &memSource{datasets: map[string][]int{"A-Scans": {scan.FlatRows, 512}}}
	dec := NewDecoder(nil)

	_, err := dec.Decode(src)
	if !errors.Is(err, scan.ErrShape) {
		t.Fatalf("Expected ErrShape, got %v", err)
	}
	if src.reads != 0 {
		t.Errorf("Expected shape check before reading, got %d reads", src.reads)
	}
}

func TestDecodeFileWrapsReadErrors(t *testing.T) {
	readErr := errors.New("truncated file")
	src := &memSource{
		datasets: map[string][]int{"A-Scans": {scan.FlatRows, scan.Samples}},
		readErr:  readErr,
	}
	dec := NewDecoderWithOpener(nil, func(string) (Source, error) { return src, nil })

	_, err := dec.DecodeFile("scan.h5")
	if !errors.Is(err, readErr) {
		t.Fatalf("Expected wrapped read error, got %v", err)
	}
	if !src.closed {
		t.Error("Expected source to be closed after failure")
	}
}

func TestDecodeFileOpenError(t *testing.T) {
	openErr := errors.New("not an HDF5 file")
	dec := NewDecoderWithOpener(nil, func(string) (Source, error) { return nil, openErr })

	if _, err := dec.DecodeFile("notes.txt"); !errors.Is(err, openErr) {
		t.Fatalf("Expected open error, got %v", err)
	}
}

func TestDecodeFileReshapes(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size cube")
	}

	src := &memSource{
		datasets: map[string][]int{"A-Scans": {scan.FlatRows, scan.Samples}},
		fill:     func(i int) float64 { return float64(i) },
	}
	dec := NewDecoderWithOpener(nil, func(string) (Source, error) { return src, nil })

	data, err := dec.DecodeFile("/data/plate_07.h5")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if !src.closed {
		t.Error("Expected source to be closed")
	}
	if data.BaseName() != "plate_07" {
		t.Errorf("Expected base name plate_07, got %q", data.BaseName())
	}

	// flat row 246 is pixel (1, 1)
	if got, want := data.Cube.At(1, 1, 3), float64(246*scan.Samples+3); got != want {
		t.Errorf("Expected cube[1,1,3] = %v, got %v", want, got)
	}
}

func TestSupportsFile(t *testing.T) {
	dec := NewDecoder(nil)
	for path, want := range map[string]bool{
		"a.h5":      true,
		"b.HDF5":    true,
		"c.hdf":     true,
		"d.png":     false,
		"no_suffix": false,
	} {
		if got := dec.SupportsFile(path); got != want {
			t.Errorf("SupportsFile(%q) = %v, want %v", path, got, want)
		}
	}
}
