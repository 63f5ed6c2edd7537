package ingest

import (
	"fmt"

	"gonum.org/v1/hdf5"
)

// hdf5Source reads datasets from an HDF5 file. HDF5 converts the stored
// element type to float64 during Read.
type hdf5Source struct {
	file *hdf5.File
}

// OpenHDF5 opens an HDF5 file read-only.
func OpenHDF5(path string) (Source, error) {
	f, err := hdf5.OpenFile(path, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, err
	}
	return &hdf5Source{file: f}, nil
}

func (s *hdf5Source) Dims(name string) ([]int, error) {
	if !s.file.LinkExists(name) {
		return nil, fmt.Errorf("%w: %q", ErrDatasetMissing, name)
	}

	ds, err := s.file.OpenDataset(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDatasetMissing, name, err)
	}
	defer ds.Close()

	space := ds.Space()
	defer space.Close()

	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read dims of %q: %w", name, err)
	}

	out := make([]int, len(dims))
	for i, d := range dims {
		out[i] = int(d)
	}
	return out, nil
}

func (s *hdf5Source) Read(name string, dst []float64) error {
	ds, err := s.file.OpenDataset(name)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrDatasetMissing, name, err)
	}
	defer ds.Close()

	return ds.Read(&dst)
}

func (s *hdf5Source) Close() error {
	return s.file.Close()
}
