// Package export writes the current amplitude map as an upsampled grayscale PNG.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/RyanBlaney/sonido-ascan/logging"
	"github.com/RyanBlaney/sonido-ascan/scan"
	"github.com/RyanBlaney/sonido-ascan/viewer"
)

// ErrExportPrecondition reports an export request with no amplitude map yet.
var ErrExportPrecondition = errors.New("no image to export")

// DefaultScale is the per-axis block size of an exported pixel.
const DefaultScale = 4

// Gray converts an amplitude map into a gray image of the same size.
func Gray(m *scan.AmplitudeMap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Cols, m.Rows))
	for r := 0; r < m.Rows; r++ {
		copy(img.Pix[r*img.Stride:r*img.Stride+m.Cols], m.Pix[r*m.Cols:(r+1)*m.Cols])
	}
	return img
}

// Upsample replicates every map pixel into a scale×scale block.
func Upsample(m *scan.AmplitudeMap, scale int) *image.Gray {
	src := Gray(m)
	if scale <= 1 {
		return src
	}

	dst := image.NewGray(image.Rect(0, 0, m.Cols*scale, m.Rows*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// WriteAmplitudeMapPNG encodes the upsampled map as an 8-bit grayscale PNG.
func WriteAmplitudeMapPNG(w io.Writer, m *scan.AmplitudeMap, scale int) error {
	if m == nil {
		return ErrExportPrecondition
	}
	encoder := png.Encoder{CompressionLevel: png.BestCompression}
	return encoder.Encode(w, Upsample(m, scale))
}

// DefaultFileName suggests "<base>_x<col>_y<row>_idx<l>-<h>_amp<lo>-<hi>.png".
// Coordinates are "?" when nothing is selected.
func DefaultFileName(st viewer.State) string {
	base := filepath.Base(st.Source())
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		base = "ascan"
	}

	x, y := "?", "?"
	if p, ok := st.Selection(); ok {
		x, y = fmt.Sprint(p.Col), fmt.Sprint(p.Row)
	}

	iw, cw := st.IndexWindow(), st.ContrastWindow()
	return fmt.Sprintf("%s_x%s_y%s_idx%d-%d_amp%.2f-%.2f.png",
		base, x, y, iw.Low, iw.High, cw.LowFrac, cw.HighFrac)
}

// Exporter writes PNG files for viewer states
type Exporter struct {
	scale int
}

// NewExporter creates an exporter; a non-positive scale selects DefaultScale.
func NewExporter(scale int) *Exporter {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Exporter{scale: scale}
}

// Export writes the state's amplitude map to path. The file is written to a
// temporary sibling first and renamed, so a failed export never leaves a
// truncated image behind.
func (e *Exporter) Export(st viewer.State, path string) error {
	logger := logging.WithFields(logging.Fields{
		"component": "exporter",
		"function":  "Export",
		"path":      path,
	})

	m := st.AmplitudeMap()
	if m == nil {
		return ErrExportPrecondition
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ascan-export-*.png")
	if err != nil {
		logger.Error(err, "Failed to create temporary file")
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := WriteAmplitudeMapPNG(tmp, m, e.scale); err != nil {
		tmp.Close()
		logger.Error(err, "Failed to encode PNG")
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		logger.Error(err, "Failed to move export into place")
		return fmt.Errorf("failed to save %s: %w", path, err)
	}

	logger.Info("Amplitude map exported", logging.Fields{
		"width":  m.Cols * e.scale,
		"height": m.Rows * e.scale,
	})
	return nil
}
