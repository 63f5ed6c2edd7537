package scan

// neighborhood offsets in the fixed summation order: row offset outer, column offset inner
var neighborhood = [9][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 0}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Smooth returns the radius-1 spatial mean of raw.
//
// The spatial axes are padded by one pixel using edge replication, so border
// and corner pixels also average exactly nine values. The sample axis is not
// touched. The nine terms are always added in the same order, which keeps the
// result bit-for-bit reproducible.
func Smooth(raw *Cube) *Cube {
	out := NewCube(raw.rows, raw.cols, raw.samples)

	var sources [9][]float64
	for r := 0; r < raw.rows; r++ {
		for c := 0; c < raw.cols; c++ {
			for i, d := range neighborhood {
				sources[i] = raw.waveform(clampIndex(r+d[0], raw.rows), clampIndex(c+d[1], raw.cols))
			}

			dst := out.data[out.offset(r, c) : out.offset(r, c)+out.samples]
			for s := range dst {
				sum := sources[0][s]
				for i := 1; i < len(sources); i++ {
					sum += sources[i][s]
				}
				dst[s] = sum / 9.0
			}
		}
	}

	return out
}

// clampIndex implements edge-replication padding for one axis.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
