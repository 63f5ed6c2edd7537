package scan

import (
	"errors"
	"math"
	"testing"
)

// pulseCube has one pixel with a linear ramp and every other pixel flat at 100.
func pulseCube(rows, cols, samples int) *Cube {
	cube := NewCube(rows, cols, samples)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			off := cube.offset(r, c)
			for s := 0; s < samples; s++ {
				if r == 0 && c == 0 {
					cube.data[off+s] = float64(s)
				} else {
					cube.data[off+s] = 100
				}
			}
		}
	}
	return cube
}

func TestAmplitudeMapEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("full-size cube")
	}

	raw := pulseCube(Rows, Cols, Samples)
	index, err := NewIndexWindow(1, Samples)
	if err != nil {
		t.Fatal(err)
	}
	contrast, err := NewContrastWindow(0.0, 1.0)
	if err != nil {
		t.Fatal(err)
	}

	m, err := ComputeAmplitudeMap(raw, index, contrast, AmplitudeScale(raw))
	if err != nil {
		t.Fatalf("ComputeAmplitudeMap: %v", err)
	}

	if m.Rows != Rows || m.Cols != Cols {
		t.Fatalf("Expected %dx%d map, got %dx%d", Rows, Cols, m.Rows, m.Cols)
	}
	if got := m.At(0, 0); got != 255 {
		t.Errorf("Expected pixel (0,0) = 255, got %d", got)
	}
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			if r == 0 && c == 0 {
				continue
			}
			if got := m.At(r, c); got != 0 {
				t.Fatalf("Expected pixel (%d,%d) = 0, got %d", r, c, got)
			}
		}
	}
}

func TestAmplitudeMapSingleSampleWindowIsZero(t *testing.T) {
	raw := rampCube(t, 3, 4, 10)
	for _, idx := range []int{1, 5, 10} {
		index, err := NewIndexWindowFor(float64(idx), float64(idx), raw.Samples())
		if err != nil {
			t.Fatalf("NewIndexWindowFor(%d, %d): %v", idx, idx, err)
		}
		m, err := ComputeAmplitudeMap(raw, index, FullContrastWindow(), AmplitudeScale(raw))
		if err != nil {
			t.Fatalf("ComputeAmplitudeMap: %v", err)
		}
		for i, v := range m.Pix {
			if v != 0 {
				t.Fatalf("window [%d,%d]: pixel %d = %d, want 0", idx, idx, i, v)
			}
		}
	}
}

func TestAmplitudeMapWindowSlicing(t *testing.T) {
	// one pixel, samples 0..9 = 0,0,0,5,9,1,0,0,0,0
	raw, _ := NewCubeFromData(1, 1, 10, []float64{0, 0, 0, 5, 9, 1, 0, 0, 0, 0})

	tests := []struct {
		low, high int
		want      uint8
	}{
		{1, 10, 255}, // range 9 of scale 9
		{4, 5, 113},  // range 4 -> round(4/9*255) = 113
		{5, 6, 227},  // range 8 -> round(8/9*255) = 227
		{1, 3, 0},
		{7, 10, 0},
	}

	for _, tt := range tests {
		index := IndexWindow{Low: tt.low, High: tt.high}
		m, err := ComputeAmplitudeMap(raw, index, FullContrastWindow(), 9)
		if err != nil {
			t.Fatalf("[%d,%d]: %v", tt.low, tt.high, err)
		}
		if got := m.At(0, 0); got != tt.want {
			t.Errorf("window [%d,%d]: expected %d, got %d", tt.low, tt.high, tt.want, got)
		}
	}
}

func TestAmplitudeMapHandlesDegenerateWindows(t *testing.T) {
	raw := rampCube(t, 4, 5, 16)
	scale := AmplitudeScale(raw)

	contrasts := []ContrastWindow{
		{0, 1}, {0, 0}, {1, 1}, {0.5, 0.5}, {0.2, 0.3}, {0.99, 1},
	}
	indexes := []IndexWindow{{1, 16}, {1, 1}, {16, 16}, {3, 9}}

	for _, cw := range contrasts {
		for _, iw := range indexes {
			m, err := ComputeAmplitudeMap(raw, iw, cw, scale)
			if err != nil {
				t.Fatalf("contrast %v index %v: %v", cw, iw, err)
			}
			if len(m.Pix) != 4*5 {
				t.Fatalf("Expected 20 pixels, got %d", len(m.Pix))
			}
		}
	}
}

func TestAmplitudeMapDegenerateContrastThresholds(t *testing.T) {
	raw, _ := NewCubeFromData(1, 3, 2, []float64{0, 2, 0, 5, 0, 8})
	// amplitudes 2, 5, 8 with scale 8; threshold at 0.5*8 = 4
	m, err := ComputeAmplitudeMap(raw, IndexWindow{1, 2}, ContrastWindow{0.5, 0.5}, 8)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 255, 255}
	for i, v := range want {
		if m.Pix[i] != v {
			t.Errorf("pixel %d: expected %d, got %d", i, v, m.Pix[i])
		}
	}
}

func countLevel(m *AmplitudeMap, level uint8) int {
	n := 0
	for _, v := range m.Pix {
		if v == level {
			n++
		}
	}
	return n
}

func TestAmplitudeMapWideningContrastNeverShrinksCoverage(t *testing.T) {
	raw := rampCube(t, 6, 6, 12)
	// vary amplitude across pixels so saturation counts move
	for r := 0; r < 6; r++ {
		for c := 0; c < 6; c++ {
			off := raw.offset(r, c)
			for s := 0; s < 12; s++ {
				raw.data[off+s] = float64(s*(r*6+c)) * 0.37
			}
		}
	}
	scale := AmplitudeScale(raw)
	index := FullIndexWindow(12)

	prev, _ := ComputeAmplitudeMap(raw, index, ContrastWindow{0.4, 0.6}, scale)
	for _, high := range []float64{0.65, 0.7, 0.8, 0.9, 1.0} {
		next, err := ComputeAmplitudeMap(raw, index, ContrastWindow{0.4, high}, scale)
		if err != nil {
			t.Fatal(err)
		}
		if countLevel(next, 255) > countLevel(prev, 255) {
			t.Errorf("raising high to %.2f increased saturated pixels: %d -> %d", high, countLevel(prev, 255), countLevel(next, 255))
		}
		for i := range next.Pix {
			if next.Pix[i] > prev.Pix[i] {
				t.Fatalf("raising high to %.2f brightened pixel %d: %d -> %d", high, i, prev.Pix[i], next.Pix[i])
			}
		}
		prev = next
	}

	prev, _ = ComputeAmplitudeMap(raw, index, ContrastWindow{0.4, 0.6}, scale)
	for _, low := range []float64{0.35, 0.3, 0.2, 0.1, 0.0} {
		next, err := ComputeAmplitudeMap(raw, index, ContrastWindow{low, 0.6}, scale)
		if err != nil {
			t.Fatal(err)
		}
		if countLevel(next, 0) > countLevel(prev, 0) {
			t.Errorf("lowering low to %.2f increased black pixels: %d -> %d", low, countLevel(prev, 0), countLevel(next, 0))
		}
		prev = next
	}
}

func TestAmplitudeMapIsPure(t *testing.T) {
	raw := rampCube(t, 3, 3, 8)
	scale := AmplitudeScale(raw)
	a, _ := ComputeAmplitudeMap(raw, IndexWindow{2, 7}, ContrastWindow{0.1, 0.9}, scale)
	b, _ := ComputeAmplitudeMap(raw, IndexWindow{2, 7}, ContrastWindow{0.1, 0.9}, scale)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel %d differs between identical calls: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
	if &a.Pix[0] == &b.Pix[0] {
		t.Error("Expected a freshly allocated map on every call")
	}
}

func TestAmplitudeMapRejectsWindowOutsideCube(t *testing.T) {
	raw := rampCube(t, 2, 2, 8)
	for _, w := range []IndexWindow{{0, 4}, {1, 9}, {5, 4}} {
		if _, err := ComputeAmplitudeMap(raw, w, FullContrastWindow(), 1); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("window %v: expected ErrInvalidWindow, got %v", w, err)
		}
	}
}

func TestSmoothingIndependentOfIndexWindow(t *testing.T) {
	raw := rampCube(t, 4, 4, 10)
	vol := NewVolume(raw)
	before := vol.View(ModeSmoothed).Raw

	for _, w := range []IndexWindow{{1, 10}, {3, 3}, {2, 8}} {
		if _, err := ComputeAmplitudeMap(before, w, FullContrastWindow(), 1); err != nil {
			t.Fatal(err)
		}
	}

	after := vol.View(ModeSmoothed).Raw
	if before != after {
		t.Fatal("smoothed cube was rebuilt")
	}
	fresh := Smooth(raw)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			for s := 0; s < 10; s++ {
				if after.At(r, c, s) != fresh.At(r, c, s) {
					t.Fatalf("smoothed[%d,%d,%d] changed after windowing", r, c, s)
				}
			}
		}
	}
}

func TestIndexWindowValidation(t *testing.T) {
	tests := []struct {
		name      string
		low, high float64
		want      IndexWindow
		wantErr   bool
	}{
		{"full", 1, 625, IndexWindow{1, 625}, false},
		{"rounds fractional", 1.4, 10.6, IndexWindow{1, 11}, false},
		{"clamps below", -5, 3, IndexWindow{1, 3}, false},
		{"clamps above", 600, 900, IndexWindow{600, 625}, false},
		{"single sample", 42, 42, IndexWindow{42, 42}, false},
		{"huge high", 1, 1e20, IndexWindow{1, 625}, false},
		{"huge both", 1e20, 1e21, IndexWindow{625, 625}, false},
		{"huge negative low", -1e20, 10, IndexWindow{1, 10}, false},
		{"huge negative both", -1e21, -1e20, IndexWindow{1, 1}, false},
		{"inverted", 10, 5, IndexWindow{}, true},
		{"nan", math.NaN(), 5, IndexWindow{}, true},
		{"inf", 1, math.Inf(1), IndexWindow{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewIndexWindow(tt.low, tt.high)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWindow) {
					t.Fatalf("Expected ErrInvalidWindow, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestContrastWindowValidation(t *testing.T) {
	got, err := NewContrastWindow(-0.5, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	if got != (ContrastWindow{0, 1}) {
		t.Errorf("Expected clamped (0, 1), got %v", got)
	}

	if _, err := NewContrastWindow(0.8, 0.2); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow for inverted window, got %v", err)
	}
	if _, err := NewContrastWindow(math.NaN(), 0.2); !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("Expected ErrInvalidWindow for NaN, got %v", err)
	}

	low, high := ContrastWindow{0.25, 0.5}.Bounds(8)
	if low != 2 || high != 4 {
		t.Errorf("Expected bounds (2, 4), got (%v, %v)", low, high)
	}
}

func TestModeToggleAndParse(t *testing.T) {
	if ModeBasic.Toggle() != ModeSmoothed || ModeSmoothed.Toggle() != ModeBasic {
		t.Error("Toggle does not alternate modes")
	}
	for in, want := range map[string]Mode{"basic": ModeBasic, "Smoothed": ModeSmoothed, "radius 1 average": ModeSmoothed} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("median"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("Expected ErrUnknownMode, got %v", err)
	}
	if Mode(7).Valid() || !ModeBasic.Valid() || !ModeSmoothed.Valid() {
		t.Error("Valid misclassified a mode")
	}
}
