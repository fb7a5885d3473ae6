package jpeg

import "math"

// idctCoeff[u][x] is cos((2x+1)*u*pi/16), the fixed basis shared by the
// forward and inverse 8-point DCT-II/DCT-III used per data unit.
var idctCoeff [8][8]float64

func init() {
	for u := 0; u < 8; u++ {
		for x := 0; x < 8; x++ {
			idctCoeff[u][x] = math.Cos(float64(2*x+1) * float64(u) * math.Pi / 16)
		}
	}
}

func alpha(u int) float64 {
	if u == 0 {
		return 1 / math.Sqrt2
	}
	return 1
}

// inverseDCT8x8 computes the separable 2-D inverse DCT of a natural-order
// (not zig-zag) coefficient block, level-shifts by +128 and clamps to
// [0,255]. This is the direct float64 formulation, not the fast
// (AAN/butterfly) variant.
func inverseDCT8x8(coeffs [64]int) [64]byte {
	var tmp [8][8]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			var sum float64
			for v := 0; v < 8; v++ {
				row := 0.0
				for u := 0; u < 8; u++ {
					row += alpha(u) * float64(coeffs[v*8+u]) * idctCoeff[u][x]
				}
				sum += alpha(v) * row * idctCoeff[v][y]
			}
			tmp[y][x] = sum / 4
		}
	}

	var out [64]byte
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			v := int(math.Round(tmp[y][x])) + 128
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}
			out[y*8+x] = byte(v)
		}
	}
	return out
}

// forwardDCT8x8 computes the separable 2-D forward DCT of an 8x8 block
// of level-shifted samples (sample value minus 128), producing natural-
// order coefficients for the encoder's quantization step.
func forwardDCT8x8(samples [64]byte) [64]int {
	var shifted [8][8]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			shifted[y][x] = float64(int(samples[y*8+x]) - 128)
		}
	}

	var coeffs [64]int
	for v := 0; v < 8; v++ {
		for u := 0; u < 8; u++ {
			var sum float64
			for y := 0; y < 8; y++ {
				row := 0.0
				for x := 0; x < 8; x++ {
					row += shifted[y][x] * idctCoeff[u][x]
				}
				sum += row * idctCoeff[v][y]
			}
			coeffs[v*8+u] = int(math.Round(alpha(u) * alpha(v) * sum / 4))
		}
	}
	return coeffs
}
