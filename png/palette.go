package png

import (
	"github.com/alpmestan/juicypixels/pixel"
)

// palette is an ordered sequence of RGB8, indexed by decoded sample
// values. It exists only during decode.
type palette []pixel.RGB8

func parsePLTE(payload []byte) (palette, error) {
	if len(payload)%3 != 0 || len(payload) == 0 || len(payload) > 256*3 {
		return nil, pixel.Errorf(pixel.MalformedStream, "PLTE length %d is not a valid multiple of 3 up to 768", len(payload))
	}
	n := len(payload) / 3
	p := make(palette, n)
	for i := 0; i < n; i++ {
		p[i] = pixel.RGB8{R: payload[3*i], G: payload[3*i+1], B: payload[3*i+2]}
	}
	return p, nil
}

// syntheticGreyPalette builds the 2/4/16-entry palette used to represent
// low-bit-depth greyscale images: level n maps to n*255/(2^bitDepth-1),
// replicated across R, G, B.
func syntheticGreyPalette(bitDepth int) palette {
	levels := 1 << bitDepth
	p := make(palette, levels)
	maxLevel := levels - 1
	for n := 0; n < levels; n++ {
		v := byte(n * 255 / maxLevel)
		p[n] = pixel.RGB8{R: v, G: v, B: v}
	}
	return p
}

// at looks up index i, failing if the palette is too short for a given
// sample value rather than panicking on attacker-controlled input.
func (p palette) at(i byte) (pixel.RGB8, error) {
	if int(i) >= len(p) {
		return pixel.RGB8{}, pixel.Errorf(pixel.MalformedStream, "palette index %d exceeds palette length %d", i, len(p))
	}
	return p[i], nil
}
