package png

import "github.com/alpmestan/juicypixels/pixel"

// filterType is a PNG scanline predictor, one of the five standard types.
type filterType int

const (
	filterNone    filterType = 0
	filterSub     filterType = 1
	filterUp      filterType = 2
	filterAverage filterType = 3
	filterPaeth   filterType = 4
)

// paeth selects whichever of a (left), b (above), c (above-left) predicts
// x best, ties broken in order a, b, c.
func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := absInt(p - int(a))
	pb := absInt(p - int(b))
	pc := absInt(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// stride is the byte distance between a sample and the "a"/"c" neighbour
// used by Sub/Average/Paeth: max(1, sampleCount*bitDepth/8).
func stride(samplesPerPixel, bitDepth int) int {
	s := samplesPerPixel * bitDepth / 8
	if s < 1 {
		return 1
	}
	return s
}

// unfilterScanline reconstructs one scanline in place. cur holds the
// current scanline's raw (filtered) bytes on entry and its reconstructed
// bytes on exit; prev is the previous scanline's already-reconstructed
// bytes (all zero for the first line of a pass).
func unfilterScanline(filter filterType, cur, prev []byte, s int) error {
	switch filter {
	case filterNone:
		return nil
	case filterSub:
		for k := 0; k < len(cur); k++ {
			a := byte(0)
			if k >= s {
				a = cur[k-s]
			}
			cur[k] += a
		}
	case filterUp:
		for k := 0; k < len(cur); k++ {
			b := byte(0)
			if prev != nil {
				b = prev[k]
			}
			cur[k] += b
		}
	case filterAverage:
		for k := 0; k < len(cur); k++ {
			a := 0
			if k >= s {
				a = int(cur[k-s])
			}
			b := 0
			if prev != nil {
				b = int(prev[k])
			}
			cur[k] += byte((a + b) / 2)
		}
	case filterPaeth:
		for k := 0; k < len(cur); k++ {
			a, b, c := byte(0), byte(0), byte(0)
			if k >= s {
				a = cur[k-s]
			}
			if prev != nil {
				b = prev[k]
				if k >= s {
					c = prev[k-s]
				}
			}
			cur[k] += paeth(a, b, c)
		}
	default:
		return pixel.Errorf(pixel.InvalidFilter, "filter byte %d not in 0..4", filter)
	}
	return nil
}

// filterScanlineNone applies the encoder's filter-0: this encoder only
// ever emits filter type None.
func filterScanlineNone(dst []byte, row []byte) {
	dst[0] = byte(filterNone)
	copy(dst[1:], row)
}
