package pixel

// ConvertRGB8ToYCbCr8 performs the lossy RGB8 -> YCbCr8 color-space
// conversion using the floating-point ITU-style coefficients. Results
// are truncated toward zero, matching the reference definition exactly.
func ConvertRGB8ToYCbCr8(p RGB8) YCbCr8 {
	r := float64(p.R)
	g := float64(p.G)
	b := float64(p.B)

	y := 0.299*r + 0.587*g + 0.114*b
	cb := -0.16874*r - 0.33126*g + 0.5*b + 128
	cr := 0.5*r - 0.41869*g - 0.08131*b + 128

	return YCbCr8{
		Y:  clampToByte(int32(y)),
		Cb: clampToByte(int32(cb)),
		Cr: clampToByte(int32(cr)),
	}
}

// crRTab, cbBTab, crGTab, cbGTab are the fixed-point 16-bit lookup
// tables used by ConvertYCbCr8ToRGB8, indexed by the raw Cr or Cb byte.
// Each entry is the channel coefficient times (index-128), scaled by
// 2^16 and rounded; crRTab and cbBTab are shifted back down by 16 bits,
// while crGTab and cbGTab stay scaled (cbGTab carrying a +2^15 rounding
// bias) until ConvertYCbCr8ToRGB8 sums and shifts them. They are
// immutable and safe to share across goroutines.
var (
	crRTab [256]int32
	cbBTab [256]int32
	crGTab [256]int32
	cbGTab [256]int32
)

func init() {
	for i := 0; i < 256; i++ {
		crPrime := float64(i - 128)
		cbPrime := float64(i - 128)
		crRTab[i] = int32(round(1.40200 * crPrime * 65536)) >> 16
		cbBTab[i] = int32(round(1.77200 * cbPrime * 65536)) >> 16
		crGTab[i] = -int32(round(0.71414 * crPrime * 65536))
		cbGTab[i] = -int32(round(0.34414*cbPrime*65536)) + 1<<15
	}
}

func round(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}

// ConvertYCbCr8ToRGB8 performs the lossy YCbCr8 -> RGB8 color-space
// conversion via the fixed-point 16-bit tables. This path is the
// performance-critical neighbour of the IDCT in the JPEG decoder and
// must produce bit-identical values to the reference definition.
func ConvertYCbCr8ToRGB8(p YCbCr8) RGB8 {
	y := int32(p.Y)
	cb := int32(p.Cb)
	cr := int32(p.Cr)

	r := y + crRTab[cr]
	g := y + ((cbGTab[cb] + crGTab[cr]) >> 16)
	b := y + cbBTab[cb]

	return RGB8{R: clampToByte(r), G: clampToByte(g), B: clampToByte(b)}
}

func clampToByte(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
