package jpeg

// zigzag is the standard JPEG zig-zag scan order: zigzag[i] is the
// natural-order (row-major) index of the i-th coefficient in scan order.
var zigzag = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// inverseZigzag de-scans a 64-vector in zig-zag order into natural
// row-major order; it is zigzag's involution partner (inverseZigzag ==
// scatter rather than gather).
func inverseZigzag(scan [64]int) [64]int {
	var natural [64]int
	for i, n := range zigzag {
		natural[n] = scan[i]
	}
	return natural
}

// forwardZigzag reorders a natural-order 64-vector into zig-zag scan order.
func forwardZigzag(natural [64]int) [64]int {
	var scan [64]int
	for i, n := range zigzag {
		scan[i] = natural[n]
	}
	return scan
}

// quantTable is one destination slot's 64 quantization divisors, stored
// in zig-zag order exactly as DQT transmits them.
type quantTable [64]int

// baseLumaQuant and baseChromaQuant are the JPEG spec's Annex K example
// quantization tables at quality 50, in natural row-major order as T.81
// Table K.1/K.2 print them; Encode reorders them into zig-zag order.
var baseLumaQuant = quantTable{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var baseChromaQuant = quantTable{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

// scaleQuantTable applies the standard JPEG quality scale factor to
// base, clamping every resulting entry to [1, 255].
func scaleQuantTable(base quantTable, quality int) quantTable {
	if quality < 1 {
		quality = 1
	}
	if quality > 100 {
		quality = 100
	}
	var s int
	if quality < 50 {
		s = 5000 / quality
	} else {
		s = 200 - 2*quality
	}

	var out quantTable
	for i, v := range base {
		scaled := (v*s + 50) / 100
		if scaled < 1 {
			scaled = 1
		}
		if scaled > 255 {
			scaled = 255
		}
		out[i] = scaled
	}
	return out
}
