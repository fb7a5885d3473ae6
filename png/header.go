package png

import (
	"encoding/binary"

	"github.com/alpmestan/juicypixels/pixel"
)

// ColorType is PNG's IHDR colour-type byte.
type ColorType int

const (
	ColorGrey       ColorType = 0
	ColorRGB        ColorType = 2
	ColorPalette    ColorType = 3
	ColorGreyAlpha  ColorType = 4
	ColorRGBA       ColorType = 6
)

// Interlace is PNG's IHDR interlace-method byte.
type Interlace int

const (
	InterlaceNone  Interlace = 0
	InterlaceAdam7 Interlace = 1
)

// header is the parsed IHDR chunk.
type header struct {
	width, height int
	bitDepth      int
	colorType     ColorType
	interlace     Interlace
}

// allowedBitDepths enumerates the (colorType, bitDepth) matrix PNG permits.
var allowedBitDepths = map[ColorType][]int{
	ColorGrey:      {1, 2, 4, 8, 16},
	ColorRGB:       {8, 16},
	ColorPalette:   {1, 2, 4, 8},
	ColorGreyAlpha: {8, 16},
	ColorRGBA:      {8, 16},
}

// samplesPerPixel returns the number of samples (not 8-bit bytes) the
// filter reconstruction pass operates on per pixel.
func (h header) samplesPerPixel() int {
	switch h.colorType {
	case ColorGrey, ColorPalette:
		return 1
	case ColorGreyAlpha:
		return 2
	case ColorRGB:
		return 3
	case ColorRGBA:
		return 4
	default:
		return 1
	}
}

func parseIHDR(payload []byte) (header, error) {
	if len(payload) != 13 {
		return header{}, pixel.Errorf(pixel.MalformedStream, "IHDR length %d, want 13", len(payload))
	}

	h := header{
		width:     int(binary.BigEndian.Uint32(payload[0:4])),
		height:    int(binary.BigEndian.Uint32(payload[4:8])),
		bitDepth:  int(payload[8]),
		colorType: ColorType(payload[9]),
		interlace: Interlace(payload[12]),
	}

	compression := payload[10]
	filterMethod := payload[11]
	if compression != 0 {
		return header{}, pixel.Errorf(pixel.MalformedStream, "unsupported IHDR compression method %d", compression)
	}
	if filterMethod != 0 {
		return header{}, pixel.Errorf(pixel.MalformedStream, "unsupported IHDR filter method %d", filterMethod)
	}
	if h.interlace != InterlaceNone && h.interlace != InterlaceAdam7 {
		return header{}, pixel.Errorf(pixel.MalformedStream, "unsupported IHDR interlace method %d", h.interlace)
	}
	if h.width <= 0 || h.height <= 0 {
		return header{}, pixel.Errorf(pixel.MalformedStream, "non-positive IHDR dimensions %dx%d", h.width, h.height)
	}

	allowed, ok := allowedBitDepths[h.colorType]
	if !ok {
		return header{}, pixel.Errorf(pixel.MalformedStream, "unknown IHDR color type %d", h.colorType)
	}
	valid := false
	for _, d := range allowed {
		if d == h.bitDepth {
			valid = true
			break
		}
	}
	if !valid {
		return header{}, pixel.Errorf(pixel.MalformedStream, "color type %d does not permit bit depth %d", h.colorType, h.bitDepth)
	}

	return h, nil
}

func encodeIHDR(width, height, bitDepth int, colorType ColorType) []byte {
	payload := make([]byte, 13)
	binary.BigEndian.PutUint32(payload[0:4], uint32(width))
	binary.BigEndian.PutUint32(payload[4:8], uint32(height))
	payload[8] = byte(bitDepth)
	payload[9] = byte(colorType)
	payload[10] = 0 // compression
	payload[11] = 0 // filter method
	payload[12] = byte(InterlaceNone)
	return payload
}
