package png

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/alpmestan/juicypixels/pixel"
)

// Encode writes img as an 8-bit, non-interlaced, filter-0 PNG. Only
// Y8, RGB8 and RGBA8 source pixel types are supported.
func Encode[S pixel.Sample, P pixel.Pixel[S, P]](w io.Writer, img pixel.Image[S, P]) error {
	var zero P
	colorType, ok := colorTypeFor(zero)
	if !ok {
		return pixel.Errorf(pixel.UnsupportedFeature, "png encoder only supports Y8, RGB8 and RGBA8 source pixels")
	}

	if _, err := w.Write(signature[:]); err != nil {
		return err
	}
	if err := writeChunk(w, "IHDR", encodeIHDR(img.Width, img.Height, 8, colorType)); err != nil {
		return err
	}

	idat, err := compressScanlines(img)
	if err != nil {
		return err
	}
	if err := writeChunk(w, "IDAT", idat); err != nil {
		return err
	}
	return writeChunk(w, "IEND", nil)
}

func colorTypeFor(p any) (ColorType, bool) {
	switch p.(type) {
	case pixel.Y8:
		return ColorGrey, true
	case pixel.RGB8:
		return ColorRGB, true
	case pixel.RGBA8:
		return ColorRGBA, true
	default:
		return 0, false
	}
}

// compressScanlines emits one filter-0 byte per row followed by the raw
// component bytes, then deflates the whole buffer through
// klauspost/compress/zlib.
func compressScanlines[S pixel.Sample, P pixel.Pixel[S, P]](img pixel.Image[S, P]) ([]byte, error) {
	var zero P
	n := zero.N()
	rowBytes := img.Width * n

	var plain bytes.Buffer
	plain.Grow(img.Height * (rowBytes + 1))
	row := make([]byte, rowBytes+1)
	for y := 0; y < img.Height; y++ {
		srcOff := y * rowBytes
		filterScanlineNone(row, toBytes(img.Data[srcOff:srcOff+rowBytes]))
		plain.Write(row)
	}

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(plain.Bytes()); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

// toBytes is a no-op for the byte-sample family the encoder restricts
// itself to; it exists only so compressScanlines can stay generic over
// S without the compiler rejecting a direct []S -> []byte conversion.
func toBytes[S pixel.Sample](s []S) []byte {
	out := make([]byte, len(s))
	for i, v := range s {
		out[i] = byte(any(v).(uint8))
	}
	return out
}
