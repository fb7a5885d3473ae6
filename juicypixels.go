// Package juicypixels is the format-agnostic codec surface over the
// png and jpeg packages: DecodePNG/DecodeJPEG return a DynamicImage,
// DecodePNGAs narrows to a statically-known pixel type, and the Encode*
// functions round out the library surface.
package juicypixels

import (
	"bytes"
	"io"

	"github.com/alpmestan/juicypixels/jpeg"
	"github.com/alpmestan/juicypixels/pixel"
	"github.com/alpmestan/juicypixels/png"
)

// DecodePNG parses a PNG stream into the narrowest pixel type that
// losslessly represents it.
func DecodePNG(r io.Reader) (pixel.DynamicImage, error) {
	return png.Decode(r)
}

// DecodePNGAs parses a PNG stream and promotes it to pixel type P,
// failing with IncompatiblePromotion if the file can't losslessly
// promote to P.
func DecodePNGAs[S pixel.Sample, P pixel.Pixel[S, P]](r io.Reader) (pixel.Image[S, P], error) {
	return png.DecodeAs[S, P](r)
}

// EncodePNG writes img as an 8-bit PNG. P must be Y8, RGB8 or RGBA8.
func EncodePNG[S pixel.Sample, P pixel.Pixel[S, P]](w io.Writer, img pixel.Image[S, P]) error {
	return png.Encode(w, img)
}

// DecodeJPEG parses a baseline sequential JPEG stream, returning
// Image<Y8> for single-component streams or Image<YCbCr8> for
// three-component ones.
func DecodeJPEG(r io.Reader) (pixel.DynamicImage, error) {
	return jpeg.Decode(r)
}

// EncodeJPEG writes img as a baseline sequential 4:2:0 JPEG at the
// given quality (0..100).
func EncodeJPEG(w io.Writer, img pixel.Image[uint8, pixel.YCbCr8], quality int) error {
	return jpeg.Encode(w, img, quality)
}

// DecodeAny sniffs the PNG signature to dispatch between the two
// decoders, the way a format-agnostic caller normally wants to work:
// it never inspects a filename extension, only the bytes themselves.
func DecodeAny(r io.Reader) (pixel.DynamicImage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(data, []byte{137, 80, 78, 71, 13, 10, 26, 10}) {
		return png.Decode(bytes.NewReader(data))
	}
	return jpeg.Decode(bytes.NewReader(data))
}
