// Package png implements the PNG decoder and encoder: chunk framing
// with CRC-32 validation, all standard color types and bit depths,
// Adam7 de-interlacing, and an 8-bit Y8/RGB8/RGBA8 encoder. Compression
// is delegated to github.com/klauspost/compress/zlib.
package png

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/alpmestan/juicypixels/pixel"
)

const (
	stageStart = iota
	stageSeenIHDR
	stageSeenEnd
)

// Decode parses a PNG stream and returns the narrowest pixel type that
// losslessly represents its data.
func Decode(r io.Reader) (pixel.DynamicImage, error) {
	if err := checkSignature(r); err != nil {
		return nil, err
	}

	var h header
	var pal palette
	var idat bytes.Buffer
	stage := stageStart
	offset := int64(8)

	for stage != stageSeenEnd {
		c, err := readChunk(r, offset)
		if err != nil {
			return nil, err
		}
		offset += 12 + int64(len(c.payload))

		switch c.typ {
		case "IHDR":
			if stage != stageStart {
				return nil, pixel.ErrorfAt(pixel.MalformedStream, offset, "IHDR must be the first chunk")
			}
			h, err = parseIHDR(c.payload)
			if err != nil {
				return nil, err
			}
			stage = stageSeenIHDR
		case "PLTE":
			if stage != stageSeenIHDR {
				return nil, pixel.ErrorfAt(pixel.MalformedStream, offset, "PLTE out of order")
			}
			pal, err = parsePLTE(c.payload)
			if err != nil {
				return nil, err
			}
		case "IDAT":
			if stage != stageSeenIHDR {
				return nil, pixel.ErrorfAt(pixel.MalformedStream, offset, "IDAT out of order")
			}
			idat.Write(c.payload)
		case "IEND":
			stage = stageSeenEnd
		default:
			// Ancillary chunk: CRC already validated by readChunk, skip.
		}
	}

	if stage != stageSeenEnd {
		return nil, pixel.Errorf(pixel.MalformedStream, "missing IEND chunk")
	}
	if h.colorType == ColorPalette && pal == nil {
		return nil, pixel.Errorf(pixel.MissingPalette, "palette color type without PLTE chunk")
	}

	raw, err := inflateAndReconstruct(h, idat.Bytes())
	if err != nil {
		return nil, err
	}

	return mapToPixelImage(h, raw, pal)
}

// DecodeAs parses a PNG stream and promotes it to the caller-requested
// pixel type P, failing with IncompatiblePromotion if P is narrower
// than (or unrelated to) the data the file actually contains.
func DecodeAs[S pixel.Sample, P pixel.Pixel[S, P]](r io.Reader) (pixel.Image[S, P], error) {
	dyn, err := Decode(r)
	if err != nil {
		return pixel.Image[S, P]{}, err
	}
	var zero P
	targetKind := pixel.KindOf(zero)
	promoted, err := pixel.PromoteDynamicTo(dyn, targetKind)
	if err != nil {
		return pixel.Image[S, P]{}, err
	}
	return extractTyped[S, P](promoted)
}

// extractTyped unwraps a DynamicImage of the exact kind matching (S, P)
// into its concrete pixel.Image[S, P]. The type assertions below are
// exhaustive over the seven Dyn* wrapper types and always succeed
// because the caller has already established kind equality.
func extractTyped[S pixel.Sample, P pixel.Pixel[S, P]](dyn pixel.DynamicImage) (pixel.Image[S, P], error) {
	switch v := dyn.(type) {
	case pixel.DynY8:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynYF:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynYA8:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynRGB8:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynRGBF:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynRGBA8:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	case pixel.DynYCbCr8:
		if img, ok := any(v.Image).(pixel.Image[S, P]); ok {
			return img, nil
		}
	}
	return pixel.Image[S, P]{}, pixel.Errorf(pixel.IncompatiblePromotion, "internal: promoted kind did not match requested type")
}

// inflateAndReconstruct concatenates the IDAT payloads, inflates them,
// and runs filter reconstruction (directly, or per Adam7 pass),
// returning a flat raw-sample buffer of size width*height*samplesPerPixel
// with one 8-bit-range sample per (x, y, component).
func inflateAndReconstruct(h header, idat []byte) ([]byte, error) {
	if len(idat) < 6 {
		return nil, pixel.Errorf(pixel.Truncated, "compressed IDAT stream shorter than zlib header+Adler32 (%d bytes)", len(idat))
	}

	zr, err := zlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return nil, pixel.Errorf(pixel.MalformedStream, "zlib: %v", err)
	}
	defer zr.Close()
	inflated, err := io.ReadAll(zr)
	if err != nil {
		return nil, pixel.Errorf(pixel.Truncated, "inflate: %v", err)
	}

	spp := h.samplesPerPixel()
	raw := make([]byte, h.width*h.height*spp)

	if h.interlace == InterlaceNone {
		r := bytes.NewReader(inflated)
		if err := reconstructPass(r, h.bitDepth, spp, h.width, h.height, func(x, y, c int, v byte) {
			raw[(y*h.width+x)*spp+c] = v
		}); err != nil {
			return nil, err
		}
		return raw, nil
	}

	r := bytes.NewReader(inflated)
	for _, pass := range adam7Passes {
		pw, ph := pass.dims(h.width, h.height)
		if pw == 0 || ph == 0 {
			continue
		}
		err := reconstructPass(r, h.bitDepth, spp, pw, ph, func(px, py, c int, v byte) {
			x := pass.startCol + px*pass.colIncrement
			y := pass.startRow + py*pass.rowIncrement
			raw[(y*h.width+x)*spp+c] = v
		})
		if err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// reconstructPass runs filter reconstruction + bit-depth unpacking over
// one pass (or the whole image when not interlaced), calling set(x, y,
// component, value) for every decoded sample in raster order.
func reconstructPass(r *bytes.Reader, bitDepth, samplesPerPixel, width, height int, set func(x, y, c int, v byte)) error {
	s := stride(samplesPerPixel, bitDepth)
	rowBytes := (bitDepth*samplesPerPixel*width + 7) / 8

	var prev []byte
	for y := 0; y < height; y++ {
		ft, err := r.ReadByte()
		if err != nil {
			return pixel.Errorf(pixel.Truncated, "reading filter byte for row %d: %v", y, err)
		}
		cur := make([]byte, rowBytes)
		if _, err := io.ReadFull(r, cur); err != nil {
			return pixel.Errorf(pixel.Truncated, "reading scanline %d: %v", y, err)
		}
		if err := unfilterScanline(filterType(ft), cur, prev, s); err != nil {
			return err
		}

		samples := unpackSamples(cur, bitDepth, samplesPerPixel*width)
		for x := 0; x < width; x++ {
			for c := 0; c < samplesPerPixel; c++ {
				set(x, y, c, samples[x*samplesPerPixel+c])
			}
		}
		prev = cur
	}
	return nil
}

// mapToPixelImage applies the color-type -> pixel-type promotion to a
// raw-sample buffer, returning the narrowest DynamicImage that
// losslessly represents the file.
func mapToPixelImage(h header, raw []byte, pal palette) (pixel.DynamicImage, error) {
	w, ht := h.width, h.height

	switch h.colorType {
	case ColorGrey:
		if h.bitDepth >= 8 {
			img := pixel.NewMutableImage[uint8, pixel.Y8](w, ht)
			copy(img.Data, raw)
			return pixel.DynY8{Image: img.Freeze()}, nil
		}
		// Depths 1, 2, 4: synthesize a grey palette and take the
		// palette-to-RGBA8 path.
		grey := syntheticGreyPalette(h.bitDepth)
		return palettizedToRGBA8(w, ht, raw, grey)
	case ColorPalette:
		if pal == nil {
			return nil, pixel.Errorf(pixel.MissingPalette, "palette color type without PLTE chunk")
		}
		img := pixel.NewMutableImage[uint8, pixel.RGB8](w, ht)
		for i := 0; i < w*ht; i++ {
			rgb, err := pal.at(raw[i])
			if err != nil {
				return nil, err
			}
			img.Data[3*i], img.Data[3*i+1], img.Data[3*i+2] = rgb.R, rgb.G, rgb.B
		}
		return pixel.DynRGB8{Image: img.Freeze()}, nil
	case ColorGreyAlpha:
		img := pixel.NewMutableImage[uint8, pixel.YA8](w, ht)
		copy(img.Data, raw)
		return pixel.DynYA8{Image: img.Freeze()}, nil
	case ColorRGB:
		img := pixel.NewMutableImage[uint8, pixel.RGB8](w, ht)
		copy(img.Data, raw)
		return pixel.DynRGB8{Image: img.Freeze()}, nil
	case ColorRGBA:
		img := pixel.NewMutableImage[uint8, pixel.RGBA8](w, ht)
		copy(img.Data, raw)
		return pixel.DynRGBA8{Image: img.Freeze()}, nil
	default:
		return nil, pixel.Errorf(pixel.MalformedStream, "unknown color type %d", h.colorType)
	}
}

// palettizedToRGBA8 looks every raw sample up in pal and promotes the
// resulting RGB8 to RGBA8 with full alpha.
func palettizedToRGBA8(w, h int, raw []byte, pal palette) (pixel.DynamicImage, error) {
	img := pixel.NewMutableImage[uint8, pixel.RGBA8](w, h)
	for i := 0; i < w*h; i++ {
		rgb, err := pal.at(raw[i])
		if err != nil {
			return nil, err
		}
		img.Data[4*i], img.Data[4*i+1], img.Data[4*i+2], img.Data[4*i+3] = rgb.R, rgb.G, rgb.B, 255
	}
	return pixel.DynRGBA8{Image: img.Freeze()}, nil
}
