package pixel

import "fmt"

// Image is an immutable width x height raster of pixel type P, backed by
// a single contiguous component buffer. Pixel (x, y) occupies
// Data[(y*Width+x)*N .. +N]. The origin is top-left; y grows downward.
//
// Invariant: len(Data) == Width*Height*N() at all times, where N is the
// component count of P.
type Image[S Sample, P Pixel[S, P]] struct {
	Width, Height int
	Data          []S
}

// NewImage allocates a zeroed Image of the given dimensions.
func NewImage[S Sample, P Pixel[S, P]](width, height int) Image[S, P] {
	var zero P
	return Image[S, P]{
		Width:  width,
		Height: height,
		Data:   make([]S, width*height*zero.N()),
	}
}

// MutableImage has the identical layout as Image but permits in-place
// component writes. Decoders allocate a MutableImage, fill it scanline
// by scanline or MCU by MCU, then hand it off as an immutable Image with
// no copy.
type MutableImage[S Sample, P Pixel[S, P]] struct {
	Width, Height int
	Data          []S
}

// NewMutableImage allocates a zeroed MutableImage of the given dimensions.
func NewMutableImage[S Sample, P Pixel[S, P]](width, height int) MutableImage[S, P] {
	var zero P
	return MutableImage[S, P]{
		Width:  width,
		Height: height,
		Data:   make([]S, width*height*zero.N()),
	}
}

// Freeze hands the buffer off as an immutable Image with no copy.
func (m MutableImage[S, P]) Freeze() Image[S, P] {
	return Image[S, P]{Width: m.Width, Height: m.Height, Data: m.Data}
}

// PixelAt reads the pixel at (x, y). It panics if (x, y) is out of
// bounds: an out-of-bounds access here is a programmer bug, not a
// recoverable decode error.
func PixelAt[S Sample, P Pixel[S, P]](img Image[S, P], x, y int) P {
	var zero P
	n := zero.N()
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("pixel: PixelAt(%d, %d) out of bounds for %dx%d image", x, y, img.Width, img.Height))
	}
	idx := (y*img.Width + x) * n
	return zero.FromComponents(img.Data[idx : idx+n])
}

// UnsafePixelAt reads the pixel whose first component sits at component
// index i, with no bounds check. Callers must have already established
// that i+N() <= len(buf).
func UnsafePixelAt[S Sample, P Pixel[S, P]](buf []S, i int) P {
	var zero P
	n := zero.N()
	return zero.FromComponents(buf[i : i+n])
}

// ReadPixel reads the pixel at (x, y) from a MutableImage; it mirrors
// PixelAt and panics on out-of-bounds (x, y).
func ReadPixel[S Sample, P Pixel[S, P]](img MutableImage[S, P], x, y int) P {
	return PixelAt(img.Freeze(), x, y)
}

// WritePixel overwrites the pixel at (x, y) in place. It panics if
// (x, y) is out of bounds.
func WritePixel[S Sample, P Pixel[S, P]](img MutableImage[S, P], x, y int, p P) {
	n := p.N()
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		panic(fmt.Sprintf("pixel: WritePixel(%d, %d) out of bounds for %dx%d image", x, y, img.Width, img.Height))
	}
	idx := (y*img.Width + x) * n
	copy(img.Data[idx:idx+n], p.Components())
}

// GenerateImage builds an Image by calling f(x, y) once per pixel in
// raster order (rows top to bottom, each row left to right).
func GenerateImage[S Sample, P Pixel[S, P]](width, height int, f func(x, y int) P) Image[S, P] {
	m := NewMutableImage[S, P](width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			WritePixel(m, x, y, f(x, y))
		}
	}
	return m.Freeze()
}

// GenerateFoldImage builds an Image like GenerateImage, but additionally
// threads an accumulator through the raster-order traversal.
func GenerateFoldImage[S Sample, P Pixel[S, P], A any](width, height int, acc0 A, f func(x, y int, acc A) (P, A)) (Image[S, P], A) {
	m := NewMutableImage[S, P](width, height)
	acc := acc0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var p P
			p, acc = f(x, y, acc)
			WritePixel(m, x, y, p)
		}
	}
	return m.Freeze(), acc
}

// PixelMap visits every source pixel exactly once, in raster order, and
// writes the mapped pixel into a freshly allocated destination image of
// (possibly different) pixel type Q. pixel_map(id) == id and
// pixel_map(g) . pixel_map(f) == pixel_map(g . f) hold for any f, g;
// fusing two successive PixelMap calls into one pass over f then g is a
// legal optimization a caller may perform itself.
func PixelMap[S Sample, P Pixel[S, P], T Sample, Q Pixel[T, Q]](img Image[S, P], f func(P) Q) Image[T, Q] {
	dst := NewMutableImage[T, Q](img.Width, img.Height)
	var zero P
	n := zero.N()
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := (y*img.Width + x) * n
			src := zero.FromComponents(img.Data[idx : idx+n])
			WritePixel(dst, x, y, f(src))
		}
	}
	return dst.Freeze()
}

// ColorMap applies f to every component of p, preserving pixel type.
func ColorMap[S Sample, P Pixel[S, P]](p P, f func(S) S) P {
	src := p.Components()
	out := make([]S, len(src))
	for i, v := range src {
		out[i] = f(v)
	}
	var zero P
	return zero.FromComponents(out)
}

// ExtractPlane copies component index `component` of every pixel into a
// new single-component image; stride between consecutive source
// components is N(P). It panics if component is outside [0, N(P)).
func ExtractPlane[S Sample, P Pixel[S, P]](img Image[S, P], component int) Image[S, Mono[S]] {
	var zero P
	n := zero.N()
	if component < 0 || component >= n {
		panic(fmt.Sprintf("pixel: ExtractPlane: component %d out of range [0,%d)", component, n))
	}
	dst := NewMutableImage[S, Mono[S]](img.Width, img.Height)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := (y*img.Width+x)*n + component
			WritePixel(dst, x, y, Mono[S]{V: img.Data[idx]})
		}
	}
	return dst.Freeze()
}
