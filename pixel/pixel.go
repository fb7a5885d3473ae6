// Package pixel defines the statically-typed pixel model shared by the
// PNG and JPEG codecs: fixed-layout pixel records, the generic Image
// buffer they live in, and the promotion/conversion operations that move
// between pixel types.
package pixel

// Sample is the scalar component type a pixel's channels are stored as.
type Sample interface {
	uint8 | float32
}

// Pixel is satisfied by every concrete pixel record type: Y8, YA8, RGB8,
// RGBA8, YCbCr8, YF, RGBF. P is self-referential so that FromComponents
// can hand back the concrete type rather than a bare interface, giving
// callers of generic Image[S, P] operations a concrete P with no type
// assertion required.
type Pixel[S Sample, P any] interface {
	// N is the component count, constant per type (1, 2, 3 or 4).
	N() int
	// Components returns the pixel's channels in its fixed intra-pixel
	// order (e.g. R,G,B,A for RGBA8).
	Components() []S
	// FromComponents builds a P from exactly N() components in that order.
	FromComponents(c []S) P
}

// Y8 is a single 8-bit luminance sample.
type Y8 struct{ Y uint8 }

func (Y8) N() int                     { return 1 }
func (p Y8) Components() []S8         { return []S8{p.Y} }
func (Y8) FromComponents(c []S8) Y8   { return Y8{Y: c[0]} }

// YF is a single 32-bit float luminance sample.
type YF struct{ Y float32 }

func (YF) N() int                    { return 1 }
func (p YF) Components() []float32   { return []float32{p.Y} }
func (YF) FromComponents(c []float32) YF { return YF{Y: c[0]} }

// YA8 is an 8-bit luminance sample plus an 8-bit alpha channel.
type YA8 struct{ Y, A uint8 }

func (YA8) N() int                  { return 2 }
func (p YA8) Components() []S8      { return []S8{p.Y, p.A} }
func (YA8) FromComponents(c []S8) YA8 { return YA8{Y: c[0], A: c[1]} }

// RGB8 is an 8-bit-per-channel red/green/blue pixel.
type RGB8 struct{ R, G, B uint8 }

func (RGB8) N() int                   { return 3 }
func (p RGB8) Components() []S8       { return []S8{p.R, p.G, p.B} }
func (RGB8) FromComponents(c []S8) RGB8 { return RGB8{R: c[0], G: c[1], B: c[2]} }

// RGBF is a 32-bit-float-per-channel red/green/blue pixel.
type RGBF struct{ R, G, B float32 }

func (RGBF) N() int                      { return 3 }
func (p RGBF) Components() []float32     { return []float32{p.R, p.G, p.B} }
func (RGBF) FromComponents(c []float32) RGBF {
	return RGBF{R: c[0], G: c[1], B: c[2]}
}

// RGBA8 is an 8-bit-per-channel red/green/blue/alpha pixel.
type RGBA8 struct{ R, G, B, A uint8 }

func (RGBA8) N() int             { return 4 }
func (p RGBA8) Components() []S8 { return []S8{p.R, p.G, p.B, p.A} }
func (RGBA8) FromComponents(c []S8) RGBA8 {
	return RGBA8{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// YCbCr8 is an 8-bit-per-channel luma/chroma pixel, JPEG's native space.
type YCbCr8 struct{ Y, Cb, Cr uint8 }

func (YCbCr8) N() int             { return 3 }
func (p YCbCr8) Components() []S8 { return []S8{p.Y, p.Cb, p.Cr} }
func (YCbCr8) FromComponents(c []S8) YCbCr8 {
	return YCbCr8{Y: c[0], Cb: c[1], Cr: c[2]}
}

// S8 is shorthand for the byte sample type used throughout the
// byte-pixel family (Y8, YA8, RGB8, RGBA8, YCbCr8).
type S8 = uint8

// Mono[S] is a single-component pixel parameterized over its sample
// type; ExtractPlane produces images of this pixel type.
type Mono[S Sample] struct{ V S }

func (Mono[S]) N() int                       { return 1 }
func (m Mono[S]) Components() []S            { return []S{m.V} }
func (Mono[S]) FromComponents(c []S) Mono[S] { return Mono[S]{V: c[0]} }
