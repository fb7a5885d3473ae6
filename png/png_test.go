package png

import (
	"bytes"
	"testing"

	"github.com/alpmestan/juicypixels/pixel"
)

func TestEncodeDecodeRoundTripRGB8(t *testing.T) {
	img := pixel.GenerateImage[uint8, pixel.RGB8](1, 1, func(x, y int) pixel.RGB8 {
		return pixel.RGB8{R: 10, G: 20, B: 30}
	})

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got := buf.Bytes()[:8]
	want := []byte{137, 80, 78, 71, 13, 10, 26, 10}
	if !bytes.Equal(got, want) {
		t.Fatalf("signature = %v, want %v", got, want)
	}

	dyn, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, ok := dyn.(pixel.DynRGB8)
	if !ok {
		t.Fatalf("Decode returned kind %v, want RGB8", dyn.Kind())
	}
	px := pixel.PixelAt(decoded.Image, 0, 0)
	if px != (pixel.RGB8{R: 10, G: 20, B: 30}) {
		t.Fatalf("round trip pixel = %+v, want {10 20 30}", px)
	}
}

func TestEncodeDecodeRoundTripRGBA8(t *testing.T) {
	img := pixel.GenerateImage[uint8, pixel.RGBA8](4, 3, func(x, y int) pixel.RGBA8 {
		return pixel.RGBA8{R: uint8(x * 10), G: uint8(y * 10), B: 5, A: 200}
	})

	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dyn, err := Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, ok := dyn.(pixel.DynRGBA8)
	if !ok {
		t.Fatalf("Decode returned kind %v, want RGBA8", dyn.Kind())
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			if got, want := pixel.PixelAt(decoded.Image, x, y), pixel.PixelAt(img, x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
}

func TestDecodeCrcMismatchFails(t *testing.T) {
	img := pixel.GenerateImage[uint8, pixel.RGB8](1, 1, func(x, y int) pixel.RGB8 {
		return pixel.RGB8{R: 1, G: 2, B: 3}
	})
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	corrupted := buf.Bytes()
	// Flip a bit inside the IHDR payload without touching its CRC.
	corrupted[16] ^= 0xFF

	_, err := Decode(bytes.NewReader(corrupted))
	if err == nil {
		t.Fatalf("expected CrcMismatch error, got nil")
	}
	perr, ok := err.(*pixel.Error)
	if !ok || perr.Kind != pixel.CrcMismatch {
		t.Fatalf("expected CrcMismatch error, got %v", err)
	}
}

func TestDecodeInvalidSignature(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("not a png")))
	if err == nil {
		t.Fatalf("expected error for invalid signature")
	}
	perr, ok := err.(*pixel.Error)
	if !ok || perr.Kind != pixel.InvalidSignature {
		t.Fatalf("expected InvalidSignature error, got %v", err)
	}
}

func TestPaethMatchesReference(t *testing.T) {
	for a := 0; a < 256; a += 37 {
		for b := 0; b < 256; b += 41 {
			for c := 0; c < 256; c += 43 {
				got := paeth(byte(a), byte(b), byte(c))
				want := referencePaeth(byte(a), byte(b), byte(c))
				if got != want {
					t.Fatalf("paeth(%d,%d,%d) = %d, want %d", a, b, c, got, want)
				}
			}
		}
	}
}

// referencePaeth is a direct transcription of the Paeth predictor
// definition, used to cross-check the production implementation.
func referencePaeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
