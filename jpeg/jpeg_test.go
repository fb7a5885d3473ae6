package jpeg

import (
	"bytes"
	"testing"

	"github.com/alpmestan/juicypixels/pixel"
)

func TestEncodeDecodeRoundTripConstantColorSingleMCU(t *testing.T) {
	img := pixel.GenerateImage[uint8, pixel.YCbCr8](16, 16, func(x, y int) pixel.YCbCr8 {
		return pixel.YCbCr8{Y: 128, Cb: 128, Cr: 128}
	})

	var buf bytes.Buffer
	if err := Encode(&buf, img, 75); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got := buf.Bytes()
	if len(got) < 4 || got[0] != 0xFF || marker(got[1]) != markerSOI {
		t.Fatalf("stream does not start with SOI")
	}
	if got[len(got)-2] != 0xFF || marker(got[len(got)-1]) != markerEOI {
		t.Fatalf("stream does not end with EOI")
	}

	dyn, err := Decode(bytes.NewReader(got))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, ok := dyn.(pixel.DynYCbCr8)
	if !ok {
		t.Fatalf("Decode returned kind %v, want YCbCr8", dyn.Kind())
	}
	if decoded.Width() != 16 || decoded.Height() != 16 {
		t.Fatalf("decoded size = %dx%d, want 16x16", decoded.Width(), decoded.Height())
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			p := pixel.PixelAt(decoded.Image, x, y)
			if absByteDiff(p.Y, 128) > 3 || absByteDiff(p.Cb, 128) > 3 || absByteDiff(p.Cr, 128) > 3 {
				t.Fatalf("pixel (%d,%d) = %+v, want near {128 128 128}", x, y, p)
			}
		}
	}
}

func TestDecodeInvalidSignatureFails(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{0x00, 0x00, 0xFF, 0xD9}))
	if err == nil {
		t.Fatalf("expected error for bad JPEG signature")
	}
	perr, ok := err.(*pixel.Error)
	if !ok || perr.Kind != pixel.InvalidSignature {
		t.Fatalf("expected InvalidSignature, got %v", err)
	}
}

func absByteDiff(a, b byte) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestDecodeDataUnitRejectsACOverrunFromRepeatedZRL(t *testing.T) {
	dcTable := defaultHuffTable(defaultDCLumaCounts, defaultDCLumaSyms)
	acTable := defaultHuffTable(defaultACLumaCounts, defaultACLumaSyms)
	quant := scaleQuantTable(baseLumaQuant, 80)

	var buf bytes.Buffer
	w := newEntropyWriter(&buf)
	writeMagnitudeCoded(w, dcTable, 0)
	// Four ZRL symbols (run of 16 zeros each) starting at k=1 land at
	// k=1,17,33,49,65: the last one overruns position 63 without ever
	// writing an AC coefficient, so no ordinary s!=0 bounds check sees it.
	for i := 0; i < 4; i++ {
		emitHuffSymbol(w, acTable, 0xF0)
	}
	w.flush()

	dcPred := 0
	_, err := decodeDataUnit(newEntropyReader(buf.Bytes()), dcTable, acTable, quant, &dcPred)
	if err == nil {
		t.Fatalf("expected InvalidAc for a ZRL run overrunning position 63")
	}
	perr, ok := err.(*pixel.Error)
	if !ok || perr.Kind != pixel.InvalidAc {
		t.Fatalf("expected InvalidAc, got %v", err)
	}
}
