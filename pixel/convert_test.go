package pixel

import "testing"

func TestConvertRoundTripWithinTolerance(t *testing.T) {
	for _, tc := range []struct {
		name string
		rgb  RGB8
	}{
		{"black", RGB8{0, 0, 0}},
		{"white", RGB8{255, 255, 255}},
		{"red", RGB8{255, 0, 0}},
		{"green", RGB8{0, 255, 0}},
		{"blue", RGB8{0, 0, 255}},
		{"mid-grey", RGB8{128, 128, 128}},
		{"arbitrary", RGB8{37, 201, 94}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ycc := ConvertRGB8ToYCbCr8(tc.rgb)
			back := ConvertYCbCr8ToRGB8(ycc)
			if absDiff(tc.rgb.R, back.R) > 2 || absDiff(tc.rgb.G, back.G) > 2 || absDiff(tc.rgb.B, back.B) > 2 {
				t.Fatalf("round trip %+v -> %+v -> %+v exceeds tolerance", tc.rgb, ycc, back)
			}
		})
	}
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func TestConvertGreyIsAchromatic(t *testing.T) {
	ycc := ConvertRGB8ToYCbCr8(RGB8{R: 128, G: 128, B: 128})
	if ycc.Cb != 128 || ycc.Cr != 128 {
		t.Fatalf("grey RGB should map to neutral chroma, got Cb=%d Cr=%d", ycc.Cb, ycc.Cr)
	}
}

func TestPromoteDAG(t *testing.T) {
	y := Y8{Y: 42}
	if got := PromoteY8ToYA8(y); got != (YA8{Y: 42, A: 255}) {
		t.Fatalf("PromoteY8ToYA8 = %+v", got)
	}
	if got := PromoteY8ToRGBA8(y); got != (RGBA8{R: 42, G: 42, B: 42, A: 255}) {
		t.Fatalf("PromoteY8ToRGBA8 = %+v", got)
	}
	viaYA8 := PromoteYA8ToRGBA8(PromoteY8ToYA8(y))
	direct := PromoteY8ToRGBA8(y)
	if viaYA8 != direct {
		t.Fatalf("promotion along different DAG paths diverged: %+v != %+v", viaYA8, direct)
	}
}

func TestLuma8(t *testing.T) {
	if got := Luma8(Y8{Y: 77}); got != 77 {
		t.Fatalf("Luma8(Y8) = %d, want 77", got)
	}
	rgb := RGB8{R: 255, G: 255, B: 255}
	if got := Luma8(rgb); got < 253 || got > 255 {
		t.Fatalf("Luma8(white RGB8) = %d, want close to 255", got)
	}
}
