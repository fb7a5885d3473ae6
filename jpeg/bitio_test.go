package jpeg

import "testing"

func TestReceiveExtendCoversBothMagnitudeRanges(t *testing.T) {
	cases := []struct {
		bits, ssss, want int
	}{
		{0, 1, -1},
		{1, 1, 1},
		{0, 3, -7},
		{3, 3, -4},
		{4, 3, 4},
		{7, 3, 7},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := receiveExtend(c.bits, c.ssss); got != c.want {
			t.Fatalf("receiveExtend(%d,%d) = %d, want %d", c.bits, c.ssss, got, c.want)
		}
	}
}

func TestEntropyReaderDestuffsFFZero(t *testing.T) {
	// 0xFF 0x00 in the entropy stream encodes a literal 0xFF data byte.
	r := newEntropyReader([]byte{0xFF, 0x00, 0xAA})
	got := r.readBits(16)
	want := 0xFFAA
	if got != want {
		t.Fatalf("got %#04x, want %#04x", got, want)
	}
}

func TestEntropyReaderStopsAtRealMarker(t *testing.T) {
	r := newEntropyReader([]byte{0xAB, 0xFF, 0xD0})
	_ = r.readBits(8) // consuming the one real data byte also triggers the fill that runs into the marker
	if !r.atMarker {
		t.Fatalf("expected atMarker after running into a genuine marker")
	}
	if r.stoppedAt != markerRST0 {
		t.Fatalf("stoppedAt = %v, want RST0", r.stoppedAt)
	}
}

const markerRST0 = marker(0xD0)

func TestAlignToByteAndExpectRestartSucceeds(t *testing.T) {
	r := newEntropyReader([]byte{0xFF, 0xD0, 0x00})
	if err := r.alignToByteAndExpectRestart(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAlignToByteAndExpectRestartFailsWithoutMarker(t *testing.T) {
	r := newEntropyReader([]byte{0x00, 0x00, 0x00, 0x00})
	if err := r.alignToByteAndExpectRestart(); err == nil {
		t.Fatalf("expected MissingRestart error")
	}
}
