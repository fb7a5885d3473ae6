package png

import "testing"

func TestUnfilterNone(t *testing.T) {
	cur := []byte{10, 20, 30}
	if err := unfilterScanline(filterNone, cur, nil, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{10, 20, 30}
	for i := range want {
		if cur[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, cur[i], want[i])
		}
	}
}

func TestUnfilterSub(t *testing.T) {
	// s=1: each byte adds the previous reconstructed byte in this row.
	cur := []byte{5, 3, 3, 3}
	if err := unfilterScanline(filterSub, cur, nil, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{5, 8, 11, 14}
	for i := range want {
		if cur[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, cur[i], want[i])
		}
	}
}

func TestUnfilterUp(t *testing.T) {
	prev := []byte{100, 101, 102}
	cur := []byte{1, 1, 1}
	if err := unfilterScanline(filterUp, cur, prev, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []byte{101, 102, 103}
	for i := range want {
		if cur[i] != want[i] {
			t.Fatalf("byte %d = %d, want %d", i, cur[i], want[i])
		}
	}
}

func TestUnfilterInvalidFilterByte(t *testing.T) {
	cur := []byte{1, 2, 3}
	if err := unfilterScanline(filterType(5), cur, nil, 1); err == nil {
		t.Fatalf("expected error for invalid filter byte")
	}
}

func TestUnfilterAverageWrapsModulo256(t *testing.T) {
	prev := []byte{250}
	cur := []byte{200}
	// a=0 (no left neighbour), b=250: floor((0+250)/2) = 125; 200+125=325 = 69 mod 256.
	if err := unfilterScanline(filterAverage, cur, prev, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur[0] != 69 {
		t.Fatalf("got %d, want 69", cur[0])
	}
}
