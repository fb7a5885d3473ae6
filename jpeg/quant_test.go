package jpeg

import "testing"

func TestZigzagIsPermutationOf64(t *testing.T) {
	seen := make(map[int]bool)
	for _, n := range zigzag {
		if n < 0 || n >= 64 {
			t.Fatalf("zigzag entry %d out of range", n)
		}
		if seen[n] {
			t.Fatalf("zigzag entry %d repeated", n)
		}
		seen[n] = true
	}
}

func TestZigzagInverseIsInvolution(t *testing.T) {
	var v [64]int
	for i := range v {
		v[i] = i * 7 % 97
	}
	got := inverseZigzag(forwardZigzag(v))
	if got != v {
		t.Fatalf("round trip = %v, want %v", got, v)
	}
}

func TestScaleQuantTableClampsToRange(t *testing.T) {
	for _, q := range []int{1, 25, 50, 75, 100} {
		t.Run("", func(t *testing.T) {
			scaled := scaleQuantTable(baseLumaQuant, q)
			for i, v := range scaled {
				if v < 1 || v > 255 {
					t.Fatalf("entry %d = %d out of [1,255] at quality %d", i, v, q)
				}
			}
		})
	}
}

func TestScaleQuantTableAtQuality50MatchesBase(t *testing.T) {
	scaled := scaleQuantTable(baseLumaQuant, 50)
	if scaled != baseLumaQuant {
		t.Fatalf("quality 50 should reproduce the base Annex K table unscaled, got %v", scaled)
	}
}

func TestRoundHalfUpDivSign(t *testing.T) {
	cases := []struct{ v, q, want int }{
		{10, 4, 3},  // 10/4 = 2.5 -> rounds up to 3
		{-10, 4, -3},
		{9, 4, 2},   // 9/4 = 2.25 -> 2
		{0, 4, 0},
	}
	for _, c := range cases {
		if got := roundHalfUpDiv(c.v, c.q); got != c.want {
			t.Fatalf("roundHalfUpDiv(%d,%d) = %d, want %d", c.v, c.q, got, c.want)
		}
	}
}

func TestMagnitudeBits(t *testing.T) {
	cases := []struct{ v, want int }{
		{0, 0}, {1, 1}, {-1, 1}, {3, 2}, {-3, 2}, {4, 3}, {255, 8},
	}
	for _, c := range cases {
		if got := magnitudeBits(c.v); got != c.want {
			t.Fatalf("magnitudeBits(%d) = %d, want %d", c.v, got, c.want)
		}
	}
}
