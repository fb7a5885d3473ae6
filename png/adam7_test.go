package png

import "testing"

func TestAdam7IsPermutation(t *testing.T) {
	for _, size := range []struct{ w, h int }{{8, 8}, {7, 3}, {1, 1}, {16, 9}} {
		t.Run("", func(t *testing.T) {
			seen := make(map[[2]int]bool)
			total := 0
			for _, pass := range adam7Passes {
				pw, ph := pass.dims(size.w, size.h)
				for j := 0; j < ph; j++ {
					for k := 0; k < pw; k++ {
						x := pass.startCol + k*pass.colIncrement
						y := pass.startRow + j*pass.rowIncrement
						if x < 0 || x >= size.w || y < 0 || y >= size.h {
							t.Fatalf("pass produced out-of-bounds pixel (%d,%d) for %dx%d", x, y, size.w, size.h)
						}
						key := [2]int{x, y}
						if seen[key] {
							t.Fatalf("pixel (%d,%d) produced by more than one pass", x, y)
						}
						seen[key] = true
						total++
					}
				}
			}
			if total != size.w*size.h {
				t.Fatalf("passes produced %d pixels, want %d", total, size.w*size.h)
			}
		})
	}
}

func TestAdam7EightByEightPassCounts(t *testing.T) {
	want := []int{1, 1, 2, 4, 8, 16, 32}
	for i, pass := range adam7Passes {
		pw, ph := pass.dims(8, 8)
		if got := pw * ph; got != want[i] {
			t.Fatalf("pass %d: got %d pixels, want %d", i, got, want[i])
		}
	}
}
