package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

func TestCountFrequencies(t *testing.T) {
	g, err := GridFromRows([][]int{
		{0, 0, 1},
		{255, 1, 0},
	})
	if err != nil {
		t.Fatalf("GridFromRows failed: %v", err)
	}

	ft, err := CountFrequencies(g)
	if err != nil {
		t.Fatalf("CountFrequencies failed: %v", err)
	}
	if ft.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ft.Len())
	}
	if ft.Total() != int64(g.Len()) {
		t.Errorf("Total() = %d, want %d", ft.Total(), g.Len())
	}

	want := map[byte]int64{0: 3, 1: 2, 255: 1}
	for v, c := range want {
		got, ok := ft.Count(v)
		if !ok || got != c {
			t.Errorf("Count(%d) = %d, %v; want %d, true", v, got, ok, c)
		}
	}
	if _, ok := ft.Count(2); ok {
		t.Error("Count(2) reported a value absent from the grid")
	}
}

func TestCountFrequenciesParallelMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	g := randomGrid(rng, 97, 31, 150)

	serial, err := CountFrequencies(g)
	if err != nil {
		t.Fatalf("CountFrequencies failed: %v", err)
	}
	for _, workers := range []int{0, 1, 2, 5, 97, 500} {
		parallel, err := CountFrequenciesParallel(g, workers)
		if err != nil {
			t.Fatalf("workers=%d: CountFrequenciesParallel failed: %v", workers, err)
		}
		if parallel.Len() != serial.Len() || parallel.Total() != serial.Total() {
			t.Fatalf("workers=%d: got %d values / %d total, want %d / %d",
				workers, parallel.Len(), parallel.Total(), serial.Len(), serial.Total())
		}
		for _, e := range serial.Entries() {
			if c, _ := parallel.Count(e.Value); c != e.Count {
				t.Errorf("workers=%d: Count(%d) = %d, want %d", workers, e.Value, c, e.Count)
			}
		}
	}
}

func TestNewFrequencyTable(t *testing.T) {
	ft, err := NewFrequencyTable(map[byte]int64{1: 4, 2: 0, 3: 6})
	if err != nil {
		t.Fatalf("NewFrequencyTable failed: %v", err)
	}
	if ft.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (zero counts dropped)", ft.Len())
	}
	if ft.Total() != 10 {
		t.Errorf("Total() = %d, want 10", ft.Total())
	}

	if _, err := NewFrequencyTable(map[byte]int64{1: -1}); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("negative count error = %v, want %v", err, ErrInvalidFrequency)
	}
}

func TestMostFrequent(t *testing.T) {
	ft, _ := NewFrequencyTable(map[byte]int64{10: 3, 20: 9, 30: 3, 40: 1, 50: 9, 60: 2})

	got := ft.MostFrequent(4)
	want := []SymbolCount{{20, 9}, {50, 9}, {10, 3}, {30, 3}}
	if len(got) != len(want) {
		t.Fatalf("MostFrequent(4) returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if all := ft.MostFrequent(-1); len(all) != 6 {
		t.Errorf("MostFrequent(-1) returned %d entries, want 6", len(all))
	}
}

func TestGridFromRows(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want error
	}{
		{"valid", [][]int{{0, 255}, {7, 8}}, nil},
		{"negative", [][]int{{0, -1}}, ErrValueOutOfRange},
		{"too large", [][]int{{256}}, ErrValueOutOfRange},
		{"ragged", [][]int{{1, 2}, {3}}, ErrInvalidDimensions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GridFromRows(tt.rows)
			if !errors.Is(err, tt.want) {
				t.Fatalf("GridFromRows error = %v, want %v", err, tt.want)
			}
			if err != nil {
				return
			}
			back := g.Rows2D()
			for y := range tt.rows {
				for x := range tt.rows[y] {
					if back[y][x] != tt.rows[y][x] {
						t.Errorf("(%d, %d) = %d, want %d", y, x, back[y][x], tt.rows[y][x])
					}
				}
			}
		})
	}

	if _, err := GridFromPixels(2, 2, make([]byte, 3)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("GridFromPixels error = %v, want %v", err, ErrInvalidDimensions)
	}
}
