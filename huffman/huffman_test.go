package huffman

import (
	"errors"
	"math/rand"
	"testing"
)

// textbookFrequencies is the classic six-symbol example whose optimal
// weighted code length is 224 bits
var textbookFrequencies = map[byte]int64{
	'A': 5, 'B': 9, 'C': 12, 'D': 13, 'E': 16, 'F': 45,
}

func mustBits(t *testing.T, s string) *BitSequence {
	t.Helper()
	bw := NewBitWriter()
	for _, r := range s {
		var bit uint64
		if r == '1' {
			bit = 1
		}
		if err := bw.WriteBit(bit); err != nil {
			t.Fatalf("WriteBit failed: %v", err)
		}
	}
	bits, err := bw.Finish()
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	return bits
}

func mustTree(t *testing.T, counts map[byte]int64) *Tree {
	t.Helper()
	ft, err := NewFrequencyTable(counts)
	if err != nil {
		t.Fatalf("NewFrequencyTable failed: %v", err)
	}
	tree, err := BuildTree(ft)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	return tree
}

func randomGrid(rng *rand.Rand, rows, cols, distinct int) *Grid {
	palette := rng.Perm(256)[:distinct]
	pix := make([]byte, rows*cols)
	for i := range pix {
		// Skewed pick so code lengths differ
		idx := int(float64(distinct) * rng.Float64() * rng.Float64())
		pix[i] = byte(palette[idx])
	}
	return &Grid{Rows: rows, Cols: cols, Pix: pix}
}

func TestTextbookWeightedLength(t *testing.T) {
	ft, err := NewFrequencyTable(textbookFrequencies)
	if err != nil {
		t.Fatalf("NewFrequencyTable failed: %v", err)
	}
	tree, err := BuildTree(ft)
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	cb, err := GenerateCodeBook(tree)
	if err != nil {
		t.Fatalf("GenerateCodeBook failed: %v", err)
	}

	total, err := cb.WeightedLength(ft)
	if err != nil {
		t.Fatalf("WeightedLength failed: %v", err)
	}
	if total != 224 {
		t.Errorf("weighted length = %d, want 224", total)
	}

	want := map[byte]string{
		'F': "0",
		'C': "100",
		'D': "101",
		'A': "1100",
		'B': "1101",
		'E': "111",
	}
	for v, code := range want {
		got, ok := cb.Lookup(v)
		if !ok {
			t.Errorf("value %c missing from codebook", v)
			continue
		}
		if got.String() != code {
			t.Errorf("code(%c) = %s, want %s", v, got, code)
		}
	}
}

func TestBuildTreeShape(t *testing.T) {
	tree := mustTree(t, textbookFrequencies)

	if tree.LeafCount() != 6 {
		t.Errorf("LeafCount() = %d, want 6", tree.LeafCount())
	}
	if tree.Len() != 11 {
		t.Errorf("Len() = %d, want 11 (6 leaves + 5 internal)", tree.Len())
	}
	if root := tree.Node(tree.Root()); root.Freq != 100 {
		t.Errorf("root frequency = %d, want 100", root.Freq)
	}

	for i := 0; i < tree.Len(); i++ {
		n := tree.Node(NodeIndex(i))
		if n.Leaf {
			continue
		}
		sum := tree.Node(n.Left).Freq + tree.Node(n.Right).Freq
		if n.Freq != sum {
			t.Errorf("node %d frequency %d != children sum %d", i, n.Freq, sum)
		}
	}
}

func TestBuildTreeTieBreak(t *testing.T) {
	tests := []struct {
		name   string
		counts map[byte]int64
		want   map[byte]string
	}{
		{
			name:   "equal leaves merge in value order",
			counts: map[byte]int64{0: 1, 1: 1, 2: 1, 3: 1},
			want:   map[byte]string{0: "00", 1: "01", 2: "10", 3: "11"},
		},
		{
			name:   "leaf queued before merged node of equal weight",
			counts: map[byte]int64{10: 1, 20: 1, 30: 2},
			want:   map[byte]string{30: "0", 10: "10", 20: "11"},
		},
		{
			name:   "two values",
			counts: map[byte]int64{200: 7, 100: 3},
			want:   map[byte]string{100: "0", 200: "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Repeat to catch any dependence on map iteration order
			for run := 0; run < 10; run++ {
				cb, err := GenerateCodeBook(mustTree(t, tt.counts))
				if err != nil {
					t.Fatalf("GenerateCodeBook failed: %v", err)
				}
				for v, code := range tt.want {
					got, _ := cb.Lookup(v)
					if got.String() != code {
						t.Fatalf("run %d: code(%d) = %s, want %s", run, v, got, code)
					}
				}
			}
		})
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	ft, _ := NewFrequencyTable(nil)
	if _, err := BuildTree(ft); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("BuildTree(empty) error = %v, want %v", err, ErrEmptyInput)
	}
	if _, err := BuildTree(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("BuildTree(nil) error = %v, want %v", err, ErrEmptyInput)
	}
}

func TestHeightBeyondMaxCodeLength(t *testing.T) {
	// Fibonacci counts build a chain one level deeper per value
	counts := make(map[byte]int64)
	a, b := int64(1), int64(1)
	for v := 0; v < 70; v++ {
		counts[byte(v)] = a
		a, b = b, a+b
	}
	tree := mustTree(t, counts)

	if h := tree.Height(); h != 69 {
		t.Errorf("Height() = %d, want 69", h)
	}
	if _, err := GenerateCodeBook(tree); !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("GenerateCodeBook error = %v, want %v", err, ErrCodeTooLong)
	}
}

func TestGenerateCodeBookUntrained(t *testing.T) {
	if _, err := GenerateCodeBook(nil); !errors.Is(err, ErrUntrainedTree) {
		t.Errorf("GenerateCodeBook(nil) error = %v, want %v", err, ErrUntrainedTree)
	}
	if _, err := GenerateCodeBook(&Tree{}); !errors.Is(err, ErrUntrainedTree) {
		t.Errorf("GenerateCodeBook(empty tree) error = %v, want %v", err, ErrUntrainedTree)
	}
}

func TestCodeBookPrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, distinct := range []int{2, 3, 17, 100, 256} {
		g := randomGrid(rng, 64, 64, distinct)
		s, err := Compress(g)
		if err != nil {
			t.Fatalf("Compress failed: %v", err)
		}
		entries := s.CodeBook().Entries()
		for i, a := range entries {
			for j, b := range entries {
				if i != j && b.Code.HasPrefix(a.Code) {
					t.Fatalf("distinct=%d: %s (value %d) is a prefix of %s (value %d)",
						distinct, a.Code, a.Value, b.Code, b.Value)
				}
			}
		}
		if err := s.CodeBook().Validate(); err != nil {
			t.Errorf("distinct=%d: Validate() = %v", distinct, err)
		}
	}
}

func TestNewCodeBookRejectsPrefix(t *testing.T) {
	_, err := NewCodeBook(map[byte]Code{
		1: {Bits: 0b0, Len: 1},
		2: {Bits: 0b01, Len: 2},
	})
	if !errors.Is(err, ErrMalformedTree) {
		t.Errorf("NewCodeBook error = %v, want %v", err, ErrMalformedTree)
	}

	_, err = NewCodeBook(map[byte]Code{1: {Bits: 0, Len: 0}})
	if !errors.Is(err, ErrMalformedTree) {
		t.Errorf("NewCodeBook(empty codeword) error = %v, want %v", err, ErrMalformedTree)
	}

	_, err = NewCodeBook(map[byte]Code{1: {Bits: 0b100, Len: 2}})
	if !errors.Is(err, ErrMalformedTree) {
		t.Errorf("NewCodeBook(stray bits) error = %v, want %v", err, ErrMalformedTree)
	}
}

func TestCompressionRatioTwoValues(t *testing.T) {
	pix := make([]byte, 1000)
	for i := range pix {
		if i%3 == 0 {
			pix[i] = 255
		}
	}
	g, err := GridFromPixels(10, 100, pix)
	if err != nil {
		t.Fatalf("GridFromPixels failed: %v", err)
	}

	s, err := Compress(g)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	stats := s.Stats()
	if stats.OriginalBits != 8000 {
		t.Errorf("OriginalBits = %d, want 8000", stats.OriginalBits)
	}
	if stats.CompressedBits != 1000 {
		t.Errorf("CompressedBits = %d, want 1000", stats.CompressedBits)
	}
	if stats.Ratio() != 8.0 {
		t.Errorf("Ratio() = %v, want 8.0", stats.Ratio())
	}
	if stats.SpaceSaved() != 87.5 {
		t.Errorf("SpaceSaved() = %v, want 87.5", stats.SpaceSaved())
	}
}

func TestStatsRatioZero(t *testing.T) {
	if r := (Stats{}).Ratio(); r != 1.0 {
		t.Errorf("Ratio() of empty stats = %v, want 1.0", r)
	}
}

func TestSingleValueGrid(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {3, 4}, {50, 7}} {
		g, _ := NewGrid(shape[0], shape[1])
		for i := range g.Pix {
			g.Pix[i] = 42
		}

		s, err := Compress(g)
		if err != nil {
			t.Fatalf("%v: Compress failed: %v", shape, err)
		}
		cb := s.CodeBook()
		if cb.Len() != 1 {
			t.Fatalf("%v: codebook has %d entries, want 1", shape, cb.Len())
		}
		code, ok := cb.Lookup(42)
		if !ok || code.String() != "0" {
			t.Errorf("%v: code(42) = %q, want \"0\"", shape, code)
		}
		if got := s.Artifact().Bits.Len(); got != g.Len() {
			t.Errorf("%v: bit length = %d, want %d", shape, got, g.Len())
		}

		decoded, err := Decompress(s.Artifact())
		if err != nil {
			t.Fatalf("%v: Decompress failed: %v", shape, err)
		}
		if !decoded.Equal(g) {
			t.Errorf("%v: round trip mismatch", shape)
		}
		if h := s.Tree().Height(); h != 0 {
			t.Errorf("%v: Height() = %d, want 0", shape, h)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tests := []struct {
		rows, cols, distinct int
	}{
		{1, 1, 1},
		{1, 2, 2},
		{7, 3, 2},
		{16, 16, 5},
		{33, 65, 64},
		{64, 64, 256},
		{1, 5000, 200},
	}

	for _, tt := range tests {
		g := randomGrid(rng, tt.rows, tt.cols, tt.distinct)
		s, err := Compress(g, WithWorkers(4))
		if err != nil {
			t.Fatalf("%dx%d: Compress failed: %v", tt.rows, tt.cols, err)
		}

		fromArtifact, err := Decompress(s.Artifact())
		if err != nil {
			t.Fatalf("%dx%d: Decompress failed: %v", tt.rows, tt.cols, err)
		}
		fromSession, err := s.Decompress()
		if err != nil {
			t.Fatalf("%dx%d: Session.Decompress failed: %v", tt.rows, tt.cols, err)
		}

		errors := 0
		for i := range g.Pix {
			if fromArtifact.Pix[i] != g.Pix[i] {
				errors++
				if errors <= 5 {
					t.Errorf("Pixel %d mismatch: got %d, want %d", i, fromArtifact.Pix[i], g.Pix[i])
				}
			}
		}
		if errors > 0 {
			t.Errorf("%dx%d: %d pixel errors", tt.rows, tt.cols, errors)
		}
		if !fromSession.Equal(g) {
			t.Errorf("%dx%d: session decode mismatch", tt.rows, tt.cols)
		}

		stats := s.Stats()
		t.Logf("%dx%d distinct=%d: %d -> %d bits (%.2fx)",
			tt.rows, tt.cols, s.Frequencies().Len(), stats.OriginalBits, stats.CompressedBits, stats.Ratio())
	}
}

func TestEncodedLengthMatchesWeightedLength(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGrid(rng, 40, 50, 90)
	s, err := Compress(g)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}

	weighted, err := s.CodeBook().WeightedLength(s.Frequencies())
	if err != nil {
		t.Fatalf("WeightedLength failed: %v", err)
	}
	if int64(s.Artifact().Bits.Len()) != weighted {
		t.Errorf("encoded %d bits, weighted length %d", s.Artifact().Bits.Len(), weighted)
	}

	// The cost of a Huffman tree equals the sum of its internal node weights
	var internal int64
	tree := s.Tree()
	for i := 0; i < tree.Len(); i++ {
		if n := tree.Node(NodeIndex(i)); !n.Leaf {
			internal += n.Freq
		}
	}
	if internal != weighted {
		t.Errorf("internal weight sum %d != weighted length %d", internal, weighted)
	}
}

func TestEncodeUnknownSymbol(t *testing.T) {
	cb, err := NewCodeBook(map[byte]Code{1: {Bits: 0, Len: 1}, 2: {Bits: 1, Len: 1}})
	if err != nil {
		t.Fatalf("NewCodeBook failed: %v", err)
	}
	g, _ := GridFromRows([][]int{{1, 2}, {3, 1}})

	if _, err := Encode(g, cb); !errors.Is(err, ErrUnknownSymbol) {
		t.Errorf("Encode error = %v, want %v", err, ErrUnknownSymbol)
	}
}

func TestDecodeErrors(t *testing.T) {
	textbook := mustTree(t, textbookFrequencies)
	single := mustTree(t, map[byte]int64{9: 4})

	incomplete, err := NewCodeBook(map[byte]Code{1: {Bits: 0b0, Len: 1}, 2: {Bits: 0b10, Len: 2}})
	if err != nil {
		t.Fatalf("NewCodeBook failed: %v", err)
	}
	partial, err := TreeFromCodeBook(incomplete)
	if err != nil {
		t.Fatalf("TreeFromCodeBook failed: %v", err)
	}

	tests := []struct {
		name       string
		tree       *Tree
		bits       string
		rows, cols int
		want       error
	}{
		{"ends mid-codeword", textbook, "0110", 1, 2, ErrTruncatedStream},
		{"too few values", textbook, "0", 1, 2, ErrTruncatedStream},
		{"empty stream", textbook, "", 2, 2, ErrTruncatedStream},
		{"too many values", textbook, "000", 1, 2, ErrShapeMismatch},
		{"partial codeword after last value", textbook, "0011", 1, 2, ErrShapeMismatch},
		{"fewer bits than pixels", textbook, "0000", 1 << 30, 1 << 30, ErrTruncatedStream},
		{"single leaf oversized", single, "0", 1 << 30, 3, ErrTruncatedStream},
		{"missing child", partial, "011", 1, 2, ErrMalformedTree},
		{"single leaf sees 1", single, "01", 1, 2, ErrMalformedTree},
		{"single leaf too many", single, "000", 1, 2, ErrShapeMismatch},
		{"zero rows", textbook, "0", 0, 1, ErrInvalidDimensions},
		{"untrained", nil, "0", 1, 1, ErrUntrainedTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.tree, mustBits(t, tt.bits), tt.rows, tt.cols)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeTextbook(t *testing.T) {
	tree := mustTree(t, textbookFrequencies)

	// F C A E B D
	g, err := Decode(tree, mustBits(t, "0"+"100"+"1100"+"111"+"1101"+"101"), 2, 3)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := []byte("FCAEBD")
	for i := range want {
		if g.Pix[i] != want[i] {
			t.Errorf("value %d = %c, want %c", i, g.Pix[i], want[i])
		}
	}
}

func TestCompressEmpty(t *testing.T) {
	g, _ := NewGrid(0, 10)
	if _, err := Compress(g); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Compress(empty) error = %v, want %v", err, ErrEmptyInput)
	}
	if _, err := CountFrequencies(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("CountFrequencies(nil) error = %v, want %v", err, ErrEmptyInput)
	}
}

func TestTreeFromCodeBookRoundTrip(t *testing.T) {
	original := mustTree(t, textbookFrequencies)
	cb, err := GenerateCodeBook(original)
	if err != nil {
		t.Fatalf("GenerateCodeBook failed: %v", err)
	}

	rebuilt, err := TreeFromCodeBook(cb)
	if err != nil {
		t.Fatalf("TreeFromCodeBook failed: %v", err)
	}
	if rebuilt.Len() != original.Len() {
		t.Errorf("rebuilt tree has %d nodes, want %d", rebuilt.Len(), original.Len())
	}

	again, err := GenerateCodeBook(rebuilt)
	if err != nil {
		t.Fatalf("GenerateCodeBook(rebuilt) failed: %v", err)
	}
	if !again.Equal(cb) {
		t.Error("codebook of rebuilt tree differs from original")
	}
}
