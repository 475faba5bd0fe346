package huffman

import (
	"fmt"
	"sort"
)

// CodeBook maps intensity values to prefix-free codewords
type CodeBook struct {
	codes [256]Code // Len == 0 marks an absent value
	n     int
}

// CodeEntry is one CodeBook mapping
type CodeEntry struct {
	Value byte
	Code  Code
}

// GenerateCodeBook labels every leaf with its root-to-leaf path,
// 0 for a left edge and 1 for a right edge. A single-leaf tree gets "0".
func GenerateCodeBook(t *Tree) (*CodeBook, error) {
	if t == nil || len(t.nodes) == 0 {
		return nil, ErrUntrainedTree
	}

	cb := &CodeBook{}
	err := t.Walk(func(info NodeInfo) error {
		if info.Leaf {
			cb.set(info.Value, info.Code)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cb, nil
}

// NewCodeBook builds a codebook from explicit codewords and checks that
// every codeword is non-empty and that none is a prefix of another
func NewCodeBook(codes map[byte]Code) (*CodeBook, error) {
	cb := &CodeBook{}
	for v, c := range codes {
		if c.Len <= 0 {
			return nil, fmt.Errorf("%w: empty codeword for value %d", ErrMalformedTree, v)
		}
		if c.Len > MaxCodeLength {
			return nil, fmt.Errorf("%w: %d bits for value %d", ErrCodeTooLong, c.Len, v)
		}
		if c.Len < MaxCodeLength && c.Bits>>uint(c.Len) != 0 {
			return nil, fmt.Errorf("%w: codeword for value %d has bits beyond its length", ErrMalformedTree, v)
		}
		cb.set(v, c)
	}
	if err := cb.Validate(); err != nil {
		return nil, err
	}
	return cb, nil
}

func (cb *CodeBook) set(v byte, c Code) {
	if cb.codes[v].Len == 0 {
		cb.n++
	}
	cb.codes[v] = c
}

// Lookup returns the codeword of v
func (cb *CodeBook) Lookup(v byte) (Code, bool) {
	c := cb.codes[v]
	return c, c.Len > 0
}

// Len returns the number of values with a codeword
func (cb *CodeBook) Len() int {
	return cb.n
}

// Entries returns the mappings in ascending value order
func (cb *CodeBook) Entries() []CodeEntry {
	entries := make([]CodeEntry, 0, cb.n)
	for v, c := range cb.codes {
		if c.Len > 0 {
			entries = append(entries, CodeEntry{Value: byte(v), Code: c})
		}
	}
	return entries
}

// Validate reports an error if any codeword is a prefix of another
func (cb *CodeBook) Validate() error {
	entries := cb.Entries()
	if len(entries) == 0 {
		return ErrUntrainedTree
	}

	// After sorting by code string, a prefix always sorts directly before
	// some word it prefixes, so checking neighbours is enough.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Code.String() < entries[j].Code.String()
	})
	for i := 1; i < len(entries); i++ {
		prev, cur := entries[i-1], entries[i]
		if cur.Code.HasPrefix(prev.Code) {
			return fmt.Errorf("%w: codeword %s of value %d is a prefix of %s of value %d",
				ErrMalformedTree, prev.Code, prev.Value, cur.Code, cur.Value)
		}
	}
	return nil
}

// Equal reports whether both codebooks hold the same mappings
func (cb *CodeBook) Equal(other *CodeBook) bool {
	if cb == nil || other == nil {
		return cb == other
	}
	return cb.codes == other.codes
}

// WeightedLength returns the total bits needed to encode ft with cb,
// the sum of frequency times codeword length
func (cb *CodeBook) WeightedLength(ft *FrequencyTable) (int64, error) {
	var total int64
	for _, e := range ft.Entries() {
		c, ok := cb.Lookup(e.Value)
		if !ok {
			return 0, fmt.Errorf("%w: value %d", ErrUnknownSymbol, e.Value)
		}
		total += e.Count * int64(c.Len)
	}
	return total, nil
}

// LengthHistogram returns, for each codeword length, how many values use it
func (cb *CodeBook) LengthHistogram() map[int]int {
	hist := make(map[int]int)
	for _, c := range cb.codes {
		if c.Len > 0 {
			hist[c.Len]++
		}
	}
	return hist
}
