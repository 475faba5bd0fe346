package huffman

import "fmt"

// Encode concatenates the codeword of every pixel in row-major order.
// Every pixel value must have a codeword in cb.
func Encode(g *Grid, cb *CodeBook) (*BitSequence, error) {
	if g == nil || g.Len() == 0 {
		return nil, ErrEmptyInput
	}
	if cb == nil || cb.Len() == 0 {
		return nil, ErrUntrainedTree
	}

	bw := NewBitWriter()
	for i, p := range g.Pix {
		code, ok := cb.Lookup(p)
		if !ok {
			return nil, fmt.Errorf("%w: value %d at (%d, %d)", ErrUnknownSymbol, p, i/g.Cols, i%g.Cols)
		}
		if err := bw.WriteCode(code); err != nil {
			return nil, fmt.Errorf("writing pixel %d: %w", i, err)
		}
	}
	return bw.Finish()
}
