// Package treeviz renders Huffman trees as Graphviz DOT text.
package treeviz

import (
	"bufio"
	"fmt"
	"io"

	"github.com/cocosip/go-huffman-codec/huffman"
)

// Options controls DOT rendering
type Options struct {
	// Highlight lists leaf values drawn filled
	Highlight []byte

	// Frequencies adds node weights to the labels. Trees rebuilt from a
	// codebook carry no weights and should leave it off.
	Frequencies bool
}

// WriteDOT writes t as a top-down digraph. Edges are labeled with the
// codeword bit they contribute.
func WriteDOT(w io.Writer, t *huffman.Tree, opts Options) error {
	var highlight [256]bool
	for _, v := range opts.Highlight {
		highlight[v] = true
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph huffman {")
	fmt.Fprintln(bw, "\trankdir=TB;")
	fmt.Fprintln(bw, "\tnode [shape=ellipse, fontname=\"Helvetica\"];")

	err := t.Walk(func(info huffman.NodeInfo) error {
		var label, attrs string
		switch {
		case info.Leaf && opts.Frequencies:
			label = fmt.Sprintf("Value: %d\\nFreq: %d", info.Value, info.Freq)
		case info.Leaf:
			label = fmt.Sprintf("Value: %d\\nCode: %s", info.Value, info.Code)
		case opts.Frequencies:
			label = fmt.Sprintf("Freq: %d", info.Freq)
		default:
			attrs = ", shape=point"
		}
		if info.Leaf && highlight[info.Value] {
			attrs += ", style=filled, fillcolor=lightblue"
		}
		fmt.Fprintf(bw, "\tn%d [label=\"%s\"%s];\n", info.Index, label, attrs)

		if info.Parent != huffman.NoChild {
			fmt.Fprintf(bw, "\tn%d -> n%d [label=\"%s\"];\n", info.Parent, info.Index, info.Side)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
