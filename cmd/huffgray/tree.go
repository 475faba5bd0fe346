package main

import (
	"fmt"

	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/treeviz"
)

// runTree prints the tree as DOT. Images get the full weighted tree with
// the most frequent values highlighted; artifacts only carry a codebook,
// so their tree is rebuilt without weights.
func runTree(env *environment, args []string) error {
	if err := expectArgs(args, 1); err != nil {
		return err
	}
	input := args[0]

	if isArtifact(input) {
		a, _, err := env.loadArtifact(input)
		if err != nil {
			return err
		}
		trie, err := huffman.TreeFromCodeBook(a.CodeBook)
		if err != nil {
			return fmt.Errorf("rebuilding tree of %s: %w", input, err)
		}
		return treeviz.WriteDOT(env.stdout, trie, treeviz.Options{})
	}

	g, err := env.loadGrid(input)
	if err != nil {
		return err
	}
	session, err := huffman.Compress(g, huffman.WithWorkers(env.options().Workers))
	if err != nil {
		return fmt.Errorf("building tree of %s: %w", input, err)
	}

	var highlight []byte
	for _, s := range session.Frequencies().MostFrequent(env.config.TopK) {
		highlight = append(highlight, s.Value)
	}
	return treeviz.WriteDOT(env.stdout, session.Tree(), treeviz.Options{
		Highlight:   highlight,
		Frequencies: true,
	})
}
