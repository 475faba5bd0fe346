// Package huffman implements lossless Huffman coding of 8-bit grayscale
// grids: frequency counting, tree construction, codebook generation,
// bit-stream encoding and tree-driven decoding.
//
// A compression run is
//
//	grid -> FrequencyTable -> Tree -> CodeBook -> BitSequence -> Artifact
//
// and Decompress reverses it from the Artifact alone. Trees are arenas of
// nodes linked by index. Every value returned by Compress is immutable, so
// sessions can be used from several goroutines.
package huffman
