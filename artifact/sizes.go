package artifact

import "github.com/cocosip/go-huffman-codec/huffman"

// Sizes extends the payload-only accounting of huffman.Stats with the
// size of the whole serialized container, codebook and header included
type Sizes struct {
	huffman.Stats
	ArtifactBytes int
}

// Measure returns the size accounting of a and its serialized form
func Measure(a *huffman.Artifact, serialized []byte) Sizes {
	return Sizes{Stats: a.Stats(), ArtifactBytes: len(serialized)}
}

// ArtifactBits returns the container size in bits
func (s Sizes) ArtifactBits() int64 {
	return int64(s.ArtifactBytes) * 8
}

// TotalRatio returns original bits divided by container bits,
// or 1.0 for an empty container
func (s Sizes) TotalRatio() float64 {
	if s.ArtifactBytes == 0 {
		return 1.0
	}
	return float64(s.OriginalBits) / float64(s.ArtifactBits())
}

// TotalSpaceSaved returns the space saved counting the whole container
func (s Sizes) TotalSpaceSaved() float64 {
	if s.OriginalBits == 0 {
		return 0
	}
	return (1 - float64(s.ArtifactBits())/float64(s.OriginalBits)) * 100
}
