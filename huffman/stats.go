package huffman

import "math"

// DefaultTopK is the number of most frequent values a report lists by default
const DefaultTopK = 5

// Stats is the size accounting of one compression run.
// CompressedBits counts the encoded payload only, not the codebook.
type Stats struct {
	Pixels         int
	OriginalBits   int64 // Pixels * 8
	CompressedBits int64
}

// Ratio returns OriginalBits / CompressedBits, or 1.0 when nothing was encoded
func (s Stats) Ratio() float64 {
	if s.CompressedBits == 0 {
		return 1.0
	}
	return float64(s.OriginalBits) / float64(s.CompressedBits)
}

// SpaceSaved returns (1 - compressed/original) * 100
func (s Stats) SpaceSaved() float64 {
	if s.OriginalBits == 0 {
		return 0
	}
	return (1 - float64(s.CompressedBits)/float64(s.OriginalBits)) * 100
}

// SymbolStat describes one intensity value in a report
type SymbolStat struct {
	Value     byte
	Frequency int64
	Code      Code
}

// Report is the data an external reporter needs for one compression run
type Report struct {
	Stats
	Distinct          int
	TreeHeight        int
	TopK              []SymbolStat
	AverageCodeLength float64 // bits per pixel
	Entropy           float64 // Shannon entropy in bits per pixel
	LengthHistogram   map[int]int
	CodeBook          *CodeBook
}

// Report summarises the session, listing the k most frequent values.
// k < 0 lists every value.
func (s *Session) Report(k int) Report {
	stats := s.Stats()
	r := Report{
		Stats:           stats,
		Distinct:        s.freq.Len(),
		TreeHeight:      s.tree.Height(),
		LengthHistogram: s.codebook.LengthHistogram(),
		CodeBook:        s.codebook,
	}

	for _, e := range s.freq.MostFrequent(k) {
		code, _ := s.codebook.Lookup(e.Value)
		r.TopK = append(r.TopK, SymbolStat{Value: e.Value, Frequency: e.Count, Code: code})
	}

	total := float64(s.freq.Total())
	if total > 0 {
		r.AverageCodeLength = float64(stats.CompressedBits) / total
		for _, e := range s.freq.Entries() {
			p := float64(e.Count) / total
			r.Entropy -= p * math.Log2(p)
		}
	}
	return r
}
