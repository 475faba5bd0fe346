package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/huffman"
)

// histogramWidth is the longest bar drawn in the code length histogram
const histogramWidth = 40

type reportInput struct {
	name        string
	report      huffman.Report
	sizes       artifact.Sizes
	compression artifact.CompressionTag
	digest      artifact.Hash
}

func bitsToBytes(bits int64) uint64 {
	return uint64((bits + 7) / 8)
}

func printReport(w io.Writer, in reportInput) {
	r := in.report
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Input:\t%s\t%d pixels, %d distinct values\n", in.name, r.Pixels, r.Distinct)
	fmt.Fprintf(tw, "Original:\t%s\t%s bits\n",
		humanize.IBytes(bitsToBytes(r.OriginalBits)), humanize.Comma(r.OriginalBits))
	fmt.Fprintf(tw, "Payload:\t%s\t%s bits, ratio %.2fx, saved %.1f%%\n",
		humanize.IBytes(bitsToBytes(r.CompressedBits)), humanize.Comma(r.CompressedBits),
		r.Ratio(), r.SpaceSaved())
	fmt.Fprintf(tw, "Artifact:\t%s\t%s, ratio %.2fx, saved %.1f%%\n",
		humanize.IBytes(uint64(in.sizes.ArtifactBytes)), in.compression,
		in.sizes.TotalRatio(), in.sizes.TotalSpaceSaved())
	fmt.Fprintf(tw, "Entropy:\t%.3f bits/pixel\taverage code %.3f bits/pixel, tree height %d\n",
		r.Entropy, r.AverageCodeLength, r.TreeHeight)
	fmt.Fprintf(tw, "Digest:\t%s\t%s\n", artifact.FormatRef(in.digest), artifact.FormatDigest(in.digest))
	tw.Flush()

	if len(r.TopK) > 0 {
		fmt.Fprintf(w, "\nMost frequent values:\n")
		tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  VALUE\tFREQUENCY\tSHARE\tCODE\tLENGTH")
		for _, s := range r.TopK {
			fmt.Fprintf(tw, "  %d\t%s\t%.2f%%\t%s\t%d\n", s.Value, humanize.Comma(s.Frequency),
				100*float64(s.Frequency)/float64(r.Pixels), s.Code, s.Code.Len)
		}
		tw.Flush()
	}

	printHistogram(w, r.LengthHistogram)
}

// printHistogram draws how many values use each codeword length
func printHistogram(w io.Writer, hist map[int]int) {
	if len(hist) == 0 {
		return
	}
	lengths := make([]int, 0, len(hist))
	peak := 0
	for length, count := range hist {
		lengths = append(lengths, length)
		peak = max(peak, count)
	}
	slices.Sort(lengths)

	fmt.Fprintf(w, "\nCode lengths:\n")
	for _, length := range lengths {
		count := hist[length]
		bar := max(1, count*histogramWidth/peak)
		fmt.Fprintf(w, "  %2d bits %4d %s\n", length, count, strings.Repeat("#", bar))
	}
}

func printCodeBook(w io.Writer, cb *huffman.CodeBook) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  VALUE\tLENGTH\tCODE")
	for _, e := range cb.Entries() {
		fmt.Fprintf(tw, "  %d\t%d\t%s\n", e.Value, e.Code.Len, e.Code)
	}
	tw.Flush()
}
