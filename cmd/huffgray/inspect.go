package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/cocosip/go-huffman-codec/artifact"
)

func runInspect(env *environment, args []string) error {
	if err := expectArgs(args, 1); err != nil {
		return err
	}

	a, data, err := env.loadArtifact(args[0])
	if err != nil {
		return err
	}
	header, err := artifact.ParseHeader(data)
	if err != nil {
		return err
	}
	sizes := artifact.Measure(a, data)
	digest := artifact.Digest(data)

	tw := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "File:\t%s\n", args[0])
	fmt.Fprintf(tw, "Format:\tHGA version %d, %s, record %s\n",
		header.Version, header.Compression, humanize.IBytes(uint64(header.BodyLength)))
	fmt.Fprintf(tw, "Dimensions:\t%d rows x %d cols\n", a.Rows, a.Cols)
	fmt.Fprintf(tw, "Payload:\t%s bits, ratio %.2fx\n", humanize.Comma(sizes.CompressedBits), sizes.Ratio())
	fmt.Fprintf(tw, "Artifact:\t%s, ratio %.2fx\n", humanize.IBytes(uint64(len(data))), sizes.TotalRatio())
	fmt.Fprintf(tw, "Digest:\t%s\n", artifact.FormatDigest(digest))
	fmt.Fprintf(tw, "Ref:\t%s\n", artifact.FormatRef(digest))
	fmt.Fprintf(tw, "Codewords:\t%d\n", a.CodeBook.Len())
	tw.Flush()

	fmt.Fprintln(env.stdout)
	printCodeBook(env.stdout, a.CodeBook)
	printHistogram(env.stdout, a.CodeBook.LengthHistogram())
	return nil
}
