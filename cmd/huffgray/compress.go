package main

import (
	"fmt"
	"os"

	"github.com/cocosip/go-huffman-codec/artifact"
	"github.com/cocosip/go-huffman-codec/codec"
	"github.com/cocosip/go-huffman-codec/grayhuff"
)

func (env *environment) newCodec() *grayhuff.Codec {
	return grayhuff.New(
		grayhuff.WithLogger(env.logger),
		grayhuff.WithDefaults(env.options()),
	)
}

func (env *environment) options() *grayhuff.Options {
	return &grayhuff.Options{
		BaseOptions: codec.BaseOptions{Workers: env.config.Workers},
		Compression: env.config.CompressionTag(),
	}
}

func runCompress(env *environment, args []string) error {
	if err := expectArgs(args, 2); err != nil {
		return err
	}
	input, output := args[0], args[1]

	g, err := env.loadGrid(input)
	if err != nil {
		return err
	}

	session, data, err := env.newCodec().Compress(g, nil)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", input, err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("writing artifact %s: %w", output, err)
	}

	header, err := artifact.ParseHeader(data)
	if err != nil {
		return err
	}
	env.logger.Info("wrote artifact", "input", input, "output", output, "bytes", len(data))

	printReport(env.stdout, reportInput{
		name:        input,
		report:      session.Report(env.config.TopK),
		sizes:       artifact.Measure(session.Artifact(), data),
		compression: header.Compression,
		digest:      artifact.Digest(data),
	})
	return nil
}
