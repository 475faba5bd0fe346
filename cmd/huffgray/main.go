// huffgray compresses grayscale images with a per-image Huffman code.
//
// Usage:
//
//	huffgray compress [flags] <image|dicom> <out.hga>
//	huffgray decompress [flags] <in.hga> <out.png>
//	huffgray compare [flags] <original> <in.hga> <out.png>
//	huffgray inspect [flags] <in.hga>
//	huffgray tree [flags] <image|dicom|in.hga>
//
// Settings come from the file named by --config or HUFFGRAY_CONFIG;
// command-line flags override them.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/cocosip/go-huffman-codec/config"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// errUsage marks errors caused by bad command-line arguments
var errUsage = errors.New("usage error")

// command is one huffgray subcommand
type command struct {
	name    string
	args    string
	summary string
	run     func(env *environment, args []string) error
}

var commands = []command{
	{"compress", "<image|dicom> <out.hga>", "compress an image into an artifact", runCompress},
	{"decompress", "<in.hga> <out.png>", "reconstruct the image stored in an artifact", runDecompress},
	{"compare", "<original> <in.hga> <out.png>", "verify an artifact against its source and render both side by side", runCompare},
	{"inspect", "<in.hga>", "print header, digest and codebook of an artifact", runInspect},
	{"tree", "<image|dicom|in.hga>", "print the Huffman tree as Graphviz DOT", runTree},
}

// environment carries what every subcommand shares
type environment struct {
	stdout io.Writer
	stderr io.Writer
	config *config.Config
	logger *slog.Logger
	frame  int
}

// settings are the flags every subcommand accepts
type settings struct {
	configPath  string
	compression string
	workers     int
	topK        int
	frame       int
	logLevel    string
}

func (s *settings) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&s.configPath, "config", "", "path to a YAML config file (default: $"+config.EnvVar+")")
	flagSet.StringVarP(&s.compression, "compression", "c", "", "container compression: none, lz4 or zstd")
	flagSet.IntVarP(&s.workers, "workers", "w", 0, "goroutines counting frequencies (0: one per CPU)")
	flagSet.IntVarP(&s.topK, "top-k", "k", 0, "number of most frequent values to report")
	flagSet.IntVar(&s.frame, "frame", 0, "frame to read from multi-frame DICOM input")
	flagSet.StringVar(&s.logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// resolve loads the config file and applies the flags that were set
func (s *settings) resolve(flagSet *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case s.configPath != "":
		cfg, err = config.LoadFile(s.configPath)
	default:
		cfg, err = config.Load()
		if errors.Is(err, config.ErrNoConfig) {
			cfg, err = config.Default(), nil
		}
	}
	if err != nil {
		return nil, err
	}

	if flagSet.Changed("compression") {
		cfg.Compression = s.compression
	}
	if flagSet.Changed("workers") {
		cfg.Workers = s.workers
	}
	if flagSet.Changed("top-k") {
		cfg.TopK = s.topK
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = s.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		printUsage(stderr)
		if len(args) == 0 {
			return exitUsage
		}
		return exitOK
	}

	var cmd *command
	for i := range commands {
		if commands[i].name == args[0] {
			cmd = &commands[i]
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	var s settings
	flagSet := pflag.NewFlagSet("huffgray "+cmd.name, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "usage: huffgray %s [flags] %s\n\n%s\n\nflags:\n", cmd.name, cmd.args, cmd.summary)
		flagSet.PrintDefaults()
	}
	s.addFlags(flagSet)

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := s.resolve(flagSet)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	env := &environment{
		stdout: stdout,
		stderr: stderr,
		config: cfg,
		logger: cfg.Logger(stderr),
		frame:  s.frame,
	}
	if err := cmd.run(env, flagSet.Args()); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			flagSet.Usage()
			return exitUsage
		}
		return exitError
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: huffgray <command> [flags] [arguments]\n\ncommands:\n")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-11s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintf(w, "\nRun 'huffgray <command> --help' for the flags of a command.\n")
}

// expectArgs checks the positional argument count of a subcommand
func expectArgs(args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%w: expected %d arguments, got %d", errUsage, n, len(args))
	}
	return nil
}
