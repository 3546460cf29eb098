package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds document defaults.
type documentFlags struct {
	dateFormat string
	state      string
	county     string
	assetPath  string
}

// imageFlags holds artwork download flags.
type imageFlags struct {
	disabled       bool
	ipfsGateway    string
	arweaveGateway string
	timeout        string
	concurrency    int
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common   commonFlags
	input    string
	output   string
	document documentFlags
	images   imageFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common   commonFlags
	addr     string
	workers  int
	document documentFlags
	images   imageFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.dateFormat, "date-format", "", "generation date format: iso, european, us, long, or tokens")
	fs.StringVar(&f.state, "state", "", "notarization state when the bundle has none")
	fs.StringVar(&f.county, "county", "", "notarization county when the bundle has none")
	fs.StringVar(&f.assetPath, "assets", "", "directory with legal/*.tmpl overrides")
}

// addImageFlags adds artwork flags to a FlagSet.
func addImageFlags(fs *flag.FlagSet, f *imageFlags) {
	fs.BoolVar(&f.disabled, "no-images", false, "skip artwork downloads")
	fs.StringVar(&f.ipfsGateway, "ipfs-gateway", "", "HTTP gateway for ipfs:// URLs")
	fs.StringVar(&f.arweaveGateway, "arweave-gateway", "", "HTTP gateway for ar:// URLs")
	fs.StringVar(&f.timeout, "image-timeout", "", "per-image download timeout (e.g., 5s)")
	fs.IntVar(&f.concurrency, "image-concurrency", 0, "parallel image downloads (0 = default)")
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, stderr io.Writer) (*generateFlags, []string, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &generateFlags{}

	// I/O flags
	fs.StringVarP(&f.input, "input", "i", "", "input bundle (YAML or JSON)")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file or directory")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addImageFlags(fs, &f.images)

	fs.Usage = func() { printGenerateUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default :8080)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "concurrent generations (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addImageFlags(fs, &f.images)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: serve takes no arguments, got %q", ErrUsage, fs.Args())
	}

	return f, nil
}

// usageError marks flag parsing failures as usage errors, keeping
// flag.ErrHelp recognizable.
func usageError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
