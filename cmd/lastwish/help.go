package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lastwish <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Render an instructions PDF from an allocation bundle")
	fmt.Fprintln(w, "  serve      Serve document generation over HTTP")
	fmt.Fprintln(w, "  doctor     Check configuration, templates and gateways")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'lastwish help <command>' for details on a specific command.")
}

func printDocumentFlags(w io.Writer) {
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --date-format <s>     Generation date format")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Signed] MMMM D")
	fmt.Fprintln(w, "      --state <s>           Notarization state when the bundle has none")
	fmt.Fprintln(w, "      --county <s>          Notarization county when the bundle has none")
	fmt.Fprintln(w, "      --assets <dir>        Directory with legal/*.tmpl overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --no-images           Skip artwork downloads (placeholders only)")
	fmt.Fprintln(w, "      --ipfs-gateway <url>  HTTP gateway for ipfs:// URLs")
	fmt.Fprintln(w, "      --arweave-gateway <url>")
	fmt.Fprintln(w, "                            HTTP gateway for ar:// URLs")
	fmt.Fprintln(w, "      --image-timeout <d>   Per-image download timeout (e.g., 5s)")
	fmt.Fprintln(w, "      --image-concurrency <n>")
	fmt.Fprintln(w, "                            Parallel image downloads (0 = default)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lastwish generate <bundle> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render an instructions PDF from a YAML or JSON allocation bundle.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  bundle    Bundle file (or use --input)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Bundle file")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF file or directory")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lastwish serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve document generation over HTTP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  GET  /health              Liveness and version")
	fmt.Fprintln(w, "  POST /api/v1/documents    JSON bundle in, application/pdf out")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Concurrent generations (0 = auto)")
	fmt.Fprintln(w)
	printDocumentFlags(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: lastwish doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check configuration, legal templates, image gateways and environment.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --offline             Skip gateway reachability checks")
	fmt.Fprintln(w, "      --json                Output in JSON format")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  All checks passed (warnings allowed)")
	fmt.Fprintln(w, "  1  One or more checks failed")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: lastwish version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: lastwish help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
