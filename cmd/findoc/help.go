package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: findoc [command] [flags] [variant]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the sample financial documents as PDF.")
	fmt.Fprintln(w, "Without a command, findoc runs generate.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate one document (default)")
	fmt.Fprintln(w, "  serve      Serve documents over HTTP")
	fmt.Fprintln(w, "  doctor     Check Chrome and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Variants: contrato (default), contratto, garanzia, carta")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'findoc help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: findoc [generate] [flags] [variant]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate test_<variant>.pdf from the sample record")
	fmt.Fprintln(w, "(Mario Rossi, 15000 over 36 months, TAN 7.86, TAEG 8.30).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  variant    contrato, contratto, garanzia, carta, or a custom template name")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output directory or .pdf file")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --grid                Draw the layout grid on every page")
	fmt.Fprintln(w, "      --asset-path <dir>    Templates and images (default: working directory)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Request:")
	fmt.Fprintln(w, "      --name <s>            Client name")
	fmt.Fprintln(w, "      --amount <n>          Financed amount")
	fmt.Fprintln(w, "      --duration <n>        Duration in months")
	fmt.Fprintln(w, "      --tan <n>             Nominal annual rate (%)")
	fmt.Fprintln(w, "      --taeg <n>            Effective annual rate (%)")
	fmt.Fprintln(w, "      --payment <n>         Monthly payment (default: computed)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timing")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: findoc serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve documents over HTTP.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Endpoints:")
	fmt.Fprintln(w, "  POST /v1/documents/:type  JSON request body, returns application/pdf")
	fmt.Fprintln(w, "  GET  /v1/templates        Bundled template names")
	fmt.Fprintln(w, "  GET  /healthz             Liveness check")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Page load timeout")
	fmt.Fprintln(w, "      --grid                Draw the layout grid on every page")
	fmt.Fprintln(w, "      --asset-path <dir>    Templates and images (default: working directory)")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Debug logging")
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
		fmt.Fprintln(env.Stdout, "Usage: findoc doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container and temp directory setup.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: findoc version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: findoc help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
