package main

import (
	"fmt"
	"io"

	"github.com/alnah/go-slides2pdf/internal/config"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slides2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  capture    Capture presentations listed in a file to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check system configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'slides2pdf help <command>' for details on a specific command.")
}

// printCaptureUsage prints usage for the capture command.
func printCaptureUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slides2pdf capture [urls-file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Walk each presentation down then right, screenshot every slide,")
	fmt.Fprintln(w, "and write one PDF per presentation named after the page title.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintf(w, "  urls-file    One URL per line, blank lines skipped (default: %s)\n", config.DefaultURLFile)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintf(w, "  -o, --output <dir>          Output directory (default: %s)\n", config.DefaultOutputDir)
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --engine <s>            PDF engine: gofpdf, pdfcpu")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Timing:")
	fmt.Fprintf(w, "  -t, --timeout <d>           Per-presentation timeout (default: %s, 0 = none)\n", config.DefaultTimeout)
	fmt.Fprintf(w, "      --settle <d>            Delay after each click (default: %s)\n", config.DefaultSettle)
	fmt.Fprintf(w, "      --element-timeout <d>   Wait for fullscreen/content elements (default: %s)\n", config.DefaultElementTimeout)
	fmt.Fprintf(w, "      --max-slides <n>        Slide cap per presentation (default: %d, 0 = none)\n", config.DefaultMaxSlides)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --driver <s>            Browser driver: rod, chromedp")
	fmt.Fprintln(w, "      --browser-bin <path>    Chrome/Chromium executable")
	fmt.Fprintln(w, "      --headed                Show the browser window")
	fmt.Fprintln(w, "      --sandbox               Enable the Chrome sandbox")
	fmt.Fprintln(w, "      --auto-download         Download a compatible Chromium (rod only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Controls:")
	fmt.Fprintln(w, "      --fullscreen-class <s>  Fullscreen control (default: fullscreen-button)")
	fmt.Fprintln(w, "      --content-class <s>     Slide content element (default: backgrounds)")
	fmt.Fprintln(w, "      --down-class <s>        Navigate-down control (default: navigate-down)")
	fmt.Fprintln(w, "      --right-class <s>       Navigate-right control (default: navigate-right)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logging:")
	fmt.Fprintln(w, "      --log-file <path>       Write logs to a rotating file")
	fmt.Fprintln(w, "      --log-level <s>         debug, info, warn, error")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SLIDES2PDF_CONFIG, SLIDES2PDF_URL_FILE, SLIDES2PDF_OUTPUT_DIR, SLIDES2PDF_TIMEOUT,")
	fmt.Fprintln(w, "  SLIDES2PDF_DRIVER, SLIDES2PDF_ENGINE, SLIDES2PDF_BROWSER_BIN, SLIDES2PDF_MAX_SLIDES,")
	fmt.Fprintln(w, "  SLIDES2PDF_LOG_FILE, SLIDES2PDF_LOG_LEVEL")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: slides2pdf doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the settings a capture run would use: config, browser binary,")
	fmt.Fprintln(w, "sandbox, scratch, output and log directories.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>   Config file name or path")
	fmt.Fprintln(w, "  -o, --output <dir>    Output directory to check")
	fmt.Fprintln(w, "      --json            Machine-readable output")
}

// runHelp prints help for a specific command.
// Returns ExitUsage for unknown commands.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "capture":
		printCaptureUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: slides2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: slides2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
