package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// maxSlidesUnset detects if --max-slides was explicitly set.
// Since 0 is a valid value (no cap), we use an out-of-range sentinel.
const maxSlidesUnset = -1

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// timingFlags holds capture timing flags as duration strings.
type timingFlags struct {
	timeout        string
	settle         string
	elementTimeout string
	maxSlides      int
}

// browserFlags holds browser session flags.
type browserFlags struct {
	driver       string
	bin          string
	headed       bool
	sandbox      bool
	autoDownload bool
}

// classFlags holds presentation control class names.
type classFlags struct {
	fullscreen string
	content    string
	down       string
	right      string
}

// logFlags holds log output flags.
type logFlags struct {
	file  string
	level string
}

// captureFlags holds all flags for the capture command.
type captureFlags struct {
	common  commonFlags
	output  string
	engine  string
	timing  timingFlags
	browser browserFlags
	classes classFlags
	log     logFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and debug logs")
}

// addTimingFlags adds capture timing flags to a FlagSet.
func addTimingFlags(fs *flag.FlagSet, f *timingFlags) {
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-presentation timeout (e.g., 5m, 0 = none)")
	fs.StringVar(&f.settle, "settle", "", "delay after each click (default 1s)")
	fs.StringVar(&f.elementTimeout, "element-timeout", "", "wait for fullscreen and content elements (default 10s)")
	fs.IntVar(&f.maxSlides, "max-slides", maxSlidesUnset, "slide cap per presentation (0 = none, default 500)")
}

// addBrowserFlags adds browser session flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.driver, "driver", "", "browser driver: rod, chromedp")
	fs.StringVar(&f.bin, "browser-bin", "", "Chrome/Chromium executable")
	fs.BoolVar(&f.headed, "headed", false, "show the browser window")
	fs.BoolVar(&f.sandbox, "sandbox", false, "enable the Chrome sandbox")
	fs.BoolVar(&f.autoDownload, "auto-download", false, "download a compatible Chromium (rod only)")
}

// addClassFlags adds control class flags to a FlagSet.
func addClassFlags(fs *flag.FlagSet, f *classFlags) {
	fs.StringVar(&f.fullscreen, "fullscreen-class", "", "class of the fullscreen control")
	fs.StringVar(&f.content, "content-class", "", "class of the slide content element")
	fs.StringVar(&f.down, "down-class", "", "class of the navigate-down control")
	fs.StringVar(&f.right, "right-class", "", "class of the navigate-right control")
}

// addLogFlags adds log output flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.file, "log-file", "", "write logs to a rotating file")
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
}

// parseCaptureFlags parses capture command flags and returns positional args.
// Usage goes to usage on parse errors.
func parseCaptureFlags(args []string, usage io.Writer) (*captureFlags, []string, error) {
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	f := &captureFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.engine, "engine", "", "PDF engine: gofpdf, pdfcpu")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addTimingFlags(fs, &f.timing)
	addBrowserFlags(fs, &f.browser)
	addClassFlags(fs, &f.classes)
	addLogFlags(fs, &f.log)

	fs.SetOutput(usage)
	fs.Usage = func() { printCaptureUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
