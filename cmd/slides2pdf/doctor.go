package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-slides2pdf/internal/config"
)

// Report statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// Check statuses.
const (
	checkOK    = "ok"
	checkWarn  = "warn"
	checkError = "error"
)

// Check names, in report order.
const (
	checkConfig  = "config"
	checkBrowser = "browser"
	checkSandbox = "sandbox"
	checkScratch = "scratch"
	checkOutput  = "output"
	checkLog     = "log"
)

// doctorCheck is one line of the report.
type doctorCheck struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// doctorReport is what a capture run with the same settings would face.
type doctorReport struct {
	Status   string        `json:"status"`
	Platform string        `json:"platform"`
	Browser  string        `json:"browser,omitempty"` // resolved executable
	Checks   []doctorCheck `json:"checks"`
}

func (r *doctorReport) add(name, status, format string, args ...any) {
	r.Checks = append(r.Checks, doctorCheck{Name: name, Status: status, Detail: fmt.Sprintf(format, args...)})
}

func (r *doctorReport) check(name string) (doctorCheck, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return doctorCheck{}, false
}

func (r *doctorReport) finish() {
	r.Status = statusReady
	for _, c := range r.Checks {
		switch c.Status {
		case checkError:
			r.Status = statusErrors
			return
		case checkWarn:
			r.Status = statusWarnings
		}
	}
}

// doctorInput is everything the checks read from the outside world.
type doctorInput struct {
	cfg       *config.Config
	cfgSource string // "defaults" or the config name
	cfgErr    error
	binSource string // where cfg.Browser.Bin came from
	rodBin    string // ROD_BROWSER_BIN
	lookPath  func() (string, bool)
	container string // detected container signal, "" if none
	tempDir   string
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOutput := fs.Bool("json", false, "machine-readable output")
	configName := fs.StringP("config", "c", "", "config name or path")
	outputDir := fs.StringP("output", "o", "", "output directory to check")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	report := runDoctor(gatherDoctorInput(*configName, *outputDir))

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// gatherDoctorInput resolves settings the way capture does: env over the
// config file over defaults, then the --output flag.
func gatherDoctorInput(configName, outputDir string) doctorInput {
	envCfg := loadEnvConfig()
	in := doctorInput{
		cfgSource: "defaults",
		binSource: "browser.bin",
		rodBin:    os.Getenv("ROD_BROWSER_BIN"),
		lookPath:  launcher.LookPath,
		container: containerSignal(),
		tempDir:   os.TempDir(),
	}

	name := configName
	if name == "" {
		name = envCfg.ConfigPath
	}
	cfg, err := loadConfig(name, "")
	if err != nil {
		in.cfgErr = err
		cfg = config.DefaultConfig()
	} else if name != "" {
		in.cfgSource = name
	}
	applyEnvConfig(envCfg, cfg)
	if envCfg.BrowserBin != "" {
		in.binSource = "SLIDES2PDF_BROWSER_BIN"
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if in.cfgErr == nil {
		in.cfgErr = cfg.Validate()
	}
	in.cfg = cfg
	return in
}

// runDoctor performs all checks against in.
func runDoctor(in doctorInput) *doctorReport {
	r := &doctorReport{Platform: runtime.GOOS + "/" + runtime.GOARCH}

	if in.cfgErr != nil {
		r.add(checkConfig, checkError, "%v", in.cfgErr)
	} else {
		r.add(checkConfig, checkOK, "%s (driver %s, engine %s)", in.cfgSource, in.cfg.Browser.Driver, in.cfg.PDF.Engine)
	}
	checkBrowserBinary(r, in)
	checkSandboxSetting(r, in)
	checkWritableDirs(r, in)

	r.finish()
	return r
}

// checkBrowserBinary resolves the executable in the same order as the
// session: configured bin, ROD_BROWSER_BIN, lookup, then auto-download.
func checkBrowserBinary(r *doctorReport, in doctorInput) {
	bin, source := in.cfg.Browser.Bin, in.binSource
	if bin == "" && in.rodBin != "" {
		bin, source = in.rodBin, "ROD_BROWSER_BIN"
	}
	if bin == "" {
		if found, ok := in.lookPath(); ok {
			bin, source = found, "lookup"
		}
	}

	autoDownload := in.cfg.Browser.AutoDownload && in.cfg.Browser.Driver != config.DriverChromedp
	if bin == "" {
		if autoDownload {
			r.add(checkBrowser, checkWarn, "not installed, rod downloads Chromium on the first capture")
			return
		}
		r.add(checkBrowser, checkError, "Chrome/Chromium not found: install it, set SLIDES2PDF_BROWSER_BIN, or use --auto-download")
		return
	}
	if _, err := os.Stat(bin); err != nil {
		r.add(checkBrowser, checkError, "%s (from %s) does not exist", bin, source)
		return
	}
	r.Browser = bin

	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- path from config, env or lookup
	if err != nil {
		r.add(checkBrowser, checkWarn, "%s (from %s), version unknown: %v", bin, source, err)
		return
	}
	r.add(checkBrowser, checkOK, "%s (from %s), %s", bin, source, strings.TrimSpace(string(out)))

	if in.cfg.Browser.AutoDownload && in.cfg.Browser.Driver == config.DriverChromedp {
		r.add(checkBrowser, checkWarn, "auto-download is ignored by the chromedp driver")
	}
}

// checkSandboxSetting flags a sandboxed launch inside a container, where
// Chrome usually lacks the namespaces it needs.
func checkSandboxSetting(r *doctorReport, in doctorInput) {
	switch {
	case !in.cfg.Browser.Sandbox:
		r.add(checkSandbox, checkOK, "disabled")
	case in.container != "":
		r.add(checkSandbox, checkWarn, "enabled inside a container (%s), drop --sandbox if the browser fails to start", in.container)
	default:
		r.add(checkSandbox, checkOK, "enabled")
	}
}

// containerSignal returns the first container marker found, or "".
func containerSignal() string {
	if os.Getenv("SLIDES2PDF_CONTAINER") == "1" {
		return "SLIDES2PDF_CONTAINER=1"
	}
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return "/.dockerenv"
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

// checkWritableDirs covers the screenshot scratch space, the PDF output
// directory and the log file directory.
func checkWritableDirs(r *doctorReport, in doctorInput) {
	if err := probeWritable(in.tempDir); err != nil {
		r.add(checkScratch, checkError, "%s not writable, screenshots cannot be saved", in.tempDir)
	} else {
		r.add(checkScratch, checkOK, "%s", in.tempDir)
	}

	if status, detail := dirStatus(in.cfg.Output.Dir); status != checkOK {
		r.add(checkOutput, status, "%s", detail)
	} else {
		r.add(checkOutput, checkOK, "%s", in.cfg.Output.Dir)
	}

	if in.cfg.Log.File == "" {
		return
	}
	if status, detail := dirStatus(filepath.Dir(in.cfg.Log.File)); status != checkOK {
		r.add(checkLog, status, "%s", detail)
	} else {
		r.add(checkLog, checkOK, "%s", in.cfg.Log.File)
	}
}

// dirStatus reports whether dir can receive files, or be created under a
// writable parent. It never creates dir.
func dirStatus(dir string) (string, string) {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		parent := filepath.Dir(filepath.Clean(dir))
		if err := probeWritable(parent); err != nil {
			return checkError, fmt.Sprintf("%s cannot be created: %s not writable", dir, parent)
		}
		return checkOK, ""
	case err != nil:
		return checkError, fmt.Sprintf("%s: %v", dir, err)
	case !info.IsDir():
		return checkError, fmt.Sprintf("%s is not a directory", dir)
	}
	if err := probeWritable(dir); err != nil {
		return checkError, fmt.Sprintf("%s not writable", dir)
	}
	return checkOK, ""
}

// probeWritable creates and removes a file in dir.
func probeWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".slides2pdf-doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// printDoctorReport outputs human-readable results.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintf(w, "slides2pdf doctor (%s)\n\n", r.Platform)

	for _, c := range r.Checks {
		label := "[OK]"
		switch c.Status {
		case checkWarn:
			label = "[WARN]"
		case checkError:
			label = "[ERROR]"
		}
		fmt.Fprintf(w, "  %-8s %-8s %s\n", label, c.Name, c.Detail)
	}
	fmt.Fprintln(w)

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to capture")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
