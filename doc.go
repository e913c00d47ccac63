// Package slides2pdf captures web slide presentations (reveal.js decks as
// published on slides.com) into PDF using a headless browser.
//
// # Quick Start
//
// Create a capturer, capture a deck, and close when done:
//
//	capt, err := slides2pdf.NewCapturer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer capt.Close()
//
//	res, err := capt.Capture(ctx, "https://slides.com/user/deck", "output")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Output, res.Pages)
//
// # Capture Pipeline
//
// Each presentation goes through these stages:
//
//  1. Navigate to the URL and wait for the load event
//  2. Click the fullscreen control after a settle delay
//  3. Walk the deck: screenshot, crop to the slide area, save, then click
//     "down" if enabled, else "right" if enabled, else stop
//  4. Assemble the crops into <output>/<title>.pdf, one page per slide
//
// Screenshots are written to a scratch directory that is removed after
// every capture, whether it succeeds or not.
//
// # Configuration
//
// Use functional options to customize the capturer:
//
//	capt, err := slides2pdf.NewCapturer(
//	    slides2pdf.WithDriver(slides2pdf.DriverChromedp),
//	    slides2pdf.WithEngine(slides2pdf.EnginePdfcpu),
//	    slides2pdf.WithSettleDelay(2*time.Second),
//	    slides2pdf.WithClasses(slides2pdf.Classes{Content: "slides"}),
//	)
//
// # Browser Requirements
//
// Capture requires Chrome/Chromium. The rod driver downloads a managed
// Chromium on first run when none is installed; WithAutoDownload forces it.
// Use ROD_BROWSER_BIN or WithBrowserBin to pick a specific binary.
package slides2pdf
