package browserprint

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// A4 paper size in inches for Chrome's print backend.
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

const defaultTimeout = 30 * time.Second

// waitAssetsJS blocks until webfonts and every image have settled, so the
// printed pages use the same faces and icons the preview shows.
const waitAssetsJS = `
(function() {
	return Promise.all([
		document.fonts.ready,
		Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
			return new Promise((resolve) => {
				if (img.complete) { resolve(); return; }
				const timeout = setTimeout(() => resolve(), 5000);
				img.onload = () => { clearTimeout(timeout); resolve(); };
				img.onerror = () => { clearTimeout(timeout); resolve(); };
			});
		}))
	]);
})();
`

// Exporter prints the HTML preview through headless Chrome. The preview's
// @media print rules drive the page breaks; Chrome only rasterizes.
type Exporter struct {
	chromePath string
	timeout    time.Duration
	log        *log.Logger
}

// Options configures the exporter.
type Options struct {
	// ChromePath overrides browser discovery. Empty tries CHROME_PATH,
	// then a set of common install locations, then chromedp's own lookup.
	ChromePath string
	Timeout    time.Duration
	Logger     *log.Logger
}

func New(opts Options) *Exporter {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Exporter{
		chromePath: opts.ChromePath,
		timeout:    opts.Timeout,
		log:        opts.Logger,
	}
}

// ExportPDF navigates to url, waits for fonts and images, and prints the
// document to an A4 PDF with zero printer margins.
func (e *Exporter) ExportPDF(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	opts := chromedp.DefaultExecAllocatorOptions[:]
	if path := e.resolveChromePath(); path != "" {
		e.log.Debug("using browser", "path", path)
		opts = append(opts, chromedp.ExecPath(path))
	}
	opts = append(opts, chromedp.NoSandbox)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Evaluate(waitAssetsJS, nil, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print via browser: %w", err)
	}
	return pdf, nil
}

func (e *Exporter) resolveChromePath() string {
	if e.chromePath != "" {
		return e.chromePath
	}
	if path := os.Getenv("CHROME_PATH"); path != "" {
		return path
	}
	for _, candidate := range []string{
		"google-chrome",
		"chromium",
		"chromium-browser",
	} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path
		}
	}
	return ""
}
