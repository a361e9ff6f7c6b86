package fetcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"pinpoint/dom"
)

// stealthScript masks the most common automation checks.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = { runtime: {}, app: {} };
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
`

// markHiddenScript stamps every element without a layout box. Fixed
// elements have no offsetParent but still render.
var markHiddenScript = fmt.Sprintf(`(() => {
	let n = 0;
	for (const el of document.querySelectorAll('body *')) {
		if (!(el instanceof HTMLElement)) continue;
		const style = getComputedStyle(el);
		if (style.display === 'none' || (el.offsetParent === null && style.position !== 'fixed')) {
			el.setAttribute('%s', '');
			n++;
		}
	}
	return n;
})()`, dom.HiddenMarker)

// userDataDir returns a persistent directory for Chrome user data.
func userDataDir() string {
	dir, _ := os.UserCacheDir()
	return filepath.Join(dir, "pinpoint-chrome-profile")
}

func allocatorOptions() []chromedp.ExecAllocatorOption {
	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoDefaultBrowserCheck,
		chromedp.NoFirstRun,
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("password-store", "basic"),
		chromedp.Flag("use-mock-keychain", true),
		chromedp.Flag("headless", "new"),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserDataDir(userDataDir()),
	}
	if opts.ChromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ChromePath))
	}
	return allocOpts
}

// WithBrowser renders url in headless Chrome, marks elements that have no
// layout box with dom.HiddenMarker and returns the resulting markup.
func WithBrowser(ctx context.Context, url string) (*FetchResult, error) {
	start := time.Now()

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocatorOptions()...)
	defer allocCancel()

	// Browser fetches get extra time for rendering.
	timeout := Timeout() + 15*time.Second
	ctx, cancel := context.WithTimeout(allocCtx, timeout)
	defer cancel()

	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var html, finalURL string
	var marked int
	err := chromedp.Run(ctx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(stealthScript).Do(ctx)
			return err
		}),
		network.SetExtraHTTPHeaders(network.Headers(map[string]any{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		})),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Wait for potential JS rendering and challenges
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var title string
			if err := chromedp.Title(&title).Do(ctx); err != nil {
				return nil
			}
			if title == "Just a moment..." {
				return chromedp.Sleep(5 * time.Second).Do(ctx)
			}
			return nil
		}),
		chromedp.Evaluate(markHiddenScript, &marked),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
		chromedp.Location(&finalURL),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch: %w", err)
	}

	return &FetchResult{
		HTML:        html,
		FinalURL:    finalURL,
		UsedBrowser: true,
		Marked:      marked,
		FetchTime:   time.Since(start),
	}, nil
}
