// Package fetch - browser.go provides headless browser rendering for
// JavaScript-heavy application forms.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

// minFormMarkup is the heuristic threshold below which a plain HTTP fetch is
// assumed to have missed a client-rendered form.
const minFormMarkup = 1

// ShouldUseBrowser reports whether the fetched HTML appears to lack any form
// fields, indicating the page is likely a JavaScript-rendered SPA.
func ShouldUseBrowser(html string) bool {
	lower := strings.ToLower(html)
	count := strings.Count(lower, "<input") +
		strings.Count(lower, "<textarea") +
		strings.Count(lower, "<select")
	return count < minFormMarkup
}

// WithBrowser renders a page in a headless browser and returns the rendered
// HTML. Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout time.Duration) (*Result, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// Give client-side frameworks time to mount the form
		chromedp.Sleep(3*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Dismiss common cookie banners; not fatal when absent
			_ = chromedp.Click(`button[id*="accept"], button[class*="accept"]`, chromedp.NodeVisible).Do(ctx)
			return nil
		}),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("browser rendering failed: %w", err)
	}

	return &Result{URL: url, HTML: html, StatusCode: 200}, nil
}

// BrowserSimple renders with the default timeout.
func BrowserSimple(ctx context.Context, url string) (*Result, error) {
	return WithBrowser(ctx, url, DefaultTimeout)
}
