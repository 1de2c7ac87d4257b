package mapview

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"listing-advisor/utils"
)

// Snapshotter captures rendered map pages as PNG images with headless Chrome.
type Snapshotter struct {
	ChromeBin string
	Width     int
	Height    int
	// Settle is how long to wait for tiles after the page reports ready.
	Settle time.Duration
	Retry  *utils.RetryConfig
	Logger *utils.Logger
}

// NewSnapshotter creates a Snapshotter with a 1024x768 viewport.
func NewSnapshotter(chromeBin string, attempts int, logger *utils.Logger) *Snapshotter {
	return &Snapshotter{
		ChromeBin: chromeBin,
		Width:     1024,
		Height:    768,
		Settle:    3 * time.Second,
		Retry:     &utils.RetryConfig{MaxAttempts: attempts, BaseDelay: 2 * time.Second, Logger: logger},
		Logger:    logger,
	}
}

// Capture renders state and writes a PNG screenshot to outPath.
func (s *Snapshotter) Capture(ctx context.Context, state State, outPath string) error {
	htmlPath := filepath.Join(os.TempDir(), "map-"+uuid.NewString()+".html")
	if err := WriteHTML(htmlPath, "Listing map", state); err != nil {
		return err
	}
	defer os.Remove(htmlPath)

	chromeBin := findChromeBinary(s.ChromeBin)
	s.Logger.Debug("[snapshot] Using browser binary: %q", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(s.Width, s.Height),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	var png []byte
	err := s.Retry.Do(ctx, "map snapshot", func() error {
		tabCtx, cancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancel()

		tabCtx, cancelTimeout := context.WithTimeout(tabCtx, 60*time.Second)
		defer cancelTimeout()

		if err := chromedp.Run(tabCtx,
			chromedp.Navigate("file://"+htmlPath),
			chromedp.WaitVisible(`body[data-ready="true"]`, chromedp.ByQuery),
			chromedp.Sleep(s.Settle),
			chromedp.FullScreenshot(&png, 100),
		); err != nil {
			return fmt.Errorf("chromedp capture: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("snapshot: create output dir: %w", err)
	}
	if err := os.WriteFile(outPath, png, 0644); err != nil {
		return fmt.Errorf("snapshot: write %q: %w", outPath, err)
	}
	s.Logger.Info("[snapshot] Map image saved to %s", outPath)
	return nil
}

// findChromeBinary locates a Chrome/Chromium binary, preferring configured.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
