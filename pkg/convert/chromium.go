package convert

import (
	"context"
	"log/slog"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

type chromium struct {
	remoteURL string
	execPath  string
	logger    *slog.Logger
}

// NewChromium returns an Engine backed by headless Chromium through the
// DevTools protocol. Each Launch starts a fresh browser, or a fresh target
// when attached to a remote browser.
func NewChromium(cfg *Config, logger *slog.Logger) Engine {
	return &chromium{
		remoteURL: cfg.RemoteURL,
		execPath:  cfg.ExecPath,
		logger:    logger.With("system", "convert", "engine", "chromium"),
	}
}

func (c *chromium) Launch(ctx context.Context) (Session, error) {
	if c.remoteURL != "" {
		return c.launchRemote(ctx)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// an empty Run starts the browser so launch failures surface here
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	c.logger.Debug("engine session launched")

	return &chromiumSession{
		ctx:           browserCtx,
		browser:       browserCtx,
		closeCtx:      chromedp.Cancel,
		cancelTarget:  cancelBrowser,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

// launchRemote attaches to a shared browser and opens a dedicated target
// for the session. The browser itself outlives the session.
func (c *chromium) launchRemote(ctx context.Context) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewRemoteAllocator(ctx, c.remoteURL)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	targetCtx, cancelTarget := chromedp.NewContext(browserCtx)
	if err := chromedp.Run(targetCtx); err != nil {
		cancelTarget()
		cancelBrowser()
		cancelAlloc()
		return nil, err
	}

	c.logger.Debug("engine session attached", "remote_url", c.remoteURL)

	return &chromiumSession{
		ctx:           targetCtx,
		browser:       browserCtx,
		remote:        true,
		closeCtx:      chromedp.Cancel,
		cancelTarget:  cancelTarget,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}, nil
}

type chromiumSession struct {
	// ctx is the context prints run in: the browser itself for a launched
	// engine, a dedicated target for a remote one.
	ctx     context.Context
	browser context.Context
	remote  bool

	closeCtx      func(context.Context) error
	cancelTarget  context.CancelFunc
	cancelBrowser context.CancelFunc
	cancelAlloc   context.CancelFunc
}

func (s *chromiumSession) PrintPDF(ctx context.Context, markup []byte, opts Options) ([]byte, error) {
	var pdf []byte

	stop := context.AfterFunc(ctx, s.cancelTarget)
	defer stop()

	err := chromedp.Run(s.ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(markup)).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPaperWidth(opts.PaperWidth).
				WithPaperHeight(opts.PaperHeight).
				WithLandscape(opts.Landscape).
				WithPrintBackground(opts.PrintBackground).
				WithPreferCSSPageSize(opts.PreferCSSPageSize).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdf, nil
}

// Close ends the session. A launched browser is shut down gracefully; a
// remote session closes only its own target and disconnects, leaving the
// shared browser running.
func (s *chromiumSession) Close() error {
	if !s.remote {
		err := s.closeCtx(s.browser)
		s.cancelBrowser()
		s.cancelAlloc()
		return err
	}

	err := s.closeCtx(s.ctx)
	s.cancelTarget()
	s.cancelBrowser()
	s.cancelAlloc()
	return err
}
