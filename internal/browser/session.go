package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	cdpruntime "github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// Options configures the browser process.
type Options struct {
	ExecPath  string
	Headless  bool
	NoSandbox bool
	Width     int
	Height    int

	// Logf receives chromedp protocol logs and errors when non-nil.
	Logf func(format string, args ...any)
}

// Session owns one browser process and a single tab.
//
// Close must be called on every path once Launch succeeds; it is safe to call
// more than once.
type Session struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc

	closeOnce sync.Once
	closeErr  error
	closed    atomic.Bool
}

// Launch starts the browser and opens a blank tab. The browser lives until
// Close is called or ctx is canceled.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	if ctx == nil {
		return nil, errors.New("browser: ctx is nil")
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	if opts.Width > 0 && opts.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.Width, opts.Height))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)

	var ctxOpts []chromedp.ContextOption
	if opts.Logf != nil {
		ctxOpts = append(ctxOpts, chromedp.WithLogf(opts.Logf), chromedp.WithErrorf(opts.Logf))
	}
	tabCtx, cancelTab := chromedp.NewContext(allocCtx, ctxOpts...)

	// The first Run starts the browser process and attaches to the tab.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	return &Session{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

// tabContext derives a context bound to the tab that is also canceled when
// ctx is done.
func (s *Session) tabContext(ctx context.Context) (context.Context, context.CancelFunc) {
	tctx, cancel := context.WithCancel(s.ctx)
	if ctx == nil {
		return tctx, cancel
	}
	stop := context.AfterFunc(ctx, cancel)
	return tctx, func() {
		stop()
		cancel()
	}
}

// Navigate loads url and waits until the main frame reports network idle,
// bounded by timeout.
func (s *Session) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if s.closed.Load() {
		return errors.New("browser session is closed")
	}

	tctx, cancel := s.tabContext(ctx)
	defer cancel()
	navCtx, cancelNav := context.WithTimeout(tctx, timeout)
	defer cancelNav()

	mainFrame := cdp.FrameID("")
	if c := chromedp.FromContext(s.ctx); c != nil && c.Target != nil {
		mainFrame = cdp.FrameID(c.Target.TargetID)
	}

	idle := make(chan struct{})
	var idleOnce sync.Once
	var started atomic.Bool
	listenCtx, stopListening := context.WithCancel(navCtx)
	defer stopListening()
	chromedp.ListenTarget(listenCtx, func(ev any) {
		e, ok := ev.(*page.EventLifecycleEvent)
		if !ok {
			return
		}
		if mainFrame != "" && e.FrameID != mainFrame {
			return
		}
		switch e.Name {
		case "init":
			started.Store(true)
		case "networkIdle":
			if started.Load() {
				idleOnce.Do(func() { close(idle) })
			}
		}
	})

	err := chromedp.Run(navCtx,
		page.SetLifecycleEventsEnabled(true),
		chromedp.Navigate(url),
	)
	if err != nil {
		return navigationError(navCtx, url, timeout, err)
	}

	select {
	case <-idle:
		return nil
	case <-navCtx.Done():
		return navigationError(navCtx, url, timeout, navCtx.Err())
	}
}

func navigationError(navCtx context.Context, url string, timeout time.Duration, err error) error {
	if errors.Is(navCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("navigate to %s: timeout of %s exceeded waiting for network idle", url, timeout)
	}
	return fmt.Errorf("navigate to %s: %w", url, err)
}

// Evaluate implements Page.
func (s *Session) Evaluate(ctx context.Context, expression string, out any) error {
	if s.closed.Load() {
		return errors.New("browser session is closed")
	}

	tctx, cancel := s.tabContext(ctx)
	defer cancel()

	var raw []byte
	err := chromedp.Run(tctx, chromedp.Evaluate(expression, &raw, awaitPromise))
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if out == nil {
		return nil
	}
	if len(raw) == 0 {
		return errors.New("evaluate: expression returned no value")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("evaluate: decode result: %w", err)
	}
	return nil
}

func awaitPromise(p *cdpruntime.EvaluateParams) *cdpruntime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// Close closes the tab and terminates the browser process.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		// Cancel asks the browser to close gracefully; the allocator cancel
		// then waits for the process to exit.
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
		if errors.Is(s.closeErr, context.Canceled) {
			s.closeErr = nil
		}
	})
	return s.closeErr
}
