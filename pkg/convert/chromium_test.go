package convert

import (
	"context"
	"sync"
	"testing"
)

// sharedBrowser stands in for a browser reached over DevTools. A graceful
// cancel of a browser-level context closes the whole browser; a cancel of
// a target context closes only that target.
type sharedBrowser struct {
	mu       sync.Mutex
	browsers map[context.Context]bool
	closed   bool
	targets  []context.Context
}

func (b *sharedBrowser) cancel(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.browsers[ctx] {
		b.closed = true
		return nil
	}
	b.targets = append(b.targets, ctx)
	return nil
}

func (b *sharedBrowser) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *sharedBrowser) session(remote bool) *chromiumSession {
	allocCtx, cancelAlloc := context.WithCancel(context.Background())
	browserCtx, cancelBrowser := context.WithCancel(allocCtx)

	b.mu.Lock()
	b.browsers[browserCtx] = true
	b.mu.Unlock()

	s := &chromiumSession{
		ctx:           browserCtx,
		browser:       browserCtx,
		remote:        remote,
		closeCtx:      b.cancel,
		cancelTarget:  cancelBrowser,
		cancelBrowser: cancelBrowser,
		cancelAlloc:   cancelAlloc,
	}

	if remote {
		s.ctx, s.cancelTarget = context.WithCancel(browserCtx)
	}

	return s
}

func newSharedBrowser() *sharedBrowser {
	return &sharedBrowser{browsers: make(map[context.Context]bool)}
}

func TestRemoteCloseKeepsBrowser(t *testing.T) {
	browser := newSharedBrowser()
	a := browser.session(true)
	b := browser.session(true)

	printing := make(chan struct{})
	finish := make(chan struct{})
	result := make(chan error, 1)

	go func() {
		close(printing)
		<-finish
		if browser.isClosed() {
			result <- context.Canceled
			return
		}
		result <- b.ctx.Err()
	}()

	<-printing
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	close(finish)

	if err := <-result; err != nil {
		t.Errorf("concurrent session interrupted: %v", err)
	}
	if browser.isClosed() {
		t.Error("remote browser should stay up after a session closes")
	}
	if len(browser.targets) != 1 || browser.targets[0] != a.ctx {
		t.Errorf("closed targets: got %d, want only the closing session's", len(browser.targets))
	}
	if a.ctx.Err() == nil {
		t.Error("closed session context should be done")
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if browser.isClosed() {
		t.Error("remote browser should stay up after every session closes")
	}
}

func TestLaunchedCloseShutsBrowserDown(t *testing.T) {
	browser := newSharedBrowser()
	s := browser.session(false)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !browser.isClosed() {
		t.Error("launched browser should be shut down on Close")
	}
	if s.ctx.Err() == nil {
		t.Error("session context should be done after Close")
	}
}
