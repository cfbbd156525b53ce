package probe

import (
	"context"
	"net/http"
	"sync"

	"desktop-ai/internal/navigation"
)

// Tracker shadows navigations with probes. Starting a navigation supersedes
// the previous one, whose probe then reports an aborted failure. A load
// confirmed by the page stops its probe without a report.
type Tracker struct {
	client *http.Client
	report func(Failure)

	mu        sync.Mutex
	current   string // last navigation or confirmed in-page URL
	pending   string
	failed    string // last navigation whose probe failed
	gen       uint64 // current navigation
	confirmed uint64 // navigation confirmed by the page
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewTracker creates a tracker. report is called from probe goroutines.
func NewTracker(client *http.Client, report func(Failure)) *Tracker {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Tracker{client: client, report: report}
}

// Begin records url as the pending navigation and probes it.
// about:blank is never probed.
func (t *Tracker) Begin(url string) {
	t.mu.Lock()
	t.stopLocked()
	t.gen++
	t.current = url
	t.pending = url
	t.failed = ""
	if url == navigation.BlankURL || url == "" {
		t.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	gen := t.gen
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer cancel()
		f := Check(ctx, t.client, url)
		if f == nil || !t.settle(gen, url, f) || t.report == nil {
			return
		}
		t.report(*f)
	}()
}

// settle decides whether a probe failure is reported. A failure of a
// confirmed navigation is dropped; a real failure clears the pending
// navigation so the error page that follows is not taken for a load.
func (t *Tracker) settle(gen uint64, url string, f *Failure) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.confirmed == gen {
		return false
	}
	if !f.Aborted() && t.gen == gen {
		t.pending = ""
		t.failed = url
	}
	return true
}

// Loaded returns the URL a finished load should be attributed to: the pending
// navigation if there is one, otherwise the URL the page reported (in-page
// navigation). It returns "" for the error page of a failed navigation.
// The probe of the confirmed navigation is stopped.
func (t *Tracker) Loaded(reported string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	url := t.pending
	t.pending = ""
	if url == "" {
		if reported != "" && reported == t.failed {
			return ""
		}
		if reported != "" {
			t.current = reported
		}
		return reported
	}
	t.confirmed = t.gen
	t.stopLocked()
	return url
}

// Crashed reports the loss of the web content process as a failed load of
// the current URL. The error page shown afterwards is not taken for a load.
func (t *Tracker) Crashed(reason string) {
	t.mu.Lock()
	t.stopLocked()
	t.confirmed = t.gen
	url := t.current
	t.pending = ""
	t.failed = url
	t.mu.Unlock()

	if t.report != nil {
		t.report(Crashed(url, reason))
	}
}

// Stop aborts the running probe and waits for it.
func (t *Tracker) Stop() {
	t.mu.Lock()
	t.stopLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Tracker) stopLocked() {
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
