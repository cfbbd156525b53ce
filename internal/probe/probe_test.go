package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"desktop-ai/internal/navigation"
)

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if f := Check(context.Background(), srv.Client(), srv.URL); f != nil {
		t.Fatalf("Check() = %v, want nil for any HTTP answer", f)
	}
}

func closedPortURL(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()
	return "http://" + addr + "/"
}

func TestCheckUnreachable(t *testing.T) {
	url := closedPortURL(t)
	f := Check(context.Background(), &http.Client{Timeout: 2 * time.Second}, url)
	if f == nil {
		t.Fatal("Check() = nil for a closed port")
	}
	if f.Aborted() {
		t.Fatalf("unreachable host reported as aborted: %v", f)
	}
	if f.URL != url {
		t.Fatalf("URL = %q, want %q", f.URL, url)
	}
}

func TestCheckCancelledIsAborted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := Check(ctx, nil, "http://127.0.0.1:1/")
	if f == nil || f.Code != navigation.CodeAborted {
		t.Fatalf("Check() = %v, want aborted", f)
	}
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"dns", &net.DNSError{Err: "no such host", Name: "x.invalid", IsNotFound: true}, CodeNameNotResolved},
		{"timeout", timeoutErr{}, CodeTimedOut},
		{"deadline", context.DeadlineExceeded, CodeTimedOut},
		{"canceled", context.Canceled, navigation.CodeAborted},
		{"other", errors.New("boom"), CodeFailed},
	}
	for _, tt := range tests {
		if got, _ := Classify(context.Background(), tt.err); got != tt.want {
			t.Errorf("%s: Classify() = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestTrackerSupersededReportsAborted(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	var mu sync.Mutex
	var got []Failure
	reported := make(chan struct{}, 4)
	tr := NewTracker(srv.Client(), func(f Failure) {
		mu.Lock()
		got = append(got, f)
		mu.Unlock()
		reported <- struct{}{}
	})

	first := srv.URL + "/first"
	tr.Begin(first)
	tr.Begin(navigation.BlankURL)

	select {
	case <-reported:
	case <-time.After(3 * time.Second):
		t.Fatal("superseded probe did not report")
	}
	tr.Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].URL != first || !got[0].Aborted() {
		t.Fatalf("reports = %+v, want one aborted report for %s", got, first)
	}
}

func TestTrackerUnreachableReportsFailure(t *testing.T) {
	reported := make(chan Failure, 1)
	tr := NewTracker(&http.Client{Timeout: 2 * time.Second}, func(f Failure) { reported <- f })

	url := closedPortURL(t)
	tr.Begin(url)

	select {
	case f := <-reported:
		if f.Aborted() || f.URL != url {
			t.Fatalf("report = %+v", f)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no failure reported")
	}
	tr.Stop()
}

func TestTrackerLoadedAttribution(t *testing.T) {
	tr := NewTracker(nil, nil)

	tr.Begin(navigation.BlankURL)
	if got := tr.Loaded("about:blank"); got != navigation.BlankURL {
		t.Fatalf("Loaded() = %q", got)
	}

	tr.mu.Lock()
	tr.pending = "https://chat.example/"
	tr.mu.Unlock()
	if got := tr.Loaded("https://chat.example/app?redirected=1"); got != "https://chat.example/" {
		t.Fatalf("Loaded() = %q, want the requested URL", got)
	}
	if got := tr.Loaded("https://chat.example/other"); got != "https://chat.example/other" {
		t.Fatalf("Loaded() = %q, want the reported URL for in-page navigation", got)
	}
	tr.mu.Lock()
	pending := tr.pending
	tr.mu.Unlock()
	if pending != "" {
		t.Fatalf("pending = %q after load", pending)
	}
}

// dropAfter отвечает обрывом соединения после задержки.
func dropAfter(t *testing.T, delay time.Duration) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("response writer cannot hijack")
			return
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Error(err)
			return
		}
		conn.Close()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTrackerConfirmedLoadDropsLateFailure(t *testing.T) {
	srv := dropAfter(t, 100*time.Millisecond)

	var mu sync.Mutex
	var got []Failure
	tr := NewTracker(srv.Client(), func(f Failure) {
		mu.Lock()
		got = append(got, f)
		mu.Unlock()
	})

	tr.Begin(srv.URL)
	if loaded := tr.Loaded(srv.URL); loaded != srv.URL {
		t.Fatalf("Loaded() = %q", loaded)
	}
	time.Sleep(300 * time.Millisecond)
	tr.Stop()

	mu.Lock()
	defer mu.Unlock()
	for _, f := range got {
		if !f.Aborted() {
			t.Fatalf("failure reported after the load was confirmed: %v", f)
		}
	}
}

func TestTrackerErrorPageIsNotALoad(t *testing.T) {
	srv := dropAfter(t, 0)

	reported := make(chan Failure, 1)
	tr := NewTracker(srv.Client(), func(f Failure) { reported <- f })

	tr.Begin(srv.URL)
	select {
	case f := <-reported:
		if f.Aborted() {
			t.Fatalf("report = %+v, want a real failure", f)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("no failure reported")
	}

	// Браузер показывает свою страницу ошибки по тому же адресу
	if loaded := tr.Loaded(srv.URL); loaded != "" {
		t.Fatalf("Loaded() = %q for the error page, want empty", loaded)
	}
	if loaded := tr.Loaded("https://chat.example/next"); loaded != "https://chat.example/next" {
		t.Fatalf("Loaded() = %q for a later in-page navigation", loaded)
	}
	tr.Stop()
}

func TestTrackerCrashedReportsCurrentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	var got []Failure
	tr := NewTracker(srv.Client(), func(f Failure) { got = append(got, f) })

	tr.Begin(srv.URL)
	tr.Loaded(srv.URL)
	tr.Loaded(srv.URL + "/chat/42")
	tr.Crashed("out of memory")
	tr.Stop()

	if len(got) != 1 {
		t.Fatalf("reports = %v, want one", got)
	}
	f := got[0]
	if f.URL != srv.URL+"/chat/42" || f.Code != navigation.CodeCrashed {
		t.Fatalf("report = %+v", f)
	}
	if !strings.Contains(f.Description, "out of memory") {
		t.Fatalf("description = %q", f.Description)
	}
	if loaded := tr.Loaded(srv.URL + "/chat/42"); loaded != "" {
		t.Fatalf("Loaded() = %q for the crash page, want empty", loaded)
	}
}
