package navigation

import (
	"strings"
	"testing"
)

type fakeNavigator struct {
	urls []string
}

func (f *fakeNavigator) Navigate(u string) { f.urls = append(f.urls, u) }

func (f *fakeNavigator) last() string {
	if len(f.urls) == 0 {
		return ""
	}
	return f.urls[len(f.urls)-1]
}

type report struct{ title, message string }

type fakeReporter struct {
	reports []report
}

func (f *fakeReporter) Error(title, message string) {
	f.reports = append(f.reports, report{title, message})
}

func newTestController() (*Controller, *fakeNavigator, *fakeReporter) {
	nav := &fakeNavigator{}
	rep := &fakeReporter{}
	return New(DefaultURL, nav, rep), nav, rep
}

func TestValid(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"about:blank", true},
		{"https://gemini.google.com/app", true},
		{"http://localhost:8080/chat", true},
		{"ftp://x", false},
		{"file:///etc/passwd", false},
		{"javascript:alert(1)", false},
		{"https://", false},
		{"gemini.google.com", false},
		{"", false},
		{"about:config", false},
	}
	for _, tt := range tests {
		if got := Valid(tt.url); got != tt.want {
			t.Errorf("Valid(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestRequestNavigateAccepted(t *testing.T) {
	c, nav, rep := newTestController()

	if !c.RequestNavigate("https://chat.example/") {
		t.Fatal("RequestNavigate() rejected a valid URL")
	}
	if nav.last() != "https://chat.example/" || c.CurrentURL() != "https://chat.example/" {
		t.Fatalf("navigated to %q, current %q", nav.last(), c.CurrentURL())
	}
	if c.LastGoodURL() != DefaultURL {
		t.Fatalf("LastGoodURL() = %q, changed before load", c.LastGoodURL())
	}
	if len(rep.reports) != 0 {
		t.Fatalf("unexpected reports: %v", rep.reports)
	}
}

func TestRequestNavigateBlankAccepted(t *testing.T) {
	c, nav, rep := newTestController()
	if !c.RequestNavigate(BlankURL) {
		t.Fatal("about:blank rejected")
	}
	if nav.last() != BlankURL || len(rep.reports) != 0 {
		t.Fatalf("nav=%v reports=%v", nav.urls, rep.reports)
	}
}

func TestRequestNavigateRejected(t *testing.T) {
	c, nav, rep := newTestController()
	c.LoadSucceeded("https://good.example")

	if c.RequestNavigate("ftp://x") {
		t.Fatal("ftp URL accepted")
	}
	if nav.last() != "https://good.example" {
		t.Fatalf("fallback navigation = %q, want last good", nav.last())
	}
	if c.LastGoodURL() != "https://good.example" {
		t.Fatalf("LastGoodURL() = %q", c.LastGoodURL())
	}
	if len(rep.reports) != 1 || !strings.Contains(rep.reports[0].message, "ftp://x") {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestRequestNavigateRejectedEqualToLastGood(t *testing.T) {
	nav := &fakeNavigator{}
	rep := &fakeReporter{}
	c := New("not a url", nav, rep)

	c.RequestNavigate("not a url")
	if nav.last() != BlankURL {
		t.Fatalf("fallback = %q, want blank", nav.last())
	}
	if len(rep.reports) != 1 {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestLoadSucceededIgnoresBlank(t *testing.T) {
	c, _, _ := newTestController()
	c.LoadSucceeded("https://good.example")
	c.LoadSucceeded(BlankURL)
	c.LoadSucceeded("")
	if c.LastGoodURL() != "https://good.example" {
		t.Fatalf("LastGoodURL() = %q", c.LastGoodURL())
	}
}

func TestLoadSucceededIgnoresNonWebURL(t *testing.T) {
	c, nav, rep := newTestController()
	c.LoadSucceeded("data:text/html,hi")
	if c.LastGoodURL() != DefaultURL {
		t.Fatalf("LastGoodURL() = %q, want %q", c.LastGoodURL(), DefaultURL)
	}

	c.LoadFailed("https://bad.example", -105, "dns")
	if nav.last() != DefaultURL {
		t.Fatalf("navigated to %q, want %q", nav.last(), DefaultURL)
	}
	if len(rep.reports) != 1 {
		t.Fatalf("reports = %v, want exactly one", rep.reports)
	}
}

func TestLoadFailedCustomURLFallsBackToLastGood(t *testing.T) {
	c, nav, rep := newTestController()
	c.LoadSucceeded("https://good.example")
	c.RequestNavigate("https://bad.example")

	c.LoadFailed("https://bad.example", 200, "dns")

	if nav.last() != "https://good.example" {
		t.Fatalf("fallback navigation = %q", nav.last())
	}
	if len(rep.reports) != 1 {
		t.Fatalf("got %d reports, want 1: %v", len(rep.reports), rep.reports)
	}
	if !strings.Contains(rep.reports[0].message, "https://bad.example") {
		t.Fatalf("report does not name the failed URL: %q", rep.reports[0].message)
	}
	if c.LastGoodURL() != "https://good.example" {
		t.Fatalf("LastGoodURL() = %q", c.LastGoodURL())
	}
}

func TestLoadFailedCustomURLWithoutHistoryFallsBackToDefault(t *testing.T) {
	c, nav, rep := newTestController()
	c.RequestNavigate("https://bad.example")

	c.LoadFailed("https://bad.example", -105, "net::ERR_NAME_NOT_RESOLVED")

	if nav.last() != DefaultURL {
		t.Fatalf("fallback navigation = %q, want default", nav.last())
	}
	if len(rep.reports) != 1 || rep.reports[0].title != "Custom URL Load Error" {
		t.Fatalf("reports = %v", rep.reports)
	}
}

func TestLoadFailedDefaultURLLoadsBlank(t *testing.T) {
	c, nav, rep := newTestController()
	c.LoadSucceeded("https://good.example")

	c.LoadFailed(DefaultURL, 200, "dns")

	if nav.last() != BlankURL {
		t.Fatalf("navigation = %q, want blank", nav.last())
	}
	if len(rep.reports) != 1 || !strings.Contains(rep.reports[0].message, DefaultURL) {
		t.Fatalf("reports = %v", rep.reports)
	}
	if rep.reports[0].title != "Default URL Load Error" {
		t.Fatalf("title = %q", rep.reports[0].title)
	}
}

func TestLoadFailedAbortedIsIgnored(t *testing.T) {
	c, nav, rep := newTestController()
	c.RequestNavigate("https://chat.example")
	before := len(nav.urls)

	c.LoadFailed("https://chat.example", CodeAborted, "net::ERR_ABORTED")

	if len(nav.urls) != before || len(rep.reports) != 0 {
		t.Fatalf("aborted load caused nav=%v reports=%v", nav.urls, rep.reports)
	}
	if c.CurrentURL() != "https://chat.example" {
		t.Fatalf("CurrentURL() = %q", c.CurrentURL())
	}
}

func TestLoadFailedBlankEndsChain(t *testing.T) {
	c, nav, rep := newTestController()
	before := len(nav.urls)
	c.LoadFailed(BlankURL, CodeCrashed, "The web content process crashed.")
	if len(nav.urls) != before {
		t.Fatalf("blank failure navigated: %v", nav.urls)
	}
	if len(rep.reports) != 1 {
		t.Fatalf("reports = %v", rep.reports)
	}
}

// chainNavigator fails every navigation synchronously, the worst case for
// the fallback chain.
type chainNavigator struct {
	c    *Controller
	urls []string
}

func (n *chainNavigator) Navigate(u string) {
	n.urls = append(n.urls, u)
	if len(n.urls) > 10 {
		panic("fallback chain does not terminate")
	}
	n.c.LoadFailed(u, -106, "net::ERR_INTERNET_DISCONNECTED")
}

func TestFallbackChainTerminates(t *testing.T) {
	rep := &fakeReporter{}
	nav := &chainNavigator{}
	c := New(DefaultURL, nav, rep)
	nav.c = c
	c.LoadSucceeded("https://good.example")

	c.RequestNavigate("https://bad.example")

	want := []string{"https://bad.example", "https://good.example", DefaultURL, BlankURL}
	if strings.Join(nav.urls, " ") != strings.Join(want, " ") {
		t.Fatalf("navigations = %v, want %v", nav.urls, want)
	}
	if len(rep.reports) != 4 {
		t.Fatalf("got %d reports, want 4", len(rep.reports))
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		stored string
		want   string
		errors int
	}{
		{"", DefaultURL, 0},
		{"https://chat.example", "https://chat.example", 0},
		{"ftp://x", DefaultURL, 0},
		{"about:blank", BlankURL, 0},
	}
	for _, tt := range tests {
		c, nav, rep := newTestController()
		c.Resolve(tt.stored)
		if nav.last() != tt.want {
			t.Errorf("Resolve(%q) navigated to %q, want %q", tt.stored, nav.last(), tt.want)
		}
		if len(rep.reports) != tt.errors {
			t.Errorf("Resolve(%q) reports = %v", tt.stored, rep.reports)
		}
	}
}
