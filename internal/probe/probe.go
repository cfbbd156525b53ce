// Package probe detects page load failures for the embedded browser.
//
// The browser surface does not report network errors, so each navigation is
// shadowed by an HTTP request to the same URL. Any HTTP response counts as
// reachable; a transport error is reported with a Chromium-style net error code.
package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"desktop-ai/internal/navigation"
)

// Net error codes in the numbering the renderer uses.
const (
	CodeFailed            = -2
	CodeConnectionRefused = -102
	CodeNameNotResolved   = -105
	CodeTimedOut          = -118
	CodeCertInvalid       = -207
)

// DefaultTimeout bounds a single probe.
const DefaultTimeout = 15 * time.Second

// Failure describes a failed load.
type Failure struct {
	URL         string
	Code        int
	Description string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %s (%d)", f.URL, f.Description, f.Code)
}

// Aborted reports whether the load was superseded rather than failed.
func (f Failure) Aborted() bool {
	return f.Code == navigation.CodeAborted
}

// Crashed describes a crash of the web content process while url was shown.
func Crashed(url, reason string) Failure {
	desc := "The web content process crashed."
	if reason != "" {
		desc = "The web content process crashed: " + reason
	}
	return Failure{URL: url, Code: navigation.CodeCrashed, Description: desc}
}

// Check requests url and returns nil if the server answered at all.
func Check(ctx context.Context, client *http.Client, url string) *Failure {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Failure{URL: url, Code: CodeFailed, Description: "net::ERR_INVALID_URL"}
	}
	resp, err := client.Do(req)
	if err != nil {
		code, desc := Classify(ctx, err)
		return &Failure{URL: url, Code: code, Description: desc}
	}
	resp.Body.Close()
	return nil
}

// Classify maps a transport error to a net error code and description.
func Classify(ctx context.Context, err error) (int, string) {
	if ctx != nil && errors.Is(ctx.Err(), context.Canceled) {
		return navigation.CodeAborted, "net::ERR_ABORTED"
	}

	var (
		dnsErr  *net.DNSError
		certErr *tls.CertificateVerificationError
		netErr  net.Error
	)
	switch {
	case errors.Is(err, context.Canceled):
		return navigation.CodeAborted, "net::ERR_ABORTED"
	case errors.As(err, &dnsErr):
		return CodeNameNotResolved, "net::ERR_NAME_NOT_RESOLVED"
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeConnectionRefused, "net::ERR_CONNECTION_REFUSED"
	case errors.As(err, &certErr):
		return CodeCertInvalid, "net::ERR_CERT_INVALID"
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return CodeTimedOut, "net::ERR_CONNECTION_TIMED_OUT"
	}
	return CodeFailed, "net::ERR_FAILED"
}
