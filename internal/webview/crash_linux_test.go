//go:build linux

package webview

import "testing"

func TestWebProcessGoneCallsHandler(t *testing.T) {
	var got []string
	setCrashHandler(func(reason string) { got = append(got, reason) })
	defer setCrashHandler(nil)

	desktopAIWebProcessGone(1)
	desktopAIWebProcessGone(7)

	if len(got) != 2 || got[0] != "memory limit exceeded" || got[1] != "unknown reason" {
		t.Fatalf("reasons = %q", got)
	}
}
