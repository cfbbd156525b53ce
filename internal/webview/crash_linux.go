//go:build linux

package webview

import "C"
import "sync"

var (
	crashMu      sync.Mutex
	crashHandler func(reason string)
)

func setCrashHandler(fn func(reason string)) {
	crashMu.Lock()
	crashHandler = fn
	crashMu.Unlock()
}

// crashReason переводит WebKitWebProcessTerminationReason в текст.
// Обычное падение пояснений не требует.
func crashReason(code int) string {
	switch code {
	case 0:
		return ""
	case 1:
		return "memory limit exceeded"
	case 2:
		return "terminated by API"
	}
	return "unknown reason"
}

//export desktopAIWebProcessGone
func desktopAIWebProcessGone(reason C.int) {
	crashMu.Lock()
	fn := crashHandler
	crashMu.Unlock()
	if fn != nil {
		fn(crashReason(int(reason)))
	}
}
