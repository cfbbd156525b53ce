//go:build windows

package webview

import (
	"log"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procShowWindow          = user32.NewProc("ShowWindow")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procSetForegroundWindow = user32.NewProc("SetForegroundWindow")
	procGetWindowLong       = user32.NewProc("GetWindowLongW")
	procSetWindowLong       = user32.NewProc("SetWindowLongW")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
)

const (
	swHide = 0
	swShow = 5

	swpNoSize       = 0x0001
	swpNoMove       = 0x0002
	swpNoZOrder     = 0x0004
	swpNoActivate   = 0x0010
	swpFrameChanged = 0x0020

	smCxScreen = 0
	smCyScreen = 1

	wsCaption     = 0x00C00000
	wsThickFrame  = 0x00040000
	wsSysMenu     = 0x00080000
	wsMinimizeBox = 0x00020000
	wsMaximizeBox = 0x00010000

	wsExToolWindow = 0x00000080
	wsExAppWindow  = 0x00040000
)

var (
	hwndTopmost   = ^uintptr(0) // HWND_TOPMOST = -1
	hwndNoTopmost = ^uintptr(1) // HWND_NOTOPMOST = -2

	gwlStyle   = ^uintptr(15) // GWL_STYLE = -16
	gwlExStyle = ^uintptr(19) // GWL_EXSTYLE = -20
)

type win32Window struct {
	hwnd uintptr
}

func newNativeWindow(handle unsafe.Pointer) nativeWindow {
	return &win32Window{hwnd: uintptr(handle)}
}

func (w *win32Window) Show() {
	procShowWindow.Call(w.hwnd, swShow)
	procSetForegroundWindow.Call(w.hwnd)
}

func (w *win32Window) Hide() {
	procShowWindow.Call(w.hwnd, swHide)
}

func (w *win32Window) SetAlwaysOnTop(on bool) {
	after := hwndNoTopmost
	if on {
		after = hwndTopmost
	}
	r, _, err := procSetWindowPos.Call(w.hwnd, after, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	if r == 0 {
		log.Printf("SetWindowPos: %v", err)
	}
}

func (w *win32Window) MoveBy(dx, dy int) {
	var rect windows.Rect
	r, _, err := procGetWindowRect.Call(w.hwnd, uintptr(unsafe.Pointer(&rect)))
	if r == 0 {
		log.Printf("GetWindowRect: %v", err)
		return
	}
	x := int(rect.Left) + dx
	y := int(rect.Top) + dy
	procSetWindowPos.Call(w.hwnd, 0, uintptr(x), uintptr(y), 0, 0, swpNoSize|swpNoZOrder|swpNoActivate)
}

// Prepare делает окно инструментальным: без рамки и без кнопки в панели задач.
func (w *win32Window) Prepare(width, height int) {
	style, _, _ := procGetWindowLong.Call(w.hwnd, gwlStyle)
	style &^= wsCaption | wsThickFrame | wsSysMenu | wsMinimizeBox | wsMaximizeBox
	procSetWindowLong.Call(w.hwnd, gwlStyle, style)

	exStyle, _, _ := procGetWindowLong.Call(w.hwnd, gwlExStyle)
	exStyle = exStyle&^wsExAppWindow | wsExToolWindow
	procSetWindowLong.Call(w.hwnd, gwlExStyle, exStyle)

	sw, _, _ := procGetSystemMetrics.Call(smCxScreen)
	sh, _, _ := procGetSystemMetrics.Call(smCyScreen)
	x, y := cornerPosition(int(sw), int(sh), width, height)
	r, _, err := procSetWindowPos.Call(w.hwnd, 0, uintptr(x), uintptr(y), uintptr(width), uintptr(height),
		swpNoZOrder|swpNoActivate|swpFrameChanged)
	if r == 0 {
		log.Printf("SetWindowPos: %v", err)
	}
}

// WebView2 сообщает о падении через ProcessFailed контроллера, который webview не отдаёт.
func (w *win32Window) WatchCrash(func(reason string)) {}
