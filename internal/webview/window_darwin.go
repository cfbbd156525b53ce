//go:build darwin

package webview

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

static void win_show(void *w) {
    NSWindow *win = (NSWindow *)w;
    [NSApp activateIgnoringOtherApps:YES];
    [win makeKeyAndOrderFront:nil];
}

static void win_hide(void *w) {
    [(NSWindow *)w orderOut:nil];
}

static void win_set_top(void *w, int on) {
    [(NSWindow *)w setLevel:(on ? NSFloatingWindowLevel : NSNormalWindowLevel)];
}

// Координаты Cocoa растут снизу вверх
static void win_move_by(void *w, int dx, int dy) {
    NSWindow *win = (NSWindow *)w;
    NSPoint origin = [win frame].origin;
    origin.x += dx;
    origin.y -= dy;
    [win setFrameOrigin:origin];
}

// Заголовок прозрачный и без кнопок, иконки в Dock нет
static void win_prepare(void *w) {
    NSWindow *win = (NSWindow *)w;
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
    win.styleMask |= NSWindowStyleMaskFullSizeContentView;
    win.styleMask &= ~(NSWindowStyleMaskResizable | NSWindowStyleMaskMiniaturizable);
    win.titlebarAppearsTransparent = YES;
    win.titleVisibility = NSWindowTitleHidden;
    [[win standardWindowButton:NSWindowCloseButton] setHidden:YES];
    [[win standardWindowButton:NSWindowMiniaturizeButton] setHidden:YES];
    [[win standardWindowButton:NSWindowZoomButton] setHidden:YES];
}

static void win_screen_size(int *width, int *height) {
    NSRect r = [[NSScreen mainScreen] frame];
    *width = (int)r.size.width;
    *height = (int)r.size.height;
}

// y отсчитывается от верхнего края экрана
static void win_move(void *w, int x, int y, int screenH) {
    NSWindow *win = (NSWindow *)w;
    NSRect f = [win frame];
    [win setFrameOrigin:NSMakePoint(x, screenH - y - f.size.height)];
}
*/
import "C"
import (
	"log"
	"unsafe"
)

type cocoaWindow struct {
	ptr unsafe.Pointer
}

func newNativeWindow(handle unsafe.Pointer) nativeWindow {
	return &cocoaWindow{ptr: handle}
}

func (c *cocoaWindow) Show() {
	C.win_show(c.ptr)
}

func (c *cocoaWindow) Hide() {
	C.win_hide(c.ptr)
}

func (c *cocoaWindow) SetAlwaysOnTop(on bool) {
	v := C.int(0)
	if on {
		v = 1
	}
	C.win_set_top(c.ptr, v)
}

func (c *cocoaWindow) MoveBy(dx, dy int) {
	C.win_move_by(c.ptr, C.int(dx), C.int(dy))
}

func (c *cocoaWindow) Prepare(width, height int) {
	C.win_prepare(c.ptr)

	var sw, sh C.int
	C.win_screen_size(&sw, &sh)
	if sw == 0 || sh == 0 {
		log.Println("webview: размер экрана неизвестен, окно остаётся на месте")
		return
	}
	x, y := cornerPosition(int(sw), int(sh), width, height)
	C.win_move(c.ptr, C.int(x), C.int(y), sh)
}

// WKWebView сообщает о падении только своему делегату, а его занимает webview.
func (c *cocoaWindow) WatchCrash(func(reason string)) {}
