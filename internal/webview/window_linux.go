//go:build linux

package webview

/*
#cgo pkg-config: gtk+-3.0
#include <gtk/gtk.h>

extern void desktopAIWebProcessGone(int reason);

static void win_show(void *w) {
    gtk_widget_show_all(GTK_WIDGET(w));
    gtk_window_present(GTK_WINDOW(w));
}

static void win_hide(void *w) {
    gtk_widget_hide(GTK_WIDGET(w));
}

static void win_set_keep_above(void *w, int on) {
    gtk_window_set_keep_above(GTK_WINDOW(w), on ? TRUE : FALSE);
}

static void win_move_by(void *w, int dx, int dy) {
    gint x, y;
    gtk_window_get_position(GTK_WINDOW(w), &x, &y);
    gtk_window_move(GTK_WINDOW(w), x + dx, y + dy);
}

static void win_prepare(void *w) {
    gtk_window_set_decorated(GTK_WINDOW(w), FALSE);
    gtk_window_set_skip_taskbar_hint(GTK_WINDOW(w), TRUE);
    gtk_window_set_skip_pager_hint(GTK_WINDOW(w), TRUE);
}

static void win_screen_size(int *width, int *height) {
    GdkDisplay *d = gdk_display_get_default();
    GdkMonitor *m = gdk_display_get_primary_monitor(d);
    if (m == NULL) {
        m = gdk_display_get_monitor(d, 0);
    }
    GdkRectangle r = {0, 0, 0, 0};
    if (m != NULL) {
        gdk_monitor_get_geometry(m, &r);
    }
    *width = r.width;
    *height = r.height;
}

static void win_move(void *w, int x, int y) {
    gtk_window_move(GTK_WINDOW(w), x, y);
}

static void on_web_process_terminated(GtkWidget *view, gint reason, gpointer data) {
    desktopAIWebProcessGone(reason);
}

// Окно содержит единственный виджет - WebKitWebView
static int win_watch_crash(void *w) {
    GtkWidget *view = gtk_bin_get_child(GTK_BIN(w));
    if (view == NULL || g_signal_lookup("web-process-terminated", G_OBJECT_TYPE(view)) == 0) {
        return 0;
    }
    g_signal_connect(view, "web-process-terminated", G_CALLBACK(on_web_process_terminated), NULL);
    return 1;
}
*/
import "C"
import (
	"log"
	"unsafe"
)

type gtkWindow struct {
	ptr unsafe.Pointer
}

func newNativeWindow(handle unsafe.Pointer) nativeWindow {
	return &gtkWindow{ptr: handle}
}

func (g *gtkWindow) Show() {
	C.win_show(g.ptr)
}

func (g *gtkWindow) Hide() {
	C.win_hide(g.ptr)
}

func (g *gtkWindow) SetAlwaysOnTop(on bool) {
	v := C.int(0)
	if on {
		v = 1
	}
	C.win_set_keep_above(g.ptr, v)
}

func (g *gtkWindow) MoveBy(dx, dy int) {
	C.win_move_by(g.ptr, C.int(dx), C.int(dy))
}

func (g *gtkWindow) Prepare(width, height int) {
	C.win_prepare(g.ptr)

	var sw, sh C.int
	C.win_screen_size(&sw, &sh)
	if sw == 0 || sh == 0 {
		log.Println("webview: размер экрана неизвестен, окно остаётся на месте")
		return
	}
	x, y := cornerPosition(int(sw), int(sh), width, height)
	C.win_move(g.ptr, C.int(x), C.int(y))
}

func (g *gtkWindow) WatchCrash(fn func(reason string)) {
	setCrashHandler(fn)
	if C.win_watch_crash(g.ptr) == 0 {
		log.Println("webview: сигнал web-process-terminated недоступен")
	}
}
