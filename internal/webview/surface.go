// Package webview hosts the chat page in an embedded browser window and
// connects it to the application over the ipc channels.
package webview

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	webview "github.com/webview/webview_go"

	"desktop-ai/internal/ipc"
	"desktop-ai/internal/probe"
)

//go:embed bridge.js
var bridgeJS string

// bindingName is the Go function the bridge script calls.
const bindingName = "__desktopAISend"

// Options configures the window.
type Options struct {
	Title  string
	Width  int
	Height int
	Debug  bool
	Client *http.Client // клиент для проверки загрузки, nil - по умолчанию
}

// Surface is the browser window. All methods are safe to call from any
// goroutine; toolkit calls are dispatched onto the UI thread.
type Surface struct {
	w         webview.WebView
	win       nativeWindow
	tracker   *probe.Tracker
	onMessage func(ipc.Channel, json.RawMessage)
}

// New creates the window. onMessage receives every renderer message,
// including load results; it is called from the UI thread and probe
// goroutines and must not block.
func New(opts Options, onMessage func(ipc.Channel, json.RawMessage)) (*Surface, error) {
	w := webview.New(opts.Debug)
	if w == nil {
		return nil, errors.New("webview: не удалось создать окно")
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 400, 700
	}
	w.SetTitle(opts.Title)
	w.SetSize(opts.Width, opts.Height, webview.HintFixed)

	s := &Surface{
		w:         w,
		win:       newNativeWindow(w.Window()),
		onMessage: onMessage,
	}
	s.tracker = probe.NewTracker(opts.Client, s.loadFailed)
	s.win.Prepare(opts.Width, opts.Height)
	s.win.WatchCrash(s.tracker.Crashed)

	w.Init(bridgeJS)
	if err := w.Bind(bindingName, s.receive); err != nil {
		w.Destroy()
		return nil, err
	}
	return s, nil
}

// receive is called by the bridge script.
func (s *Surface) receive(channel string, payload json.RawMessage) {
	ch := ipc.Channel(channel)
	if ch == ipc.WebviewLoadSucceeded {
		var p ipc.LoadSucceededPayload
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &p); err != nil {
				log.Printf("webview: некорректное сообщение %s: %v", ch, err)
				return
			}
		}
		p.LoadedURL = s.tracker.Loaded(p.LoadedURL)
		if p.LoadedURL == "" {
			// Страница ошибки после неудачной загрузки
			return
		}
		payload, _ = json.Marshal(p)
	}
	if s.onMessage != nil {
		s.onMessage(ch, payload)
	}
}

func (s *Surface) loadFailed(f probe.Failure) {
	log.Printf("webview: загрузка не удалась: %v", f)
	payload, _ := json.Marshal(ipc.LoadFailedPayload{
		FailedURL:        f.URL,
		ErrorCode:        f.Code,
		ErrorDescription: f.Description,
	})
	if s.onMessage != nil {
		s.onMessage(ipc.WebviewLoadFailed, payload)
	}
}

// Navigate loads url. A load started earlier and not yet confirmed is
// reported as aborted.
func (s *Surface) Navigate(url string) {
	s.tracker.Begin(url)
	s.w.Dispatch(func() {
		s.w.Navigate(url)
	})
}

// Send delivers a message to the page.
func (s *Surface) Send(ch ipc.Channel, arg any) {
	script, err := ipc.Script(ch, arg)
	if err != nil {
		log.Printf("webview: %v", err)
		return
	}
	s.w.Dispatch(func() {
		s.w.Eval(script)
	})
}

// Show shows and focuses the window.
func (s *Surface) Show() {
	s.w.Dispatch(s.win.Show)
}

// Hide hides the window.
func (s *Surface) Hide() {
	s.w.Dispatch(s.win.Hide)
}

// SetAlwaysOnTop keeps the window above others.
func (s *Surface) SetAlwaysOnTop(on bool) {
	s.w.Dispatch(func() {
		s.win.SetAlwaysOnTop(on)
	})
}

// MoveBy moves the window by a delta in screen pixels.
func (s *Surface) MoveBy(dx, dy int) {
	s.w.Dispatch(func() {
		s.win.MoveBy(dx, dy)
	})
}

// Run runs the UI loop on the calling thread until Terminate.
func (s *Surface) Run() {
	s.w.Run()
}

// Terminate stops Run.
func (s *Surface) Terminate() {
	s.w.Dispatch(s.w.Terminate)
}

// Destroy releases the window after Run returned.
func (s *Surface) Destroy() {
	s.tracker.Stop()
	s.w.Destroy()
}
