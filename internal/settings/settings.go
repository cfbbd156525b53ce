// Package settings provides the Gio-based settings and keybinding overlays.
package settings

import (
	"log"
	"strings"
	"sync"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget"

	"desktop-ai/internal/config"
	"desktop-ai/internal/i18n"
	"desktop-ai/internal/shortcut"
)

// Kind selects which overlay a Window shows.
type Kind int

const (
	// KindSettings edits the visibility shortcut, the service URL and the UI language.
	KindSettings Kind = iota
	// KindKeybindings edits all global shortcuts.
	KindKeybindings
)

// Result is what the user confirmed with Done.
type Result struct {
	// Shortcuts maps a setting key to the shortcut string.
	Shortcuts map[string]string
	// ServiceURL is set only for KindSettings.
	ServiceURL    string
	HasServiceURL bool
}

// shortcutRow is one editable shortcut.
type shortcutRow struct {
	label     string // ключ i18n
	rec       *shortcut.Recorder
	btn       widget.Clickable
	listening bool
	previous  string // значение до записи
	err       string // почему запись отклонена
}

// Window is an overlay window.
type Window struct {
	mu     sync.Mutex
	kind   Kind
	config *config.Config

	// Window state
	window  *app.Window
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}

	// Shortcuts
	group *shortcut.Group
	rows  []*shortcutRow

	// Widgets
	urlEditor   widget.Editor
	doneBtn     widget.Clickable
	cancelBtn   widget.Clickable
	langButtons map[i18n.Language]*widget.Clickable
	contentList widget.List

	selectedUILang i18n.Language
	keyFilters     []event.Filter

	// Callbacks
	onDone         func(Result)
	onClose        func()
	onUILangChange func(lang i18n.Language)
}

// New creates an overlay of the given kind.
func New(kind Kind, cfg *config.Config) *Window {
	w := &Window{
		kind:        kind,
		config:      cfg,
		group:       shortcut.NewGroup(),
		langButtons: make(map[i18n.Language]*widget.Clickable),
	}

	w.addRow(config.KeyToggleVisibilityShortcut, "settings_toggle_visibility")
	if kind == KindKeybindings {
		w.addRow(config.KeyToggleMicShortcut, "settings_toggle_mic")
	}

	w.urlEditor.SingleLine = true
	w.urlEditor.Submit = true

	for _, lang := range i18n.AvailableLanguages() {
		w.langButtons[lang] = new(widget.Clickable)
	}
	w.contentList.Axis = layout.Vertical

	w.initKeyFilters()
	return w
}

func (w *Window) addRow(settingKey, label string) {
	row := &shortcutRow{label: label}
	row.rec = shortcut.NewRecorder(settingKey, "", func() func() {
		row.listening = true
		return func() { row.listening = false }
	})
	w.group.Add(row.rec)
	w.rows = append(w.rows, row)
}

func (w *Window) initKeyFilters() {
	modifiers := key.ModCtrl | key.ModShift | key.ModAlt | key.ModSuper | key.ModCommand

	filters := []key.Filter{
		{Name: key.NameTab, Optional: modifiers},
		{Name: key.NameEscape, Optional: modifiers},
		{Name: key.NameSpace, Optional: modifiers},
		{Name: key.NameReturn, Optional: modifiers},
		{Name: key.NameDeleteBackward, Optional: modifiers},
		// Все остальные клавиши, включая одиночные модификаторы
		{Optional: modifiers},
	}
	w.keyFilters = make([]event.Filter, len(filters))
	for i, f := range filters {
		w.keyFilters[i] = f
	}
}

// OnDone sets the callback for confirmed changes.
func (w *Window) OnDone(fn func(Result)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onDone = fn
}

// OnClose sets the callback run after the window is gone, however it was closed.
func (w *Window) OnClose(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClose = fn
}

// OnUILangChange sets the callback for when user changes UI language.
func (w *Window) OnUILangChange(fn func(lang i18n.Language)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUILangChange = fn
}

// Show displays the window (non-blocking). Stored values are reloaded.
func (w *Window) Show() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	for _, row := range w.rows {
		row.rec.SetValue(w.config.GetString(row.rec.Name(), ""))
		row.err = ""
	}
	w.rows[0].rec.SetValue(w.config.ToggleVisibilityShortcut())
	w.urlEditor.SetText(w.config.ServiceURL())
	w.selectedUILang = i18n.GetLanguage()

	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})

	go w.runEventLoop(w.stopCh, w.doneCh)
}

// Hide closes the window and waits for its event loop to finish.
func (w *Window) Hide() {
	doneCh := w.close()
	if doneCh != nil {
		select {
		case <-doneCh:
		case <-time.After(time.Second):
		}
	}
}

// close asks the event loop to stop without waiting for it.
func (w *Window) close() chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running {
		return nil
	}
	w.running = false
	if w.stopCh != nil {
		close(w.stopCh)
		w.stopCh = nil
	}
	return w.doneCh
}

// IsVisible returns true if window is currently shown.
func (w *Window) IsVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Window) title() string {
	if w.kind == KindKeybindings {
		return "desktop-ai - " + i18n.T("keybindings_title")
	}
	return "desktop-ai - " + i18n.T("settings_title")
}

func (w *Window) runEventLoop(stopCh, doneCh chan struct{}) {
	defer func() {
		w.group.CancelActive()
		w.mu.Lock()
		w.running = false
		callback := w.onClose
		w.mu.Unlock()
		close(doneCh)
		if callback != nil {
			callback()
		}
	}()

	height := unit.Dp(420)
	if w.kind == KindKeybindings {
		height = unit.Dp(300)
	}
	window := new(app.Window)
	window.Option(
		app.Title(w.title()),
		app.Size(unit.Dp(520), height),
		app.MinSize(unit.Dp(420), unit.Dp(260)),
	)
	w.window = window

	var ops op.Ops

	// Invalidation goroutine
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stopCh:
				window.Perform(system.ActionClose)
				return
			case <-doneCh:
				return
			case <-ticker.C:
				window.Invalidate()
			}
		}
	}()

	for {
		switch e := window.Event().(type) {
		case app.DestroyEvent:
			if e.Err != nil {
				log.Printf("Окно настроек: %v", e.Err)
			}
			return
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)
			w.handleEvents(gtx)
			w.draw(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

func (w *Window) handleEvents(gtx layout.Context) {
	for _, row := range w.rows {
		if row.btn.Clicked(gtx) {
			if row.rec.Recording() {
				row.rec.Cancel()
			} else {
				// Фокус убираем с поля ввода, чтобы клавиши шли в запись
				gtx.Execute(key.FocusCmd{})
				row.startRecording()
			}
		}
	}

	if w.group.Active() != nil {
		w.handleRecording(gtx)
	}

	for {
		ev, ok := w.urlEditor.Update(gtx)
		if !ok {
			break
		}
		if _, ok := ev.(widget.SubmitEvent); ok {
			w.finish(true)
			return
		}
	}

	for lang, btn := range w.langButtons {
		if btn.Clicked(gtx) {
			w.mu.Lock()
			if w.selectedUILang == lang {
				w.mu.Unlock()
				continue
			}
			w.selectedUILang = lang
			callback := w.onUILangChange
			w.mu.Unlock()

			i18n.SetLanguage(lang)
			if err := w.config.Set(config.KeyUILanguage, string(lang)); err != nil {
				log.Printf("Не удалось сохранить язык: %v", err)
			}
			if callback != nil {
				callback(lang)
			}
		}
	}

	if w.cancelBtn.Clicked(gtx) {
		w.finish(false)
	}
	if w.doneBtn.Clicked(gtx) {
		w.finish(true)
	}
}

func (w *Window) handleRecording(gtx layout.Context) {
	for {
		ev, ok := gtx.Event(w.keyFilters...)
		if !ok {
			return
		}
		e, ok := ev.(key.Event)
		if !ok {
			continue
		}
		for _, row := range w.rows {
			if row.listening {
				row.accept(feedKey(row.rec, e))
				break
			}
		}
	}
}

// finish closes the window, reporting the result when confirmed.
func (w *Window) finish(confirmed bool) {
	w.group.CancelActive()

	if confirmed {
		res := w.result()
		w.mu.Lock()
		callback := w.onDone
		w.mu.Unlock()
		if callback != nil {
			callback(res)
		}
	}
	w.close()
}

func (w *Window) result() Result {
	res := Result{Shortcuts: make(map[string]string, len(w.rows))}
	for _, row := range w.rows {
		if v := row.rec.Value(); v != "" {
			res.Shortcuts[row.rec.Name()] = v
		}
	}
	if w.kind == KindSettings {
		res.ServiceURL = strings.TrimSpace(w.urlEditor.Text())
		res.HasServiceURL = true
	}
	return res
}

func (w *Window) getSelectedUILang() i18n.Language {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.selectedUILang
}
