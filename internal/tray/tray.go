// Package tray предоставляет системный трей с меню.
package tray

import (
	"log"

	"github.com/getlantern/systray"
	"github.com/pkg/browser"

	"desktop-ai/embedded"
	"desktop-ai/internal/i18n"
)

// AboutURL - страница проекта.
const AboutURL = "https://github.com/danchev/desktop-ai"

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnShow          func()
	OnSettings      func()
	OnKeybindings   func()
	OnAlwaysOnTop   func(checked bool)
	OnShowOnStartup func(checked bool)
	OnQuit          func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks Callbacks

	aboutBtn       *systray.MenuItem
	showBtn        *systray.MenuItem
	settingsBtn    *systray.MenuItem
	keybindingsBtn *systray.MenuItem
	alwaysOnTop    *systray.MenuItem
	showOnStartup  *systray.MenuItem
	quitBtn        *systray.MenuItem

	quitCh chan struct{}
}

// New создаёт новый Tray.
func New(callbacks Callbacks) *Tray {
	return &Tray{
		callbacks: callbacks,
		quitCh:    make(chan struct{}),
	}
}

// Register создаёт трей без собственного цикла событий: цикл ведёт окно
// браузера в главном потоке. Вызывать из главного потока до его запуска.
func (t *Tray) Register(alwaysOnTop, showOnStartup bool) {
	systray.Register(func() {
		t.onReady(alwaysOnTop, showOnStartup)
	}, t.onExit)
}

func (t *Tray) onReady(alwaysOnTop, showOnStartup bool) {
	systray.SetIcon(embedded.Icon)
	systray.SetTooltip(i18n.T("app_tooltip"))

	t.aboutBtn = systray.AddMenuItem(i18n.T("tray_about"), i18n.T("tray_about_hint"))
	systray.AddSeparator()

	t.showBtn = systray.AddMenuItem(i18n.T("tray_show"), i18n.T("tray_show_hint"))
	t.settingsBtn = systray.AddMenuItem(i18n.T("tray_settings"), i18n.T("tray_settings_hint"))
	t.keybindingsBtn = systray.AddMenuItem(i18n.T("tray_keybindings"), i18n.T("tray_keybindings_hint"))
	t.alwaysOnTop = systray.AddMenuItemCheckbox(i18n.T("tray_always_on_top"), i18n.T("tray_always_on_top_hint"), alwaysOnTop)
	t.showOnStartup = systray.AddMenuItemCheckbox(i18n.T("tray_show_on_startup"), i18n.T("tray_show_on_startup_hint"), showOnStartup)

	systray.AddSeparator()

	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.quitCh:
			return

		case <-t.aboutBtn.ClickedCh:
			if err := browser.OpenURL(AboutURL); err != nil {
				log.Printf("Не удалось открыть %s: %v", AboutURL, err)
			}

		case <-t.showBtn.ClickedCh:
			if t.callbacks.OnShow != nil {
				t.callbacks.OnShow()
			}

		case <-t.settingsBtn.ClickedCh:
			if t.callbacks.OnSettings != nil {
				t.callbacks.OnSettings()
			}

		case <-t.keybindingsBtn.ClickedCh:
			if t.callbacks.OnKeybindings != nil {
				t.callbacks.OnKeybindings()
			}

		case <-t.alwaysOnTop.ClickedCh:
			checked := toggle(t.alwaysOnTop)
			if t.callbacks.OnAlwaysOnTop != nil {
				t.callbacks.OnAlwaysOnTop(checked)
			}

		case <-t.showOnStartup.ClickedCh:
			checked := toggle(t.showOnStartup)
			if t.callbacks.OnShowOnStartup != nil {
				t.callbacks.OnShowOnStartup(checked)
			}

		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
		}
	}
}

// toggle переключает флажок пункта меню и возвращает новое состояние.
func toggle(item *systray.MenuItem) bool {
	if item.Checked() {
		item.Uncheck()
		return false
	}
	item.Check()
	return true
}

// SetVisible меняет иконку в зависимости от видимости окна.
func (t *Tray) SetVisible(visible bool) {
	if visible {
		systray.SetIcon(embedded.Icon)
	} else {
		systray.SetIcon(embedded.IconHidden)
	}
}

// SetAlwaysOnTop синхронизирует флажок с настройками, изменёнными извне.
func (t *Tray) SetAlwaysOnTop(on bool) {
	setChecked(t.alwaysOnTop, on)
}

// SetShowOnStartup синхронизирует флажок с настройками, изменёнными извне.
func (t *Tray) SetShowOnStartup(on bool) {
	setChecked(t.showOnStartup, on)
}

func setChecked(item *systray.MenuItem, on bool) {
	if item == nil || item.Checked() == on {
		return
	}
	if on {
		item.Check()
	} else {
		item.Uncheck()
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit убирает иконку из трея.
func (t *Tray) Quit() {
	select {
	case <-t.quitCh:
	default:
		close(t.quitCh)
	}
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	systray.SetTooltip(i18n.T("app_tooltip"))

	items := []struct {
		item        *systray.MenuItem
		title, hint string
	}{
		{t.aboutBtn, "tray_about", "tray_about_hint"},
		{t.showBtn, "tray_show", "tray_show_hint"},
		{t.settingsBtn, "tray_settings", "tray_settings_hint"},
		{t.keybindingsBtn, "tray_keybindings", "tray_keybindings_hint"},
		{t.alwaysOnTop, "tray_always_on_top", "tray_always_on_top_hint"},
		{t.showOnStartup, "tray_show_on_startup", "tray_show_on_startup_hint"},
		{t.quitBtn, "tray_quit", "tray_quit_hint"},
	}
	for _, it := range items {
		if it.item == nil {
			continue
		}
		it.item.SetTitle(i18n.T(it.title))
		it.item.SetTooltip(i18n.T(it.hint))
	}
}
