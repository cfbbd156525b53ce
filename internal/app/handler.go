package app

import (
	"log"

	"desktop-ai/internal/config"
	"desktop-ai/internal/ipc"
	"desktop-ai/internal/navigation"
)

// Методы ниже реализуют ipc.Handler и вызываются только из цикла событий.

// MoveWindow сдвигает окно (перетаскивание за полосу страницы).
func (a *App) MoveWindow(p ipc.MovePayload) {
	if p.DeltaX == 0 && p.DeltaY == 0 {
		return
	}
	a.surface.MoveBy(p.DeltaX, p.DeltaY)
}

// SetLocalStorage сохраняет настройку, пришедшую со страницы, и заново
// регистрирует горячие клавиши.
func (a *App) SetLocalStorage(p ipc.StoragePayload) {
	if err := a.config.SetRaw(p.Key, p.Value); err != nil {
		log.Printf("Настройка %s не сохранена: %v", p.Key, err)
		return
	}
	a.applySettings([]string{p.Key}, false)
	if p.Key != config.KeyToggleVisibilityShortcut && p.Key != config.KeyToggleMicShortcut {
		a.registerKeybindings()
	}
}

// Close закрывает приложение.
func (a *App) Close() {
	a.Quit()
}

// UpdateWebviewURL открывает адрес, выбранный на странице.
func (a *App) UpdateWebviewURL(p ipc.URLPayload) {
	a.nav.RequestNavigate(p.URL)
}

// LoadFailed переходит к следующему адресу цепочки.
func (a *App) LoadFailed(p ipc.LoadFailedPayload) {
	a.nav.LoadFailed(p.FailedURL, p.ErrorCode, p.ErrorDescription)
}

// LoadSucceeded запоминает удачный адрес и сообщает его странице.
func (a *App) LoadSucceeded(p ipc.LoadSucceededPayload) {
	a.nav.LoadSucceeded(p.LoadedURL)
	if p.LoadedURL == "" || p.LoadedURL == navigation.BlankURL {
		return
	}
	a.surface.Send(ipc.UpdateWebviewURL, a.nav.CurrentURL())
}

// Blur скрывает окно при потере фокуса, если оно не закреплено поверх других.
func (a *App) Blur() {
	if a.config.AlwaysOnTop() || !a.vis.Visible() {
		return
	}
	a.vis.Set(false)
}
