package app

import (
	"log"

	"desktop-ai/internal/i18n"
	"desktop-ai/internal/ipc"
	"desktop-ai/internal/shortcut"
)

// Идентификаторы глобальных горячих клавиш.
const (
	hotkeyToggleVisibility = "toggle-visibility"
	hotkeyToggleMic        = "toggle-mic"
)

// registerKeybindings заново регистрирует горячие клавиши из настроек.
// Пока открыто окно настроек, клавиши не регистрируются.
func (a *App) registerKeybindings() {
	a.hotkeys.UnregisterAll()
	if a.openOverlays > 0 || a.quitting {
		return
	}

	bindings := []struct {
		id    string
		accel string
		fn    func()
	}{
		{hotkeyToggleVisibility, a.config.ToggleVisibilityShortcut(), a.toggleVisibility},
		{hotkeyToggleMic, a.config.ToggleMicShortcut(), a.toggleMic},
	}

	for _, b := range bindings {
		if b.accel == "" {
			continue
		}
		parsed, err := shortcut.Parse(b.accel)
		if err != nil {
			log.Printf("Горячая клавиша %s: %v", b.id, err)
			a.notifier.Error(i18n.T("error_hotkey_invalid") + ": " + b.accel)
			continue
		}

		fn := b.fn
		err = a.hotkeys.Register(b.id, parsed, func() {
			a.loop.Post(fn)
		})
		if err != nil {
			log.Printf("Не удалось зарегистрировать %s (%s): %v", b.id, parsed, err)
			a.notifier.Error(i18n.T("error_hotkey_register") + ": " + b.accel)
			continue
		}
		log.Printf("Горячая клавиша %s: %s", b.id, parsed)
	}
}

func (a *App) toggleVisibility() {
	a.vis.Toggle()
}

// toggleMic показывает окно и включает микрофон на странице.
func (a *App) toggleMic() {
	if !a.vis.Visible() {
		a.vis.Set(true)
	}
	a.surface.Send(ipc.ActivateMic, nil)
}
