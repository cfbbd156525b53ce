//go:build linux

package hotkey

import (
	"golang.design/x/hotkey"

	"desktop-ai/internal/shortcut"
)

// modifierMap для X11
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.Mod1, // Alt = Mod1 на X11
	shortcut.ModSuper: hotkey.Mod4, // Super/Win = Mod4 на X11
}
