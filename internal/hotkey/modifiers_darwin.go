//go:build darwin

package hotkey

import (
	"golang.design/x/hotkey"

	"desktop-ai/internal/shortcut"
)

// modifierMap для macOS: META - это Command
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.ModOption,
	shortcut.ModSuper: hotkey.ModCmd,
}
