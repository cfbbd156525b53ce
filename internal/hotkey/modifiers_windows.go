//go:build windows

package hotkey

import (
	"golang.design/x/hotkey"

	"desktop-ai/internal/shortcut"
)

// modifierMap для Windows: META - это клавиша Win
var modifierMap = map[shortcut.Modifier]hotkey.Modifier{
	shortcut.ModCtrl:  hotkey.ModCtrl,
	shortcut.ModShift: hotkey.ModShift,
	shortcut.ModAlt:   hotkey.ModAlt,
	shortcut.ModSuper: hotkey.ModWin,
}
