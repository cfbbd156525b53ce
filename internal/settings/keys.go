package settings

import (
	"log"

	"gioui.org/io/key"

	"desktop-ai/internal/i18n"
	"desktop-ai/internal/shortcut"
)

// keyTokens переводит имена клавиш Gio в токены сочетаний.
var keyTokens = map[key.Name]string{
	key.NameCtrl:           "CONTROL",
	key.NameShift:          "SHIFT",
	key.NameAlt:            "ALT",
	key.NameSuper:          "META",
	key.NameCommand:        "META",
	key.NameEscape:         shortcut.KeyEscape,
	key.NameDeleteBackward: shortcut.KeyBackspace,
	key.NameDeleteForward:  "DELETE",
	key.NameReturn:         "ENTER",
	key.NameEnter:          "ENTER",
	key.NameSpace:          "SPACE",
	key.NameTab:            "TAB",
	key.NameLeftArrow:      "ARROWLEFT",
	key.NameRightArrow:     "ARROWRIGHT",
	key.NameUpArrow:        "ARROWUP",
	key.NameDownArrow:      "ARROWDOWN",
	key.NameHome:           "HOME",
	key.NameEnd:            "END",
	key.NamePageUp:         "PAGEUP",
	key.NamePageDown:       "PAGEDOWN",
}

// keyToken возвращает токен для имени клавиши.
func keyToken(name key.Name) string {
	if t, ok := keyTokens[name]; ok {
		return t
	}
	return shortcut.Normalize(string(name))
}

// modifierTokens возвращает токены модификаторов, зажатых во время события.
func modifierTokens(m key.Modifiers) []string {
	var out []string
	if m.Contain(key.ModCtrl) {
		out = append(out, "CONTROL")
	}
	if m.Contain(key.ModShift) {
		out = append(out, "SHIFT")
	}
	if m.Contain(key.ModAlt) {
		out = append(out, "ALT")
	}
	if m.Contain(key.ModSuper) || m.Contain(key.ModCommand) {
		out = append(out, "META")
	}
	return out
}

// feedKey передаёт событие Gio записывающему виджету. Модификаторы,
// зажатые при нажатии обычной клавиши, добавляются перед ней, так как
// не все платформы присылают отдельные события для модификаторов.
func feedKey(rec *shortcut.Recorder, e key.Event) shortcut.Result {
	token := keyToken(e.Name)
	if e.State == key.Release {
		_, res := rec.KeyUp(token)
		return res
	}
	if token != shortcut.KeyEscape && token != shortcut.KeyBackspace && !shortcut.IsModifier(token) {
		for _, m := range modifierTokens(e.Modifiers) {
			rec.KeyDown(m)
		}
	}
	_, res := rec.KeyDown(token)
	return res
}

// startRecording opens a session that reverts to the row's current value.
func (row *shortcutRow) startRecording() {
	row.previous = row.rec.Value()
	row.err = ""
	row.rec.Start(row.previous)
}

// accept checks a finished recording. A combination the hotkey layer
// cannot parse is dropped and the row keeps its previous value.
func (row *shortcutRow) accept(res shortcut.Result) {
	if res.State != shortcut.StateCommitted {
		return
	}
	if _, err := shortcut.Parse(res.Value); err != nil {
		log.Printf("shortcut %s: %v", row.rec.Name(), err)
		row.rec.SetValue(row.previous)
		row.err = i18n.T("error_hotkey_invalid") + ": " + res.Value
		return
	}
	row.err = ""
}
