package shortcut

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty is returned for an empty accelerator.
	ErrEmpty = errors.New("shortcut is empty")
	// ErrNoKey is returned when an accelerator has only modifiers.
	ErrNoKey = errors.New("shortcut has no regular key")
)

// Modifier is a canonical modifier name used by the hotkey registrar.
type Modifier string

const (
	ModCtrl  Modifier = "CONTROL"
	ModShift Modifier = "SHIFT"
	ModAlt   Modifier = "ALT"
	ModSuper Modifier = "META"
)

var modifierAliases = map[string]Modifier{
	"CONTROL": ModCtrl,
	"CTRL":    ModCtrl,
	"SHIFT":   ModShift,
	"ALT":     ModAlt,
	"OPTION":  ModAlt,
	"META":    ModSuper,
	"OS":      ModSuper,
	"SUPER":   ModSuper,
	"WIN":     ModSuper,
	"CMD":     ModSuper,
	"COMMAND": ModSuper,
}

var keyAliases = map[string]string{
	"SPACE":  "SPACE",
	"RETURN": "ENTER",
	"ENTER":  "ENTER",
	"ESC":    "ESCAPE",
	"UP":     "ARROWUP",
	"DOWN":   "ARROWDOWN",
	"LEFT":   "ARROWLEFT",
	"RIGHT":  "ARROWRIGHT",
}

// Binding is a parsed accelerator: any number of modifiers plus one key.
type Binding struct {
	Modifiers []Modifier
	Key       string
}

// String returns the canonical accelerator.
func (b Binding) String() string {
	parts := make([]string, 0, len(b.Modifiers)+1)
	for _, m := range b.Modifiers {
		parts = append(parts, string(m))
	}
	parts = append(parts, b.Key)
	return Format(parts)
}

// Parse parses an accelerator like "CONTROL + SHIFT + K".
// Case and spacing around "+" are ignored.
func Parse(accel string) (Binding, error) {
	raw := strings.TrimSpace(accel)
	if raw == "" {
		return Binding{}, ErrEmpty
	}

	var b Binding
	seen := make(map[Modifier]bool)
	for _, part := range strings.Split(raw, "+") {
		token := Normalize(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if mod, ok := modifierAliases[token]; ok {
			if !seen[mod] {
				seen[mod] = true
				b.Modifiers = append(b.Modifiers, mod)
			}
			continue
		}
		if alias, ok := keyAliases[token]; ok {
			token = alias
		}
		if b.Key != "" {
			return Binding{}, fmt.Errorf("shortcut %q has more than one key (%s, %s)", raw, b.Key, token)
		}
		b.Key = token
	}

	if b.Key == "" {
		return Binding{}, fmt.Errorf("parse %q: %w", raw, ErrNoKey)
	}
	return b, nil
}
