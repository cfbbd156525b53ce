package hotkey

import (
	"testing"

	"desktop-ai/internal/shortcut"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		accel   string
		mods    int
		wantErr bool
	}{
		{"CONTROL + SHIFT + SPACE", 2, false},
		{"ALT + M", 1, false},
		{"META + ALT + F12", 2, false},
		{"CONTROL + ARROWUP", 1, false},
		{"SHIFT + 7", 1, false},
		{"CONTROL + PAGEDOWN", 0, true},
		{"CONTROL + ~", 0, true},
	}
	for _, tt := range tests {
		b, err := shortcut.Parse(tt.accel)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.accel, err)
		}
		mods, _, err := convert(b)
		if (err != nil) != tt.wantErr {
			t.Errorf("convert(%q) error = %v, wantErr %v", tt.accel, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && len(mods) != tt.mods {
			t.Errorf("convert(%q) mods = %d, want %d", tt.accel, len(mods), tt.mods)
		}
	}
}

func TestKeyMapCoversLettersAndDigits(t *testing.T) {
	for c := 'A'; c <= 'Z'; c++ {
		if _, ok := keyMap[string(c)]; !ok {
			t.Errorf("keyMap missing %c", c)
		}
	}
	for c := '0'; c <= '9'; c++ {
		if _, ok := keyMap[string(c)]; !ok {
			t.Errorf("keyMap missing %c", c)
		}
	}
}

func TestUnregisterUnknownIsNoop(t *testing.T) {
	m := New()
	m.Unregister("missing")
	m.UnregisterAll()
	m.mu.Lock()
	n := len(m.entries)
	m.mu.Unlock()
	if n != 0 {
		t.Fatalf("%d entries left", n)
	}
}
