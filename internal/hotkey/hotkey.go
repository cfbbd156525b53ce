// Package hotkey предоставляет глобальные горячие клавиши.
package hotkey

import (
	"fmt"
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"desktop-ai/internal/shortcut"
)

const (
	debounceInterval  = 300 * time.Millisecond // Защита от key repeat
	unregisterTimeout = 500 * time.Millisecond
)

type entry struct {
	hk      *hotkey.Hotkey
	binding shortcut.Binding
	stopCh  chan struct{}
}

// Manager держит набор зарегистрированных горячих клавиш по идентификаторам.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New создаёт пустой набор горячих клавиш.
func New() *Manager {
	return &Manager{entries: make(map[string]*entry)}
}

// Register регистрирует горячую клавишу под идентификатором id.
// Предыдущая регистрация с тем же id отменяется.
func (m *Manager) Register(id string, b shortcut.Binding, onPress func()) error {
	mods, key, err := convert(b)
	if err != nil {
		return fmt.Errorf("горячая клавиша %s: %w", id, err)
	}

	m.Unregister(id)

	log.Printf("Регистрация горячей клавиши %s: %s", id, b)
	hk := hotkey.New(mods, key)
	if err := hk.Register(); err != nil {
		return fmt.Errorf("регистрация %s (%s): %w", id, b, err)
	}

	e := &entry{hk: hk, binding: b, stopCh: make(chan struct{})}
	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()

	go listen(e, onPress)
	log.Printf("Горячая клавиша %s успешно зарегистрирована", id)
	return nil
}

func listen(e *entry, onPress func()) {
	var lastKeydown time.Time
	for {
		select {
		case <-e.stopCh:
			return
		case _, ok := <-e.hk.Keydown():
			if !ok {
				return
			}
			// Debounce: игнорируем повторные keydown от key repeat
			now := time.Now()
			if now.Sub(lastKeydown) < debounceInterval {
				continue
			}
			lastKeydown = now
			if onPress != nil {
				onPress()
			}
		case _, ok := <-e.hk.Keyup():
			if !ok {
				return
			}
		}
	}
}

// Unregister отменяет регистрацию горячей клавиши id. Отсутствие регистрации не ошибка.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	e, ok := m.entries[id]
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	close(e.stopCh)

	// Unregister может зависнуть, если цикл событий платформы занят
	done := make(chan struct{})
	go func() {
		if err := e.hk.Unregister(); err != nil {
			log.Printf("Ошибка отмены горячей клавиши %s: %v", id, err)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(unregisterTimeout):
		log.Printf("Hotkey unregister timeout: %s", id)
	}
}

// UnregisterAll отменяет все регистрации.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	for _, id := range ids {
		m.Unregister(id)
	}
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// convert переводит разобранное сочетание в типы библиотеки.
func convert(b shortcut.Binding) ([]hotkey.Modifier, hotkey.Key, error) {
	mods := make([]hotkey.Modifier, 0, len(b.Modifiers))
	for _, m := range b.Modifiers {
		mod, ok := modifierMap[m]
		if !ok {
			return nil, 0, fmt.Errorf("модификатор %s не поддерживается", m)
		}
		mods = append(mods, mod)
	}
	key, ok := keyMap[b.Key]
	if !ok {
		return nil, 0, fmt.Errorf("клавиша %s не поддерживается", b.Key)
	}
	return mods, key, nil
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг токена клавиши -> hotkey.Key
var keyMap = map[string]hotkey.Key{
	"SPACE":      hotkey.KeySpace,
	"ENTER":      hotkey.KeyReturn,
	"TAB":        hotkey.KeyTab,
	"ESCAPE":     hotkey.KeyEscape,
	"DELETE":     hotkey.KeyDelete,
	"ARROWLEFT":  hotkey.KeyLeft,
	"ARROWRIGHT": hotkey.KeyRight,
	"ARROWUP":    hotkey.KeyUp,
	"ARROWDOWN":  hotkey.KeyDown,
	"0":          hotkey.Key0,
	"1":          hotkey.Key1,
	"2":          hotkey.Key2,
	"3":          hotkey.Key3,
	"4":          hotkey.Key4,
	"5":          hotkey.Key5,
	"6":          hotkey.Key6,
	"7":          hotkey.Key7,
	"8":          hotkey.Key8,
	"9":          hotkey.Key9,
	"A":          hotkey.KeyA,
	"B":          hotkey.KeyB,
	"C":          hotkey.KeyC,
	"D":          hotkey.KeyD,
	"E":          hotkey.KeyE,
	"F":          hotkey.KeyF,
	"G":          hotkey.KeyG,
	"H":          hotkey.KeyH,
	"I":          hotkey.KeyI,
	"J":          hotkey.KeyJ,
	"K":          hotkey.KeyK,
	"L":          hotkey.KeyL,
	"M":          hotkey.KeyM,
	"N":          hotkey.KeyN,
	"O":          hotkey.KeyO,
	"P":          hotkey.KeyP,
	"Q":          hotkey.KeyQ,
	"R":          hotkey.KeyR,
	"S":          hotkey.KeyS,
	"T":          hotkey.KeyT,
	"U":          hotkey.KeyU,
	"V":          hotkey.KeyV,
	"W":          hotkey.KeyW,
	"X":          hotkey.KeyX,
	"Y":          hotkey.KeyY,
	"Z":          hotkey.KeyZ,
	"F1":         hotkey.KeyF1,
	"F2":         hotkey.KeyF2,
	"F3":         hotkey.KeyF3,
	"F4":         hotkey.KeyF4,
	"F5":         hotkey.KeyF5,
	"F6":         hotkey.KeyF6,
	"F7":         hotkey.KeyF7,
	"F8":         hotkey.KeyF8,
	"F9":         hotkey.KeyF9,
	"F10":        hotkey.KeyF10,
	"F11":        hotkey.KeyF11,
	"F12":        hotkey.KeyF12,
}
