package app

import (
	"sync"
	"time"

	"desktop-ai/internal/ipc"
)

// hideDelay даёт странице время проиграть анимацию скрытия.
const hideDelay = 400 * time.Millisecond

// windowControl - то, что нужно переключателю видимости от окна.
type windowControl interface {
	Show()
	Hide()
	Send(ch ipc.Channel, arg any)
}

// visibility показывает окно сразу, а скрывает с задержкой.
// Новое переключение отменяет ожидающее скрытие.
type visibility struct {
	mu       sync.Mutex
	win      windowControl
	delay    time.Duration
	visible  bool
	gen      uint64 // поколение ожидающего скрытия
	timer    *time.Timer
	onChange func(visible bool)
}

func newVisibility(win windowControl, delay time.Duration) *visibility {
	return &visibility{win: win, delay: delay, visible: true}
}

// Visible возвращает последнее запрошенное состояние.
func (v *visibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

// Set показывает или скрывает окно и сообщает об этом странице.
func (v *visibility) Set(show bool) {
	v.mu.Lock()
	v.visible = show
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	if !show {
		gen := v.gen
		v.timer = time.AfterFunc(v.delay, func() {
			v.mu.Lock()
			stale := v.gen != gen
			if !stale {
				v.timer = nil
			}
			v.mu.Unlock()
			if !stale {
				v.win.Hide()
			}
		})
	}
	callback := v.onChange
	v.mu.Unlock()

	if show {
		v.win.Show()
	}
	v.win.Send(ipc.ToggleVisibility, show)
	if callback != nil {
		callback(show)
	}
}

// Toggle переключает видимость.
func (v *visibility) Toggle() {
	v.Set(!v.Visible())
}

// HideNow скрывает окно без задержки (при запуске).
func (v *visibility) HideNow() {
	v.mu.Lock()
	v.visible = false
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
	callback := v.onChange
	v.mu.Unlock()

	v.win.Hide()
	if callback != nil {
		callback(false)
	}
}

// Stop отменяет ожидающее скрытие.
func (v *visibility) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}
