// Package notify предоставляет системные уведомления.
package notify

import (
	"log"
	"sync"

	"github.com/gen2brain/beeep"

	"desktop-ai/internal/i18n"
)

const appName = "desktop-ai"

// Notifier отправляет системные уведомления.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
	send    func(title, message string) error
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return &Notifier{enabled: enabled, send: beeepNotify}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Error показывает уведомление об ошибке.
func (n *Notifier) Error(msg string) {
	n.notify(i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	if len(msg) > 100 {
		msg = msg[:100] + "..."
	}
	n.notify("", msg)
}

func (n *Notifier) notify(title, message string) {
	n.mu.Lock()
	enabled, send := n.enabled, n.send
	n.mu.Unlock()
	if !enabled {
		return
	}
	if title != "" {
		title = appName + ": " + title
	} else {
		title = appName
	}
	// Ошибки уведомлений не критичны
	if err := send(title, message); err != nil {
		log.Printf("Уведомление не показано: %v", err)
	}
}

func beeepNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}
