// Package dialog предоставляет GUI диалоги для сообщений пользователю.
package dialog

import (
	"errors"
	"log"
	"sync"

	"github.com/ncruces/zenity"
)

// ShowError показывает диалог ошибки (блокирующий).
func ShowError(title, message string) {
	if err := zenity.Error(message, zenity.Title(title)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		log.Printf("Диалог %q: %v", title, err)
	}
}

type message struct {
	title, text string
}

// Reporter показывает ошибки по одной, не блокируя вызывающего.
type Reporter struct {
	show  func(title, message string)
	queue chan message
	once  sync.Once
	done  chan struct{}
}

// NewReporter создаёт Reporter, показывающий ошибки через zenity.
func NewReporter() *Reporter {
	return newReporter(ShowError)
}

func newReporter(show func(title, message string)) *Reporter {
	r := &Reporter{
		show:  show,
		queue: make(chan message, 8),
		done:  make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Reporter) run() {
	defer close(r.done)
	for m := range r.queue {
		r.show(m.title, m.text)
	}
}

// Error ставит диалог ошибки в очередь.
func (r *Reporter) Error(title, text string) {
	log.Printf("%s: %s", title, text)
	defer func() {
		// Очередь закрыта - приложение завершается
		if recover() != nil {
			log.Printf("Диалог %q пропущен: приложение завершается", title)
		}
	}()
	select {
	case r.queue <- message{title: title, text: text}:
	default:
		log.Printf("Слишком много диалогов, %q пропущен", title)
	}
}

// Close закрывает очередь и ждёт, пока закроется текущий диалог.
func (r *Reporter) Close() {
	r.once.Do(func() {
		close(r.queue)
	})
	<-r.done
}
