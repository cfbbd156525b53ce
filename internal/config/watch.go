package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch следит за файлом настроек и перечитывает его при изменениях извне.
// Возвращается, когда ctx отменён.
func (c *Config) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer w.Close()

	// Следим за каталогом: сохранение через rename заменяет сам файл
	dir := filepath.Dir(c.configPath)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("наблюдение за %s: %w", dir, err)
	}
	target := filepath.Clean(c.configPath)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if keys := c.reload(); len(keys) > 0 {
				log.Printf("Настройки изменены извне: %v", keys)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("Ошибка наблюдения за настройками: %v", err)
		}
	}
}
