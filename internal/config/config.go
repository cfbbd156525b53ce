// Package config предоставляет хранилище настроек "ключ-значение" с сохранением в файл.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Ключи настроек.
const (
	KeyToggleVisibilityShortcut = "toggleVisibilityShortcut"
	KeyToggleMicShortcut        = "toggleMicShortcut"
	KeyServiceURL               = "serviceUrl"
	KeyAlwaysOnTop              = "always-on-top"
	KeyShowOnStartup            = "show-on-startup"
	KeyUILanguage               = "ui-language"
)

// DefaultToggleVisibilityShortcut - горячая клавиша показа/скрытия окна по умолчанию.
const DefaultToggleVisibilityShortcut = "CONTROL + SHIFT + SPACE"

const fileName = "config.json"

// Config хранит настройки приложения.
type Config struct {
	mu         sync.RWMutex
	values     map[string]json.RawMessage
	configPath string
	lastSaved  []byte // содержимое последней записи, чтобы watcher не реагировал на свои изменения
	onChange   func(keys []string)
}

// New создаёт хранилище в каталоге пользователя (или в dir, если задан).
func New(dir string) (*Config, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("каталог настроек: %w", err)
		}
		dir = filepath.Join(base, "desktop-ai")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание %s: %w", dir, err)
	}
	return Open(filepath.Join(dir, fileName)), nil
}

// Open открывает хранилище по пути к файлу. Отсутствующий или повреждённый
// файл означает настройки по умолчанию.
func Open(path string) *Config {
	c := &Config{
		values:     make(map[string]json.RawMessage),
		configPath: path,
	}
	c.load()
	return c
}

// Path возвращает путь к файлу настроек.
func (c *Config) Path() string {
	return c.configPath
}

// load загружает настройки из файла.
func (c *Config) load() {
	values, err := readFile(c.configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Не удалось прочитать настройки %s: %v", c.configPath, err)
		}
		return
	}
	c.values = values
}

func readFile(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	values := make(map[string]json.RawMessage)
	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("разбор %s: %w", path, err)
	}
	return values, nil
}

// save сохраняет настройки в файл. Вызывается под c.mu.
func (c *Config) save() error {
	data, err := json.MarshalIndent(c.values, "", "  ")
	if err != nil {
		return err
	}

	// Пишем во временный файл и переименовываем, чтобы не оставить полузаписанный JSON
	tmp := c.configPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("запись настроек: %w", err)
	}
	if err := os.Rename(tmp, c.configPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("запись настроек: %w", err)
	}
	c.lastSaved = data
	return nil
}

// Get декодирует значение ключа в out. Возвращает false, если ключа нет
// или значение другого типа.
func (c *Config) Get(key string, out any) bool {
	c.mu.RLock()
	raw, ok := c.values[key]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("Настройка %s: неожиданный тип: %v", key, err)
		return false
	}
	return true
}

// Set сохраняет значение ключа.
func (c *Config) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("настройка %s: %w", key, err)
	}
	return c.SetRaw(key, raw)
}

// SetRaw сохраняет значение ключа, уже закодированное в JSON.
func (c *Config) SetRaw(key string, raw json.RawMessage) error {
	if !json.Valid(raw) {
		return fmt.Errorf("настройка %s: некорректный JSON", key)
	}
	c.mu.Lock()
	c.values[key] = append(json.RawMessage(nil), raw...)
	err := c.save()
	c.mu.Unlock()
	if err != nil {
		log.Printf("Не удалось сохранить настройку %s: %v", key, err)
	}
	return err
}

// GetString возвращает строковую настройку или def.
func (c *Config) GetString(key, def string) string {
	var s string
	if !c.Get(key, &s) {
		return def
	}
	return s
}

// GetBool возвращает логическую настройку или def.
func (c *Config) GetBool(key string, def bool) bool {
	var b bool
	if !c.Get(key, &b) {
		return def
	}
	return b
}

// ToggleVisibilityShortcut возвращает горячую клавишу показа окна.
func (c *Config) ToggleVisibilityShortcut() string {
	return c.GetString(KeyToggleVisibilityShortcut, DefaultToggleVisibilityShortcut)
}

// ToggleMicShortcut возвращает горячую клавишу микрофона (пусто - не задана).
func (c *Config) ToggleMicShortcut() string {
	return c.GetString(KeyToggleMicShortcut, "")
}

// ServiceURL возвращает сохранённый адрес сервиса (пусто - не задан).
func (c *Config) ServiceURL() string {
	return c.GetString(KeyServiceURL, "")
}

// AlwaysOnTop возвращает true, если окно не скрывается при потере фокуса.
func (c *Config) AlwaysOnTop() bool {
	return c.GetBool(KeyAlwaysOnTop, false)
}

// ShowOnStartup возвращает true, если окно показывается при запуске.
func (c *Config) ShowOnStartup() bool {
	return c.GetBool(KeyShowOnStartup, true)
}

// UILanguage возвращает язык интерфейса.
func (c *Config) UILanguage() string {
	return c.GetString(KeyUILanguage, "")
}

// OnChange устанавливает callback для изменений файла извне.
func (c *Config) OnChange(fn func(keys []string)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// reload перечитывает файл и сообщает об изменившихся ключах.
func (c *Config) reload() []string {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return nil
	}

	c.mu.RLock()
	own := bytes.Equal(data, c.lastSaved)
	c.mu.RUnlock()
	if own {
		return nil
	}

	values, err := readFile(c.configPath)
	if err != nil {
		log.Printf("Изменённый файл настроек не прочитан: %v", err)
		return nil
	}

	c.mu.Lock()
	changed := diffKeys(c.values, values)
	c.values = values
	c.lastSaved = data
	callback := c.onChange
	c.mu.Unlock()

	if len(changed) > 0 && callback != nil {
		callback(changed)
	}
	return changed
}

func diffKeys(old, cur map[string]json.RawMessage) []string {
	var keys []string
	for k, v := range cur {
		if prev, ok := old[k]; !ok || !bytes.Equal(prev, v) {
			keys = append(keys, k)
		}
	}
	for k := range old {
		if _, ok := cur[k]; !ok {
			keys = append(keys, k)
		}
	}
	return keys
}
