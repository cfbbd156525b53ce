// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	EN Language = "en"
	RU Language = "ru"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_tooltip": "desktop-ai",

		// Tray menu
		"tray_about":                "About (GitHub)",
		"tray_about_hint":           "Open the project page",
		"tray_show":                 "Show",
		"tray_show_hint":            "Show the chat window",
		"tray_settings":             "Settings",
		"tray_settings_hint":        "Shortcut, service URL, language",
		"tray_keybindings":          "Keybindings",
		"tray_keybindings_hint":     "Global shortcuts",
		"tray_always_on_top":        "Always on Top",
		"tray_always_on_top_hint":   "Keep the window above others and do not hide it on focus loss",
		"tray_show_on_startup":      "Show on Startup",
		"tray_show_on_startup_hint": "Show the window when the application starts",
		"tray_quit":                 "Quit",
		"tray_quit_hint":            "Close the application",

		// Notifications
		"notify_error":          "Error",
		"error_hotkey_register": "Could not register shortcut",
		"error_hotkey_invalid":  "Invalid shortcut",

		// Settings and keybinding overlays
		"settings_title":             "Settings",
		"keybindings_title":          "Keybindings",
		"settings_hotkey":            "Shortcuts",
		"settings_toggle_visibility": "Show / hide window",
		"settings_toggle_mic":        "Activate microphone",
		"settings_hotkey_edit":       "Record",
		"settings_hotkey_cancel":     "Cancel",
		"settings_hotkey_not_set":    "Not set",
		"settings_hotkey_prompt":     "Press keys...",
		"settings_hotkey_hint":       "Backspace removes the last key, Escape cancels",
		"settings_service_url":       "Service URL",
		"settings_service_url_hint":  "https://gemini.google.com/app",
		"settings_ui_language":       "Interface language",
		"settings_cancel":            "Cancel",
		"settings_done":              "Done",
	},
	RU: {
		// App
		"app_tooltip": "desktop-ai",

		// Tray menu
		"tray_about":                "О программе (GitHub)",
		"tray_about_hint":           "Открыть страницу проекта",
		"tray_show":                 "Показать",
		"tray_show_hint":            "Показать окно чата",
		"tray_settings":             "Настройки",
		"tray_settings_hint":        "Горячая клавиша, адрес сервиса, язык",
		"tray_keybindings":          "Горячие клавиши",
		"tray_keybindings_hint":     "Глобальные сочетания клавиш",
		"tray_always_on_top":        "Поверх всех окон",
		"tray_always_on_top_hint":   "Держать окно сверху и не скрывать при потере фокуса",
		"tray_show_on_startup":      "Показывать при запуске",
		"tray_show_on_startup_hint": "Показывать окно при старте приложения",
		"tray_quit":                 "Выход",
		"tray_quit_hint":            "Закрыть приложение",

		// Notifications
		"notify_error":          "Ошибка",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
		"error_hotkey_invalid":  "Некорректная горячая клавиша",

		// Settings and keybinding overlays
		"settings_title":             "Настройки",
		"keybindings_title":          "Горячие клавиши",
		"settings_hotkey":            "Сочетания клавиш",
		"settings_toggle_visibility": "Показать / скрыть окно",
		"settings_toggle_mic":        "Включить микрофон",
		"settings_hotkey_edit":       "Записать",
		"settings_hotkey_cancel":     "Отмена",
		"settings_hotkey_not_set":    "Не задана",
		"settings_hotkey_prompt":     "Нажмите комбинацию...",
		"settings_hotkey_hint":       "Backspace удаляет последнюю клавишу, Escape отменяет",
		"settings_service_url":       "Адрес сервиса",
		"settings_service_url_hint":  "https://gemini.google.com/app",
		"settings_ui_language":       "Язык интерфейса",
		"settings_cancel":            "Отмена",
		"settings_done":              "Готово",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages are ignored.
func SetLanguage(lang Language) {
	if _, ok := translations[lang]; !ok {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}
