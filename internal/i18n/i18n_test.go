package i18n

import "testing"

func TestTranslationsComplete(t *testing.T) {
	for key := range translations[EN] {
		for _, lang := range AvailableLanguages() {
			if _, ok := translations[lang][key]; !ok {
				t.Errorf("%s: missing %q", lang, key)
			}
		}
	}
	if len(translations[RU]) != len(translations[EN]) {
		t.Errorf("ru has %d keys, en has %d", len(translations[RU]), len(translations[EN]))
	}
}

func TestSetLanguage(t *testing.T) {
	defer SetLanguage(GetLanguage())

	SetLanguage(RU)
	if got := T("tray_quit"); got != "Выход" {
		t.Fatalf("T() = %q", got)
	}
	SetLanguage("xx")
	if GetLanguage() != RU {
		t.Fatalf("unknown language accepted: %q", GetLanguage())
	}
	if got := T("no_such_key"); got != "no_such_key" {
		t.Fatalf("T() fallback = %q", got)
	}
}
