package config

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), fileName))

	if got := c.ToggleVisibilityShortcut(); got != DefaultToggleVisibilityShortcut {
		t.Errorf("ToggleVisibilityShortcut() = %q", got)
	}
	if got := c.ToggleMicShortcut(); got != "" {
		t.Errorf("ToggleMicShortcut() = %q", got)
	}
	if got := c.ServiceURL(); got != "" {
		t.Errorf("ServiceURL() = %q", got)
	}
	if c.AlwaysOnTop() {
		t.Error("AlwaysOnTop() = true")
	}
	if !c.ShowOnStartup() {
		t.Error("ShowOnStartup() = false")
	}
}

func TestSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	c := Open(path)

	if err := c.Set(KeyServiceURL, "https://chat.example"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(KeyAlwaysOnTop, true); err != nil {
		t.Fatal(err)
	}
	if err := c.Set("window", map[string]int{"x": 10, "y": 20}); err != nil {
		t.Fatal(err)
	}

	reopened := Open(path)
	if got := reopened.ServiceURL(); got != "https://chat.example" {
		t.Errorf("ServiceURL() = %q", got)
	}
	if !reopened.AlwaysOnTop() {
		t.Error("AlwaysOnTop() not persisted")
	}
	var pos map[string]int
	if !reopened.Get("window", &pos) || pos["x"] != 10 || pos["y"] != 20 {
		t.Errorf("window = %v", pos)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind: %v", err)
	}
}

func TestSetRawRejectsInvalidJSON(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), fileName))
	if err := c.SetRaw(KeyServiceURL, []byte(`{"broken`)); err == nil {
		t.Fatal("SetRaw() accepted invalid JSON")
	}
	if got := c.GetString(KeyServiceURL, "unset"); got != "unset" {
		t.Fatal("invalid value stored")
	}
}

func TestWrongTypeFallsBackToDefault(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), fileName))
	if err := c.Set(KeyShowOnStartup, "yes"); err != nil {
		t.Fatal(err)
	}
	if !c.ShowOnStartup() {
		t.Fatal("ShowOnStartup() should fall back to true")
	}
}

func TestCorruptFileMeansDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := Open(path)
	if got := c.ToggleVisibilityShortcut(); got != DefaultToggleVisibilityShortcut {
		t.Fatalf("ToggleVisibilityShortcut() = %q", got)
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "desktop-ai")
	c, err := New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Path() != filepath.Join(dir, fileName) {
		t.Fatalf("Path() = %q", c.Path())
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}
}

func TestReloadIgnoresOwnWrites(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), fileName))
	called := false
	c.OnChange(func([]string) { called = true })

	if err := c.Set(KeyServiceURL, "https://chat.example"); err != nil {
		t.Fatal(err)
	}
	if keys := c.reload(); len(keys) != 0 {
		t.Fatalf("reload() = %v after own write", keys)
	}
	if called {
		t.Fatal("OnChange called for own write")
	}
}

func TestReloadReportsExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	c := Open(path)
	if err := c.Set(KeyServiceURL, "https://a.example"); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(KeyAlwaysOnTop, true); err != nil {
		t.Fatal(err)
	}

	var got []string
	c.OnChange(func(keys []string) { got = keys })

	external := `{"serviceUrl":"https://b.example","toggleMicShortcut":"ALT + M"}`
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}
	c.reload()

	sort.Strings(got)
	want := []string{KeyAlwaysOnTop, KeyServiceURL, KeyToggleMicShortcut}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("changed keys = %v, want %v", got, want)
	}
	if c.ServiceURL() != "https://b.example" || c.ToggleMicShortcut() != "ALT + M" {
		t.Fatalf("values not reloaded: %q %q", c.ServiceURL(), c.ToggleMicShortcut())
	}
}

func TestWatchPicksUpExternalEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileName)
	c := Open(path)
	if err := c.Set(KeyServiceURL, "https://a.example"); err != nil {
		t.Fatal(err)
	}

	var once sync.Once
	changed := make(chan []string, 1)
	c.OnChange(func(keys []string) {
		once.Do(func() { changed <- keys })
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- c.Watch(ctx) }()

	// Даём watcher'у подписаться на каталог
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte(`{"serviceUrl":"https://b.example"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case keys := <-changed:
		if len(keys) != 1 || keys[0] != KeyServiceURL {
			t.Fatalf("changed keys = %v", keys)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("external edit not detected")
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Watch() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
}
