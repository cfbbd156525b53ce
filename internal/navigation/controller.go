// Package navigation drives the embedded browser's target URL and recovers
// from load failures.
package navigation

import (
	"fmt"
	"log"
	"net/url"
)

const (
	// BlankURL is the empty page used as the last resort.
	BlankURL = "about:blank"

	// DefaultURL is the home page of the chat service.
	DefaultURL = "https://gemini.google.com/app"
)

// Error codes reported by the embedded browser.
const (
	// CodeAborted means the load was superseded by another navigation.
	CodeAborted = -3
	// CodeCrashed is reported when the web content process goes away.
	CodeCrashed = -1000
)

// Navigator loads a URL into the embedded browser.
type Navigator interface {
	Navigate(url string)
}

// Reporter shows an error to the user.
type Reporter interface {
	Error(title, message string)
}

// Valid reports whether the URL may be loaded: the blank page or an
// absolute http/https URL with a host.
func Valid(raw string) bool {
	if raw == BlankURL {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Controller tracks the current and last good URL.
// All methods must be called from the same goroutine.
type Controller struct {
	nav      Navigator
	reporter Reporter

	defaultURL  string
	currentURL  string
	lastGoodURL string
}

// New creates a controller. The default URL doubles as the initial
// last good URL.
func New(defaultURL string, nav Navigator, reporter Reporter) *Controller {
	return &Controller{
		nav:         nav,
		reporter:    reporter,
		defaultURL:  defaultURL,
		lastGoodURL: defaultURL,
	}
}

// DefaultURL returns the configured home URL.
func (c *Controller) DefaultURL() string { return c.defaultURL }

// CurrentURL returns the URL of the last accepted navigation.
func (c *Controller) CurrentURL() string { return c.currentURL }

// LastGoodURL returns the most recent URL confirmed to have loaded.
func (c *Controller) LastGoodURL() string { return c.lastGoodURL }

// Resolve picks the startup URL: the stored one if it is valid,
// the default otherwise.
func (c *Controller) Resolve(stored string) {
	if stored != "" && Valid(stored) {
		c.RequestNavigate(stored)
		return
	}
	if stored != "" {
		log.Printf("Сохранённый адрес %q некорректен, открываю %s", stored, c.defaultURL)
	}
	c.RequestNavigate(c.defaultURL)
}

// RequestNavigate validates raw and loads it. An invalid URL loads the last
// good URL (or the blank page) instead and reports the error.
// It returns true if raw itself was accepted.
func (c *Controller) RequestNavigate(raw string) bool {
	if Valid(raw) {
		c.navigate(raw)
		return true
	}

	fallback := BlankURL
	if c.lastGoodURL != "" && c.lastGoodURL != raw {
		fallback = c.lastGoodURL
	}
	log.Printf("Некорректный адрес %q, загружаю %s", raw, fallback)
	c.navigate(fallback)

	if raw != fallback {
		c.report("Invalid URL", fmt.Sprintf("The provided URL %q is not valid. Loading previous or blank page.", raw))
	}
	return false
}

// LoadSucceeded records a confirmed load.
func (c *Controller) LoadSucceeded(loaded string) {
	if loaded == BlankURL || !Valid(loaded) {
		return
	}
	c.lastGoodURL = loaded
	log.Printf("Страница загружена: %s", loaded)
}

// LoadFailed handles a failed load by stepping down the fallback chain
// last good → default → blank. Each step is a single navigation; a failure of
// the default URL or of the blank page ends the chain.
func (c *Controller) LoadFailed(failed string, code int, description string) {
	if code == CodeAborted {
		log.Printf("Загрузка %s прервана навигацией", failed)
		return
	}

	switch step := c.nextHop(failed); step {
	case "":
		log.Printf("Не удалось загрузить пустую страницу (%d): %s", code, description)
		c.report("WebView Load Error", fmt.Sprintf(
			"The web content failed to load.\nError (%d): %s", code, description))

	case BlankURL:
		c.navigate(BlankURL)
		c.report("Default URL Load Error", fmt.Sprintf(
			"Failed to load the default application URL: %s\nError (%d): %s\n"+
				"Please check your internet connection. The application will load a blank page.",
			failed, code, description))

	default:
		c.RequestNavigate(step)
		c.report("Custom URL Load Error", fmt.Sprintf(
			"Failed to load custom URL: %s\nError (%d): %s\nAttempting to load %s.",
			failed, code, description, step))
	}
}

// nextHop returns the URL to load after failed, or "" when the chain ends.
func (c *Controller) nextHop(failed string) string {
	switch {
	case failed == BlankURL:
		return ""
	case failed == c.defaultURL:
		return BlankURL
	case c.lastGoodURL != "" && c.lastGoodURL != failed && c.lastGoodURL != BlankURL:
		return c.lastGoodURL
	default:
		return c.defaultURL
	}
}

func (c *Controller) navigate(u string) {
	c.currentURL = u
	if c.nav != nil {
		c.nav.Navigate(u)
	}
}

func (c *Controller) report(title, message string) {
	log.Printf("%s: %s", title, message)
	if c.reporter != nil {
		c.reporter.Error(title, message)
	}
}
