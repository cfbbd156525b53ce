package ipc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Channel names a message kind.
type Channel string

// Renderer → application.
const (
	MoveWindow           Channel = "move-window"
	SetLocalStorage      Channel = "set-local-storage"
	Close                Channel = "close"
	UpdateWebviewURL     Channel = "update-webview-url"
	WebviewLoadFailed    Channel = "webview-load-failed"
	WebviewLoadSucceeded Channel = "webview-load-succeeded"
	WindowBlur           Channel = "window-blur"
)

// Application → renderer.
const (
	ToggleVisibility Channel = "toggle-visibility"
	ActivateMic      Channel = "activate-mic"
)

// ErrUnknownChannel is returned for messages outside the whitelist.
var ErrUnknownChannel = errors.New("unknown ipc channel")

// MovePayload moves the window by a delta in screen pixels.
type MovePayload struct {
	DeltaX int `json:"deltaX"`
	DeltaY int `json:"deltaY"`
}

// StoragePayload writes a setting.
type StoragePayload struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// URLPayload asks for a navigation.
type URLPayload struct {
	URL string `json:"url"`
}

// LoadFailedPayload reports a failed page load.
type LoadFailedPayload struct {
	FailedURL        string `json:"failedUrl"`
	ErrorCode        int    `json:"errorCode"`
	ErrorDescription string `json:"errorDescription"`
}

// LoadSucceededPayload reports a finished page load.
type LoadSucceededPayload struct {
	LoadedURL string `json:"loadedUrl"`
}

// Handler receives decoded renderer messages.
type Handler interface {
	MoveWindow(MovePayload)
	SetLocalStorage(StoragePayload)
	Close()
	UpdateWebviewURL(URLPayload)
	LoadFailed(LoadFailedPayload)
	LoadSucceeded(LoadSucceededPayload)
	Blur()
}

// Route decodes a message and calls the matching handler method.
// An empty payload decodes as the zero value.
func Route(h Handler, ch Channel, payload json.RawMessage) error {
	switch ch {
	case MoveWindow:
		var p MovePayload
		if err := decode(ch, payload, &p); err != nil {
			return err
		}
		h.MoveWindow(p)
	case SetLocalStorage:
		var p StoragePayload
		if err := decode(ch, payload, &p); err != nil {
			return err
		}
		if p.Key == "" {
			return fmt.Errorf("%s: key is empty", ch)
		}
		h.SetLocalStorage(p)
	case Close:
		h.Close()
	case UpdateWebviewURL:
		var p URLPayload
		if err := decode(ch, payload, &p); err != nil {
			return err
		}
		h.UpdateWebviewURL(p)
	case WebviewLoadFailed:
		var p LoadFailedPayload
		if err := decode(ch, payload, &p); err != nil {
			return err
		}
		h.LoadFailed(p)
	case WebviewLoadSucceeded:
		var p LoadSucceededPayload
		if err := decode(ch, payload, &p); err != nil {
			return err
		}
		h.LoadSucceeded(p)
	case WindowBlur:
		h.Blur()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}
	return nil
}

func decode(ch Channel, payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%s: decode payload: %w", ch, err)
	}
	return nil
}

// Script builds the JavaScript that delivers a message to the page bridge.
func Script(ch Channel, arg any) (string, error) {
	data, err := json.Marshal(arg)
	if err != nil {
		return "", fmt.Errorf("%s: encode payload: %w", ch, err)
	}
	name, _ := json.Marshal(string(ch))
	return fmt.Sprintf("window.desktopAI && window.desktopAI.receive(%s, %s);", name, data), nil
}
