// Package shortcut captures keyboard shortcuts from raw key events and
// converts them to bindings for the global hotkey registrar.
package shortcut

import (
	"log"
	"strings"
	"sync"
)

// MaxKeys is the longest sequence a recorder accepts.
const MaxKeys = 3

// Separator joins tokens in a formatted shortcut.
const Separator = " + "

// Special tokens.
const (
	KeyEscape    = "ESCAPE"
	KeyBackspace = "BACKSPACE"
)

var modifierTokens = map[string]bool{
	"CONTROL": true,
	"ALT":     true,
	"SHIFT":   true,
	"META":    true,
	"OS":      true,
}

// Normalize returns the token for a raw key name.
func Normalize(key string) string {
	return strings.ToUpper(key)
}

// IsModifier reports whether the token is a modifier key.
func IsModifier(token string) bool {
	return modifierTokens[Normalize(token)]
}

// Format joins tokens into the persisted shortcut string.
func Format(tokens []string) string {
	return strings.Join(tokens, Separator)
}

// State is the recorder state.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateCommitted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateCommitted:
		return "committed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result describes how a recording session ended.
// State is StateRecording while the session is still open.
type Result struct {
	State State
	Value string
}

// Done reports whether the session was finalized.
func (r Result) Done() bool {
	return r.State == StateCommitted || r.State == StateCancelled
}

// AttachFunc subscribes the host's key listeners for one recording session
// and returns the function that unsubscribes them.
type AttachFunc func() (detach func())

// Recorder turns key-down/key-up events into a shortcut string.
type Recorder struct {
	name   string
	attach AttachFunc
	group  *Group

	mu       sync.Mutex
	state    State
	value    string
	previous string
	keys     []string
	escaped  bool
	detach   func()
}

// NewRecorder creates a recorder showing value while idle.
// attach may be nil when the host wires key events without subscriptions.
func NewRecorder(name, value string, attach AttachFunc) *Recorder {
	return &Recorder{
		name:   name,
		value:  value,
		attach: attach,
	}
}

// Name returns the setting key the recorder edits.
func (r *Recorder) Name() string {
	return r.name
}

// Value returns the stored (last committed) value.
func (r *Recorder) Value() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// SetValue replaces the stored value. Ignored while recording.
func (r *Recorder) SetValue(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRecording {
		return
	}
	r.value = v
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Recording reports whether a session is open.
func (r *Recorder) Recording() bool {
	return r.State() == StateRecording
}

// Display returns the live sequence while recording and the stored value
// otherwise. An empty string means the host should show a placeholder.
func (r *Recorder) Display() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateRecording {
		return Format(r.keys)
	}
	return r.value
}

// Start opens a recording session. previous is restored on cancel.
// If the recorder belongs to a Group, any other active recorder is reverted first.
func (r *Recorder) Start(previous string) {
	if r.group != nil {
		r.group.activate(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.state == StateRecording {
		return
	}
	r.state = StateRecording
	r.previous = previous
	r.keys = r.keys[:0]
	r.escaped = false
	if r.attach != nil {
		r.detach = r.attach()
	}
}

// KeyDown feeds a pressed key. It returns true when the event was consumed
// and its default action must be suppressed.
func (r *Recorder) KeyDown(key string) (bool, Result) {
	r.mu.Lock()
	if r.state != StateRecording {
		res := Result{State: r.state, Value: r.value}
		r.mu.Unlock()
		return false, res
	}

	token := Normalize(key)
	switch {
	case token == KeyEscape:
		r.escaped = true
		r.mu.Unlock()
		return true, r.finish()
	case token == KeyBackspace:
		if len(r.keys) > 0 {
			r.keys = r.keys[:len(r.keys)-1]
		}
	case len(r.keys) < MaxKeys && !r.hasLocked(token):
		r.keys = append(r.keys, token)
	}
	r.mu.Unlock()
	return true, Result{State: StateRecording}
}

// KeyUp finalizes the session.
func (r *Recorder) KeyUp(key string) (bool, Result) {
	r.mu.Lock()
	if r.state != StateRecording {
		res := Result{State: r.state, Value: r.value}
		r.mu.Unlock()
		return false, res
	}
	if Normalize(key) == KeyEscape {
		r.escaped = true
	}
	r.mu.Unlock()
	return true, r.finish()
}

// Cancel reverts an open session to its previous value.
func (r *Recorder) Cancel() Result {
	r.mu.Lock()
	if r.state != StateRecording {
		res := Result{State: StateIdle, Value: r.value}
		r.mu.Unlock()
		return res
	}
	r.escaped = true
	r.mu.Unlock()
	return r.finish()
}

func (r *Recorder) hasLocked(token string) bool {
	for _, k := range r.keys {
		if k == token {
			return true
		}
	}
	return false
}

// finish closes the session and leaves the recorder idle.
// The detach hook runs exactly once, after the lock is released,
// even if formatting panics.
func (r *Recorder) finish() Result {
	r.mu.Lock()
	detach := r.detach
	r.detach = nil
	defer func() {
		r.keys = r.keys[:0]
		r.escaped = false
		r.state = StateIdle
		r.mu.Unlock()
		if detach != nil {
			detach()
		}
		if r.group != nil {
			r.group.deactivate(r)
		}
	}()

	nonModifiers := 0
	for _, k := range r.keys {
		if !modifierTokens[k] {
			nonModifiers++
		}
	}

	if r.escaped || len(r.keys) == 0 || nonModifiers == 0 {
		r.value = r.previous
		log.Printf("shortcut %s: recording cancelled, keeping %q", r.name, r.previous)
		return Result{State: StateCancelled, Value: r.previous}
	}

	r.value = Format(r.keys)
	log.Printf("shortcut %s: recorded %q", r.name, r.value)
	return Result{State: StateCommitted, Value: r.value}
}

// Group allows only one of its recorders to record at a time.
type Group struct {
	mu     sync.Mutex
	active *Recorder
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	return &Group{}
}

// Add attaches recorders to the group.
func (g *Group) Add(recorders ...*Recorder) {
	for _, r := range recorders {
		r.group = g
	}
}

// Active returns the recording member, or nil.
func (g *Group) Active() *Recorder {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// CancelActive reverts whichever member is recording.
func (g *Group) CancelActive() {
	g.mu.Lock()
	active := g.active
	g.mu.Unlock()
	if active != nil {
		active.Cancel()
	}
}

func (g *Group) activate(r *Recorder) {
	g.mu.Lock()
	prev := g.active
	g.active = r
	g.mu.Unlock()

	if prev != nil && prev != r {
		// Cancel calls deactivate, which must not clear the new owner.
		prev.Cancel()
	}
}

func (g *Group) deactivate(r *Recorder) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active == r {
		g.active = nil
	}
}
