// Package scan hosts the PDA barcode-scan input state machine. A hardware
// scanner in keyboard-emulation mode streams keystrokes into a text field;
// the controller keeps that field receiving input while keeping the
// on-screen virtual keyboard out of the operator's way.
package scan

import (
	"strings"
	"sync"
	"time"
)

// InputMode mirrors the field's input-mode attribute on the device.
type InputMode string

const (
	// InputModeText establishes an editable input connection. The platform
	// shows the virtual keyboard for a field in this mode.
	InputModeText InputMode = "text"
	// InputModeNone keeps the already-established input connection alive but
	// is not considered text-editable, so the keyboard goes away. Switching
	// to it after focus is the whole trick.
	InputModeNone InputMode = "none"
)

// State of the controller.
type State string

const (
	StateMounting           State = "mounting"
	StateAwaitingHideWindow State = "awaiting-hide-window"
	StateHidden             State = "hidden"
	StateVisible            State = "visible"
)

const (
	// HideDelay is the window between focus and the input-mode flip. The
	// input connection must be fully established before the flip or the
	// scanner's keystrokes stop being delivered.
	HideDelay = 300 * time.Millisecond
	// SettleDelay lets the platform finish blur/focus transitions during a
	// visibility toggle.
	SettleDelay = 50 * time.Millisecond
)

// Field is the device-side input surface the controller drives.
type Field interface {
	SetInputMode(mode InputMode)
	Focus()
	Blur()
}

// Keyboard is the platform virtual-keyboard capability. It is optional:
// absence is an expected environment variation, not an error.
type Keyboard interface {
	Hide()
	// Overlay tells the keyboard to overlay content instead of resizing the
	// layout when it does appear.
	Overlay()
}

// Options configure a controller.
type Options struct {
	// KeyboardVisible is the persisted operator preference. When false the
	// hide sequence runs after mount and after every scan.
	KeyboardVisible bool
	// DisableAutoClear keeps the buffer after a successful scan. By default
	// the buffer resets so the field is ready for the next scan.
	DisableAutoClear bool
	// Disabled makes the controller inert: no focus or timer logic runs.
	Disabled bool
	// Keyboard is the optional platform capability.
	Keyboard Keyboard
	// Clock defaults to the system clock.
	Clock Clock
	// OnScan receives the trimmed buffer on Enter.
	OnScan func(value string)
}

// Controller owns one scan field's buffer and keyboard-suppression state.
type Controller struct {
	mu sync.Mutex

	field    Field
	keyboard Keyboard
	clock    Clock
	onScan   func(string)

	buffer          strings.Builder
	state           State
	keyboardVisible bool
	autoClear       bool
	disabled        bool
	closed          bool

	hideTimer   Timer
	settleTimer Timer
}

// NewController creates a controller over a device field. Call Mount to
// start the focus sequence.
func NewController(field Field, opts Options) *Controller {
	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}
	return &Controller{
		field:           field,
		keyboard:        opts.Keyboard,
		clock:           clock,
		onScan:          opts.OnScan,
		state:           StateMounting,
		keyboardVisible: opts.KeyboardVisible,
		autoClear:       !opts.DisableAutoClear,
		disabled:        opts.Disabled,
	}
}

// Mount initializes the field. The field is set to text mode and focused so
// the platform establishes an input connection; when the keyboard preference
// is hidden, the input-mode flip is scheduled after HideDelay.
func (c *Controller) Mount() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled || c.closed {
		return
	}

	c.field.SetInputMode(InputModeText)
	c.field.Focus()

	if c.keyboardVisible {
		c.state = StateVisible
		return
	}
	c.scheduleHideLocked()
}

// scheduleHideLocked arms the one-shot hide timer. Callers hold the mutex.
func (c *Controller) scheduleHideLocked() {
	c.state = StateAwaitingHideWindow
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.hideTimer = c.clock.AfterFunc(HideDelay, c.applyHide)
}

func (c *Controller) applyHide() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.keyboardVisible || c.state != StateAwaitingHideWindow {
		return
	}

	c.field.SetInputMode(InputModeNone)
	if c.keyboard != nil {
		c.keyboard.Hide()
		c.keyboard.Overlay()
	}
	c.state = StateHidden
}

// Press appends a scanner keystroke to the buffer.
func (c *Controller) Press(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled || c.closed {
		return
	}
	c.buffer.WriteRune(r)
}

// Backspace removes the last buffered rune.
func (c *Controller) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled || c.closed {
		return
	}
	s := c.buffer.String()
	if s == "" {
		return
	}
	runes := []rune(s)
	c.buffer.Reset()
	c.buffer.WriteString(string(runes[:len(runes)-1]))
}

// Enter completes a scan. With non-empty trimmed content the scan callback
// fires exactly once; with AutoClear the buffer resets and the field is
// prepared for the next scan without operator action. An empty or
// whitespace-only buffer does nothing at all.
func (c *Controller) Enter() {
	c.mu.Lock()
	if c.disabled || c.closed {
		c.mu.Unlock()
		return
	}

	value := strings.TrimSpace(c.buffer.String())
	if value == "" {
		c.mu.Unlock()
		return
	}

	cb := c.onScan
	if c.autoClear {
		c.buffer.Reset()
		if c.keyboardVisible {
			c.field.Focus()
		} else {
			c.field.SetInputMode(InputModeText)
			c.field.Focus()
			c.scheduleHideLocked()
		}
	}
	c.mu.Unlock()

	if cb != nil {
		cb(value)
	}
}

// ToggleKeyboardVisibility flips the operator preference so the field can be
// typed into manually. The field blurs first, then after SettleDelay either
// returns to plain text mode or re-runs the mount hide sequence.
func (c *Controller) ToggleKeyboardVisibility() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disabled || c.closed {
		return
	}

	c.field.Blur()
	c.keyboardVisible = !c.keyboardVisible

	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
	c.settleTimer = c.clock.AfterFunc(SettleDelay, c.applyToggle)
}

func (c *Controller) applyToggle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if c.keyboardVisible {
		c.field.SetInputMode(InputModeText)
		c.field.Focus()
		c.state = StateVisible
		return
	}
	c.field.SetInputMode(InputModeText)
	c.field.Focus()
	c.scheduleHideLocked()
}

// Value returns the current buffer.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.String()
}

// State returns the current controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// KeyboardVisible returns the current operator preference.
func (c *Controller) KeyboardVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyboardVisible
}

// Close cancels pending timers. A closed controller never acts on the field
// again.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
	}
}
