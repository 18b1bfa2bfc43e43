package scan

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock runs scheduled callbacks only when advanced.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	due := make([]*fakeTimer, 0)
	for _, t := range c.timers {
		if !t.fired && !t.stopped && t.at <= c.now {
			t.fired = true
			due = append(due, t)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].at < due[j].at })
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

type testSetup struct {
	clock  *fakeClock
	device *DeviceState
	ctrl   *Controller
	mu     sync.Mutex
	scans  []string
}

func newTestController(t *testing.T, opts Options) *testSetup {
	t.Helper()
	s := &testSetup{clock: &fakeClock{}, device: NewDeviceState()}
	opts.Clock = s.clock
	if opts.Keyboard == nil {
		opts.Keyboard = s.device
	}
	opts.OnScan = func(v string) {
		s.mu.Lock()
		s.scans = append(s.scans, v)
		s.mu.Unlock()
	}
	s.ctrl = NewController(s.device, opts)
	t.Cleanup(s.ctrl.Close)
	return s
}

func (s *testSetup) scanned() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.scans))
	copy(out, s.scans)
	return out
}

func typeString(c *Controller, str string) {
	for _, r := range str {
		c.Press(r)
	}
}

func TestMountHidesKeyboardAfterDelay(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()

	// keyboard briefly shown while the input connection is established
	assert.Equal(t, StateAwaitingHideWindow, s.ctrl.State())
	v := s.device.View()
	assert.Equal(t, InputModeText, v.InputMode)
	assert.True(t, v.Focused)
	assert.False(t, v.KeyboardHidden)

	s.clock.Advance(HideDelay)
	assert.Equal(t, StateHidden, s.ctrl.State())
	v = s.device.View()
	assert.Equal(t, InputModeNone, v.InputMode)
	assert.True(t, v.KeyboardHidden)
	assert.True(t, v.Overlay)
}

func TestMountVisiblePreferenceIsSteadyState(t *testing.T) {
	s := newTestController(t, Options{KeyboardVisible: true})
	s.ctrl.Mount()
	assert.Equal(t, StateVisible, s.ctrl.State())

	// no hide ever fires
	s.clock.Advance(time.Second)
	assert.Equal(t, StateVisible, s.ctrl.State())
	assert.Equal(t, InputModeText, s.device.View().InputMode)
}

func TestMountWithoutKeyboardAPI(t *testing.T) {
	// absence of the platform capability is silently fine
	s := &testSetup{clock: &fakeClock{}, device: NewDeviceState()}
	s.ctrl = NewController(s.device, Options{Clock: s.clock})
	t.Cleanup(s.ctrl.Close)

	s.ctrl.Mount()
	s.clock.Advance(HideDelay)
	assert.Equal(t, StateHidden, s.ctrl.State())
	v := s.device.View()
	assert.Equal(t, InputModeNone, v.InputMode)
	assert.False(t, v.KeyboardHidden)
}

func TestEnterEmitsTrimmedValueOnceAndClears(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()
	s.clock.Advance(HideDelay)

	typeString(s.ctrl, "  LOT-12345 ")
	s.ctrl.Enter()

	require.Equal(t, []string{"LOT-12345"}, s.scanned())
	assert.Empty(t, s.ctrl.Value())

	// field is re-armed for the next scan
	assert.Equal(t, StateAwaitingHideWindow, s.ctrl.State())
	s.clock.Advance(HideDelay)
	assert.Equal(t, StateHidden, s.ctrl.State())
}

func TestEnterOnEmptyBufferIsNoOp(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()
	s.clock.Advance(HideDelay)

	s.ctrl.Enter()
	typeString(s.ctrl, "   ")
	s.ctrl.Enter()

	assert.Empty(t, s.scanned())
	assert.Equal(t, "   ", s.ctrl.Value())
}

func TestEnterWithoutAutoClearKeepsBuffer(t *testing.T) {
	s := newTestController(t, Options{DisableAutoClear: true})
	s.ctrl.Mount()
	s.clock.Advance(HideDelay)

	typeString(s.ctrl, "LOT-1")
	s.ctrl.Enter()
	assert.Equal(t, []string{"LOT-1"}, s.scanned())
	assert.Equal(t, "LOT-1", s.ctrl.Value())
}

func TestBackspace(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()
	typeString(s.ctrl, "AB")
	s.ctrl.Backspace()
	assert.Equal(t, "A", s.ctrl.Value())
	s.ctrl.Backspace()
	s.ctrl.Backspace()
	assert.Empty(t, s.ctrl.Value())
}

func TestToggleKeyboardVisibility(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()
	s.clock.Advance(HideDelay)
	require.Equal(t, StateHidden, s.ctrl.State())

	// hidden -> visible
	s.ctrl.ToggleKeyboardVisibility()
	assert.False(t, s.device.View().Focused)
	s.clock.Advance(SettleDelay)
	assert.Equal(t, StateVisible, s.ctrl.State())
	v := s.device.View()
	assert.Equal(t, InputModeText, v.InputMode)
	assert.True(t, v.Focused)

	// visible -> hidden re-runs the mount hide sequence
	s.ctrl.ToggleKeyboardVisibility()
	s.clock.Advance(SettleDelay)
	assert.Equal(t, StateAwaitingHideWindow, s.ctrl.State())
	s.clock.Advance(HideDelay)
	assert.Equal(t, StateHidden, s.ctrl.State())
	assert.Equal(t, InputModeNone, s.device.View().InputMode)
}

func TestDisabledControllerIsInert(t *testing.T) {
	s := newTestController(t, Options{Disabled: true})
	s.ctrl.Mount()
	assert.Equal(t, StateMounting, s.ctrl.State())
	assert.False(t, s.device.View().Focused)

	typeString(s.ctrl, "LOT-1")
	s.ctrl.Enter()
	assert.Empty(t, s.scanned())
	assert.Empty(t, s.ctrl.Value())
}

func TestCloseCancelsPendingHide(t *testing.T) {
	s := newTestController(t, Options{})
	s.ctrl.Mount()
	s.ctrl.Close()

	s.clock.Advance(HideDelay)
	// timer was cancelled, nothing acted on the detached field
	assert.Equal(t, InputModeText, s.device.View().InputMode)
}

func TestVisiblePreferenceScanOnlyRefocuses(t *testing.T) {
	s := newTestController(t, Options{KeyboardVisible: true})
	s.ctrl.Mount()

	typeString(s.ctrl, "LOT-9")
	s.ctrl.Enter()
	assert.Equal(t, []string{"LOT-9"}, s.scanned())
	assert.Equal(t, StateVisible, s.ctrl.State())
	assert.Equal(t, InputModeText, s.device.View().InputMode)
}
