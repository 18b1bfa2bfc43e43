package scan

import "sync"

// DeviceState records the commands the controller issued so the PDA client
// can apply them after each request. It doubles as the controller's Field
// and, when the device reported the capability, its Keyboard.
type DeviceState struct {
	mu sync.Mutex

	inputMode      InputMode
	focused        bool
	keyboardHidden bool
	overlay        bool
}

var (
	_ Field    = (*DeviceState)(nil)
	_ Keyboard = (*DeviceState)(nil)
)

// NewDeviceState starts with an unfocused text-mode field.
func NewDeviceState() *DeviceState {
	return &DeviceState{inputMode: InputModeText}
}

func (d *DeviceState) SetInputMode(mode InputMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inputMode = mode
}

func (d *DeviceState) Focus() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.focused = true
}

func (d *DeviceState) Blur() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.focused = false
}

func (d *DeviceState) Hide() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keyboardHidden = true
}

func (d *DeviceState) Overlay() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.overlay = true
}

// DeviceView is the wire shape of the device state.
type DeviceView struct {
	InputMode      InputMode `json:"inputMode"`
	Focused        bool      `json:"focused"`
	KeyboardHidden bool      `json:"keyboardHidden"`
	Overlay        bool      `json:"overlay"`
}

// View returns a copy for serialization.
func (d *DeviceState) View() DeviceView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DeviceView{
		InputMode:      d.inputMode,
		Focused:        d.focused,
		KeyboardHidden: d.keyboardHidden,
		Overlay:        d.overlay,
	}
}
