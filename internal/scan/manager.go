package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned when a scan session id is unknown.
var ErrSessionNotFound = errors.New("scan session not found")

// Session binds one PDA device to a controller for the lifetime of a
// scan-capable screen.
type Session struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	CreatedAt  time.Time `json:"createdAt"`
	Device     *DeviceState
	Controller *Controller
}

// ScanFunc handles a completed scan: the trimmed barcode value plus the
// session it arrived on.
type ScanFunc func(ctx context.Context, session *Session, value string)

// Manager tracks active scan sessions by id.
type Manager struct {
	mu       sync.RWMutex
	logger   *zap.Logger
	clock    Clock
	onScan   ScanFunc
	sessions map[string]*Session
}

// NewManager creates a scan session manager. onScan is invoked for every
// completed scan on any session.
func NewManager(logger *zap.Logger, clock Clock, onScan ScanFunc) *Manager {
	if clock == nil {
		clock = SystemClock()
	}
	return &Manager{
		logger:   logger.Named("scan.manager"),
		clock:    clock,
		onScan:   onScan,
		sessions: make(map[string]*Session),
	}
}

// SessionOptions mirror the client-side preferences at mount time.
type SessionOptions struct {
	KeyboardVisible  bool
	DisableAutoClear bool
	Disabled         bool
	// HasKeyboardAPI is set when the device reported the platform
	// virtual-keyboard capability.
	HasKeyboardAPI bool
}

// Register creates a session for a device and runs the mount sequence.
func (m *Manager) Register(deviceID string, opts SessionOptions) *Session {
	device := NewDeviceState()

	sess := &Session{
		ID:        uuid.NewString(),
		DeviceID:  deviceID,
		CreatedAt: time.Now(),
		Device:    device,
	}

	var keyboard Keyboard
	if opts.HasKeyboardAPI {
		keyboard = device
	}
	sess.Controller = NewController(device, Options{
		KeyboardVisible:  opts.KeyboardVisible,
		DisableAutoClear: opts.DisableAutoClear,
		Disabled:         opts.Disabled,
		Keyboard:         keyboard,
		Clock:            m.clock,
		OnScan: func(value string) {
			// scans are handled detached from the request that delivered
			// the Enter keystroke
			m.onScan(context.Background(), sess, value)
		},
	})

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	sess.Controller.Mount()
	m.logger.Info("scan session registered",
		zap.String("session", sess.ID),
		zap.String("device", deviceID))
	return sess
}

// Get retrieves an active session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[id]; ok {
		return sess, nil
	}
	return nil, ErrSessionNotFound
}

// Unregister closes and removes a session.
func (m *Manager) Unregister(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	sess.Controller.Close()
	m.logger.Info("scan session unregistered", zap.String("session", id))
	return nil
}

// List returns all active sessions.
func (m *Manager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		out = append(out, sess)
	}
	return out
}
