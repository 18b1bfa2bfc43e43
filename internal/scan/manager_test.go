package scan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestManagerSessionLifecycle(t *testing.T) {
	var (
		mu    sync.Mutex
		seen  []string
		byDev []string
	)
	m := NewManager(zap.NewNop(), &fakeClock{}, func(ctx context.Context, sess *Session, value string) {
		mu.Lock()
		seen = append(seen, value)
		byDev = append(byDev, sess.DeviceID)
		mu.Unlock()
	})

	sess := m.Register("PDA-07", SessionOptions{HasKeyboardAPI: true})
	require.NotEmpty(t, sess.ID)

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)
	assert.Len(t, m.List(), 1)

	for _, r := range "LOT-1" {
		sess.Controller.Press(r)
	}
	sess.Controller.Enter()

	mu.Lock()
	assert.Equal(t, []string{"LOT-1"}, seen)
	assert.Equal(t, []string{"PDA-07"}, byDev)
	mu.Unlock()

	require.NoError(t, m.Unregister(sess.ID))
	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, m.Unregister(sess.ID), ErrSessionNotFound)
}

func TestManagerMountRunsOnRegister(t *testing.T) {
	clock := &fakeClock{}
	m := NewManager(zap.NewNop(), clock, func(context.Context, *Session, string) {})

	sess := m.Register("PDA-01", SessionOptions{HasKeyboardAPI: true})
	assert.Equal(t, StateAwaitingHideWindow, sess.Controller.State())

	clock.Advance(HideDelay)
	assert.Equal(t, StateHidden, sess.Controller.State())
	assert.True(t, sess.Device.View().KeyboardHidden)
}
