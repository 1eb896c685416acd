package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMonitorRefresh(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	m := New(ok, ok, 0, nil)
	assert.False(t, m.IsOnline(), "no check has run yet")

	m.Refresh()
	assert.True(t, m.IsOnline())

	m = New(ok, down, 0, nil)
	m.Refresh()
	status := m.GetStatus()
	assert.True(t, status.Storage)
	assert.False(t, status.Sessions)
	assert.False(t, m.IsOnline())

	m = New(nil, ok, 0, nil)
	m.Refresh()
	assert.False(t, m.GetStatus().Storage)
	m.Stop()
	m.Stop()
}
