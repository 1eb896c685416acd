package navigation

import (
	"context"
	"fmt"
	"sync"
)

// Action handles one screen submission for an authenticated user.
type Action func(ctx context.Context, username string, input interface{}) (interface{}, error)

// Dispatcher maps screens to the actions that serve them.
type Dispatcher struct {
	actions map[Screen]Action
	mu      sync.RWMutex
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{actions: make(map[Screen]Action)}
}

func (d *Dispatcher) Register(screen Screen, action Action) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions[screen] = action
}

func (d *Dispatcher) Execute(ctx context.Context, screen Screen, username string, input interface{}) (interface{}, error) {
	d.mu.RLock()
	action, ok := d.actions[screen]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no action registered for screen %s", screen)
	}
	return action(ctx, username, input)
}
