package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/progress/repository"
)

// Monitor periodically pings the primary store and the session store.
type Monitor struct {
	storage  repository.Pinger
	sessions repository.Pinger

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(storage, sessions repository.Pinger, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		storage:  storage,
		sessions: sessions,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh()
	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh pings every dependency once and records the result.
func (m *Monitor) Refresh() {
	status := Status{
		Storage:   m.check("storage", m.storage),
		Sessions:  m.check("sessions", m.sessions),
		LastCheck: time.Now(),
	}

	m.mu.Lock()
	previous := m.status
	m.status = status
	m.mu.Unlock()

	if previous.Healthy() && !status.Healthy() {
		m.logger.Warn("dependency check failed",
			zap.Bool("storage", status.Storage),
			zap.Bool("sessions", status.Sessions))
	}
}

func (m *Monitor) check(name string, p repository.Pinger) bool {
	if p == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := p.Ping(ctx); err != nil {
		m.logger.Debug("ping failed", zap.String("dependency", name), zap.Error(err))
		return false
	}
	return true
}
