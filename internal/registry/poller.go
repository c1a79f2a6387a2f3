package registry

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/kafune/rede-guti/internal/client"
)

// PollInterval is how often the background poller refetches server
// state while a session is active.
const PollInterval = 15 * time.Second

// Poller periodically refreshes an Engine. Ticks that land while a
// refresh is still in flight are skipped, not queued, so a slow server
// never builds a backlog.
type Poller struct {
	engine   *Engine
	interval time.Duration
	inFlight atomic.Bool
}

func NewPoller(engine *Engine, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = PollInterval
	}
	return &Poller{engine: engine, interval: interval}
}

// Run refreshes once immediately, then on every tick until ctx is
// cancelled. Refresh failures are logged and the loop keeps going; an
// unauthorized failure has already cleared the session by the time it
// reaches here, so onAuthLost (if set) is notified and the loop stops.
func (p *Poller) Run(ctx context.Context, onAuthLost func()) {
	if stop := p.tick(ctx, onAuthLost); stop {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if stop := p.tick(ctx, onAuthLost); stop {
				return
			}
		}
	}
}

func (p *Poller) tick(ctx context.Context, onAuthLost func()) (stop bool) {
	if !p.inFlight.CompareAndSwap(false, true) {
		slog.Debug("poll skipped, refresh still in flight")
		return false
	}
	defer p.inFlight.Store(false)

	err := p.engine.Refresh(ctx)
	if err == nil {
		return false
	}

	if client.IsUnauthorized(err) {
		slog.Warn("session expired, stopping poller")
		if onAuthLost != nil {
			onAuthLost()
		}
		return true
	}

	slog.Warn("poll refresh failed", "error", err)
	return false
}
