package ws

import (
	"context"
	"time"

	"github.com/Agrid-Dev/energydash/internal/heatpump"
	"github.com/Agrid-Dev/energydash/internal/ports"
)

// Broadcaster polls the store and pushes a report to the hub whenever the
// parameters differ from the last ones sent.
type Broadcaster struct {
	hub      *Hub
	svc      ports.DashboardService
	deviceID string
	interval time.Duration

	// only touched by the Run goroutine after construction
	last heatpump.Parameters
}

func NewBroadcaster(hub *Hub, svc ports.DashboardService, deviceID string, interval time.Duration) *Broadcaster {
	if interval <= 0 {
		interval = time.Second
	}
	return &Broadcaster{hub: hub, svc: svc, deviceID: deviceID, interval: interval, last: svc.Get()}
}

func (b *Broadcaster) Run(ctx context.Context) error {
	t := time.NewTicker(b.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			b.tick()
		}
	}
}

// tick reports whether a message was broadcast.
func (b *Broadcaster) tick() bool {
	cur := b.svc.Get()
	if cur == b.last {
		return false
	}
	// encode the snapshot just compared, not a fresh read
	msg, err := reportMessage(b.deviceID, heatpump.Evaluate(cur))
	if err != nil {
		b.hub.log.WithError(err).Warn("ws report encode failed")
		return false
	}
	b.hub.Broadcast(msg)
	b.last = cur
	return true
}
