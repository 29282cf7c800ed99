package ambient

import (
	"context"
	"encoding/gob"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/BrugadaSyndrome/bslogger"
)

const DefaultInterval = 100 * time.Millisecond

// Publisher forwards snapshots to a connection no more often than once per
// interval. Snapshots published between sends replace each other, so the
// receiver always gets the latest state.
type Publisher struct {
	logger   bslogger.Logger
	conn     net.Conn
	interval time.Duration

	mutex   sync.Mutex
	pending *Snapshot
}

func NewPublisher(conn net.Conn, interval time.Duration) *Publisher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Publisher{
		logger:   bslogger.NewLogger("AmbientPublisher", bslogger.Normal, nil),
		conn:     conn,
		interval: interval,
	}
}

// Publish queues s for the next send. It never blocks.
func (p *Publisher) Publish(s Snapshot) {
	p.mutex.Lock()
	p.pending = &s
	p.mutex.Unlock()
}

func (p *Publisher) take() *Snapshot {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	s := p.pending
	p.pending = nil
	return s
}

// Run sends queued snapshots until ctx is done or the connection fails.
// It closes the connection when it returns.
func (p *Publisher) Run(ctx context.Context) error {
	enc := gob.NewEncoder(p.conn)
	defer p.conn.Close()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s := p.take()
			if s == nil {
				continue
			}
			if err := enc.Encode(s); err != nil {
				return fmt.Errorf("sending ambient snapshot: %w", err)
			}
			p.logger.Debug(fmt.Sprintf("Sent %s", s))

		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}
}
