package ambient

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/BrugadaSyndrome/bslogger"
)

// Subscriber decodes snapshots sent by a Publisher.
type Subscriber struct {
	conn net.Conn
	dec  *gob.Decoder
}

func NewSubscriber(conn net.Conn) *Subscriber {
	return &Subscriber{
		conn: conn,
		dec:  gob.NewDecoder(conn),
	}
}

// Receive blocks until the next snapshot arrives.
func (s *Subscriber) Receive() (Snapshot, error) {
	var snapshot Snapshot
	err := s.dec.Decode(&snapshot)
	return snapshot, err
}

// Run calls handle for every snapshot until the publisher goes away or ctx
// is done. A publisher closing the connection is not an error.
func (s *Subscriber) Run(ctx context.Context, handle func(Snapshot)) error {
	stop := context.AfterFunc(ctx, func() {
		s.conn.Close()
	})
	defer stop()

	for {
		snapshot, err := s.Receive()
		if err != nil {
			if ctx.Err() != nil {
				return context.Cause(ctx)
			}
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("receiving ambient snapshot: %w", err)
		}
		handle(snapshot)
	}
}

// Serve accepts publishers from listener and feeds every snapshot they send
// to handle. It returns when ctx is done or the listener is closed.
func Serve(ctx context.Context, listener net.Listener, handle func(Snapshot)) error {
	logger := bslogger.NewLogger("AmbientServer", bslogger.Normal, nil)
	stop := context.AfterFunc(ctx, func() {
		listener.Close()
	})
	defer stop()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return context.Cause(ctx)
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accepting ambient publisher: %w", err)
		}

		logger.Info(fmt.Sprintf("Ambient publisher connected from %s", conn.RemoteAddr()))
		go func() {
			if err := NewSubscriber(conn).Run(ctx, handle); err != nil && ctx.Err() == nil {
				logger.Warning(err.Error())
			}
		}()
	}
}
