// Package capture reads filtered traffic from a packet socket.
//
// A Capture owns no socket lifecycle: the caller opens the connection,
// Capture attaches a filter program to it and counts what the kernel lets
// through.
package capture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tcassar-diss/sockfilter/filter"
)

var ErrNoRawConn = errors.New("connection does not expose a raw descriptor")

// Stats reports the traffic a capture saw, i.e. what passed the filter.
type Stats struct {
	Packets uint64
	Bytes   uint64
}

type Capture struct {
	logger *zap.SugaredLogger
	conn   net.PacketConn
	sc     syscall.Conn

	packets atomic.Uint64
	bytes   atomic.Uint64
}

// New attaches prog to conn's socket and returns a Capture ready to run.
// conn must expose its descriptor via syscall.Conn; every connection the
// net package opens does.
func New(logger *zap.SugaredLogger, conn net.PacketConn, prog *filter.Program) (*Capture, error) {
	sc, ok := conn.(syscall.Conn)
	if !ok {
		return nil, ErrNoRawConn
	}

	if err := filter.AttachConn(sc, prog); err != nil {
		return nil, fmt.Errorf("failed to attach filter: %w", err)
	}

	return &Capture{
		logger: logger,
		conn:   conn,
		sc:     sc,
	}, nil
}

// Lock freezes the socket's filter state until it is closed. There is no
// unlock.
func (c *Capture) Lock() error {
	if err := filter.LockConn(c.sc); err != nil {
		return fmt.Errorf("failed to lock filter: %w", err)
	}

	return nil
}

// Detach removes the capture's filter, letting all traffic through again.
func (c *Capture) Detach() error {
	if err := filter.DetachConn(c.sc); err != nil {
		return fmt.Errorf("failed to detach filter: %w", err)
	}

	return nil
}

// Run reads filtered datagrams until ctx is cancelled, then returns nil.
// Any other read failure is returned as an error.
func (c *Capture) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		<-ctx.Done()

		// a deadline in the past unblocks the pending read
		if err := c.conn.SetReadDeadline(time.Unix(0, 1)); err != nil {
			return fmt.Errorf("failed to interrupt reader: %w", err)
		}

		return nil
	})

	eg.Go(func() error {
		return c.read(ctx)
	})

	return eg.Wait()
}

func (c *Capture) read(ctx context.Context) error {
	buf := make([]byte, 65536)

	for {
		n, addr, err := c.conn.ReadFrom(buf)
		if err != nil {
			if ctx.Err() != nil && (errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, net.ErrClosed)) {
				return nil
			}

			return fmt.Errorf("failed to read from socket: %w", err)
		}

		c.packets.Add(1)
		c.bytes.Add(uint64(n))

		c.logger.Infow("packet passed filter", "len", n, "from", addr.String())
	}
}

// Stats reports counters for traffic that passed the filter. Counters are
// cumulative across the capture's lifetime.
func (c *Capture) Stats() Stats {
	return Stats{
		Packets: c.packets.Load(),
		Bytes:   c.bytes.Load(),
	}
}
