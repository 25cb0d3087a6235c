// Package transport wraps the raw TCP socket the session machine speaks the wire protocol
// over, including the QoS knobs (DSCP marking, MPTCP) that sit outside the protocol itself.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"

	"golang.org/x/net/ipv4"
)

// Adapter is the minimal socket surface the session machine depends on. Framing and
// interpretation of bytes belongs to the protocol package; Adapter only moves bytes.
type Adapter interface {
	SendAll(buf []byte) error
	RecvExact(n int) ([]byte, error)
	Close() error
}

// Options configures the QoS treatment of a connection. Neither field affects wire framing.
type Options struct {
	// DSCP is the six-bit Differentiated Services code point to mark outgoing IPv4 packets
	// with. Zero means leave the default TOS byte alone.
	DSCP uint8
	// MPTCP opts the dialer into multipath TCP where the kernel supports it.
	MPTCP bool
}

// TCPAdapter is the production Adapter, a single persistent net.Conn.
type TCPAdapter struct {
	conn net.Conn
}

// Connect dials addr ("host:port"), applies the requested QoS options, and disables
// Nagle's algorithm: the protocol is request/response, not streaming, so every write should
// reach the wire immediately.
func Connect(ctx context.Context, addr string, opts Options) (*TCPAdapter, error) {
	dialer := net.Dialer{}
	if opts.MPTCP {
		dialer.SetMultipathTCP(true)
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %v", ErrTransportFailure, addr, err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}

	if opts.DSCP != 0 {
		if err := ipv4.NewConn(conn).SetTOS(int(opts.DSCP) << 2); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%w: setting DSCP %#x on %s: %v", ErrTransportFailure, opts.DSCP, addr, err)
		}
	}

	return &TCPAdapter{conn: conn}, nil
}

// SendAll writes buf in full, looping over short writes.
func (a *TCPAdapter) SendAll(buf []byte) error {
	for len(buf) > 0 {
		n, err := a.conn.Write(buf)
		if err != nil {
			return fmt.Errorf("%w: writing %d bytes: %v", ErrTransportFailure, len(buf), err)
		}
		buf = buf[n:]
	}
	return nil
}

// RecvExact reads exactly n bytes or fails: every response on the wire is either a fixed
// header or a header-declared length, so short reads are never valid here.
func (a *TCPAdapter) RecvExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(a.conn, buf); err != nil {
		return nil, fmt.Errorf("%w: reading %d bytes: %v", ErrTransportFailure, n, err)
	}
	return buf, nil
}

// Close closes the underlying socket.
func (a *TCPAdapter) Close() error {
	if err := a.conn.Close(); err != nil {
		return fmt.Errorf("%w: closing connection: %v", ErrTransportFailure, err)
	}
	return nil
}
