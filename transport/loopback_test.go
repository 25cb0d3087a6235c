package transport_test

import (
	"context"
	"net"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"securexfer/transport"
)

// listenLoopback starts a TCP listener that echoes back whatever it reads, so Connect,
// SendAll, and RecvExact can be exercised without a real server implementation.
func listenLoopback(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 5)
		if _, err := conn.Read(buf); err != nil {
			return
		}
		conn.Write(buf)
	}()

	return ln.Addr().String()
}

func TestConnectSendAllRecvExact(t *testing.T) {
	c := qt.New(t)
	addr := listenLoopback(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	adapter, err := transport.Connect(ctx, addr, transport.Options{})
	c.Assert(err, qt.IsNil)
	defer adapter.Close()

	c.Assert(adapter.SendAll([]byte("hello")), qt.IsNil)

	got, err := adapter.RecvExact(5)
	c.Assert(err, qt.IsNil)
	c.Assert(string(got), qt.Equals, "hello")
}

func TestConnectRefused(t *testing.T) {
	c := qt.New(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := transport.Connect(ctx, "127.0.0.1:1", transport.Options{})
	c.Assert(err, qt.ErrorIs, transport.ErrTransportFailure)
}
