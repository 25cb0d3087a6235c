package session_test

import (
	"fmt"
)

// responseFunc builds the next scripted response given every request sent so far; it lets
// a test react to a request's actual bytes (e.g. a public key it could not know in advance).
type responseFunc func(sent [][]byte) []byte

// fakeAdapter is a scripted transport.Adapter: it records every SendAll call and answers
// RecvExact calls by pulling from a caller-supplied queue of response generators, without
// any real socket.
type fakeAdapter struct {
	sent       [][]byte
	responses  []responseFunc
	recvCursor int
	pending    []byte
}

func (a *fakeAdapter) SendAll(buf []byte) error {
	cp := append([]byte(nil), buf...)
	a.sent = append(a.sent, cp)
	return nil
}

func (a *fakeAdapter) RecvExact(n int) ([]byte, error) {
	for len(a.pending) < n {
		if a.recvCursor >= len(a.responses) {
			return nil, fmt.Errorf("fakeAdapter: out of scripted responses, wanted %d more bytes", n)
		}
		a.pending = append(a.pending, a.responses[a.recvCursor](a.sent)...)
		a.recvCursor++
	}
	out := a.pending[:n]
	a.pending = a.pending[n:]
	return out, nil
}

func (a *fakeAdapter) Close() error { return nil }
