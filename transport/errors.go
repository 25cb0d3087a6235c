package transport

import "errors"

// ErrTransportFailure wraps any I/O failure on the underlying socket: dial, write, or read.
var ErrTransportFailure = errors.New("transport: connection failure")
