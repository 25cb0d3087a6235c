package protocol

import "errors"

// ErrMalformedPayload is returned when a response buffer is shorter than the
// declared layout for its opcode, or when the opcode is unrecognized.
var ErrMalformedPayload = errors.New("protocol: malformed payload")
