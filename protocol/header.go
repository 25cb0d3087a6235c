package protocol

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"securexfer/constants"
)

// RequestHeader is the fixed 23-byte prefix of every request on the wire.
type RequestHeader struct {
	ClientID [constants.ClientIDSize]byte
	Version  uint8
	Opcode   uint16
	PayloadLen uint32
}

// Encode serializes the header in little-endian, fixed-width form.
func (h RequestHeader) Encode() []byte {
	buf := make([]byte, constants.RequestHeaderSize)
	copy(buf[0:constants.ClientIDSize], h.ClientID[:])
	off := constants.ClientIDSize
	buf[off] = h.Version
	off += constants.VersionSize
	binary.LittleEndian.PutUint16(buf[off:], h.Opcode)
	off += constants.OpcodeSize
	binary.LittleEndian.PutUint32(buf[off:], h.PayloadLen)
	return buf
}

// ResponseHeader is the fixed 7-byte prefix of every response on the wire.
type ResponseHeader struct {
	Version    uint8
	Opcode     uint16
	PayloadLen uint32
}

// DecodeResponseHeader parses a 7-byte response header.
func DecodeResponseHeader(buf []byte) (ResponseHeader, error) {
	if len(buf) != constants.ResponseHeaderSize {
		return ResponseHeader{}, fmt.Errorf("%w: response header must be %d bytes, got %d",
			ErrMalformedPayload, constants.ResponseHeaderSize, len(buf))
	}
	off := 0
	version := buf[off]
	off += constants.VersionSize
	op := binary.LittleEndian.Uint16(buf[off:])
	off += constants.OpcodeSize
	payloadLen := binary.LittleEndian.Uint32(buf[off:])
	return ResponseHeader{Version: version, Opcode: op, PayloadLen: payloadLen}, nil
}

// ClientIDToHex renders a 16-byte client id as a lowercase, unseparated 32-character string;
// the only textual form the client id takes outside the wire.
func ClientIDToHex(id [constants.ClientIDSize]byte) string {
	return hex.EncodeToString(id[:])
}

// HexToClientID parses a client id previously rendered by ClientIDToHex. Re-serializing the
// result must reproduce the original 16 bytes exactly.
func HexToClientID(s string) ([constants.ClientIDSize]byte, error) {
	var id [constants.ClientIDSize]byte
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: decoding client id hex %q: %v", ErrMalformedPayload, s, err)
	}
	if len(decoded) != constants.ClientIDSize {
		return id, fmt.Errorf("%w: client id hex %q decodes to %d bytes, want %d",
			ErrMalformedPayload, s, len(decoded), constants.ClientIDSize)
	}
	copy(id[:], decoded)
	return id, nil
}
