package protocol

import (
	"encoding/binary"
	"fmt"

	"securexfer/constants"
	"securexfer/protocol/opcode"
)

// ResponsePayload is the sum type over response-payload shapes, mirroring RequestPayload.
type ResponsePayload interface {
	isResponsePayload()
}

// ClientIDPayload is the body of RegistrationSuccess, MessageReceived and
// ReconnectionFailure responses: just the client id.
type ClientIDPayload struct {
	ClientID [constants.ClientIDSize]byte
}

func (ClientIDPayload) isResponsePayload() {}

// EmptyPayload is the body of RegistrationFailure and GeneralError responses.
type EmptyPayload struct{}

func (EmptyPayload) isResponsePayload() {}

// KeyExchangePayload is the body of PublicKeyReceived and ReconnectionSuccess responses:
// the client id followed by the RSA-wrapped AES key, which runs to end-of-payload.
type KeyExchangePayload struct {
	ClientID       [constants.ClientIDSize]byte
	WrappedAESKey  []byte
}

func (KeyExchangePayload) isResponsePayload() {}

// FileReceivedPayload is the body of a FileReceived response.
type FileReceivedPayload struct {
	ClientID    [constants.ClientIDSize]byte
	ContentSize uint32
	FileName    string
	Cksum       uint32
}

func (FileReceivedPayload) isResponsePayload() {}

// DecodeResponsePayload dispatches on opcode and decodes the matching payload shape.
// It fails with ErrMalformedPayload if buf is shorter than the opcode's declared layout
// or if the opcode is unrecognized.
func DecodeResponsePayload(op uint16, buf []byte) (ResponsePayload, error) {
	switch op {
	case opcode.RegistrationSuccess, opcode.MessageReceived, opcode.ReconnectionFailure:
		if len(buf) < constants.ClientIDSize {
			return nil, fmt.Errorf("%w: opcode %d needs %d bytes, got %d",
				ErrMalformedPayload, op, constants.ClientIDSize, len(buf))
		}
		var p ClientIDPayload
		copy(p.ClientID[:], buf[:constants.ClientIDSize])
		return p, nil

	case opcode.RegistrationFailure, opcode.GeneralError:
		return EmptyPayload{}, nil

	case opcode.PublicKeyReceived, opcode.ReconnectionSuccess:
		if len(buf) < constants.ClientIDSize {
			return nil, fmt.Errorf("%w: opcode %d needs at least %d bytes, got %d",
				ErrMalformedPayload, op, constants.ClientIDSize, len(buf))
		}
		var p KeyExchangePayload
		copy(p.ClientID[:], buf[:constants.ClientIDSize])
		p.WrappedAESKey = append([]byte(nil), buf[constants.ClientIDSize:]...)
		return p, nil

	case opcode.FileReceived:
		want := constants.ClientIDSize + constants.ContentSizeFieldSize + constants.FileNameFieldSize + constants.CksumFieldSize
		if len(buf) < want {
			return nil, fmt.Errorf("%w: opcode %d needs %d bytes, got %d",
				ErrMalformedPayload, op, want, len(buf))
		}
		var p FileReceivedPayload
		off := 0
		copy(p.ClientID[:], buf[off:off+constants.ClientIDSize])
		off += constants.ClientIDSize
		p.ContentSize = binary.LittleEndian.Uint32(buf[off:])
		off += constants.ContentSizeFieldSize
		nameField := buf[off : off+constants.FileNameFieldSize]
		off += constants.FileNameFieldSize
		p.FileName = trimZero(nameField)
		p.Cksum = binary.LittleEndian.Uint32(buf[off:])
		return p, nil

	default:
		return nil, fmt.Errorf("%w: unrecognized opcode %d", ErrMalformedPayload, op)
	}
}

// trimZero returns the string before the first NUL byte, or the whole slice as a string
// if there is none.
func trimZero(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
