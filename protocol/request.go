package protocol

import (
	"encoding/binary"

	"securexfer/constants"
)

// RequestPayload is the sum type over request-payload shapes. Each opcode has exactly one
// implementing struct with all of its required fields present as named Go fields — there is
// no name-keyed map of heterogeneous values, so a caller cannot build a half-populated
// SendFile payload and have it silently encode as empty.
type RequestPayload interface {
	// Encode serializes the payload body (excluding the request header).
	Encode() []byte
}

func fixedString(s string, size int) []byte {
	buf := make([]byte, size)
	copy(buf, s)
	return buf
}

// RegisterPayload is the body of a Register request.
type RegisterPayload struct {
	UserName string
}

// Encode implements RequestPayload.
func (p RegisterPayload) Encode() []byte {
	return fixedString(p.UserName, constants.UserNameFieldSize)
}

// ReconnectPayload is the body of a Reconnect request.
type ReconnectPayload struct {
	UserName string
}

// Encode implements RequestPayload.
func (p ReconnectPayload) Encode() []byte {
	return fixedString(p.UserName, constants.UserNameFieldSize)
}

// SubmitPublicKeyPayload is the body of a SubmitPublicKey request.
type SubmitPublicKeyPayload struct {
	UserName  string
	PublicKey [constants.PublicKeySize]byte
}

// Encode implements RequestPayload.
func (p SubmitPublicKeyPayload) Encode() []byte {
	buf := make([]byte, 0, constants.UserNameFieldSize+constants.PublicKeySize)
	buf = append(buf, fixedString(p.UserName, constants.UserNameFieldSize)...)
	buf = append(buf, p.PublicKey[:]...)
	return buf
}

// SendFilePayload is the body of one SendFile frame. FileName is re-sent, zero-padded, on
// every frame of the upload, as the reference protocol does.
type SendFilePayload struct {
	ContentSize  uint32
	OrigFileSize uint32
	PacketNumber uint16
	TotalPackets uint16
	FileName     string
	Content      []byte
}

// Encode implements RequestPayload.
func (p SendFilePayload) Encode() []byte {
	buf := make([]byte, 0, constants.ContentSizeFieldSize+constants.OrigFileSizeFieldSize+
		constants.PacketNumberFieldSize+constants.TotalPacketsFieldSize+
		constants.FileNameFieldSize+len(p.Content))

	field := make([]byte, constants.ContentSizeFieldSize)
	binary.LittleEndian.PutUint32(field, p.ContentSize)
	buf = append(buf, field...)

	field = make([]byte, constants.OrigFileSizeFieldSize)
	binary.LittleEndian.PutUint32(field, p.OrigFileSize)
	buf = append(buf, field...)

	field = make([]byte, constants.PacketNumberFieldSize)
	binary.LittleEndian.PutUint16(field, p.PacketNumber)
	buf = append(buf, field...)

	field = make([]byte, constants.TotalPacketsFieldSize)
	binary.LittleEndian.PutUint16(field, p.TotalPackets)
	buf = append(buf, field...)

	buf = append(buf, fixedString(p.FileName, constants.FileNameFieldSize)...)

	// Content is raw-appended, not padded: its length is exactly ContentSize for the last
	// frame and FrameContentCapacity for every earlier one.
	buf = append(buf, p.Content...)

	return buf
}

// CrcNoticePayload is the body shared by CrcValid/CrcInvalidRetry/CrcInvalidFinal. Defined
// for wire completeness; session.Machine never constructs one (see protocol/opcode).
type CrcNoticePayload struct {
	FileName string
}

// Encode implements RequestPayload.
func (p CrcNoticePayload) Encode() []byte {
	return fixedString(p.FileName, constants.FileNameFieldSize)
}
