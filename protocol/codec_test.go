package protocol_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"securexfer/constants"
	"securexfer/protocol"
	"securexfer/protocol/opcode"
)

func TestRequestHeaderEncode(t *testing.T) {
	c := qt.New(t)

	var id [constants.ClientIDSize]byte
	for i := range id {
		id[i] = byte(i)
	}

	h := protocol.RequestHeader{
		ClientID: id,
		Version:  constants.ProtocolVersion,
		Opcode:   opcode.Register,
	}
	payload := protocol.RegisterPayload{UserName: "alice"}
	out := protocol.EncodeRequest(h, payload)

	c.Assert(len(out), qt.Equals, constants.RequestHeaderSize+constants.UserNameFieldSize)
	c.Assert(out[:constants.ClientIDSize], qt.DeepEquals, id[:])
	c.Assert(out[16], qt.Equals, uint8(constants.ProtocolVersion))
	// opcode little-endian
	c.Assert(out[17], qt.Equals, uint8(825&0xFF))
	c.Assert(out[18], qt.Equals, uint8(825>>8))
	// user name padded at offset 23
	body := out[constants.RequestHeaderSize:]
	c.Assert(string(body[:5]), qt.Equals, "alice")
	for _, b := range body[5:] {
		c.Assert(b, qt.Equals, byte(0))
	}
}

func TestDecodeResponseHeaderEndianness(t *testing.T) {
	c := qt.New(t)
	buf := []byte{3, 0x43, 0x06, 0x78, 0x56, 0x34, 0x12}
	h, err := protocol.DecodeResponseHeader(buf)
	c.Assert(err, qt.IsNil)
	c.Assert(h.Version, qt.Equals, uint8(3))
	c.Assert(h.Opcode, qt.Equals, opcode.FileReceived)
	c.Assert(h.PayloadLen, qt.Equals, uint32(0x12345678))
}

func TestDecodeResponseHeaderWrongLength(t *testing.T) {
	c := qt.New(t)
	_, err := protocol.DecodeResponseHeader([]byte{1, 2, 3})
	c.Assert(err, qt.ErrorIs, protocol.ErrMalformedPayload)
}

func TestDecodeClientIDPayload(t *testing.T) {
	c := qt.New(t)
	var id [16]byte
	for i := range id {
		id[i] = byte(i)
	}
	p, err := protocol.DecodeResponsePayload(opcode.RegistrationSuccess, id[:])
	c.Assert(err, qt.IsNil)
	got, ok := p.(protocol.ClientIDPayload)
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.ClientID, qt.DeepEquals, id)
}

func TestDecodeFileReceivedPayloadCksumEndianness(t *testing.T) {
	c := qt.New(t)
	buf := make([]byte, 16+4+255+4)
	// cksum = 0x12345678 at the tail, little-endian -> 78 56 34 12
	off := 16 + 4 + 255
	buf[off] = 0x78
	buf[off+1] = 0x56
	buf[off+2] = 0x34
	buf[off+3] = 0x12

	p, err := protocol.DecodeResponsePayload(opcode.FileReceived, buf)
	c.Assert(err, qt.IsNil)
	got, ok := p.(protocol.FileReceivedPayload)
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.Cksum, qt.Equals, uint32(0x12345678))
}

func TestDecodeResponsePayloadTooShort(t *testing.T) {
	c := qt.New(t)
	_, err := protocol.DecodeResponsePayload(opcode.FileReceived, []byte{1, 2, 3})
	c.Assert(err, qt.ErrorIs, protocol.ErrMalformedPayload)
}

func TestDecodeResponsePayloadUnknownOpcode(t *testing.T) {
	c := qt.New(t)
	_, err := protocol.DecodeResponsePayload(9999, nil)
	c.Assert(err, qt.ErrorIs, protocol.ErrMalformedPayload)
}

func TestKeyExchangePayloadRunsToEndOfPayload(t *testing.T) {
	c := qt.New(t)
	buf := make([]byte, 16)
	key := []byte{0xAA, 0xBB, 0xCC}
	buf = append(buf, key...)

	p, err := protocol.DecodeResponsePayload(opcode.PublicKeyReceived, buf)
	c.Assert(err, qt.IsNil)
	got, ok := p.(protocol.KeyExchangePayload)
	c.Assert(ok, qt.IsTrue)
	c.Assert(got.WrappedAESKey, qt.DeepEquals, key)
}

// TestSendFileGoldenBytes pins the SendFile encoding bit-exact at every declared offset.
func TestSendFileGoldenBytes(t *testing.T) {
	c := qt.New(t)

	var id [16]byte
	h := protocol.RequestHeader{ClientID: id, Version: constants.ProtocolVersion, Opcode: opcode.SendFile}
	content := []byte("hi")
	p := protocol.SendFilePayload{
		ContentSize:  2,
		OrigFileSize: 2,
		PacketNumber: 1,
		TotalPackets: 1,
		FileName:     "f.txt",
		Content:      content,
	}
	out := protocol.EncodeRequest(h, p)

	off := constants.RequestHeaderSize
	c.Assert(out[off], qt.Equals, byte(2)) // content size LE
	c.Assert(out[off+1], qt.Equals, byte(0))
	c.Assert(out[off+2], qt.Equals, byte(0))
	c.Assert(out[off+3], qt.Equals, byte(0))
	off += constants.ContentSizeFieldSize
	c.Assert(out[off], qt.Equals, byte(2)) // orig size LE
	off += constants.OrigFileSizeFieldSize
	c.Assert(out[off], qt.Equals, byte(1)) // packet number LE
	off += constants.PacketNumberFieldSize
	c.Assert(out[off], qt.Equals, byte(1)) // total packets LE
	off += constants.TotalPacketsFieldSize
	c.Assert(string(out[off:off+5]), qt.Equals, "f.txt")
	off += constants.FileNameFieldSize
	c.Assert(out[off:], qt.DeepEquals, content)
}
