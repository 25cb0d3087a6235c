package protocol

// EncodeRequest serializes a full request: the fixed header followed by the opcode-specific
// payload. PayloadLen in the header is overwritten to match the encoded payload length, so
// callers need not compute it themselves.
func EncodeRequest(header RequestHeader, payload RequestPayload) []byte {
	body := payload.Encode()
	header.PayloadLen = uint32(len(body))
	out := make([]byte, 0, len(header.Encode())+len(body))
	out = append(out, header.Encode()...)
	out = append(out, body...)
	return out
}
