// Package opcode enumerates the request and response opcodes of the wire protocol.
package opcode

// Request opcodes.
const (
	Register        uint16 = 825
	SubmitPublicKey uint16 = 826
	Reconnect       uint16 = 827
	SendFile        uint16 = 828

	// CrcValid, CrcInvalidRetry and CrcInvalidFinal are defined by the wire contract but
	// never sent by this client: the server emits one FileReceived response after the last
	// SendFile packet, and the client compares checksums locally instead of round-tripping
	// a separate CRC-negotiation frame. Reserved for a future server handshake.
	CrcValid        uint16 = 900
	CrcInvalidRetry uint16 = 901
	CrcInvalidFinal uint16 = 902
)

// Response opcodes.
const (
	RegistrationSuccess uint16 = 1600
	RegistrationFailure uint16 = 1601
	PublicKeyReceived   uint16 = 1602
	FileReceived        uint16 = 1603
	MessageReceived     uint16 = 1604
	ReconnectionSuccess uint16 = 1605
	ReconnectionFailure uint16 = 1606
	GeneralError        uint16 = 1607
)
