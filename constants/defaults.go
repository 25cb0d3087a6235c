// Package constants holds the fixed sizes and retry budgets the wire protocol
// and session machine are built against.
package constants

const (
	// ProtocolVersion is the version byte carried in every request header.
	ProtocolVersion = 3

	// ClientIDSize is the width of the client id field, on the wire and in memory.
	ClientIDSize = 16
	// VersionSize is the width of the protocol version field.
	VersionSize = 1
	// OpcodeSize is the width of the opcode field.
	OpcodeSize = 2
	// PayloadLenSize is the width of the payload-length field.
	PayloadLenSize = 4

	// RequestHeaderSize is the total size of a request header (client id, version, opcode, payload length).
	RequestHeaderSize = ClientIDSize + VersionSize + OpcodeSize + PayloadLenSize
	// ResponseHeaderSize is the total size of a response header (version, opcode, payload length).
	ResponseHeaderSize = VersionSize + OpcodeSize + PayloadLenSize

	// MaxUserNameLength is the maximum number of printable characters a user name may hold.
	MaxUserNameLength = 254
	// UserNameFieldSize is the on-wire width of the user name field (null-terminated, zero-padded).
	UserNameFieldSize = 255

	// PublicKeySize is the width of the DER-encoded RSA public key field.
	PublicKeySize = 160

	// FileNameFieldSize is the on-wire width of the file name field in SendFile/Crc* payloads.
	FileNameFieldSize = 255

	// ContentSizeFieldSize is the width of the ciphertext-total-size field in a SendFile payload.
	ContentSizeFieldSize = 4
	// OrigFileSizeFieldSize is the width of the plaintext-size field in a SendFile payload.
	OrigFileSizeFieldSize = 4
	// PacketNumberFieldSize is the width of the packet-index field in a SendFile payload.
	PacketNumberFieldSize = 2
	// TotalPacketsFieldSize is the width of the total-packet-count field in a SendFile payload.
	TotalPacketsFieldSize = 2
	// CksumFieldSize is the width of the CRC field in a FileReceived payload.
	CksumFieldSize = 4

	// PacketSize is the maximum size of one wire envelope (header + payload) for a SendFile request.
	PacketSize = 1024

	// FrameContentCapacity is the number of ciphertext bytes carried in each SendFile frame:
	// 1024 - 23 (request header) - 4 - 4 - 2 - 2 - 255 = 734.
	FrameContentCapacity = PacketSize - RequestHeaderSize - ContentSizeFieldSize - OrigFileSizeFieldSize -
		PacketNumberFieldSize - TotalPacketsFieldSize - FileNameFieldSize

	// RSAKeyBits is the modulus size for the client's RSA keypair.
	RSAKeyBits = 1024

	// AESKeySize is the width of the session AES key delivered by the server.
	AESKeySize = 32

	// MaxRegistrationAttempts caps the Register retry loop (1 initial + 3 retries).
	MaxRegistrationAttempts = 4
	// MaxCrcAttempts caps the upload+verify retry loop.
	MaxCrcAttempts = 4

	// DefaultPort is the conventional server port. config.ReadStartup does not fill it in: the
	// descriptor's host:port line is used as written.
	DefaultPort = 1256

	// DefaultDSCP mirrors the teacher's QoS default for the dialed TCP socket.
	DefaultDSCP = 0x0A

	// DefaultStartupFile is the default name of the three-line startup descriptor.
	DefaultStartupFile = "transfer.info"
	// DefaultIdentityFile is the default name of the persisted identity file.
	DefaultIdentityFile = "me.info"
	// DefaultPrivateKeyFile is the default name of the standalone private-key file.
	DefaultPrivateKeyFile = "priv.key"

	// Title is shown in CLI usage text.
	Title = "Secure file-transfer client"
)

// RegistrationSentinelClientID is the all-0xFF client id sent on a fresh Register request.
var RegistrationSentinelClientID = [ClientIDSize]byte{
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
}
