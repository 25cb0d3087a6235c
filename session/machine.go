// Package session drives the client-side protocol state machine: register-or-reconnect,
// key exchange, and upload-with-verify, against a transport.Adapter and an identity.Store.
package session

import (
	"fmt"
	"os"

	"securexfer/constants"
	"securexfer/cryptoutil"
	"securexfer/identity"
	"securexfer/protocol"
	"securexfer/protocol/opcode"
	"securexfer/transport"
)

// Machine holds everything one run of the protocol needs: the socket, the persisted
// identity, and the inputs supplied by the startup descriptor.
type Machine struct {
	Link     transport.Adapter
	Identity *identity.Store

	UserName string
	FilePath string
}

// Outcome is the terminal result of Run: Done{ok} if Err is nil, Done{failed} otherwise.
type Outcome struct {
	ClientID string
	Err      error
}

// Run drives the machine from Start to a terminal Outcome.
func (m *Machine) Run() Outcome {
	clientID, aesKey, err := m.establishSession()
	if err != nil {
		return Outcome{Err: err}
	}

	if err := m.uploadAndVerify(clientID, aesKey); err != nil {
		return Outcome{ClientID: protocol.ClientIDToHex(clientID), Err: err}
	}

	return Outcome{ClientID: protocol.ClientIDToHex(clientID)}
}

// establishSession runs AttemptReconnect (if an identity file exists) falling through to
// AttemptRegister, returning the client id and session AES key either branch produces.
func (m *Machine) establishSession() ([constants.ClientIDSize]byte, []byte, error) {
	if m.Identity.Exists() {
		clientID, aesKey, err := m.attemptReconnect()
		if err == nil {
			return clientID, aesKey, nil
		}
		if err != ErrServerRejected {
			return [constants.ClientIDSize]byte{}, nil, err
		}
		// ReconnectionFailure (1606) or any other non-1605 response: fall through to
		// registration, per the AttemptReconnect -> AttemptRegister transition.
	}
	return m.completeRegistration()
}

// attemptReconnect implements the reconnect branch of §4.5: read the persisted identity,
// send Reconnect, and on ReconnectionSuccess decrypt the trailing bytes into the session key.
func (m *Machine) attemptReconnect() ([constants.ClientIDSize]byte, []byte, error) {
	var zero [constants.ClientIDSize]byte

	id, err := m.Identity.Load()
	if err != nil {
		return zero, nil, err
	}
	clientID, err := protocol.HexToClientID(id.ClientIDHex)
	if err != nil {
		return zero, nil, err
	}

	keyB64 := id.PrivateKeyB64
	if fileKey, err := m.Identity.ReadPrivateKeyFile(); err == nil {
		keyB64 = fileKey
	}
	privDER, err := cryptoutil.DecodePrivateKeyBase64(keyB64)
	if err != nil {
		return zero, nil, err
	}
	privKey, err := cryptoutil.DERToPrivateKey(privDER)
	if err != nil {
		return zero, nil, err
	}

	header := protocol.RequestHeader{ClientID: clientID, Version: constants.ProtocolVersion, Opcode: opcode.Reconnect}
	payload := protocol.ReconnectPayload{UserName: id.UserName}
	if err := m.Link.SendAll(protocol.EncodeRequest(header, payload)); err != nil {
		return zero, nil, err
	}

	respOp, body, err := m.readResponse()
	if err != nil {
		return zero, nil, err
	}
	if respOp != opcode.ReconnectionSuccess {
		return zero, nil, ErrServerRejected
	}

	resp, err := protocol.DecodeResponsePayload(respOp, body)
	if err != nil {
		return zero, nil, err
	}
	exchange, ok := resp.(protocol.KeyExchangePayload)
	if !ok {
		return zero, nil, fmt.Errorf("%w: reconnect response carried unexpected payload type", protocol.ErrMalformedPayload)
	}

	aesKey, err := cryptoutil.DecryptOAEP(privKey, exchange.WrappedAESKey)
	if err != nil {
		return zero, nil, err
	}
	return clientID, aesKey, nil
}

// completeRegistration implements the registration branch of §4.5, sending Register up to
// constants.MaxRegistrationAttempts times in total while the server answers RegistrationFailure.
func (m *Machine) completeRegistration() ([constants.ClientIDSize]byte, []byte, error) {
	var zero [constants.ClientIDSize]byte
	var clientID [constants.ClientIDSize]byte

	for attempt := 0; attempt < constants.MaxRegistrationAttempts; attempt++ {
		header := protocol.RequestHeader{
			ClientID: constants.RegistrationSentinelClientID,
			Version:  constants.ProtocolVersion,
			Opcode:   opcode.Register,
		}
		payload := protocol.RegisterPayload{UserName: m.UserName}
		if err := m.Link.SendAll(protocol.EncodeRequest(header, payload)); err != nil {
			return zero, nil, err
		}

		respOp, body, err := m.readResponse()
		if err != nil {
			return zero, nil, err
		}

		if respOp == opcode.RegistrationFailure {
			continue
		}
		if respOp != opcode.RegistrationSuccess {
			return zero, nil, ErrServerRejected
		}

		resp, err := protocol.DecodeResponsePayload(respOp, body)
		if err != nil {
			return zero, nil, err
		}
		idPayload, ok := resp.(protocol.ClientIDPayload)
		if !ok {
			return zero, nil, fmt.Errorf("%w: registration response carried unexpected payload type", protocol.ErrMalformedPayload)
		}
		clientID = idPayload.ClientID

		priv, pub, err := cryptoutil.GenerateRSAKeypair()
		if err != nil {
			return zero, nil, err
		}
		privDER := cryptoutil.PrivateKeyToDER(priv)
		privB64 := cryptoutil.EncodePrivateKeyBase64(privDER)
		if err := m.Identity.Persist(m.UserName, protocol.ClientIDToHex(clientID), privB64); err != nil {
			return zero, nil, err
		}

		pubDER, err := cryptoutil.PublicKeyToDER(pub)
		if err != nil {
			return zero, nil, err
		}
		var pubField [constants.PublicKeySize]byte
		copy(pubField[:], pubDER)

		submitHeader := protocol.RequestHeader{ClientID: clientID, Version: constants.ProtocolVersion, Opcode: opcode.SubmitPublicKey}
		submitPayload := protocol.SubmitPublicKeyPayload{UserName: m.UserName, PublicKey: pubField}
		if err := m.Link.SendAll(protocol.EncodeRequest(submitHeader, submitPayload)); err != nil {
			return zero, nil, err
		}

		submitOp, submitBody, err := m.readResponse()
		if err != nil {
			return zero, nil, err
		}
		if submitOp != opcode.PublicKeyReceived {
			return zero, nil, ErrServerRejected
		}

		submitResp, err := protocol.DecodeResponsePayload(submitOp, submitBody)
		if err != nil {
			return zero, nil, err
		}
		exchange, ok := submitResp.(protocol.KeyExchangePayload)
		if !ok {
			return zero, nil, fmt.Errorf("%w: public key response carried unexpected payload type", protocol.ErrMalformedPayload)
		}

		aesKey, err := cryptoutil.DecryptOAEP(priv, exchange.WrappedAESKey)
		if err != nil {
			return zero, nil, err
		}
		return clientID, aesKey, nil
	}

	return zero, nil, ErrRegistrationRejected
}

// uploadAndVerify implements the upload procedure of §4.5, running up to
// constants.MaxCrcAttempts upload+verify cycles in total while the checksums mismatch.
func (m *Machine) uploadAndVerify(clientID [constants.ClientIDSize]byte, aesKey []byte) error {
	plaintext, err := os.ReadFile(m.FilePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", m.FilePath, err)
	}
	localCRC := cryptoutil.Checksum(plaintext)

	for attempt := 0; attempt < constants.MaxCrcAttempts; attempt++ {
		ciphertext, err := cryptoutil.EncryptCBC(aesKey, plaintext)
		if err != nil {
			return err
		}

		total := (len(ciphertext) + constants.FrameContentCapacity - 1) / constants.FrameContentCapacity
		if total == 0 {
			total = 1
		}

		for i := 0; i < total; i++ {
			start := i * constants.FrameContentCapacity
			end := start + constants.FrameContentCapacity
			if end > len(ciphertext) {
				end = len(ciphertext)
			}
			header := protocol.RequestHeader{ClientID: clientID, Version: constants.ProtocolVersion, Opcode: opcode.SendFile}
			payload := protocol.SendFilePayload{
				ContentSize:  uint32(len(ciphertext)),
				OrigFileSize: uint32(len(plaintext)),
				PacketNumber: uint16(i + 1),
				TotalPackets: uint16(total),
				FileName:     m.FilePath,
				Content:      ciphertext[start:end],
			}
			if err := m.Link.SendAll(protocol.EncodeRequest(header, payload)); err != nil {
				return err
			}
		}

		respOp, body, err := m.readResponse()
		if err != nil {
			return err
		}
		if respOp != opcode.FileReceived {
			return ErrServerRejected
		}
		resp, err := protocol.DecodeResponsePayload(respOp, body)
		if err != nil {
			return err
		}
		received, ok := resp.(protocol.FileReceivedPayload)
		if !ok {
			return fmt.Errorf("%w: file received response carried unexpected payload type", protocol.ErrMalformedPayload)
		}

		if received.Cksum == localCRC {
			return nil
		}
	}

	return ErrCrcMismatch
}

// readResponse reads and decodes one response header, then reads its declared payload length.
func (m *Machine) readResponse() (uint16, []byte, error) {
	headerBuf, err := m.Link.RecvExact(constants.ResponseHeaderSize)
	if err != nil {
		return 0, nil, err
	}
	header, err := protocol.DecodeResponseHeader(headerBuf)
	if err != nil {
		return 0, nil, err
	}
	if header.PayloadLen == 0 {
		return header.Opcode, nil, nil
	}
	body, err := m.Link.RecvExact(int(header.PayloadLen))
	if err != nil {
		return 0, nil, err
	}
	return header.Opcode, body, nil
}
