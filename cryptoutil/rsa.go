// Package cryptoutil provides the RSA, AES, CRC-32 and base64 primitives the session
// machine needs for key exchange, file encryption and integrity verification. These
// primitives are treated as an external collaborator by the spec this client implements
// (only their interface is normative); the implementations here are ordinary stdlib code.
package cryptoutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"fmt"

	"securexfer/constants"
)

// GenerateRSAKeypair creates a fresh 1024-bit RSA keypair for one client identity.
func GenerateRSAKeypair() (*rsa.PrivateKey, *rsa.PublicKey, error) {
	priv, err := rsa.GenerateKey(rand.Reader, constants.RSAKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: generating RSA keypair: %v", ErrCryptoFailure, err)
	}
	return priv, &priv.PublicKey, nil
}

// PublicKeyToDER encodes pub in PKCS#1 DER form, the on-wire representation of
// SubmitPublicKeyPayload.PublicKey. PKCS#1 (bare modulus/exponent) rather than PKIX
// (which wraps it in an AlgorithmIdentifier) is used because the latter does not fit the
// protocol's fixed 160-byte public key field for a 1024-bit modulus; the field is
// zero-padded after the DER content, as it has room to spare.
func PublicKeyToDER(pub *rsa.PublicKey) ([]byte, error) {
	der := x509.MarshalPKCS1PublicKey(pub)
	return der, nil
}

// PrivateKeyToDER encodes priv in PKCS#1 DER form for on-disk (base64) persistence.
func PrivateKeyToDER(priv *rsa.PrivateKey) []byte {
	return x509.MarshalPKCS1PrivateKey(priv)
}

// DERToPrivateKey parses a PKCS#1 DER-encoded private key, as stored (base64-wrapped) by
// the identity store.
func DERToPrivateKey(der []byte) (*rsa.PrivateKey, error) {
	priv, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing private key: %v", ErrCryptoFailure, err)
	}
	return priv, nil
}

// DecryptOAEP unwraps ciphertext (the RSA-wrapped AES session key sent by the server) using
// RSAES-OAEP with SHA-1, the hash the reference server implementation uses.
func DecryptOAEP(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha1.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: RSA-OAEP decrypt: %v", ErrCryptoFailure, err)
	}
	return plaintext, nil
}
