package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// fixedZeroIV is the all-zero initialization vector the server contract requires.
//
// This is cryptographically unsafe for general use (a fixed IV with CBC leaks equality of
// leading plaintext blocks across messages under the same key); it is kept here because the
// server is the authority on file integrity and every session uses a freshly generated AES
// key, not because it is good practice. Do not "fix" this independently of the server.
var fixedZeroIV = make([]byte, aes.BlockSize)

// EncryptCBC encrypts plaintext under key using AES-CBC with the fixed zero IV and PKCS#7
// padding. key must be 16, 24 or 32 bytes.
func EncryptCBC(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: AES cipher init: %v", ErrCryptoFailure, err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))

	mode := cipher.NewCBCEncrypter(block, fixedZeroIV)
	mode.CryptBlocks(ciphertext, padded)

	return ciphertext, nil
}

// pkcs7Pad pads data to a multiple of blockSize per PKCS#7. A full block of padding is
// always added if the input is already a multiple of blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - (len(data) % blockSize)
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}
