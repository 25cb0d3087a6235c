package cryptoutil

import (
	"encoding/base64"
	"fmt"
)

// EncodePrivateKeyBase64 encodes a PKCS#1 DER private key for text-safe on-disk storage.
func EncodePrivateKeyBase64(der []byte) string {
	return base64.StdEncoding.EncodeToString(der)
}

// DecodePrivateKeyBase64 reverses EncodePrivateKeyBase64.
func DecodePrivateKeyBase64(encoded string) ([]byte, error) {
	der, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding base64 private key: %v", ErrCryptoFailure, err)
	}
	return der, nil
}
