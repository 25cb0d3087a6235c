package cryptoutil

import "errors"

// ErrCryptoFailure covers RSA decrypt failures and malformed AES/cipher input.
var ErrCryptoFailure = errors.New("cryptoutil: crypto failure")
