package sessioncrypto

import "fmt"

type CryptoErrorKind uint8

const (
	CryptoErrorKind_SessionKeyDerivation CryptoErrorKind = iota
	CryptoErrorKind_Decrypt
	CryptoErrorKind_Encrypt
	CryptoErrorKind_KeyExchange
	CryptoErrorKind_StateConsumed
)

func (k CryptoErrorKind) String() string {
	switch k {
	case CryptoErrorKind_SessionKeyDerivation:
		return "could not derive session key"
	case CryptoErrorKind_Decrypt:
		return "could not decrypt message"
	case CryptoErrorKind_Encrypt:
		return "could not encrypt message"
	case CryptoErrorKind_KeyExchange:
		return "key exchange failed"
	case CryptoErrorKind_StateConsumed:
		return "crypto state already consumed"
	}
	return fmt.Sprintf("crypto error %d", uint8(k))
}

// CryptoError deliberately carries nothing but its kind. Every decryption
// failure looks the same to the caller.
type CryptoError struct {
	Kind CryptoErrorKind
}

func (e *CryptoError) Error() string {
	return e.Kind.String()
}

// Is matches any CryptoError of the same kind, so callers can compare
// against the Err* values with errors.Is.
func (e *CryptoError) Is(target error) bool {
	t, ok := target.(*CryptoError)
	return ok && t.Kind == e.Kind
}

var (
	ErrSessionKeyDerivation = &CryptoError{Kind: CryptoErrorKind_SessionKeyDerivation}
	ErrDecrypt              = &CryptoError{Kind: CryptoErrorKind_Decrypt}
	ErrEncrypt              = &CryptoError{Kind: CryptoErrorKind_Encrypt}
	ErrKeyExchange          = &CryptoError{Kind: CryptoErrorKind_KeyExchange}
	ErrStateConsumed        = &CryptoError{Kind: CryptoErrorKind_StateConsumed}
)

func cryptoError(kind CryptoErrorKind) error {
	return &CryptoError{Kind: kind}
}
