package store

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

var (
	// ErrInvalidIndexKind is returned when an unknown index kind is requested.
	ErrInvalidIndexKind = errors.New("invalid index kind")
	// ErrInvalidMaxKeySize is returned when the configured key size limit is not positive.
	ErrInvalidMaxKeySize = errors.New("max key size must be positive")
	// ErrInvalidSerialization is returned when an unknown serialization mode is requested.
	ErrInvalidSerialization = errors.New("invalid serialization")
	// ErrKeyEmpty is returned when a mutating operation receives an empty key.
	ErrKeyEmpty = errors.New("key must not be empty")
	// ErrKeyTooLarge is returned when a key exceeds the configured size limit.
	// The concrete error is always a *KeyTooLargeError carrying the observed
	// size and the limit.
	ErrKeyTooLarge = errors.New("key exceeds maximum size")
	// ErrSerializerDecodeFailed indicates deserializing a value failed.
	ErrSerializerDecodeFailed = errors.New("serializer decode failed")
	// ErrSerializerEncodeFailed indicates serializing a value failed.
	ErrSerializerEncodeFailed = errors.New("serializer encode failed")
	// ErrUnsupportedValueType is returned when a value of an unsupported type is set.
	ErrUnsupportedValueType = errors.New("unsupported value type (want []byte or string)")
)

// KeyTooLargeError reports a key whose byte length exceeds the configured
// maximum. It carries both the observed size and the limit for diagnostics and
// unwraps to ErrKeyTooLarge so callers can match it with errors.Is.
type KeyTooLargeError struct {
	// Size is the byte length of the rejected key.
	Size int

	// Limit is the configured maximum key size in bytes.
	Limit int
}

// Error implements the error interface.
func (e *KeyTooLargeError) Error() string {
	return fmt.Sprintf(
		"key is %d bytes (%s), limit is %d bytes (%s)",
		e.Size, humanize.Bytes(uint64(e.Size)),
		e.Limit, humanize.Bytes(uint64(e.Limit)),
	)
}

// Unwrap makes errors.Is(err, ErrKeyTooLarge) match the typed error.
func (e *KeyTooLargeError) Unwrap() error {
	return ErrKeyTooLarge
}
