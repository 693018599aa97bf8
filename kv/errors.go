package kv

import (
	"errors"

	"github.com/askopin/key-value-storage/kv/store"
)

var _ error = (*Error)(nil)

// ErrorName represents the name of an error.
type ErrorName string

const (
	// EmptyKeyError is emitted when a mutating operation receives a zero-length key.
	EmptyKeyError ErrorName = "EmptyKeyError"

	// InvalidIndexError is emitted when an unknown index kind is configured.
	InvalidIndexError ErrorName = "InvalidIndexError"

	// InvalidMaxKeySizeError is emitted when the configured key size limit cannot be used.
	InvalidMaxKeySizeError ErrorName = "InvalidMaxKeySizeError"

	// InvalidSerializationError is emitted when an unknown serialization mode is configured.
	InvalidSerializationError ErrorName = "InvalidSerializationError"

	// KeyTooLargeError is emitted when a key exceeds the configured byte limit.
	KeyTooLargeError ErrorName = "KeyTooLargeError"

	// SerializerError is emitted when serialization or deserialization fails.
	SerializerError ErrorName = "SerializerError"

	// UnsupportedValueTypeError is emitted when the store rejects a value type.
	UnsupportedValueTypeError ErrorName = "UnsupportedValueTypeError"
)

// Error represents a structured error emitted by the kv façade.
type Error struct {
	// Name contains one of the strings associated with an error name.
	Name ErrorName `json:"name"`

	// Message represents the description associated with the given error name.
	Message string `json:"message"`
}

// NewError returns a new Error instance.
func NewError(name ErrorName, message string) *Error {
	return &Error{
		Name:    name,
		Message: message,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return string(e.Name) + ": " + e.Message
}

// classifyError downgrades store-level sentinels to structured kv errors.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	var kvErr *Error
	if errors.As(err, &kvErr) {
		return kvErr
	}

	switch {
	case errors.Is(err, store.ErrKeyEmpty):
		return NewError(EmptyKeyError, err.Error())
	case errors.Is(err, store.ErrKeyTooLarge):
		return NewError(KeyTooLargeError, err.Error())
	case errors.Is(err, store.ErrInvalidIndexKind):
		return NewError(InvalidIndexError, err.Error())
	case errors.Is(err, store.ErrInvalidMaxKeySize):
		return NewError(InvalidMaxKeySizeError, err.Error())
	case errors.Is(err, store.ErrInvalidSerialization):
		return NewError(InvalidSerializationError, err.Error())
	case errors.Is(err, store.ErrUnsupportedValueType):
		return NewError(UnsupportedValueTypeError, err.Error())
	case errors.Is(err, store.ErrSerializerEncodeFailed),
		errors.Is(err, store.ErrSerializerDecodeFailed):
		return NewError(SerializerError, err.Error())
	}

	return err
}
