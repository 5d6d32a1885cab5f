package apdu

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrValidation = errors.New("apdu: invalid input")
	ErrStatus     = errors.New("apdu: device status")
	ErrDecode     = errors.New("apdu: malformed response")
	ErrTransport  = errors.New("apdu: transport failure")
)

// Validation codes reported by ValidationError.
const (
	CodeTxTooLarge       = 5001
	CodeMsgTooLarge      = 5002
	CodeIndexNaN         = 5003
	CodeIndexMaxExceeded = 5302
)

// ValidationError reports caller input rejected before any exchange took place.
// Code is zero when the failure has no numeric code.
type ValidationError struct {
	Code int
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("apdu: invalid input: %s", e.Msg)
	}
	return fmt.Sprintf("apdu: invalid input (%d): %s", e.Code, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StatusError reports a response whose trailer is not 9000.
type StatusError struct {
	Instruction InsCode
	Status      StatusWord
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("apdu: %s failed with status %s", e.Instruction, e.Status.Verbose())
}

func (e *StatusError) Is(target error) bool {
	return target == ErrStatus
}

// Category classifies the reported status word.
func (e *StatusError) Category() Category {
	return e.Status.Category()
}

// DecodeError reports a response body that does not hold the structure its instruction requires.
type DecodeError struct {
	Instruction InsCode
	Field       string
	Need, Got   int
	Err         error
}

func (e *DecodeError) Error() string {
	prefix := "apdu: malformed response"
	if e.Instruction != 0 {
		prefix = fmt.Sprintf("apdu: malformed %s response", e.Instruction)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s needs %d bytes, got %d", prefix, e.Field, e.Need, e.Got)
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure of the Exchanger. The wrapped error is kept as-is.
type TransportError struct {
	Instruction InsCode
	Err         error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transmission error (%s): %v", e.Instruction, e.Err)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
