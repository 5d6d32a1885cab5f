package apdu

import (
	"fmt"
)

// Instruction opcodes of the Cardano application.
//
// The values mirror the dispatch table compiled into the device firmware and are not negotiable at
// runtime. Opcodes 0x07 to 0x09 only exist on test builds of the firmware.

// InsCode is a typed representation of the instruction byte.
type InsCode byte

const (
	INS_GET_PUBLIC_KEY     InsCode = 0x01
	INS_SET_TX             InsCode = 0x02
	INS_SIGN_TX            InsCode = 0x03
	INS_APP_INFO           InsCode = 0x04
	INS_BLAKE2B_TEST       InsCode = 0x07
	INS_BASE58_ENCODE_TEST InsCode = 0x08
	INS_CBOR_DECODE_TEST   InsCode = 0x09
)

var insNames = map[InsCode]string{
	INS_GET_PUBLIC_KEY:     "INS_GET_PUBLIC_KEY",
	INS_SET_TX:             "INS_SET_TX",
	INS_SIGN_TX:            "INS_SIGN_TX",
	INS_APP_INFO:           "INS_APP_INFO",
	INS_BLAKE2B_TEST:       "INS_BLAKE2B_TEST",
	INS_BASE58_ENCODE_TEST: "INS_BASE58_ENCODE_TEST",
	INS_CBOR_DECODE_TEST:   "INS_CBOR_DECODE_TEST",
}

// NewInstruction validates a raw opcode against the closed instruction set.
func NewInstruction(ins byte) (InsCode, error) {
	code := InsCode(ins)
	if _, ok := insNames[code]; !ok {
		return 0, fmt.Errorf("unknown INS 0x%02X", ins)
	}
	return code, nil
}

func (i InsCode) String() string {
	if name, ok := insNames[i]; ok {
		return name
	}
	return fmt.Sprintf("InsCode(0x%02X)", byte(i))
}

// IsDiagnostic reports whether the instruction is only available on test firmware builds.
func (i InsCode) IsDiagnostic() bool {
	switch i {
	case INS_BLAKE2B_TEST, INS_BASE58_ENCODE_TEST, INS_CBOR_DECODE_TEST:
		return true
	default:
		return false
	}
}

// IsChunked reports whether the instruction carries its payload through Transfer.
func (i InsCode) IsChunked() bool {
	switch i {
	case INS_SET_TX, INS_BLAKE2B_TEST, INS_CBOR_DECODE_TEST:
		return true
	default:
		return false
	}
}

// Verbose returns a human-readable description of the instruction.
func (i InsCode) Verbose() string {
	kind := "Production"
	if i.IsDiagnostic() {
		kind = "Diagnostic"
	}
	return fmt.Sprintf("INS: 0x%02X | Command: %s | Build: %s", byte(i), i.String(), kind)
}
