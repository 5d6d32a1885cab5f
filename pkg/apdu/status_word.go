package apdu

import (
	"fmt"
)

// StatusWord represents the two-byte status (SW1-SW2) closing every response.
//
// The Cardano application only ever reports success as 9000. Two failures carry a meaning
// of their own (see Category):
//
//   - 6E00: CLA not supported, which in practice means the app is not installed or not opened.
//   - 6D00: INS not supported, returned for diagnostic opcodes on production builds.
//
// Every other value is reported as an invalid status with its raw code.
type StatusWord uint16

// NewStatusWord creates a StatusWord instance from two separate bytes.
func NewStatusWord(sw1, sw2 byte) StatusWord {
	return StatusWord(uint16(sw1)<<8 | uint16(sw2))
}

// SW1 returns the first byte (high byte) of the status word.
func (sw StatusWord) SW1() byte {
	return byte(sw >> 8)
}

// SW2 returns the second byte (low byte) of the status word.
func (sw StatusWord) SW2() byte {
	return byte(sw)
}

// IsSuccess returns true only for 9000.
func (sw StatusWord) IsSuccess() bool {
	return sw == SW_NO_ERROR
}

// Hex returns the status as four upper-case hex digits.
func (sw StatusWord) Hex() string {
	return fmt.Sprintf("%04X", uint16(sw))
}

// String returns the constant name of a known status word.
func (sw StatusWord) String() string {
	if name, ok := statusNames[sw]; ok {
		return name
	}
	return fmt.Sprintf("StatusWord(0x%04X)", uint16(sw))
}

// Verbose returns a human-readable description of the status word.
func (sw StatusWord) Verbose() string {
	if _, ok := statusNames[sw]; ok {
		return fmt.Sprintf("[%04X] %s: %s", uint16(sw), sw.String(), sw.Category().Message())
	}
	return fmt.Sprintf("[%04X] %s", uint16(sw), sw.genericCategoryDescription())
}

// genericCategoryDescription provides a fallback description based on SW1.
func (sw StatusWord) genericCategoryDescription() string {
	switch sw.SW1() {
	case 0x64, 0x65:
		return "Execution Error"
	case 0x67:
		return "Checking Error: Wrong length"
	case 0x69:
		return "Checking Error: Command not allowed"
	case 0x6A, 0x6B:
		return "Checking Error: Wrong parameters"
	default:
		return "Unknown Status"
	}
}

// Status words reported by the Cardano application.
const (
	SW_NO_ERROR StatusWord = 0x9000

	SW_ERR_WRONG_LENGTH            StatusWord = 0x6700
	SW_ERR_SECURITY_STATUS_NOT_SAT StatusWord = 0x6982
	SW_ERR_COND_OF_USE_NOT_SAT     StatusWord = 0x6985
	SW_ERR_INCORRECT_DATA          StatusWord = 0x6A80
	SW_ERR_WRONG_P1P2              StatusWord = 0x6B00
	SW_ERR_INS_NOT_AVAILABLE       StatusWord = 0x6D00
	SW_ERR_APP_NOT_RUNNING         StatusWord = 0x6E00
	SW_ERR_UNKNOWN                 StatusWord = 0x6F00
)

var statusNames = map[StatusWord]string{
	SW_NO_ERROR:                    "SW_NO_ERROR",
	SW_ERR_WRONG_LENGTH:            "SW_ERR_WRONG_LENGTH",
	SW_ERR_SECURITY_STATUS_NOT_SAT: "SW_ERR_SECURITY_STATUS_NOT_SAT",
	SW_ERR_COND_OF_USE_NOT_SAT:     "SW_ERR_COND_OF_USE_NOT_SAT",
	SW_ERR_INCORRECT_DATA:          "SW_ERR_INCORRECT_DATA",
	SW_ERR_WRONG_P1P2:              "SW_ERR_WRONG_P1P2",
	SW_ERR_INS_NOT_AVAILABLE:       "SW_ERR_INS_NOT_AVAILABLE",
	SW_ERR_APP_NOT_RUNNING:         "SW_ERR_APP_NOT_RUNNING",
	SW_ERR_UNKNOWN:                 "SW_ERR_UNKNOWN",
}
