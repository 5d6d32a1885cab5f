package apdu

import (
	"fmt"

	"github.com/gregLibert/ledger-ada/pkg/bits"
)

// Class is the CLA byte of a command.
//
// Bit 8 set marks a proprietary class. The Cardano application only answers proprietary
// commands and rejects everything else with SW 6E00.
type Class byte

// ClassCardano is the class byte carried by every command of the Cardano application.
const ClassCardano Class = 0x80

// NewClass validates a raw CLA byte.
func NewClass(cla byte) (Class, error) {
	if cla == 0xFF {
		return 0, fmt.Errorf("invalid CLA value: 0xFF is reserved")
	}
	if !bits.IsSet(cla, 8) {
		return 0, fmt.Errorf("invalid CLA value 0x%02X: interindustry classes are not supported", cla)
	}
	return Class(cla), nil
}

// IsProprietary reports whether bit 8 is set.
func (c Class) IsProprietary() bool {
	return bits.IsSet(byte(c), 8)
}

// Verbose returns a human-readable description of the CLA byte.
func (c Class) Verbose() string {
	if c.IsProprietary() {
		return fmt.Sprintf("Class: Proprietary (0x%02X)", byte(c))
	}
	return fmt.Sprintf("Class: Interindustry (0x%02X)", byte(c))
}
