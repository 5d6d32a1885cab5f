package tlv

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ParseHex decodes hex text written for humans: spaces and newlines are ignored and a leading
// "0x" is accepted. Case does not matter.
func ParseHex(s string) ([]byte, error) {
	clean := strings.Join(strings.Fields(s), "")
	clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")

	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return data, nil
}

// Hex constructs a byte slice from a series of hex strings, panicking on malformed input.
// It is meant for fixtures such as Hex("80 02 01 02", "00000040").
func Hex(parts ...string) []byte {
	data, err := ParseHex(strings.Join(parts, ""))
	if err != nil {
		panic(fmt.Sprintf("invalid input %q: %v", strings.Join(parts, ""), err))
	}
	return data
}
