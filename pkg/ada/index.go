package ada

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
)

// MaxIndex is the largest derivation index the device accepts.
const MaxIndex = 0xFFFFFFFF

// ParseIndex reads a derivation index written in decimal or with a 0x prefix.
func ParseIndex(s string) (uint32, error) {
	s = strings.TrimSpace(s)

	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, indexTooLarge(s)
		}
		return 0, &apdu.ValidationError{
			Code: apdu.CodeIndexNaN,
			Msg:  fmt.Sprintf("address index %q is not a number", s),
		}
	}
	if v > MaxIndex {
		return 0, indexTooLarge(s)
	}
	return uint32(v), nil
}

// ParseIndexes parses every index, failing on the first invalid one.
func ParseIndexes(ss []string) ([]uint32, error) {
	out := make([]uint32, 0, len(ss))
	for _, s := range ss {
		idx, err := ParseIndex(s)
		if err != nil {
			return nil, err
		}
		out = append(out, idx)
	}
	return out, nil
}

func indexTooLarge(s string) error {
	return &apdu.ValidationError{
		Code: apdu.CodeIndexMaxExceeded,
		Msg:  fmt.Sprintf("address index %s exceeds maximum 0x%X", s, MaxIndex),
	}
}
