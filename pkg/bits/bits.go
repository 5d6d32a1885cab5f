// Package bits holds the small bit and word manipulation helpers shared by the codec.
package bits

// Bit returns a byte with only the n-th bit set (1 to 8).
func Bit(n uint) byte {
	if n < 1 || n > 8 {
		return 0
	}
	return 1 << (n - 1)
}

// IsSet checks if the n-th bit is set (1 to 8).
func IsSet(b byte, n uint) bool {
	return b&Bit(n) != 0
}

// Set returns b with bit n raised.
func Set(b byte, n uint) byte {
	return b | Bit(n)
}

// JoinWords combines a low and a high 32-bit word into one 64-bit value.
func JoinWords(low, high uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}

// SplitWords is the inverse of JoinWords.
func SplitWords(v uint64) (low, high uint32) {
	return uint32(v), uint32(v >> 32)
}

// Uint64LEWords reads an amount stored as two little-endian 32-bit words,
// the low word first. b must hold at least 8 bytes.
func Uint64LEWords(b []byte) uint64 {
	low := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	high := uint32(b[4]) | uint32(b[5])<<8 | uint32(b[6])<<16 | uint32(b[7])<<24
	return JoinWords(low, high)
}

// PutUint64LEWords writes v in the layout read by Uint64LEWords.
func PutUint64LEWords(b []byte, v uint64) {
	low, high := SplitWords(v)
	for i := 0; i < 4; i++ {
		b[i] = byte(low >> (8 * i))
		b[4+i] = byte(high >> (8 * i))
	}
}
