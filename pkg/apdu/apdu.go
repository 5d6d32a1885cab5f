package apdu

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// Frame limits of the Cardano application.
const (
	// HeaderSize is the fixed command header: CLA, INS, P1, P2 and a 4-byte Lc.
	HeaderSize = 8

	// OffsetLc is the position of the big-endian length field inside the header.
	OffsetLc = 4

	// MaxFrameSize is the largest command the device accepts in one exchange.
	MaxFrameSize = 64

	// MaxChunkSize is the payload room left in one frame once the header is written.
	MaxChunkSize = MaxFrameSize - HeaderSize

	// TrailerSize is the length of the status word closing every response.
	TrailerSize = 2
)

// CommandAPDU represents a command sent to the device.
type CommandAPDU struct {
	Class       Class
	Instruction InsCode
	P1, P2      byte
	// Lc is written verbatim into bytes 4..7. It usually equals len(Data), except on the
	// first frame of a chunked transfer where it announces the whole payload.
	Lc   uint32
	Data []byte
}

// NewCommandAPDU creates a command whose length field matches its payload.
func NewCommandAPDU(ins InsCode, p1, p2 byte, data []byte) *CommandAPDU {
	return &CommandAPDU{
		Class:       ClassCardano,
		Instruction: ins,
		P1:          p1,
		P2:          p2,
		Lc:          uint32(len(data)),
		Data:        data,
	}
}

// Bytes encodes the command into its wire representation.
func (c *CommandAPDU) Bytes() []byte {
	buf := make([]byte, HeaderSize+len(c.Data))
	buf[0] = byte(c.Class)
	buf[1] = byte(c.Instruction)
	buf[2] = c.P1
	buf[3] = c.P2
	binary.BigEndian.PutUint32(buf[OffsetLc:HeaderSize], c.Lc)
	copy(buf[HeaderSize:], c.Data)
	return buf
}

// Hex encodes the command the way the transport expects it.
func (c *CommandAPDU) Hex() string {
	return hex.EncodeToString(c.Bytes())
}

// String returns a readable representation of the command meta-data.
func (c *CommandAPDU) String() string {
	return fmt.Sprintf("%s | P1: %02X, P2: %02X | Lc: %d | Data: %d bytes",
		c.Instruction, c.P1, c.P2, c.Lc, len(c.Data))
}

// ParseCommandAPDU decodes a raw command. It is the inverse of Bytes.
func ParseCommandAPDU(raw []byte) (*CommandAPDU, error) {
	if len(raw) < HeaderSize {
		return nil, fmt.Errorf("command too short: length %d", len(raw))
	}

	cla, err := NewClass(raw[0])
	if err != nil {
		return nil, err
	}

	return &CommandAPDU{
		Class:       cla,
		Instruction: InsCode(raw[1]),
		P1:          raw[2],
		P2:          raw[3],
		Lc:          binary.BigEndian.Uint32(raw[OffsetLc:HeaderSize]),
		Data:        raw[HeaderSize:],
	}, nil
}

// ResponseAPDU represents the reply from the device.
type ResponseAPDU struct {
	Data   []byte
	Status StatusWord
}

// ParseResponseAPDU splits raw response bytes into body and status word.
// The input must contain at least the 2-byte trailer.
func ParseResponseAPDU(raw []byte) (*ResponseAPDU, error) {
	if len(raw) < TrailerSize {
		return nil, &DecodeError{Field: "status word", Need: TrailerSize, Got: len(raw)}
	}

	indexSW1 := len(raw) - TrailerSize

	return &ResponseAPDU{
		Data:   raw[:indexSW1],
		Status: NewStatusWord(raw[indexSW1], raw[indexSW1+1]),
	}, nil
}

// ParseResponseHex decodes a hex-encoded response as returned by an Exchanger.
func ParseResponseHex(s string) (*ResponseAPDU, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &DecodeError{Field: "response hex", Err: err}
	}
	return ParseResponseAPDU(raw)
}

// String returns a readable representation of the response.
func (r *ResponseAPDU) String() string {
	return fmt.Sprintf("Data (%d bytes) | Status: %s", len(r.Data), r.Status.Verbose())
}
