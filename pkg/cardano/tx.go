// Package cardano decodes the Byron-era transactions handed to the device, so that the host can
// check what the device reports back about them.
package cardano

import (
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/fxamacker/cbor/v2"
	"github.com/mr-tron/base58"
)

// TRANSACTION LAYOUT (Byron):
//
//	Tx      = [ [* TxIn], [* TxOut], attributes ]
//	TxIn    = [ 0, #6.24(bytes .cbor [txid, index]) ]
//	TxOut   = [ Address, amount ]
//	Address = [ #6.24(bytes payload), crc32(payload) ]
//
// Input and output lists are usually encoded as indefinite-length arrays.

// tagEncodedCBOR marks a byte string holding a nested CBOR item.
const tagEncodedCBOR = 24

var ErrMalformedTx = errors.New("cardano: malformed transaction")

// Tx is the decoded form of a transaction.
type Tx struct {
	Inputs  []Input
	Outputs []Output
}

// Input references an output of a previous transaction.
type Input struct {
	TxID  []byte
	Index uint32
}

// Output pays Amount lovelace to Address.
type Output struct {
	Address Address
	Amount  uint64
}

// Address is a Byron address: a tagged CBOR payload protected by a CRC32.
type Address struct {
	// Raw is the complete CBOR encoding; its base58 form is the printable address.
	Raw      []byte
	Payload  []byte
	Checksum uint32
}

// String returns the base58 rendering of the address.
func (a Address) String() string {
	return base58.Encode(a.Raw)
}

// Valid reports whether the checksum matches the payload.
func (a Address) Valid() bool {
	return crc32.ChecksumIEEE(a.Payload) == a.Checksum
}

type rawInput struct {
	_    struct{} `cbor:",toarray"`
	Type uint64
	Data cbor.RawTag
}

type rawOutpoint struct {
	_     struct{} `cbor:",toarray"`
	TxID  []byte
	Index uint32
}

type rawOutput struct {
	_       struct{} `cbor:",toarray"`
	Address cbor.RawMessage
	Amount  uint64
}

type rawAddress struct {
	_        struct{} `cbor:",toarray"`
	Payload  cbor.RawTag
	Checksum uint32
}

// ParseTx decodes a serialized transaction.
func ParseTx(raw []byte) (*Tx, error) {
	var parts []cbor.RawMessage
	if err := cbor.Unmarshal(raw, &parts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTx, err)
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 elements, got %d", ErrMalformedTx, len(parts))
	}

	var rawInputs, rawOutputs []cbor.RawMessage
	if err := cbor.Unmarshal(parts[0], &rawInputs); err != nil {
		return nil, fmt.Errorf("%w: inputs: %v", ErrMalformedTx, err)
	}
	if err := cbor.Unmarshal(parts[1], &rawOutputs); err != nil {
		return nil, fmt.Errorf("%w: outputs: %v", ErrMalformedTx, err)
	}

	tx := &Tx{
		Inputs:  make([]Input, 0, len(rawInputs)),
		Outputs: make([]Output, 0, len(rawOutputs)),
	}

	for i, item := range rawInputs {
		in, err := parseInput(item)
		if err != nil {
			return nil, fmt.Errorf("%w: input %d: %v", ErrMalformedTx, i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	for i, item := range rawOutputs {
		var out rawOutput
		if err := cbor.Unmarshal(item, &out); err != nil {
			return nil, fmt.Errorf("%w: output %d: %v", ErrMalformedTx, i, err)
		}
		addr, err := ParseAddress(out.Address)
		if err != nil {
			return nil, fmt.Errorf("%w: output %d: %v", ErrMalformedTx, i, err)
		}
		tx.Outputs = append(tx.Outputs, Output{Address: addr, Amount: out.Amount})
	}

	return tx, nil
}

func parseInput(item []byte) (Input, error) {
	var in rawInput
	if err := cbor.Unmarshal(item, &in); err != nil {
		return Input{}, err
	}

	nested, err := taggedBytes(in.Data)
	if err != nil {
		return Input{}, err
	}

	var op rawOutpoint
	if err := cbor.Unmarshal(nested, &op); err != nil {
		return Input{}, err
	}
	return Input{TxID: op.TxID, Index: op.Index}, nil
}

// ParseAddress decodes the CBOR encoding of an address. It does not verify the checksum.
func ParseAddress(raw []byte) (Address, error) {
	var a rawAddress
	if err := cbor.Unmarshal(raw, &a); err != nil {
		return Address{}, fmt.Errorf("address: %w", err)
	}

	payload, err := taggedBytes(a.Payload)
	if err != nil {
		return Address{}, fmt.Errorf("address: %w", err)
	}

	return Address{
		Raw:      append([]byte(nil), raw...),
		Payload:  payload,
		Checksum: a.Checksum,
	}, nil
}

// DecodeAddress parses a base58 address string.
func DecodeAddress(s string) (Address, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("address: %w", err)
	}
	return ParseAddress(raw)
}

func taggedBytes(t cbor.RawTag) ([]byte, error) {
	if t.Number != tagEncodedCBOR {
		return nil, fmt.Errorf("unexpected tag %d", t.Number)
	}
	var b []byte
	if err := cbor.Unmarshal(t.Content, &b); err != nil {
		return nil, err
	}
	return b, nil
}

// TotalOutput sums the output amounts.
func (tx *Tx) TotalOutput() (uint64, error) {
	var total uint64
	for _, out := range tx.Outputs {
		if total+out.Amount < total {
			return 0, fmt.Errorf("cardano: output total overflows")
		}
		total += out.Amount
	}
	return total, nil
}
