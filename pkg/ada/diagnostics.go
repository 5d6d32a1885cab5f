package ada

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/bits"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// DIAGNOSTIC COMMANDS:
// Test builds of the application expose three extra instructions that run one internal routine
// on caller data. Production builds reject them with 0x6D00 (instruction not available).
//
//   - BASE58 ENCODE TEST (0x08): single frame, P1 = P2 = 0. Body: [N][N ASCII chars].
//   - BLAKE2B TEST (0x07): chunked. Body: [2 bytes][64-byte hash].
//   - CBOR DECODE TEST (0x09): chunked. Body: [inputs][outputs] then 14-byte records
//     [checksum: 4 BE][pad][amount: 2 LE words][pad], one per output. Reading stops when fewer
//     than 2 bytes remain; any longer fragment is a malformed record.
const (
	hashOffset     = 2
	cborRecordSize = 14
)

// Diagnostics groups the test-build instructions.
type Diagnostics struct {
	app *App
}

// Diagnostics returns the diagnostic capability of the app.
func (a *App) Diagnostics() *Diagnostics {
	return &Diagnostics{app: a}
}

// Base58Result is the device's base58 encoding of the input.
type Base58Result struct {
	Length  uint8
	Address string
}

// Base58Encode asks the device to base58 encode payloadHex (at most MaxMessageSize bytes).
func (d *Diagnostics) Base58Encode(payloadHex string) (*Base58Result, error) {
	payload, err := parsePayload(payloadHex, MaxMessageSize, apdu.CodeMsgTooLarge)
	if err != nil {
		return nil, err
	}

	tx, err := d.app.Client.Send(apdu.NewCommandAPDU(apdu.INS_BASE58_ENCODE_TEST, 0x00, 0x00, payload))
	if err != nil {
		return nil, err
	}

	body := tx.Response.Data
	if err := requireLen(apdu.INS_BASE58_ENCODE_TEST, "length", body, 1); err != nil {
		return nil, err
	}
	n := int(body[0])
	if err := requireLen(apdu.INS_BASE58_ENCODE_TEST, "address", body, 1+n); err != nil {
		return nil, err
	}
	return &Base58Result{Length: body[0], Address: string(body[1 : 1+n])}, nil
}

// HashResult holds the digest computed by the device over the transferred data.
type HashResult struct {
	Trace apdu.Trace
	Hash  []byte
}

// Hash streams payloadHex to the device hashing routine.
func (d *Diagnostics) Hash(payloadHex string) (*HashResult, error) {
	payload, err := parsePayload(payloadHex, MaxTxSize, apdu.CodeTxTooLarge)
	if err != nil {
		return nil, err
	}

	trace, err := d.app.Client.Transfer(apdu.INS_BLAKE2B_TEST, payload)
	if err != nil {
		return nil, err
	}

	body := trace.FinalData()
	if err := requireLen(apdu.INS_BLAKE2B_TEST, "hash", body, hashOffset+HashSize); err != nil {
		return nil, err
	}
	return &HashResult{
		Trace: trace,
		Hash:  append([]byte(nil), body[hashOffset:hashOffset+HashSize]...),
	}, nil
}

// CborOutputRecord is one output as read back by the device CBOR decoder.
type CborOutputRecord struct {
	Checksum uint32 `fmt:"hex"`
	Amount   uint64 `fmt:"hex"`
}

// CborDecodeResult is the device's decoding of a transaction.
type CborDecodeResult struct {
	Trace       apdu.Trace
	InputCount  uint8
	OutputCount uint8
	Records     []CborOutputRecord
}

// CborDecode streams a transaction to the device CBOR decoder.
func (d *Diagnostics) CborDecode(txHex string) (*CborDecodeResult, error) {
	payload, err := parsePayload(txHex, MaxTxSize, apdu.CodeTxTooLarge)
	if err != nil {
		return nil, err
	}

	trace, err := d.app.Client.Transfer(apdu.INS_CBOR_DECODE_TEST, payload)
	if err != nil {
		return nil, err
	}

	res, err := decodeCborRecords(trace.FinalData())
	if err != nil {
		return nil, err
	}
	res.Trace = trace
	return res, nil
}

func decodeCborRecords(body []byte) (*CborDecodeResult, error) {
	if err := requireLen(apdu.INS_CBOR_DECODE_TEST, "counts", body, 2); err != nil {
		return nil, err
	}

	res := &CborDecodeResult{InputCount: body[0], OutputCount: body[1]}
	off := 2
	for ; len(body)-off >= apdu.TrailerSize; off += cborRecordSize {
		if len(body)-off < cborRecordSize {
			return nil, &apdu.DecodeError{
				Instruction: apdu.INS_CBOR_DECODE_TEST,
				Field:       "output record",
				Need:        cborRecordSize,
				Got:         len(body) - off,
			}
		}
		rec := body[off : off+cborRecordSize]
		res.Records = append(res.Records, CborOutputRecord{
			Checksum: binary.BigEndian.Uint32(rec[0:4]),
			Amount:   bits.Uint64LEWords(rec[5:13]),
		})
	}

	if len(res.Records) < int(res.OutputCount) {
		return nil, &apdu.DecodeError{
			Instruction: apdu.INS_CBOR_DECODE_TEST,
			Field:       "output records",
			Need:        2 + int(res.OutputCount)*cborRecordSize,
			Got:         len(body),
		}
	}
	return res, nil
}

// Describe generates a human-readable report of the encoding.
func (r *Base58Result) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== BASE58 ENCODE TEST ===")
	tlv.WriteStructFields(&sb, "Base58", r)
	return sb.String()
}

// Describe generates a human-readable report of the digest.
func (r *HashResult) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== HASH TEST ===")
	sb.WriteString(fmt.Sprintf("\n  Frames: %d", len(r.Trace)))
	tlv.WriteStructFields(&sb, "Hash", r)
	return sb.String()
}

// Describe generates a human-readable report of the decoded records.
func (r *CborDecodeResult) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== CBOR DECODE TEST ===")
	sb.WriteString(fmt.Sprintf("\n  Frames: %d", len(r.Trace)))
	tlv.WriteStructFields(&sb, "Tx", r)
	for i, rec := range r.Records {
		tlv.WriteStructFields(&sb, fmt.Sprintf("Output[%d]", i), rec)
	}
	return sb.String()
}
