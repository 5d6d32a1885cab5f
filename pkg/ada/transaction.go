package ada

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/bits"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// outputRecordSize is one summary output: printable address field then amount.
const outputRecordSize = AddressFieldSize + AmountSize

// TxOutput is one output as displayed by the device.
type TxOutput struct {
	Address string
	Amount  uint64
}

// AmountHex renders the amount as 16 lowercase hex digits, high word first.
func (o TxOutput) AmountHex() string {
	return fmt.Sprintf("%016x", o.Amount)
}

// TxSummary is the device's reading of a transaction, returned with the final frame.
type TxSummary struct {
	InputCount  uint8
	OutputCount uint8
	Outputs     []TxOutput
}

// SetTransactionResult holds the transfer trace and, when the final frame carried one, the summary.
type SetTransactionResult struct {
	Trace   apdu.Trace
	Summary *TxSummary
}

// SetTransaction streams a serialized transaction to the device in chunks.
func (a *App) SetTransaction(txHex string) (*SetTransactionResult, error) {
	payload, err := parsePayload(txHex, MaxTxSize, apdu.CodeTxTooLarge)
	if err != nil {
		return nil, err
	}
	return a.setTransaction(payload)
}

func (a *App) setTransaction(payload []byte) (*SetTransactionResult, error) {
	hostTx, err := a.parseTx(payload)
	if err != nil {
		return nil, err
	}

	trace, err := a.Client.Transfer(apdu.INS_SET_TX, payload)
	if err != nil {
		return nil, err
	}

	res := &SetTransactionResult{Trace: trace}
	body := trace.FinalData()
	if len(body) == 0 {
		if hostTx != nil {
			return nil, mismatch("transaction summary", "none", fmt.Sprintf("%d outputs", len(hostTx.Outputs)))
		}
		return res, nil
	}

	if res.Summary, err = decodeTxSummary(body); err != nil {
		return nil, err
	}

	if hostTx != nil {
		if err := VerifySummary(hostTx, res.Summary); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func decodeTxSummary(body []byte) (*TxSummary, error) {
	if err := requireLen(apdu.INS_SET_TX, "output count", body, 2); err != nil {
		return nil, err
	}

	s := &TxSummary{InputCount: body[0], OutputCount: body[1]}
	need := 2 + int(s.OutputCount)*outputRecordSize
	if err := requireLen(apdu.INS_SET_TX, "outputs", body, need); err != nil {
		return nil, err
	}

	s.Outputs = make([]TxOutput, 0, s.OutputCount)
	for off := 2; off < need; off += outputRecordSize {
		addr := body[off : off+AddressFieldSize]
		s.Outputs = append(s.Outputs, TxOutput{
			Address: string(addr),
			Amount:  bits.Uint64LEWords(body[off+AddressFieldSize : off+outputRecordSize]),
		})
	}
	return s, nil
}

// Signature is the digest returned for one signing index.
type Signature struct {
	Index  uint32 `fmt:"hex"`
	Digest []byte
}

// DigestHex renders the digest in lowercase hex.
func (s Signature) DigestHex() string {
	return hex.EncodeToString(s.Digest)
}

// SignWithIndexes signs the transaction previously set, one command per index in the given order.
// The first failing index aborts the rest.
func (a *App) SignWithIndexes(indexes []uint32) ([]Signature, error) {
	cmds, err := signCommands(indexes)
	if err != nil {
		return nil, err
	}

	trace, err := a.Client.SendAll(cmds)
	if err != nil {
		return nil, err
	}

	sigs := make([]Signature, len(trace))
	for i, t := range trace {
		sigs[i] = Signature{Index: indexes[i], Digest: t.Response.Data}
	}
	return sigs, nil
}

// SignTransaction sets txHex on the device then signs it with every index.
func (a *App) SignTransaction(txHex string, indexes []uint32) ([]Signature, error) {
	payload, err := parsePayload(txHex, MaxTxSize, apdu.CodeTxTooLarge)
	if err != nil {
		return nil, err
	}
	// Index validation happens before the transaction is sent.
	if _, err := signCommands(indexes); err != nil {
		return nil, err
	}

	if _, err := a.setTransaction(payload); err != nil {
		return nil, fmt.Errorf("setting transaction: %w", err)
	}
	return a.SignWithIndexes(indexes)
}

// signCommands builds the SIGN TX command of every index: P1 = P2 = 0, Lc = 4, index big-endian.
func signCommands(indexes []uint32) ([]*apdu.CommandAPDU, error) {
	if len(indexes) == 0 {
		return nil, &apdu.ValidationError{Msg: "no signing index"}
	}

	cmds := make([]*apdu.CommandAPDU, len(indexes))
	for i, idx := range indexes {
		data := make([]byte, 4)
		binary.BigEndian.PutUint32(data, idx)
		cmds[i] = apdu.NewCommandAPDU(apdu.INS_SIGN_TX, 0x00, 0x00, data)
	}
	return cmds, nil
}

// Describe generates a human-readable report of the transfer and the device's summary.
func (r *SetTransactionResult) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== SET TRANSACTION ===")
	sb.WriteString(fmt.Sprintf("\n  Frames: %d", len(r.Trace)))
	for i, t := range r.Trace {
		sb.WriteString(fmt.Sprintf("\n    [%d] %s", i, t.Command))
	}

	if r.Summary == nil {
		sb.WriteString("\n  Summary: none")
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("\n  Inputs: %d", r.Summary.InputCount))
	sb.WriteString(fmt.Sprintf("\n  Outputs: %d", r.Summary.OutputCount))
	for i, o := range r.Summary.Outputs {
		sb.WriteString(fmt.Sprintf("\n    [%d] %s  %s", i, tlv.MakeSafeASCII([]byte(o.Address)), o.AmountHex()))
	}
	return sb.String()
}

// Describe generates a human-readable report of the signature.
func (s Signature) Describe() string {
	var sb strings.Builder
	sb.WriteString("=== SIGNATURE ===")
	tlv.WriteStructFields(&sb, "Signature", s)
	return sb.String()
}
