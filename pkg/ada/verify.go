package ada

import (
	"errors"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/gregLibert/ledger-ada/pkg/cardano"
)

// ErrMismatch is matched by every MismatchError.
var ErrMismatch = errors.New("ada: device and host disagree")

// MismatchError reports a value the device read differently from the host.
type MismatchError struct {
	Field  string
	Device string
	Host   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("ada: %s mismatch: device %s, host %s", e.Field, e.Device, e.Host)
}

func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

func mismatch(field string, device, host any) error {
	return &MismatchError{Field: field, Device: fmt.Sprint(device), Host: fmt.Sprint(host)}
}

// VerifySummary checks the device's transaction summary against the host decode of the same
// transaction. Counts and amounts must agree. Address fields are display text and are not compared.
func VerifySummary(tx *cardano.Tx, s *TxSummary) error {
	if int(s.InputCount) != len(tx.Inputs) {
		return mismatch("input count", s.InputCount, len(tx.Inputs))
	}
	if int(s.OutputCount) != len(tx.Outputs) {
		return mismatch("output count", s.OutputCount, len(tx.Outputs))
	}
	if len(s.Outputs) != len(tx.Outputs) {
		return mismatch("outputs", len(s.Outputs), len(tx.Outputs))
	}
	for i, out := range s.Outputs {
		if out.Amount != tx.Outputs[i].Amount {
			return mismatch(fmt.Sprintf("output %d amount", i), out.AmountHex(), fmt.Sprintf("%016x", tx.Outputs[i].Amount))
		}
	}
	return nil
}

// VerifyCborDecode checks the device CBOR decoder output against the host decode.
func VerifyCborDecode(tx *cardano.Tx, r *CborDecodeResult) error {
	if int(r.InputCount) != len(tx.Inputs) {
		return mismatch("input count", r.InputCount, len(tx.Inputs))
	}
	if int(r.OutputCount) != len(tx.Outputs) {
		return mismatch("output count", r.OutputCount, len(tx.Outputs))
	}
	if len(r.Records) != len(tx.Outputs) {
		return mismatch("output records", len(r.Records), len(tx.Outputs))
	}
	for i, rec := range r.Records {
		host := tx.Outputs[i]
		if rec.Checksum != host.Address.Checksum {
			return mismatch(fmt.Sprintf("output %d checksum", i), fmt.Sprintf("%08X", rec.Checksum), fmt.Sprintf("%08X", host.Address.Checksum))
		}
		if rec.Amount != host.Amount {
			return mismatch(fmt.Sprintf("output %d amount", i), fmt.Sprintf("%016x", rec.Amount), fmt.Sprintf("%016x", host.Amount))
		}
	}
	return nil
}

// VerifyBase58 checks the device encoding of payload against the host encoding.
func VerifyBase58(payload []byte, r *Base58Result) error {
	if want := base58.Encode(payload); r.Address != want {
		return mismatch("base58 encoding", r.Address, want)
	}
	return nil
}
