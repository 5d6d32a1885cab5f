// Package ada exposes the operations of the Cardano application: key retrieval, transaction
// signing, version query and the diagnostic commands of test firmware builds.
//
// Input is validated before any command reaches the device. Commands go out strictly in sequence
// through an apdu.Client. Failures are the typed errors of package apdu, plus MismatchError when
// host-side verification is enabled.
package ada

import (
	"fmt"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/cardano"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// Payload limits and response layouts of the Cardano application.
const (
	// MaxTxSize is the largest transaction the device buffers.
	MaxTxSize = 1024

	// MaxMessageSize is the largest input of the base58 diagnostic.
	MaxMessageSize = 248

	// AddressFieldSize is the printable address width in a transaction summary.
	AddressFieldSize = 12

	// AmountSize is the width of an amount: two little-endian 32-bit words.
	AmountSize = 8

	ChainCodeSize = 32
	HashSize      = 64
)

// App drives the Cardano application through an apdu.Client.
type App struct {
	Client *apdu.Client

	// VerifyTx decodes transactions on the host. Undecodable transactions are rejected before
	// any exchange, and the device must return a transaction summary matching the host's reading.
	VerifyTx bool
}

// NewApp creates an App over client.
func NewApp(client *apdu.Client) *App {
	return &App{Client: client}
}

// parsePayload decodes caller hex and enforces the size limit tied to code.
func parsePayload(payloadHex string, max, code int) ([]byte, error) {
	payload, err := tlv.ParseHex(payloadHex)
	if err != nil {
		return nil, &apdu.ValidationError{Msg: err.Error()}
	}
	if len(payload) == 0 {
		return nil, &apdu.ValidationError{Msg: "empty payload"}
	}
	if len(payload) > max {
		return nil, &apdu.ValidationError{
			Code: code,
			Msg:  fmt.Sprintf("payload is %d bytes, must be at most %d bytes", len(payload), max),
		}
	}
	return payload, nil
}

// parseTx decodes payload on the host when verification is enabled.
func (a *App) parseTx(payload []byte) (*cardano.Tx, error) {
	if !a.VerifyTx {
		return nil, nil
	}
	tx, err := cardano.ParseTx(payload)
	if err != nil {
		return nil, &apdu.ValidationError{Msg: err.Error()}
	}
	return tx, nil
}

func requireLen(ins apdu.InsCode, field string, body []byte, need int) error {
	if len(body) < need {
		return &apdu.DecodeError{Instruction: ins, Field: field, Need: need, Got: len(body)}
	}
	return nil
}
