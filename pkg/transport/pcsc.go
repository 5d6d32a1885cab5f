// Package transport connects the apdu client to a device: a PC/SC reader, or a recorded session.
package transport

import (
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
)

// Transmitter abstracts the physical card connection. *scard.Card satisfies it.
type Transmitter interface {
	Transmit(cmd []byte) ([]byte, error)
}

// RejectedError reports a response whose status word was not in the accepted set.
// The message ends with the status in hex.
type RejectedError struct {
	Status apdu.StatusWord
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("transport: status word rejected: %s", e.Status.Hex())
}

// PCSC adapts a Transmitter to apdu.Exchanger.
type PCSC struct {
	Card Transmitter
}

// NewPCSC creates a new PCSC exchanger over card.
func NewPCSC(card Transmitter) *PCSC {
	return &PCSC{Card: card}
}

// Exchange sends the hex command and returns the hex response, status trailer included.
func (p *PCSC) Exchange(commandHex string, accepted []apdu.StatusWord) (string, error) {
	rawCmd, err := hex.DecodeString(commandHex)
	if err != nil {
		return "", fmt.Errorf("encoding error: %w", err)
	}

	rawResp, err := p.Card.Transmit(rawCmd)
	if err != nil {
		return "", fmt.Errorf("transmit: %w", err)
	}

	if len(rawResp) < apdu.TrailerSize {
		return "", fmt.Errorf("response too short: length %d", len(rawResp))
	}

	sw := apdu.NewStatusWord(rawResp[len(rawResp)-2], rawResp[len(rawResp)-1])
	if !slices.Contains(accepted, sw) {
		return "", &RejectedError{Status: sw}
	}

	return hex.EncodeToString(rawResp), nil
}
