package transport

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

// ErrSessionExhausted is returned when a replay runs past the recorded exchanges.
var ErrSessionExhausted = errors.New("transport: recorded session exhausted")

// ErrCommandMismatch is returned when a replayed command differs from the recorded one.
var ErrCommandMismatch = errors.New("transport: command differs from recording")

// Recorder wraps a Transmitter and logs every exchange, failures included.
type Recorder struct {
	Card      Transmitter
	Exchanges []tlv.Exchange
}

// Transmit forwards cmd to the wrapped card and records the outcome.
func (r *Recorder) Transmit(cmd []byte) ([]byte, error) {
	resp, err := r.Card.Transmit(cmd)

	ex := tlv.Exchange{Command: bytes.Clone(cmd), Response: bytes.Clone(resp)}
	if err != nil {
		ex.Err = err.Error()
	}
	r.Exchanges = append(r.Exchanges, ex)

	return resp, err
}

// WriteTo writes the recorded session in the BER-TLV exchange log format.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	data, err := tlv.EncodeExchanges(r.Exchanges)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}

// Replayer serves a recorded session in order, acting as the card.
type Replayer struct {
	exchanges []tlv.Exchange
	next      int
}

// NewReplayer creates a Replayer over exchanges.
func NewReplayer(exchanges []tlv.Exchange) *Replayer {
	return &Replayer{exchanges: exchanges}
}

// ReadReplayer loads a session written by Recorder.WriteTo.
func ReadReplayer(r io.Reader) (*Replayer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	exchanges, err := tlv.DecodeExchanges(data)
	if err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return NewReplayer(exchanges), nil
}

// Transmit returns the recorded response of the next exchange after checking cmd against it.
func (r *Replayer) Transmit(cmd []byte) ([]byte, error) {
	if r.next >= len(r.exchanges) {
		return nil, ErrSessionExhausted
	}

	ex := r.exchanges[r.next]
	r.next++

	if !bytes.Equal(cmd, ex.Command) {
		return nil, fmt.Errorf("%w: exchange %d: sent %X, recorded %X", ErrCommandMismatch, r.next-1, cmd, ex.Command)
	}
	if ex.Err != "" {
		return nil, errors.New(ex.Err)
	}
	return bytes.Clone(ex.Response), nil
}

// Remaining reports how many recorded exchanges have not been replayed.
func (r *Replayer) Remaining() int {
	return len(r.exchanges) - r.next
}
