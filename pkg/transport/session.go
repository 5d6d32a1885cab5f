package transport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ebfe/scard"
)

// ErrNoReader is returned when no PC/SC reader matches the selection.
var ErrNoReader = errors.New("transport: no smart card reader found")

// Session holds an open PC/SC context and card connection.
type Session struct {
	Reader string
	ctx    *scard.Context
	card   *scard.Card
}

// Connect establishes a PC/SC context and connects to a reader. An empty name selects the
// first reader; otherwise the first reader whose name contains name is used.
func Connect(name string) (*Session, error) {
	ctx, err := scard.EstablishContext()
	if err != nil {
		return nil, fmt.Errorf("establishing context: %w", err)
	}

	readers, err := ctx.ListReaders()
	if err != nil {
		_ = ctx.Release()
		return nil, fmt.Errorf("listing readers: %w", err)
	}

	reader, err := selectReader(readers, name)
	if err != nil {
		_ = ctx.Release()
		return nil, err
	}

	// T=0 or T=1, to avoid "Parameter Incorrect" errors on some readers.
	card, err := ctx.Connect(reader, scard.ShareShared, scard.ProtocolT0|scard.ProtocolT1)
	if err != nil {
		_ = ctx.Release()
		return nil, fmt.Errorf("connecting to %s: %w", reader, err)
	}

	return &Session{Reader: reader, ctx: ctx, card: card}, nil
}

func selectReader(readers []string, name string) (string, error) {
	for _, r := range readers {
		if name == "" || strings.Contains(r, name) {
			return r, nil
		}
	}
	if name == "" {
		return "", ErrNoReader
	}
	return "", fmt.Errorf("%w: no reader matches %q", ErrNoReader, name)
}

// Card returns the connected card.
func (s *Session) Card() Transmitter {
	return s.card
}

// Close disconnects the card and releases the context.
func (s *Session) Close() error {
	return errors.Join(
		s.card.Disconnect(scard.LeaveCard),
		s.ctx.Release(),
	)
}
