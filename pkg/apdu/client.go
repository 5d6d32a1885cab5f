package apdu

import (
	"log/slog"
)

// CLIENT & TRANSPORT CONTRACT:
// The device is strictly serial. The Client issues one exchange at a time and waits for it to
// complete before building the next one. A chunked transfer stops at the first failing frame and
// returns that failure; frames already sent are neither retried nor rolled back.

// Exchanger is the transport collaborator. It sends a hex-encoded command and returns the
// hex-encoded response, status trailer included. It must fail when the device reports a status
// word outside accepted, or when the link itself fails.
type Exchanger interface {
	Exchange(commandHex string, accepted []StatusWord) (string, error)
}

// Client manages the communication with the Cardano application.
type Client struct {
	Device  Exchanger
	Logger  *slog.Logger
	Metrics *Metrics
}

// NewClient creates a new Client instance with logging disabled.
func NewClient(device Exchanger) *Client {
	return &Client{
		Device: device,
		Logger: slog.New(slog.DiscardHandler),
	}
}

var acceptedStatus = []StatusWord{SW_NO_ERROR}

// Send transmits one command and checks its status trailer.
func (c *Client) Send(cmd *CommandAPDU) (Transaction, error) {
	tx := Transaction{Command: cmd}
	commandHex := cmd.Hex()

	c.logger().Debug("apdu exchange", "command", cmd.String(), "hex", commandHex)

	responseHex, err := c.Device.Exchange(commandHex, acceptedStatus)
	if err != nil {
		c.Metrics.observeExchange(cmd.Instruction, ClassifyMessage(err.Error()))
		c.logger().Debug("apdu exchange failed", "ins", cmd.Instruction.String(), "error", err)
		return tx, &TransportError{Instruction: cmd.Instruction, Err: err}
	}

	resp, err := ParseResponseHex(responseHex)
	if err != nil {
		c.Metrics.observeExchange(cmd.Instruction, Classification{})
		if de, ok := err.(*DecodeError); ok {
			de.Instruction = cmd.Instruction
		}
		return tx, err
	}
	tx.Response = resp

	c.Metrics.observeExchange(cmd.Instruction, Classification{Status: resp.Status, HasStatus: true, Category: resp.Status.Category()})
	c.logger().Debug("apdu response", "ins", cmd.Instruction.String(), "status", resp.Status.Hex(), "data", len(resp.Data))

	if !resp.Status.IsSuccess() {
		return tx, &StatusError{Instruction: cmd.Instruction, Status: resp.Status}
	}

	return tx, nil
}

// SendAll transmits commands in order and stops at the first failure.
// The returned trace holds every transaction attempted, the failing one included.
func (c *Client) SendAll(cmds []*CommandAPDU) (Trace, error) {
	trace := make(Trace, 0, len(cmds))

	for _, cmd := range cmds {
		tx, err := c.Send(cmd)
		trace = append(trace, tx)
		if err != nil {
			return trace, err
		}
	}

	return trace, nil
}

// Transfer sends payload through a chunked instruction and returns the per-frame trace.
// The structured result, if any, is the body of trace.Last().
func (c *Client) Transfer(ins InsCode, payload []byte) (Trace, error) {
	if len(payload) == 0 {
		return nil, &ValidationError{Msg: "empty payload"}
	}

	cmds := ChunkCommands(ins, payload)
	c.logger().Debug("apdu transfer", "ins", ins.String(), "bytes", len(payload), "frames", len(cmds))

	trace, err := c.SendAll(cmds)
	c.Metrics.observeTransfer(ins, len(trace))
	return trace, err
}

func (c *Client) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
