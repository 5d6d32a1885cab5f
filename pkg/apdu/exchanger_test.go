package apdu

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// scriptedDevice replays canned responses in order and records every command it receives.
type scriptedDevice struct {
	responses []string
	errs      []error
	commands  []string
	accepted  [][]StatusWord
}

func (d *scriptedDevice) Exchange(commandHex string, accepted []StatusWord) (string, error) {
	i := len(d.commands)
	d.commands = append(d.commands, commandHex)
	d.accepted = append(d.accepted, accepted)

	if i < len(d.errs) && d.errs[i] != nil {
		return "", d.errs[i]
	}
	if i >= len(d.responses) {
		return "", errors.New("scripted device: no response left")
	}
	return d.responses[i], nil
}

func (d *scriptedDevice) decoded(i int) *CommandAPDU {
	raw, err := hex.DecodeString(d.commands[i])
	if err != nil {
		panic(fmt.Sprintf("recorded command %d is not hex: %v", i, err))
	}
	cmd, err := ParseCommandAPDU(raw)
	if err != nil {
		panic(fmt.Sprintf("recorded command %d does not parse: %v", i, err))
	}
	return cmd
}
