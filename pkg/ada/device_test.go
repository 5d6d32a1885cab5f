package ada

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/gregLibert/ledger-ada/pkg/apdu"
)

// fakeDevice answers with canned responses in order and records every command.
type fakeDevice struct {
	responses []string
	errs      []error
	commands  []string
}

func (d *fakeDevice) Exchange(commandHex string, _ []apdu.StatusWord) (string, error) {
	i := len(d.commands)
	d.commands = append(d.commands, commandHex)

	if i < len(d.errs) && d.errs[i] != nil {
		return "", d.errs[i]
	}
	if i >= len(d.responses) {
		return "", errors.New("fake device: no response left")
	}
	return d.responses[i], nil
}

func (d *fakeDevice) command(i int) *apdu.CommandAPDU {
	raw, err := hex.DecodeString(d.commands[i])
	if err != nil {
		panic(fmt.Sprintf("command %d is not hex: %v", i, err))
	}
	cmd, err := apdu.ParseCommandAPDU(raw)
	if err != nil {
		panic(fmt.Sprintf("command %d does not parse: %v", i, err))
	}
	return cmd
}

func newTestApp(responses ...string) (*App, *fakeDevice) {
	dev := &fakeDevice{responses: responses}
	return NewApp(apdu.NewClient(dev)), dev
}

// singleOutputTxHex is a Byron transaction with one input and one output of 0x0037699E3EA6D064.
const singleOutputTxHex = "839f8200d8185826825820e981442c2be40475bb42193ca35907861d90715854de6fcba767b98f1789b5" +
	"1219439aff9f8282d818584a83581ce7fe8e468d2249f18cd7bf9aec0d4374b7d3e18609ede8589f82f7f0a2005820820058" +
	"1c240596b9b63fc010c06fbe92cf6f820587406534795958c411e662dc014443c0688e001a6768cc861b0037699e3ea6d064ffa0"

// singleOutputSummary is the device summary of singleOutputTxHex.
const singleOutputSummary = "0101" + "414c39314e39565852544379" + "64d0a63e9e693700" + "9000"
