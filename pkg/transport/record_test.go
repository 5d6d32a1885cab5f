package transport

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gregLibert/ledger-ada/pkg/ada"
	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

func TestRecorder_Replay(t *testing.T) {
	card := &fakeCard{
		responses: [][]byte{tlv.Hex("010204 9000"), nil},
		errs:      []error{nil, errors.New("scard: card removed")},
	}
	rec := &Recorder{Card: card}

	app := ada.NewApp(apdu.NewClient(NewPCSC(rec)))
	if _, err := app.AppInfo(); err != nil {
		t.Fatalf("AppInfo failed: %v", err)
	}
	if _, err := app.AppInfo(); err == nil {
		t.Fatal("second AppInfo should fail")
	}

	var buf bytes.Buffer
	if _, err := rec.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	replayer, err := ReadReplayer(&buf)
	if err != nil {
		t.Fatalf("ReadReplayer failed: %v", err)
	}
	if replayer.Remaining() != 2 {
		t.Fatalf("Remaining() = %d, want 2", replayer.Remaining())
	}

	replayed := ada.NewApp(apdu.NewClient(NewPCSC(replayer)))
	v, err := replayed.AppInfo()
	if err != nil {
		t.Fatalf("replayed AppInfo failed: %v", err)
	}
	if diff := cmp.Diff(&ada.AppVersion{Major: 1, Minor: 2, Patch: 4}, v); diff != "" {
		t.Errorf("version mismatch (-want +got):\n%s", diff)
	}

	_, err = replayed.AppInfo()
	if !errors.Is(err, apdu.ErrTransport) || err.Error() != "transmission error (INS_APP_INFO): transmit: scard: card removed" {
		t.Errorf("replayed failure = %v", err)
	}

	if _, err := replayed.AppInfo(); !errors.Is(err, ErrSessionExhausted) {
		t.Errorf("error = %v, want ErrSessionExhausted", err)
	}
}

func TestReplayer_CommandMismatch(t *testing.T) {
	replayer := NewReplayer([]tlv.Exchange{{
		Command:  tlv.Hex("80 04 00 00 00000000"),
		Response: tlv.Hex("010204 9000"),
	}})

	_, err := replayer.Transmit(tlv.Hex("80 01 01 00 00000000"))
	if !errors.Is(err, ErrCommandMismatch) {
		t.Errorf("error = %v, want ErrCommandMismatch", err)
	}
}

func TestReadReplayer_Malformed(t *testing.T) {
	if _, err := ReadReplayer(bytes.NewReader(tlv.Hex("E1 02 81 00"))); err == nil {
		t.Error("a session without command should be rejected")
	}
}
