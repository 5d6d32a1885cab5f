package ada

import (
	"errors"
	"testing"

	"github.com/gregLibert/ledger-ada/pkg/cardano"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
)

func TestVerifySummary(t *testing.T) {
	tx, err := cardano.ParseTx(tlv.Hex(singleOutputTxHex))
	if err != nil {
		t.Fatalf("ParseTx failed: %v", err)
	}

	tests := []struct {
		name    string
		summary *TxSummary
		field   string
	}{
		{"Match", &TxSummary{1, 1, []TxOutput{{"AL91N9VXRTCy", 0x0037699E3EA6D064}}}, ""},
		{"Address text ignored", &TxSummary{1, 1, []TxOutput{{"????????????", 0x0037699E3EA6D064}}}, ""},
		{"Input count", &TxSummary{2, 1, nil}, "input count"},
		{"Output count", &TxSummary{1, 0, nil}, "output count"},
		{"Amount", &TxSummary{1, 1, []TxOutput{{"AL91N9VXRTCy", 1}}}, "output 0 amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySummary(tx, tt.summary)
			if tt.field == "" {
				if err != nil {
					t.Errorf("VerifySummary() = %v", err)
				}
				return
			}

			var me *MismatchError
			if !errors.As(err, &me) || me.Field != tt.field || !errors.Is(err, ErrMismatch) {
				t.Errorf("VerifySummary() = %v, want mismatch on %q", err, tt.field)
			}
		})
	}
}

func TestVerifyCborDecode(t *testing.T) {
	tx, err := cardano.ParseTx(tlv.Hex(singleOutputTxHex))
	if err != nil {
		t.Fatalf("ParseTx failed: %v", err)
	}

	ok := &CborDecodeResult{InputCount: 1, OutputCount: 1, Records: []CborOutputRecord{{0x6768CC86, 0x0037699E3EA6D064}}}
	if err := VerifyCborDecode(tx, ok); err != nil {
		t.Errorf("VerifyCborDecode() = %v", err)
	}

	bad := &CborDecodeResult{InputCount: 1, OutputCount: 1, Records: []CborOutputRecord{{0x6768CC87, 0x0037699E3EA6D064}}}
	if err := VerifyCborDecode(tx, bad); !errors.Is(err, ErrMismatch) {
		t.Errorf("VerifyCborDecode() = %v, want ErrMismatch", err)
	}

	missing := &CborDecodeResult{InputCount: 1, OutputCount: 1}
	if err := VerifyCborDecode(tx, missing); !errors.Is(err, ErrMismatch) {
		t.Errorf("VerifyCborDecode() = %v, want ErrMismatch", err)
	}
}

func TestVerifyBase58(t *testing.T) {
	if err := VerifyBase58([]byte{0, 1, 2, 3}, &Base58Result{Address: "1Ldp"}); err != nil {
		t.Errorf("VerifyBase58() = %v", err)
	}
	if err := VerifyBase58([]byte{0, 1, 2, 3}, &Base58Result{Address: "Ldp"}); !errors.Is(err, ErrMismatch) {
		t.Errorf("VerifyBase58() = %v, want ErrMismatch", err)
	}
}
