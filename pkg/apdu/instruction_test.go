package apdu

import "testing"

func TestNewInstruction(t *testing.T) {
	tests := []struct {
		ins        byte
		wantErr    bool
		diagnostic bool
		chunked    bool
	}{
		{0x01, false, false, false},
		{0x02, false, false, true},
		{0x03, false, false, false},
		{0x04, false, false, false},
		{0x05, true, false, false},
		{0x07, false, true, true},
		{0x08, false, true, false},
		{0x09, false, true, true},
		{0xA4, true, false, false},
	}

	for _, tt := range tests {
		code, err := NewInstruction(tt.ins)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewInstruction(0x%02X) error = %v, wantErr %v", tt.ins, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if code.IsDiagnostic() != tt.diagnostic || code.IsChunked() != tt.chunked {
			t.Errorf("%s: diagnostic=%t chunked=%t", code.Verbose(), code.IsDiagnostic(), code.IsChunked())
		}
	}
}

func TestInsCode_String(t *testing.T) {
	if got := INS_SIGN_TX.String(); got != "INS_SIGN_TX" {
		t.Errorf("String() = %q", got)
	}
	if got := InsCode(0x42).String(); got != "InsCode(0x42)" {
		t.Errorf("String() = %q", got)
	}
	if got := INS_CBOR_DECODE_TEST.Verbose(); got != "INS: 0x09 | Command: INS_CBOR_DECODE_TEST | Build: Diagnostic" {
		t.Errorf("Verbose() = %q", got)
	}
}
