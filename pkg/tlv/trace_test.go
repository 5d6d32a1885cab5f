package tlv

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExchangesRoundTrip(t *testing.T) {
	log := []Exchange{
		{Command: Hex("80 04 00 00 00000000"), Response: Hex("01 00 03 9000")},
		{Command: Hex("80 08 00 00 00000001 AB"), Err: "Invalid status 6d00"},
	}

	data, err := EncodeExchanges(log)
	if err != nil {
		t.Fatalf("EncodeExchanges failed: %v", err)
	}

	got, err := DecodeExchanges(data)
	if err != nil {
		t.Fatalf("DecodeExchanges failed: %v", err)
	}

	if diff := cmp.Diff(log, got); diff != "" {
		t.Errorf("Round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeExchanges_Layout(t *testing.T) {
	data, err := EncodeExchanges([]Exchange{{Command: Hex("80 04"), Response: Hex("9000")}})
	if err != nil {
		t.Fatalf("EncodeExchanges failed: %v", err)
	}

	want := Hex("E1 08", "80 02 8004", "81 02 9000")
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("Layout mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeExchanges_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"Truncated", Hex("E1 08 80 02")},
		{"Foreign tag", Hex("6F 02 84 00")},
		{"Missing command", Hex("E1 04 81 02 9000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeExchanges(tt.data); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if _, err := EncodeExchanges([]Exchange{{}}); err == nil {
		t.Error("expected an error for an empty command")
	}
}
