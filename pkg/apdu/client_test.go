package apdu

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestClient_Send(t *testing.T) {
	dev := &scriptedDevice{responses: []string{"0100039000"}}
	client := NewClient(dev)

	tx, err := client.Send(NewCommandAPDU(INS_APP_INFO, 0x00, 0x00, nil))
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if dev.commands[0] != "8004000000000000" {
		t.Errorf("command hex = %s", dev.commands[0])
	}
	if len(dev.accepted[0]) != 1 || dev.accepted[0][0] != SW_NO_ERROR {
		t.Errorf("accepted = %v, want only 9000", dev.accepted[0])
	}
	if !tx.IsSuccess() || len(tx.Response.Data) != 3 {
		t.Errorf("unexpected transaction: %s", tx.Response)
	}
}

func TestClient_Send_Failures(t *testing.T) {
	linkErr := errors.New("hid: device disconnected")

	tests := []struct {
		name     string
		dev      *scriptedDevice
		sentinel error
	}{
		{"Transport error", &scriptedDevice{errs: []error{linkErr}}, ErrTransport},
		{"Non-success trailer", &scriptedDevice{responses: []string{"6e00"}}, ErrStatus},
		{"Response without trailer", &scriptedDevice{responses: []string{"90"}}, ErrDecode},
		{"Response not hex", &scriptedDevice{responses: []string{"nothex"}}, ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.dev).Send(NewCommandAPDU(INS_APP_INFO, 0, 0, nil))
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("Send() error = %v, want %v", err, tt.sentinel)
			}
		})
	}

	_, err := NewClient(&scriptedDevice{errs: []error{linkErr}}).Send(NewCommandAPDU(INS_APP_INFO, 0, 0, nil))
	if !errors.Is(err, linkErr) {
		t.Errorf("transport cause lost: %v", err)
	}
}

func TestClient_Transfer_Sequential(t *testing.T) {
	payload := payloadOf(2*MaxChunkSize + 10)
	dev := &scriptedDevice{responses: []string{"9000", "9000", "01020304059000"}}

	trace, err := NewClient(dev).Transfer(INS_SET_TX, payload)
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if len(dev.commands) != 3 || len(trace) != 3 {
		t.Fatalf("sent %d commands, trace %d, want 3", len(dev.commands), len(trace))
	}

	offset := 0
	for i := range dev.commands {
		cmd := dev.decoded(i)
		if string(cmd.Data) != string(payload[offset:offset+len(cmd.Data)]) {
			t.Errorf("frame %d carries the wrong slice", i)
		}
		offset += len(cmd.Data)
	}

	if !trace.IsSuccess() {
		t.Error("trace should be successful")
	}
	if got := trace.FinalData(); len(got) != 5 {
		t.Errorf("FinalData() = %X", got)
	}
}

func TestClient_Transfer_AbortsOnFirstFailure(t *testing.T) {
	payload := payloadOf(3 * MaxChunkSize)
	dev := &scriptedDevice{responses: []string{"9000", "6a80", "9000"}}

	trace, err := NewClient(dev).Transfer(INS_SET_TX, payload)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != SW_ERR_INCORRECT_DATA {
		t.Fatalf("Transfer() error = %v, want status 6A80", err)
	}
	if len(dev.commands) != 2 {
		t.Errorf("sent %d commands after failure, want 2", len(dev.commands))
	}
	if len(trace) != 2 || trace.IsSuccess() {
		t.Errorf("trace should hold the 2 attempted frames and fail")
	}
}

func TestClient_Transfer_EmptyPayload(t *testing.T) {
	dev := &scriptedDevice{}
	_, err := NewClient(dev).Transfer(INS_SET_TX, nil)

	if !errors.Is(err, ErrValidation) {
		t.Errorf("Transfer(nil) error = %v, want ErrValidation", err)
	}
	if len(dev.commands) != 0 {
		t.Error("validation failure must not reach the transport")
	}
}

func TestClient_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client := NewClient(&scriptedDevice{responses: []string{"9000", "9000"}})
	client.Metrics = NewMetrics(reg)

	if _, err := client.Transfer(INS_SET_TX, payloadOf(MaxChunkSize+1)); err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}

	if got := testutil.ToFloat64(client.Metrics.Exchanges.WithLabelValues("INS_SET_TX", "9000")); got != 2 {
		t.Errorf("exchange counter = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(client.Metrics.Frames); got != 1 {
		t.Errorf("frames histogram series = %d, want 1", got)
	}
}
