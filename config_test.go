package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger-ada.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
reader = " Ledger "
log_level = "debug"
record = "session.tlv"
operation = "sign-tx"
indexes = ["0", "0xF005BA11"]
payload = """
839f8200
d8185826
"""
verify = true
metrics = true
`)

	got, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}

	want := config{
		Reader:    "Ledger",
		LogLevel:  slog.LevelDebug,
		Record:    "session.tlv",
		Operation: opSignTx,
		Index:     "0",
		Indexes:   []string{"0", "0xF005BA11"},
		Payload:   "839f8200d8185826",
		Verify:    true,
		Metrics:   true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	got, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Unknown operation", `operation = "format-disk"`},
		{"Unknown key", `reader_name = "Ledger"`},
		{"Bad log level", `log_level = "loud"`},
		{"Record and replay", "record = \"a.tlv\"\nreplay = \"b.tlv\""},
		{"Not TOML", `operation = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
