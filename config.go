package main

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Operations selectable from the config file or the -op flag.
const (
	opAppInfo   = "app-info"
	opPublicKey = "public-key"
	opRootKey   = "root-key"
	opSetTx     = "set-tx"
	opSign      = "sign"
	opSignTx    = "sign-tx"
	opBase58    = "base58"
	opCbor      = "cbor"
	opHash      = "hash"
)

var operations = []string{opAppInfo, opPublicKey, opRootKey, opSetTx, opSign, opSignTx, opBase58, opCbor, opHash}

// config drives one run of the tool.
type config struct {
	Reader    string
	LogLevel  slog.Level
	Record    string
	Replay    string
	Operation string
	Index     string
	Indexes   []string
	Payload   string
	Verify    bool
	Metrics   bool
}

type fileConfig struct {
	Reader    string   `toml:"reader"`
	LogLevel  string   `toml:"log_level"`
	Record    string   `toml:"record"`
	Replay    string   `toml:"replay"`
	Operation string   `toml:"operation"`
	Index     string   `toml:"index"`
	Indexes   []string `toml:"indexes"`
	Payload   string   `toml:"payload"`
	Verify    bool     `toml:"verify"`
	Metrics   bool     `toml:"metrics"`
}

func defaultConfig() config {
	return config{
		LogLevel:  slog.LevelInfo,
		Operation: opAppInfo,
		Index:     "0",
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("reader") {
		cfg.Reader = strings.TrimSpace(raw.Reader)
	}

	if meta.IsDefined("log_level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(raw.LogLevel))); err != nil {
			return config{}, fmt.Errorf("parse log_level: %w", err)
		}
	}

	if meta.IsDefined("record") {
		cfg.Record = strings.TrimSpace(raw.Record)
	}

	if meta.IsDefined("replay") {
		cfg.Replay = strings.TrimSpace(raw.Replay)
	}

	if meta.IsDefined("operation") {
		cfg.Operation = strings.TrimSpace(raw.Operation)
	}

	if meta.IsDefined("index") {
		cfg.Index = strings.TrimSpace(raw.Index)
	}

	if meta.IsDefined("indexes") {
		cfg.Indexes = raw.Indexes
	}

	if meta.IsDefined("payload") {
		cfg.Payload = strings.Join(strings.Fields(raw.Payload), "")
	}

	cfg.Verify = raw.Verify
	cfg.Metrics = raw.Metrics

	return cfg, cfg.validate()
}

func (c config) validate() error {
	if !slices.Contains(operations, c.Operation) {
		return fmt.Errorf("unknown operation %q (want one of %s)", c.Operation, strings.Join(operations, ", "))
	}
	if c.Record != "" && c.Replay != "" {
		return errors.New("record and replay are mutually exclusive")
	}
	return nil
}
