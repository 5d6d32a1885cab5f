package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/gregLibert/ledger-ada/pkg/ada"
	"github.com/gregLibert/ledger-ada/pkg/apdu"
	"github.com/gregLibert/ledger-ada/pkg/cardano"
	"github.com/gregLibert/ledger-ada/pkg/tlv"
	"github.com/gregLibert/ledger-ada/pkg/transport"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	op := flag.String("op", "", "operation to run, overrides the config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *op != "" {
		cfg.Operation = *op
		if err := cfg.validate(); err != nil {
			log.Fatalf("Error: %v", err)
		}
	}

	os.Exit(execute(cfg))
}

func execute(cfg config) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	// --- 1. Device Setup ---
	card, closeCard, err := openCard(cfg)
	if err != nil {
		log.Printf("Error opening device: %v", err)
		return 1
	}
	defer func() {
		if err := closeCard(); err != nil {
			log.Printf("Warning: Failed to close device: %v", err)
		}
	}()

	// --- 2. Logic Setup ---
	reg := prometheus.NewRegistry()

	client := apdu.NewClient(transport.NewPCSC(card))
	client.Logger = logger
	client.Metrics = apdu.NewMetrics(reg)

	app := ada.NewApp(client)
	app.VerifyTx = cfg.Verify

	// --- 3. Execution ---
	fmt.Printf(">> Operation: %s\n", cfg.Operation)

	report, err := run(app, cfg)
	if cfg.Metrics {
		dumpMetrics(reg)
	}
	if err != nil {
		fmt.Printf("\n>> Failed: %s\n", apdu.Classify(err))
		logger.Error("operation failed", "operation", cfg.Operation, "error", err)
		return 1
	}

	fmt.Println(report)
	return 0
}

// openCard returns the card to talk to and the function releasing it.
func openCard(cfg config) (transport.Transmitter, func() error, error) {
	if cfg.Replay != "" {
		f, err := os.Open(cfg.Replay)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()

		replayer, err := transport.ReadReplayer(f)
		if err != nil {
			return nil, nil, err
		}
		fmt.Printf(">> Replaying session: %s\n", cfg.Replay)
		return replayer, func() error { return nil }, nil
	}

	session, err := transport.Connect(cfg.Reader)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf(">> Using reader: %s\n", session.Reader)

	if cfg.Record == "" {
		return session.Card(), session.Close, nil
	}

	rec := &transport.Recorder{Card: session.Card()}
	closeAll := func() error {
		if err := writeSession(cfg.Record, rec); err != nil {
			log.Printf("Warning: Failed to record session: %v", err)
		}
		return session.Close()
	}
	return rec, closeAll, nil
}

func writeSession(path string, rec *transport.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := rec.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// run executes the selected operation and returns its report.
func run(app *ada.App, cfg config) (string, error) {
	switch cfg.Operation {
	case opAppInfo:
		v, err := app.AppInfo()
		if err != nil {
			return "", err
		}
		return v.Describe(), nil

	case opPublicKey:
		index, err := ada.ParseIndex(cfg.Index)
		if err != nil {
			return "", err
		}
		pk, err := app.PublicKey(index)
		if err != nil {
			return "", err
		}
		return pk.Describe(), nil

	case opRootKey:
		pk, err := app.RootPublicKey()
		if err != nil {
			return "", err
		}
		return pk.Describe(), nil

	case opSetTx:
		res, err := app.SetTransaction(cfg.Payload)
		if err != nil {
			return "", err
		}
		return res.Describe(), nil

	case opSign, opSignTx:
		indexes, err := ada.ParseIndexes(cfg.Indexes)
		if err != nil {
			return "", err
		}
		var sigs []ada.Signature
		if cfg.Operation == opSign {
			sigs, err = app.SignWithIndexes(indexes)
		} else {
			sigs, err = app.SignTransaction(cfg.Payload, indexes)
		}
		if err != nil {
			return "", err
		}
		reports := make([]string, len(sigs))
		for i, s := range sigs {
			reports[i] = s.Describe()
		}
		return strings.Join(reports, "\n"), nil

	case opBase58:
		return runBase58(app, cfg)

	case opCbor:
		return runCborDecode(app, cfg)

	case opHash:
		res, err := app.Diagnostics().Hash(cfg.Payload)
		if err != nil {
			return "", err
		}
		return res.Describe(), nil
	}

	return "", fmt.Errorf("unknown operation %q", cfg.Operation)
}

func runBase58(app *ada.App, cfg config) (string, error) {
	res, err := app.Diagnostics().Base58Encode(cfg.Payload)
	if err != nil {
		return "", err
	}
	if cfg.Verify {
		payload, err := tlv.ParseHex(cfg.Payload)
		if err != nil {
			return "", err
		}
		if err := ada.VerifyBase58(payload, res); err != nil {
			return "", err
		}
	}
	return res.Describe(), nil
}

func runCborDecode(app *ada.App, cfg config) (string, error) {
	res, err := app.Diagnostics().CborDecode(cfg.Payload)
	if err != nil {
		return "", err
	}
	if cfg.Verify {
		payload, err := tlv.ParseHex(cfg.Payload)
		if err != nil {
			return "", err
		}
		tx, err := cardano.ParseTx(payload)
		if err != nil {
			return "", err
		}
		if err := ada.VerifyCborDecode(tx, res); err != nil {
			return "", err
		}
	}
	return res.Describe(), nil
}

func dumpMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		log.Printf("Warning: Failed to gather metrics: %v", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			log.Printf("Warning: Failed to write metrics: %v", err)
			return
		}
	}
}
