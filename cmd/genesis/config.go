// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/domain/chaincfg"
	"github.com/donatenet/donated/domain/genesis"
	"github.com/donatenet/donated/infrastructure/config"
	"github.com/donatenet/donated/version"
)

const defaultLogLevel = "info"

// configFlags defines the configuration options for genesis.
type configFlags struct {
	Mine             bool   `long:"mine" description:"Search for a new genesis block instead of printing the network's one"`
	Message          string `long:"message" description:"Coinbase message of the mined block (defaults to the network's)"`
	Time             int64  `long:"time" description:"Unix timestamp of the mined block (defaults to now)"`
	Bits             string `long:"bits" description:"Compact target of the mined block in hex (defaults to the network's genesis bits)"`
	Nonce            uint32 `long:"nonce" description:"Nonce to start searching from"`
	ProgressInterval uint32 `long:"progress-interval" description:"Report the search every this many nonces"`
	LogLevel         string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	ShowVersion      bool   `short:"V" long:"version" description:"Display version information and exit"`
	config.NetworkFlags
}

// loadConfig initializes and parses the config using command line options.
func loadConfig(args []string) (*configFlags, error) {
	cfg := &configFlags{
		LogLevel:         defaultLogLevel,
		ProgressInterval: genesis.DefaultProgressInterval,
	}

	parser := flags.NewParser(cfg, flags.Default)
	_, err := parser.ParseArgs(args)
	if err != nil {
		if e, ok := err.(*flags.Error); !ok || e.Type != flags.ErrHelp {
			parser.WriteHelp(os.Stderr)
		}
		return nil, err
	}

	// Show the version and exit if the version flag was specified.
	if cfg.ShowVersion {
		appName := filepath.Base(os.Args[0])
		appName = strings.TrimSuffix(appName, filepath.Ext(appName))
		fmt.Println(appName, "version", version.Version())
		os.Exit(0)
	}

	err = cfg.ResolveNetwork(parser)
	if err != nil {
		return nil, err
	}

	if !cfg.Mine && (cfg.Message != "" || cfg.Time != 0 || cfg.Bits != "" || cfg.Nonce != 0) {
		err := errors.New("--message, --time, --bits and --nonce require --mine")
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}
	return cfg, nil
}

// genesisSpec returns the description of the block to mine, filling unset
// options from the genesis block of params.
func (cfg *configFlags) genesisSpec(params *chaincfg.Params, now time.Time) (*genesis.Spec, error) {
	header := &params.GenesisBlock.Header
	coinbase := params.GenesisBlock.Transactions[0]

	outputPubKey, err := payToPubKeyKey(coinbase.TxOut[0].PkScript)
	if err != nil {
		return nil, err
	}

	spec := &genesis.Spec{
		Version:      header.Version,
		Message:      cfg.Message,
		OutputPubKey: outputPubKey,
		Subsidy:      coinbase.TxOut[0].Value,
		Timestamp:    now,
		Bits:         header.Bits,
		Nonce:        cfg.Nonce,
	}
	if spec.Message == "" {
		spec.Message, err = coinbaseMessage(coinbase.TxIn[0].SignatureScript)
		if err != nil {
			return nil, err
		}
	}
	if cfg.Time != 0 {
		spec.Timestamp = time.Unix(cfg.Time, 0)
	}
	if cfg.Bits != "" {
		spec.Bits, err = parseBits(cfg.Bits)
		if err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// parseBits parses a compact target given in hex, with or without a 0x
// prefix.
func parseBits(s string) (uint32, error) {
	if len(s) > 2 && (s[:2] == "0x" || s[:2] == "0X") {
		s = s[2:]
	}
	bits, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid bits %q", s)
	}
	return uint32(bits), nil
}
