// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/infrastructure/config"
	"github.com/donatenet/donated/version"
)

const (
	noHeight        = -1
	defaultLogLevel = "info"
)

// configFlags defines the configuration options for checkpoints.
type configFlags struct {
	Height      int32  `long:"height" description:"Height of the block to check against the checkpoints"`
	Hash        string `long:"hash" description:"Hash of the block to check against the checkpoints"`
	Time        int64  `long:"time" description:"Unix time to estimate the chain height at"`
	UseGoOutput bool   `short:"g" long:"gooutput" description:"Display the checkpoints using Go syntax that is ready to insert into the chaincfg checkpoint list"`
	LogLevel    string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
	ShowVersion bool   `short:"V" long:"version" description:"Display version information and exit"`
	config.NetworkFlags

	hash *chainhash.Hash
}

// loadConfig initializes and parses the config using command line options.
func loadConfig(args []string) (*configFlags, error) {
	cfg := &configFlags{Height: noHeight, LogLevel: defaultLogLevel}

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

	err = cfg.validate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return nil, err
	}
	return cfg, nil
}

func (cfg *configFlags) validate() error {
	funcName := "loadConfig"
	if (cfg.Height == noHeight) != (cfg.Hash == "") {
		return errors.Errorf("%s: --height and --hash must be given together", funcName)
	}
	if cfg.Height < noHeight {
		return errors.Errorf("%s: the specified height is negative -- parsed [%d]", funcName, cfg.Height)
	}
	if cfg.Hash != "" {
		hash, err := chainhash.NewHashFromStr(cfg.Hash)
		if err != nil {
			return errors.Wrapf(err, "%s: the specified hash is invalid", funcName)
		}
		cfg.hash = hash
	}
	if cfg.Time < 0 {
		return errors.Errorf("%s: the specified time is negative -- parsed [%d]", funcName, cfg.Time)
	}
	return nil
}
