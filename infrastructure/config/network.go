package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/domain/chaincfg"
)

// NetworkFlags holds the network configuration, that is which network is selected.
type NetworkFlags struct {
	Network            string `long:"network" description:"Network to use {main, test, regtest, unittest}"`
	Testnet            bool   `long:"testnet" description:"Use the test network"`
	Regtest            bool   `long:"regtest" description:"Use the regression test network"`
	Unittest           bool   `long:"unittest" description:"Use the unit test network"`
	OverrideParamsFile string `long:"override-params-file" description:"Overrides network params (allowed only on unittest)"`

	ActiveNetParams *chaincfg.Params
}

type overrideParamsConfig struct {
	SubsidyHalvingInterval      *int32 `json:"subsidyHalvingInterval"`
	EnforceBlockUpgradeMajority *int32 `json:"enforceBlockUpgradeMajority"`
	RejectBlockOutdatedMajority *int32 `json:"rejectBlockOutdatedMajority"`
	ToCheckBlockUpgradeMajority *int32 `json:"toCheckBlockUpgradeMajority"`
	DefaultConsistencyChecks    *bool  `json:"defaultConsistencyChecks"`
	AllowMinDifficultyBlocks    *bool  `json:"allowMinDifficultyBlocks"`
	SkipProofOfWorkCheck        *bool  `json:"skipProofOfWorkCheck"`
}

// ResolveNetwork parses the network command line arguments, selects the
// network on the package level chaincfg registry and sets ActiveNetParams
// accordingly. It returns an error if more than one network was selected.
func (networkFlags *NetworkFlags) ResolveNetwork(parser *flags.Parser) error {
	return networkFlags.resolveNetwork(parser, chaincfg.DefaultRegistry())
}

func (networkFlags *NetworkFlags) resolveNetwork(parser *flags.Parser, registry *chaincfg.Registry) error {
	// Default net is main net.
	network := chaincfg.MainNet
	// Multiple networks can't be selected simultaneously.
	numNets := 0

	if networkFlags.Network != "" {
		parsed, err := chaincfg.ParseNetwork(networkFlags.Network)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			parser.WriteHelp(os.Stderr)
			return err
		}
		numNets++
		network = parsed
	}
	if networkFlags.Testnet {
		numNets++
		network = chaincfg.TestNet
	}
	if networkFlags.Regtest {
		numNets++
		network = chaincfg.RegTest
	}
	if networkFlags.Unittest {
		numNets++
		network = chaincfg.UnitTest
	}
	if numNets > 1 {
		message := "Multiple networks parameters (network, testnet, regtest, unittest) cannot be used " +
			"together. Please choose only one network"
		err := errors.New(message)
		fmt.Fprintln(os.Stderr, err)
		parser.WriteHelp(os.Stderr)
		return err
	}

	// The override file is checked before selecting so a rejected file
	// leaves no network selected.
	overrides, err := networkFlags.loadOverrideParams(network)
	if err != nil {
		return err
	}

	err = registry.Select(network)
	if err != nil {
		return err
	}
	networkFlags.ActiveNetParams, err = registry.Active()
	if err != nil {
		return err
	}

	return overrides.apply(registry)
}

// NetParams returns the ActiveNetParams
func (networkFlags *NetworkFlags) NetParams() *chaincfg.Params {
	return networkFlags.ActiveNetParams
}

// loadOverrideParams reads the override file, if any. It returns nil when
// no file was given.
func (networkFlags *NetworkFlags) loadOverrideParams(network chaincfg.Network) (*overrideParamsConfig, error) {
	if networkFlags.OverrideParamsFile == "" {
		return nil, nil
	}
	if network != chaincfg.UnitTest {
		return nil, errors.Wrapf(chaincfg.ErrNotUnitTest,
			"override-params-file is allowed only when using unittest, got %s", network)
	}

	overrideParamsFile, err := os.Open(networkFlags.OverrideParamsFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer overrideParamsFile.Close()

	decoder := json.NewDecoder(overrideParamsFile)
	decoder.DisallowUnknownFields()
	config := &overrideParamsConfig{}
	err = decoder.Decode(config)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", networkFlags.OverrideParamsFile)
	}
	return config, nil
}

// apply sets the fields present in config on the active unit test network.
func (config *overrideParamsConfig) apply(registry *chaincfg.Registry) error {
	if config == nil {
		return nil
	}

	modifiable, err := registry.ModifiableParams()
	if err != nil {
		return errors.Wrap(err, "override-params-file is allowed only when using unittest")
	}

	if config.SubsidyHalvingInterval != nil {
		modifiable.SetSubsidyHalvingInterval(*config.SubsidyHalvingInterval)
	}

	if config.EnforceBlockUpgradeMajority != nil {
		modifiable.SetEnforceBlockUpgradeMajority(*config.EnforceBlockUpgradeMajority)
	}

	if config.RejectBlockOutdatedMajority != nil {
		modifiable.SetRejectBlockOutdatedMajority(*config.RejectBlockOutdatedMajority)
	}

	if config.ToCheckBlockUpgradeMajority != nil {
		modifiable.SetToCheckBlockUpgradeMajority(*config.ToCheckBlockUpgradeMajority)
	}

	if config.DefaultConsistencyChecks != nil {
		modifiable.SetDefaultConsistencyChecks(*config.DefaultConsistencyChecks)
	}

	if config.AllowMinDifficultyBlocks != nil {
		modifiable.SetAllowMinDifficultyBlocks(*config.AllowMinDifficultyBlocks)
	}

	if config.SkipProofOfWorkCheck != nil {
		modifiable.SetSkipProofOfWorkCheck(*config.SkipProofOfWorkCheck)
	}

	return nil
}
