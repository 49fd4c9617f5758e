package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/domain/chaincfg"
)

func resolve(t *testing.T, args ...string) (*NetworkFlags, *chaincfg.Registry, error) {
	registry, err := chaincfg.NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	networkFlags := &NetworkFlags{}
	parser := flags.NewParser(networkFlags, flags.None)
	if _, err := parser.ParseArgs(args); err != nil {
		t.Fatalf("ParseArgs(%v): %v", args, err)
	}
	return networkFlags, registry, networkFlags.resolveNetwork(parser, registry)
}

func TestResolveNetwork(t *testing.T) {
	tests := []struct {
		args    []string
		network chaincfg.Network
		fails   bool
	}{
		{nil, chaincfg.MainNet, false},
		{[]string{"--testnet"}, chaincfg.TestNet, false},
		{[]string{"--regtest"}, chaincfg.RegTest, false},
		{[]string{"--unittest"}, chaincfg.UnitTest, false},
		{[]string{"--network=test"}, chaincfg.TestNet, false},
		{[]string{"--network=mainnet"}, chaincfg.MainNet, false},
		{[]string{"--network=banana"}, 0, true},
		{[]string{"--testnet", "--regtest"}, 0, true},
		{[]string{"--network=test", "--testnet"}, 0, true},
	}

	for _, test := range tests {
		networkFlags, registry, err := resolve(t, test.args...)
		if (err != nil) != test.fails {
			t.Errorf("%v: unexpected error status %v", test.args, err)
			continue
		}
		if test.fails {
			if _, err := registry.Active(); !errors.Is(err, chaincfg.ErrNotSelected) {
				t.Errorf("%v: a network was selected despite the error", test.args)
			}
			continue
		}
		if networkFlags.NetParams().Net != test.network {
			t.Errorf("%v: got network %s, want %s", test.args, networkFlags.NetParams().Net, test.network)
		}
		if active, _ := registry.Active(); active != networkFlags.NetParams() {
			t.Errorf("%v: NetParams is not the active registry network", test.args)
		}
	}
}

func writeOverrideFile(t *testing.T, content string) string {
	tmpDir, err := ioutil.TempDir("", "donated")
	if err != nil {
		t.Fatalf("Failed creating a temporary directory: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	path := filepath.Join(tmpDir, "override.json")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed writing override file: %v", err)
	}
	return path
}

func TestOverrideParams(t *testing.T) {
	path := writeOverrideFile(t, `{"subsidyHalvingInterval": 150, "skipProofOfWorkCheck": true}`)

	networkFlags, registry, err := resolve(t, "--unittest", "--override-params-file="+path)
	if err != nil {
		t.Fatalf("resolveNetwork: %v", err)
	}
	params := networkFlags.NetParams()
	if params.SubsidyHalvingInterval != 150 || !params.SkipProofOfWorkCheck {
		t.Errorf("overrides were not applied: %d %t", params.SubsidyHalvingInterval, params.SkipProofOfWorkCheck)
	}
	if params.ToCheckBlockUpgradeMajority != 1000 {
		t.Errorf("a field missing from the file was changed")
	}
	mainParams, _ := registry.Params(chaincfg.MainNet)
	if mainParams.SubsidyHalvingInterval != 210000 {
		t.Errorf("overrides leaked into main")
	}

	_, registry, err = resolve(t, "--testnet", "--override-params-file="+path)
	if !errors.Is(err, chaincfg.ErrNotUnitTest) {
		t.Errorf("override on testnet: got %v, want ErrNotUnitTest", err)
	}
	if _, err := registry.Active(); !errors.Is(err, chaincfg.ErrNotSelected) {
		t.Errorf("override on testnet: a network was selected despite the error")
	}

	unknown := writeOverrideFile(t, `{"powMax": "ff"}`)
	_, registry, err = resolve(t, "--unittest", "--override-params-file="+unknown)
	if err == nil {
		t.Errorf("override file with an unknown field was accepted")
	}
	if _, err := registry.Active(); !errors.Is(err, chaincfg.ErrNotSelected) {
		t.Errorf("unknown field: a network was selected despite the error")
	}

	if _, _, err := resolve(t, "--unittest", "--override-params-file="+path+".missing"); err == nil {
		t.Errorf("missing override file was accepted")
	}
}
