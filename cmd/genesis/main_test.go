package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/donatenet/donated/domain/chaincfg"
	"github.com/donatenet/donated/domain/genesis"
)

func TestParseBits(t *testing.T) {
	tests := []struct {
		in    string
		want  uint32
		fails bool
	}{
		{"1e0ffff0", 0x1e0ffff0, false},
		{"0x207fffff", 0x207fffff, false},
		{"0X1d00ffff", 0x1d00ffff, false},
		{"banana", 0, true},
		{"1ffffffff", 0, true},
	}
	for _, test := range tests {
		got, err := parseBits(test.in)
		if (err != nil) != test.fails || got != test.want {
			t.Errorf("parseBits(%q): got %08x, %v", test.in, got, err)
		}
	}
}

func TestGenesisSpecDefaults(t *testing.T) {
	params := chaincfg.MainNetParams
	header := &params.GenesisBlock.Header
	cfg := &configFlags{Time: header.Timestamp.Unix(), Nonce: header.Nonce}

	spec, err := cfg.genesisSpec(params, time.Now())
	if err != nil {
		t.Fatalf("genesisSpec: %v", err)
	}
	_, hash, err := (&genesis.Builder{}).Build(spec, params.PowLimit, params.GenesisHash, &header.MerkleRoot)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !hash.IsEqual(params.GenesisHash) {
		t.Errorf("defaults rebuilt %s, want %s", hash, params.GenesisHash)
	}
}

func TestMine(t *testing.T) {
	params := chaincfg.RegressionNetParams
	now := time.Unix(1600000000, 0)
	cfg := &configFlags{Message: "a fresh chain"}

	spec, err := cfg.genesisSpec(params, now)
	if err != nil {
		t.Fatalf("genesisSpec: %v", err)
	}
	block, hash, err := mine(spec, params, 1)
	if err != nil {
		t.Fatalf("mine: %v", err)
	}
	if !genesis.CheckProofOfWork(hash, block.Header.Bits) {
		t.Errorf("mined hash %s does not satisfy bits %08x", hash, block.Header.Bits)
	}
	if block.Header.MerkleRoot.IsEqual(&params.GenesisBlock.Header.MerkleRoot) {
		t.Errorf("the custom message did not change the merkle root")
	}

	var out bytes.Buffer
	writeLiterals(&out, params, block, hash)
	if !strings.Contains(out.String(), hash.String()) {
		t.Errorf("literals do not contain the hash: %s", out.String())
	}

	cfg = &configFlags{Bits: "207fffff"}
	spec, err = cfg.genesisSpec(chaincfg.MainNetParams, now)
	if err != nil {
		t.Fatalf("genesisSpec: %v", err)
	}
	if _, _, err := mine(spec, chaincfg.MainNetParams, 1); err == nil {
		t.Errorf("mine accepted bits above the main network limit")
	}
}

func TestWriteGenesis(t *testing.T) {
	var out bytes.Buffer
	if err := writeGenesis(&out, chaincfg.TestNetParams); err != nil {
		t.Fatalf("writeGenesis: %v", err)
	}
	for _, want := range []string{
		chaincfg.TestNetParams.GenesisHash.String(),
		"merkle root: d28e80591f704bd5e22d515ff26d6fe1e2bb01b333ac3fe11f05ea11aecf76e9",
		"nonce: 83740810",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
}
