package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/domain/chaincfg"
	"github.com/donatenet/donated/domain/genesis"
	"github.com/donatenet/donated/infrastructure/logger"
	"github.com/donatenet/donated/util/panics"
)

func main() {
	defer panics.HandlePanic(log)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.InitLogStdout(logger.LevelTrace)
	defer logger.BackendLog.Close()

	params := cfg.NetParams()
	if !cfg.Mine {
		err = writeGenesis(os.Stdout, params)
		if err != nil {
			panics.Exit(log, err.Error())
		}
		return
	}

	spec, err := cfg.genesisSpec(params, time.Unix(time.Now().Unix(), 0))
	if err != nil {
		panics.Exit(log, err.Error())
	}
	block, hash, err := mine(spec, params, cfg.ProgressInterval)
	if err != nil {
		panics.Exit(log, err.Error())
	}
	writeLiterals(os.Stdout, params, block, hash)
}

// mine searches for a genesis block described by spec that satisfies its
// own target.
func mine(spec *genesis.Spec, params *chaincfg.Params, interval uint32) (*wire.MsgBlock, *chainhash.Hash, error) {
	block, hash, err := (&genesis.Builder{}).Build(spec, params.PowLimit, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	if genesis.CheckProofOfWork(hash, block.Header.Bits) {
		return block, hash, nil
	}

	log.Infof("Mining %s genesis block with bits %08x from nonce %d",
		params.Name, spec.Bits, spec.Nonce)
	solved := genesis.Solve(&block.Header, func(nonce uint32, timestamp time.Time, hash *chainhash.Hash) {
		log.Infof("nonce %d, time %d, hash %s", nonce, timestamp.Unix(), hash)
	}, interval)
	return block, &solved, nil
}

// writeGenesis prints the verified genesis block of params.
func writeGenesis(w io.Writer, params *chaincfg.Params) error {
	block := params.GenesisBlock
	header := &block.Header
	signatureScript, err := txscript.DisasmString(block.Transactions[0].TxIn[0].SignatureScript)
	if err != nil {
		return errors.Wrap(err, "disassembling the genesis coinbase")
	}

	fmt.Fprintf(w, "Genesis block of %s:\n", params.Name)
	fmt.Fprintf(w, "hash: %s\n", params.GenesisHash)
	fmt.Fprintf(w, "merkle root: %s\n", header.MerkleRoot)
	fmt.Fprintf(w, "version: %d\n", header.Version)
	fmt.Fprintf(w, "timestamp: %d\n", header.Timestamp.Unix())
	fmt.Fprintf(w, "bits (difficulty): 0x%08x\n", header.Bits)
	fmt.Fprintf(w, "nonce: %d\n", header.Nonce)
	fmt.Fprintf(w, "coinbase: %s\n", signatureScript)
	return nil
}

// writeLiterals prints a mined genesis block in Go syntax, ready to replace
// the literals of a network.
func writeLiterals(w io.Writer, params *chaincfg.Params, block *wire.MsgBlock, hash *chainhash.Hash) {
	header := &block.Header
	fmt.Fprintf(w, "\n\nGenesis block of %s is solved:\n", params.Name)
	fmt.Fprintf(w, "\tGenesisTime  = %d\n", header.Timestamp.Unix())
	fmt.Fprintf(w, "\tGenesisBits  = 0x%08x\n", header.Bits)
	fmt.Fprintf(w, "\tGenesisNonce = %d\n", header.Nonce)
	fmt.Fprintf(w, "\tGenesisHash  = %q\n", hash.String())
	fmt.Fprintf(w, "\tMerkleRoot   = %q\n\n\n", header.MerkleRoot.String())
}
