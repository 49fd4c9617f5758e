// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/btcutil"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/util/quarkhash"
)

const (
	// coinbaseBits is the compact difficulty pushed at the start of every
	// genesis coinbase script, a leftover of the original bitcoin genesis.
	coinbaseBits = 486604799

	// coinbaseExtraNonce is pushed as a one-byte script number right after
	// coinbaseBits. It must be encoded as a data push and not as OP_4.
	coinbaseExtraNonce = 4

	// QuarkVersionLimit is the first block version hashed with double
	// SHA-256. Headers with a lower version are hashed with Quark.
	QuarkVersionLimit = 4

	// DefaultProgressInterval is the nonce cadence at which Solve reports
	// progress when the caller does not choose one.
	DefaultProgressInterval = 10000
)

var (
	// ErrInvalidSpec is returned when a Spec lacks the data needed to build
	// a coinbase transaction.
	ErrInvalidSpec = errors.New("invalid genesis spec")

	// ErrBitsAboveLimit is returned when a Spec's compact target is easier
	// than the network's proof of work limit.
	ErrBitsAboveLimit = errors.New("genesis bits above the proof of work limit")

	// ErrGenesisHashMismatch is returned when the built genesis block does
	// not hash to the expected literal.
	ErrGenesisHashMismatch = errors.New("genesis hash mismatch")

	// ErrMerkleRootMismatch is returned when the genesis coinbase does not
	// hash to the expected merkle root literal.
	ErrMerkleRootMismatch = errors.New("genesis merkle root mismatch")
)

// Spec holds everything needed to construct a genesis block.
type Spec struct {
	Version      int32
	Message      string
	OutputPubKey []byte
	Subsidy      int64
	Timestamp    time.Time
	Bits         uint32
	Nonce        uint32
}

// CoinbaseTx returns the single transaction of the genesis block described by
// spec. Its signature script is the push of coinbaseBits, the push of
// coinbaseExtraNonce and the push of the message. Its only output pays
// spec.Subsidy to a pay-to-pubkey script.
func CoinbaseTx(spec *Spec) (*wire.MsgTx, error) {
	if spec.Message == "" {
		return nil, errors.Wrap(ErrInvalidSpec, "empty coinbase message")
	}
	if len(spec.OutputPubKey) == 0 {
		return nil, errors.Wrap(ErrInvalidSpec, "empty output public key")
	}

	signatureScript, err := txscript.NewScriptBuilder().
		AddInt64(coinbaseBits).
		AddOps([]byte{txscript.OP_DATA_1, coinbaseExtraNonce}).
		AddData([]byte(spec.Message)).
		Script()
	if err != nil {
		return nil, errors.Wrap(err, "building coinbase signature script")
	}
	pkScript, err := txscript.NewScriptBuilder().
		AddData(spec.OutputPubKey).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		return nil, errors.Wrap(err, "building coinbase output script")
	}

	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: *wire.NewOutPoint(&chainhash.Hash{}, wire.MaxPrevOutIndex),
		SignatureScript:  signatureScript,
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(wire.NewTxOut(spec.Subsidy, pkScript))
	return tx, nil
}

// MerkleRoot returns the merkle root of the given transactions.
func MerkleRoot(txs []*wire.MsgTx) chainhash.Hash {
	utilTxs := make([]*btcutil.Tx, len(txs))
	for i, tx := range txs {
		utilTxs[i] = btcutil.NewTx(tx)
	}
	merkles := blockchain.BuildMerkleTreeStore(utilTxs, false)
	return *merkles[len(merkles)-1]
}

// NewBlock assembles the genesis block described by spec, with a zero
// previous block hash and the coinbase from CoinbaseTx as its only
// transaction. No proof of work is checked.
func NewBlock(spec *Spec) (*wire.MsgBlock, error) {
	coinbase, err := CoinbaseTx(spec)
	if err != nil {
		return nil, err
	}
	block := &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    spec.Version,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: MerkleRoot([]*wire.MsgTx{coinbase}),
			Timestamp:  time.Unix(spec.Timestamp.Unix(), 0),
			Bits:       spec.Bits,
			Nonce:      spec.Nonce,
		},
		Transactions: []*wire.MsgTx{coinbase},
	}
	return block, nil
}

// HeaderHash returns the identifying hash of header: Quark for versions
// below QuarkVersionLimit and double SHA-256 otherwise.
func HeaderHash(header *wire.BlockHeader) chainhash.Hash {
	if header.Version >= QuarkVersionLimit {
		return header.BlockHash()
	}
	writer := quarkhash.NewHashWriter()
	// Writes to a HashWriter never fail.
	_ = header.Serialize(writer)
	return writer.Finalize()
}

// CheckProofOfWork reports whether hash satisfies the compact target bits.
func CheckProofOfWork(hash *chainhash.Hash, bits uint32) bool {
	return blockchain.HashToBig(hash).Cmp(blockchain.CompactToBig(bits)) <= 0
}

// ProgressFunc is called by Solve every progress interval with the current
// nonce, timestamp and header hash.
type ProgressFunc func(nonce uint32, timestamp time.Time, hash *chainhash.Hash)

// advanceNonce increments the header nonce. When the nonce wraps to zero the
// timestamp moves forward by one second and advanceNonce returns true.
func advanceNonce(header *wire.BlockHeader) bool {
	header.Nonce++
	if header.Nonce != 0 {
		return false
	}
	header.Timestamp = header.Timestamp.Add(time.Second)
	return true
}

// Solve searches for a nonce, starting from the header's current one, for
// which the header hash satisfies the header's own compact target, and
// returns that hash. The header is modified in place. Every time the nonce
// wraps, the timestamp is bumped by one second. The search has no upper
// bound.
func Solve(header *wire.BlockHeader, progress ProgressFunc, interval uint32) chainhash.Hash {
	if interval == 0 {
		interval = DefaultProgressInterval
	}
	target := blockchain.CompactToBig(header.Bits)

	hash := HeaderHash(header)
	for blockchain.HashToBig(&hash).Cmp(target) > 0 {
		if advanceNonce(header) {
			log.Warnf("Nonce wrapped, timestamp moved to %d", header.Timestamp.Unix())
		}
		hash = HeaderHash(header)
		if progress != nil && header.Nonce%interval == 0 {
			progress(header.Nonce, header.Timestamp, &hash)
		}
	}
	return hash
}

// Builder builds genesis blocks and verifies them against expected literals,
// searching for a valid nonce when the spec's nonce does not satisfy its
// target.
type Builder struct {
	// Progress, when set, is handed to Solve during a nonce search.
	Progress ProgressFunc

	// ProgressInterval is the Solve reporting cadence. Zero selects
	// DefaultProgressInterval.
	ProgressInterval uint32
}

// Build assembles the genesis block for spec and returns it with its hash.
// The spec's bits must not exceed powLimit. If the header does not hash to
// expectedHash a nonce search is run first. The result must match both
// expectedHash and expectedMerkleRoot, otherwise the returned error wraps
// ErrGenesisHashMismatch or ErrMerkleRootMismatch and names the values that
// were found.
func (b *Builder) Build(spec *Spec, powLimit *big.Int, expectedHash,
	expectedMerkleRoot *chainhash.Hash) (*wire.MsgBlock, *chainhash.Hash, error) {

	if powLimit != nil && blockchain.CompactToBig(spec.Bits).Cmp(powLimit) > 0 {
		return nil, nil, errors.Wrapf(ErrBitsAboveLimit, "bits %08x, limit %08x",
			spec.Bits, blockchain.BigToCompact(powLimit))
	}

	block, err := NewBlock(spec)
	if err != nil {
		return nil, nil, err
	}
	header := &block.Header
	if expectedMerkleRoot != nil && !header.MerkleRoot.IsEqual(expectedMerkleRoot) {
		return nil, nil, errors.Wrapf(ErrMerkleRootMismatch, "got %s, want %s",
			header.MerkleRoot, expectedMerkleRoot)
	}

	hash := HeaderHash(header)
	if expectedHash != nil && !hash.IsEqual(expectedHash) {
		log.Warnf("Genesis hash %s does not match %s, searching for a nonce", hash, expectedHash)
		hash = Solve(header, b.Progress, b.ProgressInterval)
		log.Infof("Found nonce %d at time %d with hash %s",
			header.Nonce, header.Timestamp.Unix(), hash)
	}
	if expectedHash != nil && !hash.IsEqual(expectedHash) {
		return nil, nil, errors.Wrapf(ErrGenesisHashMismatch,
			"got %s (time %d, nonce %d), want %s",
			hash, header.Timestamp.Unix(), header.Nonce, expectedHash)
	}
	return block, &hash, nil
}
