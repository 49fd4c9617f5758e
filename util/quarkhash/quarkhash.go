// Package quarkhash implements the Quark chained hash used to identify block
// headers up to version 3.
//
// Quark runs nine 512-bit hash rounds (BLAKE, BMW, Groestl, JH, Keccak and
// Skein), three of which choose between two functions depending on bit 3 of
// the previous round's output. The result is the first 32 bytes of the final
// round.
package quarkhash

import (
	"hash"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/samli88/go-x11-hash/blake"
	"github.com/samli88/go-x11-hash/bmw"
	"github.com/samli88/go-x11-hash/groestl"
	x11hash "github.com/samli88/go-x11-hash/hash"
	"github.com/samli88/go-x11-hash/jh"
	"github.com/samli88/go-x11-hash/skein"
	"golang.org/x/crypto/sha3"
)

// roundSize is the output size of every round in the chain.
const roundSize = 64

// branchMask selects the bit of a round's first byte that picks the next
// function at the three branching rounds.
const branchMask = 0x08

// HashWriter is used to incrementally Quark hash data without concatenating
// all of the data to a single buffer. It exposes an io.Writer api and a
// Finalize function to get the resulting hash.
// HashWriter.Write(slice).Finalize == HashH(slice)
//
// A HashWriter is reset by Finalize and may be reused, but it is not safe for
// concurrent use.
type HashWriter struct {
	a, b [roundSize]byte

	blake   x11hash.Digest
	bmw     x11hash.Digest
	groestl x11hash.Digest
	jh      x11hash.Digest
	skein   x11hash.Digest
	keccak  hash.Hash
}

// NewHashWriter returns a new HashWriter
func NewHashWriter() *HashWriter {
	return &HashWriter{
		blake:   blake.New(),
		bmw:     bmw.New(),
		groestl: groestl.New(),
		jh:      jh.New(),
		skein:   skein.New(),
		keccak:  sha3.NewLegacyKeccak512(),
	}
}

// Write feeds p into the first round. It will always return (len(p), nil)
func (h *HashWriter) Write(p []byte) (n int, err error) {
	return h.blake.Write(p)
}

// Finalize runs the remaining rounds and returns the resulting hash.
func (h *HashWriter) Finalize() chainhash.Hash {
	a, b := h.a[:], h.b[:]

	// Every Close resets its digest, so the writer is ready for reuse once
	// the chain completes.
	_ = h.blake.Close(a, 0, 0)
	closeRound(h.bmw, a, b)
	if b[0]&branchMask != 0 {
		closeRound(h.groestl, b, a)
	} else {
		closeRound(h.skein, b, a)
	}
	closeRound(h.groestl, a, b)
	closeRound(h.jh, b, a)
	if a[0]&branchMask != 0 {
		closeRound(h.blake, a, b)
	} else {
		closeRound(h.bmw, a, b)
	}
	h.keccakRound(b, a)
	closeRound(h.skein, a, b)
	if b[0]&branchMask != 0 {
		h.keccakRound(b, a)
	} else {
		closeRound(h.jh, b, a)
	}

	var res chainhash.Hash
	copy(res[:], a[:chainhash.HashSize])
	return res
}

func (h *HashWriter) keccakRound(src, dst []byte) {
	h.keccak.Reset()
	_, _ = h.keccak.Write(src)
	h.keccak.Sum(dst[:0])
}

func closeRound(d x11hash.Digest, src, dst []byte) {
	_, _ = d.Write(src)
	// Close can only fail on a short dst, and every round buffer is
	// roundSize bytes long.
	_ = d.Close(dst, 0, 0)
}

// HashH calculates the Quark hash of b and returns it as a chainhash.Hash.
func HashH(b []byte) chainhash.Hash {
	w := NewHashWriter()
	_, _ = w.Write(b)
	return w.Finalize()
}

// HashB calculates the Quark hash of b and returns it as a byte slice.
func HashB(b []byte) []byte {
	res := HashH(b)
	return res[:]
}
