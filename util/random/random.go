package random

import (
	"crypto/rand"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Uint64 returns a cryptographically random uint64 value.
func Uint64() (uint64, error) {
	var buf [8]byte
	_, err := io.ReadFull(rand.Reader, buf[:])
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Source is a random source backed by crypto/rand. Its zero value is ready
// to use, and it satisfies the Int63n method set of math/rand.Rand so it can
// be injected wherever a uniform bounded integer is needed.
type Source struct{}

// Int63n returns a uniformly distributed value in [0, n). It panics if n <= 0
// or if the system random source fails, matching math/rand.Rand.Int63n.
func (Source) Int63n(n int64) int64 {
	if n <= 0 {
		panic("invalid argument to Int63n")
	}
	// Reject the tail of the range that would bias the modulo.
	limit := math.MaxUint64 - math.MaxUint64%uint64(n)
	for {
		v, err := Uint64()
		if err != nil {
			panic(errors.Wrap(err, "failed to read random bytes"))
		}
		if v < limit {
			return int64(v % uint64(n))
		}
	}
}
