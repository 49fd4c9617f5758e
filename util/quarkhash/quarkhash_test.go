package quarkhash

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// mainNetGenesisHeader returns the serialized 80-byte header of the main
// network genesis block.
func mainNetGenesisHeader(t *testing.T) []byte {
	merkleRoot, err := chainhash.NewHashFromStr("d28e80591f704bd5e22d515ff26d6fe1e2bb01b333ac3fe11f05ea11aecf76e9")
	if err != nil {
		t.Fatalf("NewHashFromStr: %v", err)
	}

	var buf bytes.Buffer
	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], 3)
	buf.Write(scratch[:])
	buf.Write(make([]byte, chainhash.HashSize))
	buf.Write(merkleRoot[:])
	binary.LittleEndian.PutUint32(scratch[:], 1543482352)
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], 0x1e0ffff0)
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], 111353830)
	buf.Write(scratch[:])
	return buf.Bytes()
}

func TestHashHGenesisHeader(t *testing.T) {
	want := "00000c4ffa2c7934a53d4e8383af778bd0c961341ee22d837e51c1f53b56fc18"
	got := HashH(mainNetGenesisHeader(t))
	if got.String() != want {
		t.Errorf("HashH: unexpected genesis hash - got %v, want %v", got, want)
	}
}

func TestHashWriter(t *testing.T) {
	header := mainNetGenesisHeader(t)
	want := HashH(header)

	writer := NewHashWriter()
	for i := 0; i < 2; i++ {
		_, _ = writer.Write(header[:40])
		_, _ = writer.Write(header[40:])
		got := writer.Finalize()
		if got != want {
			t.Errorf("HashWriter, pass %d: got %v, want %v", i, got, want)
		}
	}
}

func TestHashB(t *testing.T) {
	tests := [][]byte{
		{},
		[]byte("quark"),
		bytes.Repeat([]byte{0xff}, 200),
	}

	for i, data := range tests {
		hashH := HashH(data)
		hashB := HashB(data)
		if !bytes.Equal(hashH[:], hashB) {
			t.Errorf("test %d: HashB %x does not match HashH %v", i, hashB, hashH)
		}
		if len(hashB) != chainhash.HashSize {
			t.Errorf("test %d: unexpected length %d", i, len(hashB))
		}
	}

	if HashH([]byte("a")) == HashH([]byte("b")) {
		t.Errorf("distinct inputs produced the same hash")
	}
}
