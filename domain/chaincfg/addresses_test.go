package chaincfg

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
)

func testPayload() []byte {
	payload := make([]byte, hash160Size)
	for i := range payload {
		payload[i] = byte(i + 1)
	}
	return payload
}

func TestAddressEncoding(t *testing.T) {
	tests := []struct {
		name       string
		params     *Params
		pubKeyHash string
		scriptHash string
	}{
		{"main", MainNetParams, "SMPL7pCX7q6pEkTyoipdVgHvk9tE5D6XNW", "P8gWEwpDSPPohHMHcNA5cg7di7pgRrXGGk"},
		{"test", TestNetParams, "sJLjAYgP91q8wd7MKjUPZTAhmRri9baprg", "p5duHgJ5Ta88Q9zf8NoqgSzQjPoATNPwYY"},
	}

	for _, test := range tests {
		prefixes := &test.params.Prefixes
		pubKeyHash, err := prefixes.EncodePubKeyHash(testPayload())
		if err != nil || pubKeyHash != test.pubKeyHash {
			t.Errorf("%s: EncodePubKeyHash: got %s (%v), want %s", test.name, pubKeyHash, err, test.pubKeyHash)
		}
		scriptHash, err := prefixes.EncodeScriptHash(testPayload())
		if err != nil || scriptHash != test.scriptHash {
			t.Errorf("%s: EncodeScriptHash: got %s (%v), want %s", test.name, scriptHash, err, test.scriptHash)
		}

		kind, payload, err := prefixes.DecodeAddress(test.pubKeyHash)
		if err != nil || kind != PubKeyHashAddress || !bytes.Equal(payload, testPayload()) {
			t.Errorf("%s: DecodeAddress(%s): got %s %x %v", test.name, test.pubKeyHash, kind, payload, err)
		}
		kind, payload, err = prefixes.DecodeAddress(test.scriptHash)
		if err != nil || kind != ScriptHashAddress || !bytes.Equal(payload, testPayload()) {
			t.Errorf("%s: DecodeAddress(%s): got %s %x %v", test.name, test.scriptHash, kind, payload, err)
		}
	}
}

func TestDecodeAddressErrors(t *testing.T) {
	tests := []struct {
		name    string
		address string
		err     error
	}{
		{"other network", "sJLjAYgP91q8wd7MKjUPZTAhmRri9baprg", ErrUnknownAddressID},
		{"bad checksum", "SNw1Qz26zMtELShYCLmkE4VXE4ELyD7i8u", ErrInvalidAddress},
		{"not base58", "S0OIl", ErrInvalidAddress},
		{"empty", "", ErrInvalidAddress},
	}

	for _, test := range tests {
		_, _, err := MainNetParams.Prefixes.DecodeAddress(test.address)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: got error %v, want %v", test.name, err, test.err)
		}
	}

	if _, err := MainNetParams.Prefixes.EncodePubKeyHash(make([]byte, 19)); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("EncodePubKeyHash: expected ErrInvalidAddress for a short payload, got %v", err)
	}
}

func TestHDCoinTypeBytes(t *testing.T) {
	if got, want := MainNetParams.Prefixes.HDCoinTypeBytes(), [4]byte{0x80, 0x00, 0x00, 0x77}; got != want {
		t.Errorf("main: got %x, want %x", got, want)
	}
	if got, want := TestNetParams.Prefixes.HDCoinTypeBytes(), [4]byte{0x80, 0x00, 0x00, 0x01}; got != want {
		t.Errorf("test: got %x, want %x", got, want)
	}
}

func TestPrefixesValidate(t *testing.T) {
	valid := MainNetParams.Prefixes
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	collisions := []func(p *AddressPrefixes){
		func(p *AddressPrefixes) { p.ScriptHashAddrID = p.PubKeyHashAddrID },
		func(p *AddressPrefixes) { p.PrivateKeyID = p.PubKeyHashAddrID },
		func(p *AddressPrefixes) { p.PrivateKeyID = p.ScriptHashAddrID },
		func(p *AddressPrefixes) { p.HDPrivateKeyID = p.HDPublicKeyID },
	}
	for i, collide := range collisions {
		prefixes := valid
		collide(&prefixes)
		if err := prefixes.Validate(); !errors.Is(err, ErrPrefixCollision) {
			t.Errorf("collision %d: expected ErrPrefixCollision, got %v", i, err)
		}
	}
}
