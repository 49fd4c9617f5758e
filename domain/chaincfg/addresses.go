package chaincfg

import (
	"encoding/binary"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// hardenedKeyStart is the index at which BIP32 hardened child keys start.
const hardenedKeyStart = 0x80000000

// hash160Size is the payload length of pay-to-pubkey-hash and
// pay-to-script-hash addresses.
const hash160Size = 20

var (
	// ErrPrefixCollision is returned when two address version bytes of a
	// network are equal and addresses could not be told apart.
	ErrPrefixCollision = errors.New("address prefix collision")

	// ErrUnknownAddressID is returned when decoding an address whose
	// version byte does not belong to the network.
	ErrUnknownAddressID = errors.New("unknown address ID")

	// ErrInvalidAddress is returned for malformed address payloads.
	ErrInvalidAddress = errors.New("invalid address")
)

// AddressKind is the class of a decoded address.
type AddressKind int

// The address kinds recognized by DecodeAddress.
const (
	PubKeyHashAddress AddressKind = iota
	ScriptHashAddress
)

func (k AddressKind) String() string {
	switch k {
	case PubKeyHashAddress:
		return "pubkeyhash"
	case ScriptHashAddress:
		return "scripthash"
	}
	return "unknown"
}

// AddressPrefixes holds the version bytes that make addresses and keys of a
// network recognizable.
type AddressPrefixes struct {
	// Address encoding magics
	PubKeyHashAddrID byte // First byte of a P2PKH address
	ScriptHashAddrID byte // First byte of a P2SH address
	PrivateKeyID     byte // First byte of a WIF private key

	// BIP32 hierarchical deterministic extended key magics
	HDPublicKeyID  [4]byte
	HDPrivateKeyID [4]byte

	// BIP44 coin type used in the hierarchical deterministic path for
	// address generation.
	HDCoinType uint32
}

// HDCoinTypeBytes returns the hardened BIP44 coin type index in big endian
// order.
func (p *AddressPrefixes) HDCoinTypeBytes() [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], p.HDCoinType|hardenedKeyStart)
	return b
}

// Validate checks that the single byte prefixes are pairwise distinct and
// that the extended key prefixes differ.
func (p *AddressPrefixes) Validate() error {
	ids := []struct {
		name string
		id   byte
	}{
		{"pubkey hash", p.PubKeyHashAddrID},
		{"script hash", p.ScriptHashAddrID},
		{"private key", p.PrivateKeyID},
	}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if ids[i].id == ids[j].id {
				return errors.Wrapf(ErrPrefixCollision, "%s and %s IDs are both %d",
					ids[i].name, ids[j].name, ids[i].id)
			}
		}
	}
	if p.HDPublicKeyID == p.HDPrivateKeyID {
		return errors.Wrapf(ErrPrefixCollision, "extended public and private key IDs are both %x",
			p.HDPublicKeyID)
	}
	return nil
}

// EncodePubKeyHash returns the base58check address paying to hash160.
func (p *AddressPrefixes) EncodePubKeyHash(hash160 []byte) (string, error) {
	return encodeHash160(hash160, p.PubKeyHashAddrID)
}

// EncodeScriptHash returns the base58check address paying to the script
// with the given hash160.
func (p *AddressPrefixes) EncodeScriptHash(hash160 []byte) (string, error) {
	return encodeHash160(hash160, p.ScriptHashAddrID)
}

func encodeHash160(hash160 []byte, id byte) (string, error) {
	if len(hash160) != hash160Size {
		return "", errors.Wrapf(ErrInvalidAddress, "payload is %d bytes, want %d",
			len(hash160), hash160Size)
	}
	return base58.CheckEncode(hash160, id), nil
}

// DecodeAddress decodes a base58check address of this network and returns
// its kind and hash160 payload.
func (p *AddressPrefixes) DecodeAddress(address string) (AddressKind, []byte, error) {
	payload, id, err := base58.CheckDecode(address)
	if err != nil {
		return 0, nil, errors.Wrapf(ErrInvalidAddress, "%s: %s", address, err)
	}
	if len(payload) != hash160Size {
		return 0, nil, errors.Wrapf(ErrInvalidAddress, "%s: payload is %d bytes, want %d",
			address, len(payload), hash160Size)
	}

	switch id {
	case p.PubKeyHashAddrID:
		return PubKeyHashAddress, payload, nil
	case p.ScriptHashAddrID:
		return ScriptHashAddress, payload, nil
	}
	return 0, nil, errors.Wrapf(ErrUnknownAddressID, "%s: version byte %d", address, id)
}
