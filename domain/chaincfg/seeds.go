package chaincfg

import (
	"net"
	"time"

	"github.com/btcsuite/btcd/wire"
)

const oneWeek = 7 * 24 * time.Hour

// SeedSpec6 is a hard coded peer address. Addr holds an IPv6 address or an
// IPv4-mapped IPv6 address.
type SeedSpec6 struct {
	Addr [16]byte
	Port uint16
}

// IP returns the seed address as a net.IP.
func (s SeedSpec6) IP() net.IP {
	ip := make(net.IP, net.IPv6len)
	copy(ip, s.Addr[:])
	return ip
}

// DNSSeed identifies a DNS seed.
type DNSSeed struct {
	// Name is the human readable seed name.
	Name string

	// Host defines the hostname of the seed.
	Host string
}

// RandSource supplies the random offsets applied to seed timestamps.
// *math/rand.Rand and random.Source both satisfy it.
type RandSource interface {
	Int63n(n int64) int64
}

// ipv4Seed returns the SeedSpec6 of an IPv4 peer.
func ipv4Seed(a, b, c, d byte, port uint16) SeedSpec6 {
	var spec SeedSpec6
	copy(spec.Addr[:], net.IPv4(a, b, c, d).To16())
	spec.Port = port
	return spec
}

// ConvertSeed6 turns hard coded seeds into peer addresses. Each address is
// marked as last seen between one and two weeks before now, so that peers
// learned from the network take precedence over the hard coded ones.
func ConvertSeed6(specs []SeedSpec6, now time.Time, rng RandSource) []*wire.NetAddress {
	addresses := make([]*wire.NetAddress, 0, len(specs))
	weekSeconds := int64(oneWeek / time.Second)
	for _, spec := range specs {
		lastSeen := now.Unix() - weekSeconds - rng.Int63n(weekSeconds)
		addresses = append(addresses, wire.NewNetAddressTimestamp(time.Unix(lastSeen, 0),
			wire.SFNodeNetwork, spec.IP(), spec.Port))
	}
	return addresses
}
