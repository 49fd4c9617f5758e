package chaincfg

import (
	"fmt"

	"github.com/pkg/errors"
)

// Network identifies one of the supported donate networks.
type Network int

// The supported networks.
const (
	MainNet Network = iota
	TestNet
	RegTest
	UnitTest
)

// ErrUnknownNetwork is returned for network tokens or values outside the
// supported set.
var ErrUnknownNetwork = errors.New("unknown network")

var networkNames = map[Network]string{
	MainNet:  "main",
	TestNet:  "test",
	RegTest:  "regtest",
	UnitTest: "unittest",
}

// networkTokens maps every accepted external token to its network.
var networkTokens = map[string]Network{
	"main":     MainNet,
	"mainnet":  MainNet,
	"test":     TestNet,
	"testnet":  TestNet,
	"regtest":  RegTest,
	"unittest": UnitTest,
}

// String returns the network name used in configuration and logs.
func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Network(%d)", int(n))
}

// IsValid returns whether n is one of the supported networks.
func (n Network) IsValid() bool {
	_, ok := networkNames[n]
	return ok
}

// Networks returns all supported networks in declaration order.
func Networks() []Network {
	return []Network{MainNet, TestNet, RegTest, UnitTest}
}

// ParseNetwork converts an external token such as a command line value into
// a Network.
func ParseNetwork(token string) (Network, error) {
	network, ok := networkTokens[token]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownNetwork, "%q", token)
	}
	return network, nil
}
