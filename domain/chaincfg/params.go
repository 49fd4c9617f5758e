// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/pkg/errors"

	"github.com/donatenet/donated/domain/genesis"
	"github.com/donatenet/donated/util/random"
)

const (
	// COIN is the number of atoms in one coin.
	COIN int64 = 100000000

	// CENT is the number of atoms in one hundredth of a coin.
	CENT int64 = 1000000
)

// zerocoinModulus is the RSA-2048 challenge number used as the trusted
// accumulator modulus.
const zerocoinModulus = "25195908475657893494027183240048398571429282126204032027777137836043662020707595556264018525880784" +
	"4069182906412495150821892985591491761845028084891200728449926873928072877767359714183472702618963750149718246911" +
	"6507761337985909570009733045974880842840179742910064245869181719511874612151517265463228221686998754918242243363" +
	"7259085141865462043576798423387184774447920739934236584823824281198163815010674810451660377306056201619676256133" +
	"8441436038339044149526344321901146575444541784240209246165157233507787077498171257724679629263863563732899121548" +
	"31438167899885040445364023527381951378636564391212010397122822120720357"

var (
	// ErrInvalidKey is returned when a hard coded public key of a network
	// is not a valid secp256k1 point.
	ErrInvalidKey = errors.New("invalid network public key")

	// ErrGenesisCheckpoint is returned when the checkpoint at height 0 is
	// not the genesis block.
	ErrGenesisCheckpoint = errors.New("checkpoint at height 0 is not the genesis block")
)

// powLimitShift returns the value ~uint256(0) >> shift.
func powLimitShift(shift uint) *big.Int {
	bigOne := big.NewInt(1)
	limit := new(big.Int).Sub(new(big.Int).Lsh(bigOne, 256), bigOne)
	return limit.Rsh(limit, shift)
}

// Params defines a donate network by its parameters. These parameters may be
// used by applications to differentiate networks as well as addresses and
// keys for one network from those intended for use on another network.
//
// Params returned by a Registry are shared and must be treated as read-only.
// The unit test network is changed only through UnitTestParams.
type Params struct {
	// Net defines the network.
	Net Network

	// Name defines a human-readable identifier for the network.
	Name string

	// MessageStart is the magic prefix of every peer to peer message.
	MessageStart [4]byte

	// DefaultPort defines the default peer-to-peer port for the network.
	DefaultPort uint16

	// AlertPubKey and SporkKey are the uncompressed public keys that sign
	// network alerts and spork messages.
	AlertPubKey []byte
	SporkKey    []byte

	// PowLimit defines the highest allowed proof of work value for a block
	// as a uint256.
	PowLimit *big.Int

	// PowLimitBits defines the highest allowed proof of work value for a
	// block in compact form.
	PowLimitBits uint32

	// TargetTimespan is the desired amount of time that should elapse
	// before the block difficulty requirement is examined to determine how
	// it should be changed in order to maintain the desired block
	// generation rate.
	TargetTimespan time.Duration

	// TargetSpacing is the desired amount of time to generate each block.
	TargetSpacing time.Duration

	// SubsidyHalvingInterval is the interval of blocks before the subsidy
	// is reduced.
	SubsidyHalvingInterval int32

	// MaxMoneyOut is the maximum amount of atoms a transaction may output.
	MaxMoneyOut int64

	// MasternodeCollateral is the masternode collateral in whole coins.
	MasternodeCollateral int64

	// Block version upgrade majorities, counted over the last
	// ToCheckBlockUpgradeMajority blocks.
	EnforceBlockUpgradeMajority int32
	RejectBlockOutdatedMajority int32
	ToCheckBlockUpgradeMajority int32

	MaxReorganizationDepth int32
	CoinbaseMaturity       int32
	MasternodeCountDrift   int32
	MinerThreads           int32

	// Activation heights and times.
	LastPOWBlock                 int32
	ModifierUpdateBlock          int32
	ZerocoinStartHeight          int32
	ZerocoinStartTime            time.Time
	BlockEnforceSerialRange      int32
	BlockRecalculateAccumulators int32
	BlockFirstFraudulent         int32
	BlockLastGoodCheckpoint      int32
	BlockEnforceInvalidUTXO      int32

	// Zerocoin accumulator parameters.
	ZerocoinModulus                 *big.Int
	MaxZerocoinSpendsPerTransaction int32
	MinZerocoinMintFee              int64
	MintRequiredConfirmations       int32
	RequiredAccumulation            int32
	DefaultSecurityLevel            int32
	ZerocoinHeaderVersion           int32
	BudgetFeeConfirmations          int32

	// Masternode pool parameters.
	PoolMaxTransactions         int32
	ObfuscationPoolDummyAddress string
	StartMasternodePayments     time.Time

	// Prefixes holds the address and extended key version bytes.
	Prefixes AddressPrefixes

	// Checkpoints ordered from oldest to newest.
	Checkpoints *CheckpointTable

	// DNSSeeds defines a list of DNS seeds for the network that are used
	// as one method to discover peers.
	DNSSeeds []DNSSeed

	// FixedSeedSpecs are hard coded peers used when DNS seeding fails.
	FixedSeedSpecs []SeedSpec6

	// GenesisBlock defines the first block of the chain.
	GenesisBlock *wire.MsgBlock

	// GenesisHash is the starting block hash.
	GenesisHash *chainhash.Hash

	MiningRequiresPeers           bool
	AllowMinDifficultyBlocks      bool
	DefaultConsistencyChecks      bool
	RequireStandard               bool
	MineBlocksOnDemand            bool
	SkipProofOfWorkCheck          bool
	TestnetToBeDeprecatedFieldRPC bool
	HeadersFirstSyncingActive     bool
}

// Interval returns the number of blocks between difficulty retargets.
func (p *Params) Interval() int64 {
	return int64(p.TargetTimespan / p.TargetSpacing)
}

// FixedSeeds returns the hard coded seeds as peer addresses, aged with the
// current time.
func (p *Params) FixedSeeds() []*wire.NetAddress {
	return ConvertSeed6(p.FixedSeedSpecs, time.Now(), random.Source{})
}

// netConfig is a network's Params before the derived fields are filled in,
// together with the literals they are derived from.
type netConfig struct {
	Params

	genesis           genesis.Spec
	genesisHash       string
	genesisMerkleRoot string

	checkpoints        []Checkpoint
	lastCheckpointTime time.Time
	txsLastCheckpoint  uint64
	txsPerDay          float64
}

// mainNetConfig returns the main network configuration. Every call allocates
// new slices and big integers, so derived networks can override fields
// without sharing state.
func mainNetConfig() *netConfig {
	return &netConfig{
		Params: Params{
			Net:          MainNet,
			Name:         "main",
			MessageStart: [4]byte{0xa5, 0x6b, 0xc7, 0x8d},
			DefaultPort:  39811,
			AlertPubKey:  hexToBytes("041fc0106697e3a3770768d645948cae60c5bf30ebb73e5de4550ef410969890e15bf24ff9037ac5a048d1da71e6239e7e32ecb1335d1fa7ec2fc896ed1e424905"),
			SporkKey:     hexToBytes("044a30edfb288d8973761070dc8b456d429c7b8872d475a837e09e71d3b710c08055852a50de199ee04c0643ebb4bce1c52a27c63cec13c62cf2f84eda00d8a3a6"),

			PowLimit:       powLimitShift(20),
			TargetTimespan: time.Minute,
			TargetSpacing:  time.Minute,

			SubsidyHalvingInterval: 210000,
			MaxMoneyOut:            60000000000 * COIN,
			MasternodeCollateral:   10000000,

			EnforceBlockUpgradeMajority: 750,
			RejectBlockOutdatedMajority: 950,
			ToCheckBlockUpgradeMajority: 1000,

			MaxReorganizationDepth: 100,
			CoinbaseMaturity:       25,
			MasternodeCountDrift:   20,
			MinerThreads:           0,

			LastPOWBlock:                 8000,
			ModifierUpdateBlock:          1100,
			ZerocoinStartHeight:          9900000,
			ZerocoinStartTime:            time.Unix(1609459200, 0),
			BlockEnforceSerialRange:      1,
			BlockRecalculateAccumulators: 10000000,
			BlockFirstFraudulent:         1110,
			BlockLastGoodCheckpoint:      1001,
			BlockEnforceInvalidUTXO:      1110,

			ZerocoinModulus:                 decimalToBig(zerocoinModulus),
			MaxZerocoinSpendsPerTransaction: 7,
			MinZerocoinMintFee:              1 * CENT,
			MintRequiredConfirmations:       20,
			RequiredAccumulation:            1,
			DefaultSecurityLevel:            100,
			ZerocoinHeaderVersion:           4,
			BudgetFeeConfirmations:          6,

			PoolMaxTransactions:         3,
			ObfuscationPoolDummyAddress: "SNw1Qz26zMtELShYCLmkE4VXE4ELyD7i8u",
			StartMasternodePayments:     time.Unix(1543482352, 0),

			Prefixes: AddressPrefixes{
				PubKeyHashAddrID: 63, // starts with S
				ScriptHashAddrID: 55, // starts with P
				PrivateKeyID:     53, // starts with N
				HDPublicKeyID:    [4]byte{0x02, 0x2d, 0x25, 0x33},
				HDPrivateKeyID:   [4]byte{0x02, 0x21, 0x31, 0x2b},
				HDCoinType:       0x77,
			},

			DNSSeeds:       []DNSSeed{{Name: "117.52.87.33", Host: "117.52.87.33"}},
			FixedSeedSpecs: []SeedSpec6{ipv4Seed(117, 52, 87, 33, 39811)},

			MiningRequiresPeers:           true,
			AllowMinDifficultyBlocks:      false,
			DefaultConsistencyChecks:      false,
			RequireStandard:               true,
			MineBlocksOnDemand:            false,
			SkipProofOfWorkCheck:          false,
			TestnetToBeDeprecatedFieldRPC: false,
			HeadersFirstSyncingActive:     false,
		},

		genesis:           mainGenesisSpec(),
		genesisHash:       mainGenesisHash,
		genesisMerkleRoot: genesisMerkleRoot,

		checkpoints: []Checkpoint{
			{0, newHashFromStr(mainGenesisHash)},
			{500, newHashFromStr("000000002701c3dd7c19922b439f46251bf833a17399f2ed69163a770133eb50")},
			{1000, newHashFromStr("00000008cbfeecba65fb88418589b005ac61a547e476a94bb01c3a631eda6c0f")},
			{1500, newHashFromStr("0000001019b4b2253074058565f8f9e31c0b94318bb0d52239f3edcddd48ec72")},
			{2000, newHashFromStr("00000011364c5d5c1ea354aadf88d1017c08bd4c0f472e1588c45b591a67061a")},
			{2500, newHashFromStr("000000002ef29cba83fe8952038110b1c3d44e7a6f91bf3ff62716bccce10401")},
			{5000, newHashFromStr("0000000004171709af65c3576f9f3b2347b9a78f35466a4c0e67f4b58083a593")},
			{8000, newHashFromStr("00000000019a2a9feb99a9ed49e84ab5108436cb45e80b1115f2e4334b46d306")},
			{8001, newHashFromStr("5f85b090993ab18290c2d24cbdeec4c5eb0732d0bf9c87efd92f59aa8e552bfe")},
			{10000, newHashFromStr("7de29e948c54311b863c0d56eeab828f207dc33f77fe5906ae5d0b6411d84283")},
			{15000, newHashFromStr("3c86cc64a9fa649d75b32d588485cc127594fd107fca91f8dab0c0442ba3ef7e")},
			{20000, newHashFromStr("e045aee2480f2a5be795035cb3c380f16d504c1690ca50694df5f9ff3752e62d")},
			{25000, newHashFromStr("d6a4a25ed9c6448fd4cf16120ce1a773ede4734e6c14fc2829e40550eb4534c7")},
			{30000, newHashFromStr("b99cb0b836152bd3fc52565e0e79162ac125e57d6641534a0e070fd76c8e036e")},
			{40000, newHashFromStr("e36b01f14b1c7761eeef3c1b21b5292261196f42e76d08d23c3a361882a14946")},
			{50000, newHashFromStr("d79ad638259f3837ab25769130a518238ef9b6b20653d98df96e602fd1c8ee98")},
			{60000, newHashFromStr("fc525d56bb1a724b8ac52f7b8b91e1bbc60fe541e37ed2743f99cfe5d1770e4c")},
			{70000, newHashFromStr("d48e8b10fcf64eaa3edc5f873370be16c86ab639f4cd13df2fab9c9e8a1d0742")},
			{80000, newHashFromStr("49fb6da4cbc4e834312985bfa44b08537a4c4573bbca6a37626b46e66ea246d6")},
			{90000, newHashFromStr("4035ca075e6a5759d15edd9494fd925da415baec9058dd04664b119f7a319fe9")},
			{100000, newHashFromStr("0d593545ea7f76f3012d131da70b449218b24a0eaf88db661149b08589f8b925")},
		},
		lastCheckpointTime: time.Unix(1549617274, 0),
		txsLastCheckpoint:  194131,
		txsPerDay:          2000,
	}
}

// testNetConfig returns the public test network configuration, derived from
// the main network.
func testNetConfig() *netConfig {
	cfg := mainNetConfig()
	cfg.Net = TestNet
	cfg.Name = "test"
	cfg.MessageStart = [4]byte{0xc4, 0x5d, 0xe6, 0xf7}
	cfg.AlertPubKey = hexToBytes("048e6fa939c7023cf338182fc983f7c2743161d000407bc48c0e6db65021f79e0985294386d120fe7f9882896dff519ffbdf965be8ecf31a520996837d0024a5d4")
	cfg.SporkKey = hexToBytes("0435f3871b668f1abba8b8ed01a881e3b211464cd8609a6c59adc92a9aa8c333a03a16ae17bcb583e8aa601d3cb6d662513a7c6d668ec88a397d0b1d22ae9c3954")
	cfg.DefaultPort = 39813

	cfg.EnforceBlockUpgradeMajority = 51
	cfg.RejectBlockOutdatedMajority = 75
	cfg.ToCheckBlockUpgradeMajority = 100
	cfg.MinerThreads = 0
	cfg.TargetTimespan = time.Minute
	cfg.TargetSpacing = time.Minute

	cfg.LastPOWBlock = 150
	cfg.CoinbaseMaturity = 15
	cfg.MasternodeCountDrift = 4
	cfg.ModifierUpdateBlock = 1
	cfg.MaxMoneyOut = 1000000000 * COIN
	cfg.ZerocoinStartHeight = 250
	cfg.ZerocoinStartTime = time.Unix(1546300800, 0)
	cfg.BlockEnforceSerialRange = 1
	cfg.BlockRecalculateAccumulators = 1500
	cfg.BlockFirstFraudulent = 891737
	cfg.BlockLastGoodCheckpoint = 1001
	cfg.BlockEnforceInvalidUTXO = 1600

	cfg.genesis.Timestamp = time.Unix(testGenesisTime, 0)
	cfg.genesis.Nonce = testGenesisNonce
	cfg.genesisHash = testGenesisHash

	cfg.DNSSeeds = []DNSSeed{{Name: "117.52.87.33", Host: "117.52.87.33"}}
	cfg.FixedSeedSpecs = []SeedSpec6{ipv4Seed(117, 52, 87, 33, 39813)}

	cfg.Prefixes = AddressPrefixes{
		PubKeyHashAddrID: 125, // starts with s
		ScriptHashAddrID: 117, // starts with p
		PrivateKeyID:     112, // starts with n
		HDPublicKeyID:    [4]byte{0x3a, 0x80, 0x61, 0xa0},
		HDPrivateKeyID:   [4]byte{0x3a, 0x80, 0x58, 0x37},
		HDCoinType:       0x01,
	}

	cfg.MiningRequiresPeers = true
	cfg.AllowMinDifficultyBlocks = true
	cfg.DefaultConsistencyChecks = false
	cfg.RequireStandard = false
	cfg.MineBlocksOnDemand = false
	cfg.TestnetToBeDeprecatedFieldRPC = true

	cfg.PoolMaxTransactions = 2
	cfg.ObfuscationPoolDummyAddress = "sMPUBzcsHZawA32XYYDF9FHQp6icv492CV"
	cfg.StartMasternodePayments = time.Unix(1529903701, 0)

	cfg.checkpoints = []Checkpoint{{0, newHashFromStr(testGenesisHash)}}
	cfg.lastCheckpointTime = time.Unix(1543482352, 0)
	cfg.txsLastCheckpoint = 1
	cfg.txsPerDay = 300
	return cfg
}

// regTestConfig returns the regression test network configuration, derived
// from the public test network. Every behavior flag is set here so none is
// silently inherited.
func regTestConfig() *netConfig {
	cfg := testNetConfig()
	cfg.Net = RegTest
	cfg.Name = "regtest"
	cfg.MessageStart = [4]byte{0x5a, 0xe5, 0x9c, 0x3d}
	cfg.SubsidyHalvingInterval = 150
	cfg.EnforceBlockUpgradeMajority = 750
	cfg.RejectBlockOutdatedMajority = 950
	cfg.ToCheckBlockUpgradeMajority = 1000
	cfg.MinerThreads = 1
	cfg.TargetTimespan = 24 * time.Hour
	cfg.TargetSpacing = time.Minute
	cfg.PowLimit = powLimitShift(1)

	cfg.genesis.Timestamp = time.Unix(regTestGenesisTime, 0)
	cfg.genesis.Bits = regTestGenesisBits
	cfg.genesis.Nonce = regTestGenesisNonce
	cfg.genesisHash = regTestGenesisHash

	cfg.DefaultPort = 39815
	cfg.DNSSeeds = nil
	cfg.FixedSeedSpecs = nil

	cfg.MiningRequiresPeers = false
	cfg.AllowMinDifficultyBlocks = true
	cfg.DefaultConsistencyChecks = true
	cfg.RequireStandard = false
	cfg.MineBlocksOnDemand = true
	cfg.SkipProofOfWorkCheck = false
	cfg.TestnetToBeDeprecatedFieldRPC = false
	cfg.HeadersFirstSyncingActive = false

	cfg.checkpoints = []Checkpoint{{0, newHashFromStr(regTestGenesisHash)}}
	cfg.lastCheckpointTime = time.Unix(1543482352, 0)
	cfg.txsLastCheckpoint = 0
	cfg.txsPerDay = 100
	return cfg
}

// unitTestConfig returns the unit test network configuration, derived from
// the main network whose checkpoints it keeps.
func unitTestConfig() *netConfig {
	cfg := mainNetConfig()
	cfg.Net = UnitTest
	cfg.Name = "unittest"
	cfg.MessageStart = [4]byte{0x8d, 0x7a, 0x4e, 0x2c}
	cfg.DefaultPort = 51478
	cfg.DNSSeeds = nil
	cfg.FixedSeedSpecs = nil

	cfg.MiningRequiresPeers = false
	cfg.DefaultConsistencyChecks = true
	cfg.AllowMinDifficultyBlocks = false
	cfg.MineBlocksOnDemand = true
	return cfg
}

func networkConfig(network Network) (*netConfig, error) {
	switch network {
	case MainNet:
		return mainNetConfig(), nil
	case TestNet:
		return testNetConfig(), nil
	case RegTest:
		return regTestConfig(), nil
	case UnitTest:
		return unitTestConfig(), nil
	}
	return nil, errors.Wrapf(ErrUnknownNetwork, "%s", network)
}

// finalize builds and verifies the genesis block, builds the checkpoint
// table and validates the prefixes and keys of cfg.
func (cfg *netConfig) finalize() (*Params, error) {
	params := cfg.Params

	builder := &genesis.Builder{
		Progress: func(nonce uint32, timestamp time.Time, hash *chainhash.Hash) {
			log.Infof("Searching %s genesis: nonce %d, time %d, hash %s",
				params.Name, nonce, timestamp.Unix(), hash)
		},
	}
	block, hash, err := builder.Build(&cfg.genesis, params.PowLimit,
		newHashFromStr(cfg.genesisHash), newHashFromStr(cfg.genesisMerkleRoot))
	if err != nil {
		return nil, errors.Wrapf(err, "%s genesis block", params.Name)
	}
	params.GenesisBlock = block
	params.GenesisHash = hash
	params.PowLimitBits = blockchain.BigToCompact(params.PowLimit)

	checkpoints, err := NewCheckpointTable(cfg.checkpoints, cfg.lastCheckpointTime,
		cfg.txsLastCheckpoint, cfg.txsPerDay, params.MaxReorganizationDepth)
	if err != nil {
		return nil, errors.Wrapf(err, "%s checkpoints", params.Name)
	}
	if checkpoints.Verify(0, hash) != CheckpointMatch {
		return nil, errors.Wrapf(ErrGenesisCheckpoint, "%s", params.Name)
	}
	params.Checkpoints = checkpoints

	if err := params.Prefixes.Validate(); err != nil {
		return nil, errors.Wrapf(err, "%s prefixes", params.Name)
	}

	keys := []struct {
		name string
		key  []byte
	}{
		{"alert", params.AlertPubKey},
		{"spork", params.SporkKey},
		{"genesis output", cfg.genesis.OutputPubKey},
	}
	for _, key := range keys {
		if _, err := secp256k1.ParsePubKey(key.key); err != nil {
			return nil, errors.Wrapf(ErrInvalidKey, "%s %s key: %s", params.Name, key.name, err)
		}
	}

	log.Debugf("Built %s parameters with genesis %s", params.Name, hash)
	return &params, nil
}

// newHashFromStr converts the passed big-endian hex string into a
// chainhash.Hash. It only differs from the one available in chainhash in
// that it panics on an error since it will only (and must only) be called
// with hard-coded, and therefore known good, hashes.
func newHashFromStr(hexStr string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(hexStr)
	if err != nil {
		panic(err)
	}
	return hash
}

// hexToBytes decodes a hard-coded hex string and panics on error.
func hexToBytes(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// decimalToBig parses a hard-coded decimal string and panics on error.
func decimalToBig(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid decimal literal: " + s)
	}
	return n
}
