// Copyright (c) 2014-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/donatenet/donated/domain/genesis"
)

const (
	// genesisMessage is the text embedded in the coinbase of every genesis
	// block.
	genesisMessage = "South Korea beat Germany 2:0 at the World Cup in Russia on June 17, 2018."

	// genesisOutputPubKey is the uncompressed key the genesis coinbase pays
	// to.
	genesisOutputPubKey = "0413b080dec0ce4595f60fc66380ee24ca8ca8fca75419828066c92efe6382e88f4d2e46c39bfcb14c298670300a9b423138a4cc9be5c423c1910f8e3c86b23f14"

	// genesisMerkleRoot is shared by all networks since they use the same
	// coinbase.
	genesisMerkleRoot = "d28e80591f704bd5e22d515ff26d6fe1e2bb01b333ac3fe11f05ea11aecf76e9"

	genesisVersion = 3
)

// Genesis block literals per network.
const (
	mainGenesisTime  = 1543482352
	mainGenesisBits  = 0x1e0ffff0
	mainGenesisNonce = 111353830
	mainGenesisHash  = "00000c4ffa2c7934a53d4e8383af778bd0c961341ee22d837e51c1f53b56fc18"

	testGenesisTime  = 1546074568
	testGenesisNonce = 83740810
	testGenesisHash  = "0000044b0d37b6c646a10832f3382f0ef24fbb0ca70c3781def579dfb1593c64"

	regTestGenesisTime  = 1543482352
	regTestGenesisBits  = 0x207fffff
	regTestGenesisNonce = 574757
	regTestGenesisHash  = "2b2d8c260e1eb61d2e81fb8a652bd2465985ab3ef91273ab7e0698db849c16aa"
)

// mainGenesisSpec returns the genesis description of the main network. Each
// call returns freshly allocated data.
func mainGenesisSpec() genesis.Spec {
	return genesis.Spec{
		Version:      genesisVersion,
		Message:      genesisMessage,
		OutputPubKey: hexToBytes(genesisOutputPubKey),
		Subsidy:      0,
		Timestamp:    time.Unix(mainGenesisTime, 0),
		Bits:         mainGenesisBits,
		Nonce:        mainGenesisNonce,
	}
}
