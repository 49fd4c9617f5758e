package main

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/pkg/errors"
)

// payToPubKeyKey returns the public key a pay-to-pubkey script pays to.
func payToPubKeyKey(pkScript []byte) ([]byte, error) {
	if txscript.GetScriptClass(pkScript) != txscript.PubKeyTy {
		return nil, errors.Errorf("genesis output script %x is not pay-to-pubkey", pkScript)
	}
	pushes, err := txscript.PushedData(pkScript)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return pushes[0], nil
}

// coinbaseMessage returns the text pushed last by a genesis coinbase script.
func coinbaseMessage(signatureScript []byte) (string, error) {
	pushes, err := txscript.PushedData(signatureScript)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if len(pushes) == 0 {
		return "", errors.New("genesis coinbase pushes no data")
	}
	return string(pushes[len(pushes)-1]), nil
}
