package auth

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var ErrSignatureInvalid = errors.New("signature does not match address")

// VerifySignature checks an EIP-191 personal_sign signature: the message is
// prefixed and hashed, the public key recovered, and the recovered address
// compared with the claimed one. Returns ErrSignatureInvalid on any
// mismatch or malformed input.
func VerifySignature(address, signature, message string) error {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return ErrSignatureInvalid
	}
	if !common.IsHexAddress(address) {
		return ErrSignatureInvalid
	}

	// Wallets emit V as 27/28; secp256k1 recovery wants 0/1.
	recoveryID := sig[crypto.RecoveryIDOffset]
	if recoveryID >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] = recoveryID - 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return ErrSignatureInvalid
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != common.HexToAddress(address) {
		return ErrSignatureInvalid
	}
	return nil
}
