package auth

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signPersonal(t *testing.T, key *ecdsa.PrivateKey, message string) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestVerifySignatureValid(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message := ChallengeMessage("deadbeef")
	sig := signPersonal(t, key, message)

	assert.NoError(t, VerifySignature(address, sig, message))
	assert.NoError(t, VerifySignature(NormalizeAddress(address), sig, message),
		"lowercased address must verify too")
}

func TestVerifySignatureWalletRecoveryID(t *testing.T) {
	// Wallets report V as 27/28 rather than 0/1.
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	message := "hello"
	raw, err := crypto.Sign(accounts.TextHash([]byte(message)), key)
	require.NoError(t, err)
	raw[crypto.RecoveryIDOffset] += 27

	assert.NoError(t, VerifySignature(address, hexutil.Encode(raw), message))
}

func TestVerifySignatureWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	other, err := crypto.GenerateKey()
	require.NoError(t, err)

	message := "hello"
	sig := signPersonal(t, key, message)

	err = VerifySignature(crypto.PubkeyToAddress(other.PublicKey).Hex(), sig, message)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignatureWrongMessage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig := signPersonal(t, key, "message one")
	err = VerifySignature(address, sig, "message two")
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignatureMalformed(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	cases := []string{"", "not-hex", "0x1234", "0x" + string(make([]byte, 130))}
	for _, sig := range cases {
		assert.ErrorIs(t, VerifySignature(address, sig, "msg"), ErrSignatureInvalid, "sig %q", sig)
	}
}

func TestVerifySignatureBadAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	sig := signPersonal(t, key, "msg")
	assert.ErrorIs(t, VerifySignature("not-an-address", sig, "msg"), ErrSignatureInvalid)
}
