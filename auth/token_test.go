package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	token, err := issuer.Issue("0xabc123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	address, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc123", address)
}

func TestTokenExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	issuer.Lifetime = -time.Minute

	token, err := issuer.Issue("0xabc123")
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	other := NewTokenIssuer("other-secret")

	token, err := issuer.Issue("0xabc123")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenMalformed(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", token)
	}
}

func TestTokenPreservesSubject(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")

	tokenA, err := issuer.Issue("0xaaaa")
	require.NoError(t, err)
	tokenB, err := issuer.Issue("0xbbbb")
	require.NoError(t, err)

	addrA, err := issuer.Verify(tokenA)
	require.NoError(t, err)
	addrB, err := issuer.Verify(tokenB)
	require.NoError(t, err)

	assert.Equal(t, "0xaaaa", addrA)
	assert.Equal(t, "0xbbbb", addrB)
	assert.NotEqual(t, addrA, addrB)
}
