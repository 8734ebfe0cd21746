package certutil_test

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/cryptoprov/inmemcrypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyInfoRSA(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	ki, err := certutil.NewKeyInfo(key)
	require.NoError(t, err)
	assert.Equal(t, "RSA", ki.Type)
	assert.Equal(t, 2048, ki.KeySize)
	assert.True(t, ki.IsPrivate)
	assert.Equal(t, crypto.SHA256, ki.Hash)
	assert.Equal(t, "RSA_2048", ki.KeyType())
	assert.Equal(t, "RSA 2048", ki.String())

	ki, err = certutil.NewKeyInfo(key.Public())
	require.NoError(t, err)
	assert.Equal(t, "RSA", ki.Type)
	assert.Equal(t, 2048, ki.KeySize)
	assert.False(t, ki.IsPrivate)
}

func TestKeyInfoECDSA(t *testing.T) {
	tcases := []struct {
		curve   elliptic.Curve
		size    int
		name    string
		keyType string
		hash    crypto.Hash
	}{
		{elliptic.P256(), 256, "P-256", "EC_P256", crypto.SHA256},
		{elliptic.P384(), 384, "P-384", "EC_P384", crypto.SHA384},
		{elliptic.P521(), 521, "P-521", "EC_P521", crypto.SHA512},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			key, err := ecdsa.GenerateKey(tc.curve, rand.Reader)
			require.NoError(t, err)

			ki, err := certutil.NewKeyInfo(key)
			require.NoError(t, err)
			assert.Equal(t, "ECDSA", ki.Type)
			assert.Equal(t, tc.size, ki.KeySize)
			assert.Equal(t, tc.name, ki.Curve)
			assert.Equal(t, tc.keyType, ki.KeyType())
			assert.Equal(t, tc.hash, ki.Hash)
			assert.True(t, ki.IsPrivate)

			ki, err = certutil.NewKeyInfo(key.Public())
			require.NoError(t, err)
			assert.Equal(t, tc.keyType, ki.KeyType())
			assert.False(t, ki.IsPrivate)
		})
	}
}

func TestKeyInfoSigner(t *testing.T) {
	key, err := inmemcrypto.NewProvider().GenerateECDSAKey("TestKeyInfoSigner", elliptic.P256())
	require.NoError(t, err)

	ki, err := certutil.NewKeyInfo(key)
	require.NoError(t, err)
	assert.Equal(t, "ECDSA 256 P-256", ki.String())
	assert.Equal(t, key.Public(), ki.Public)
}

func TestKeyInfoUnsupported(t *testing.T) {
	_, err := certutil.NewKeyInfo("key")
	assert.EqualError(t, err, "key not supported: string")
}
