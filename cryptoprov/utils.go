package cryptoprov

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"

	"github.com/cockroachdb/errors"
)

// Private key encodings
const (
	FormatPKCS8 = "PKCS#8"
	FormatPKCS1 = "PKCS#1"
	FormatSEC1  = "SEC1"
)

// ParsePrivateKeyPEM parses an unencrypted PKCS#8, PKCS#1 or SEC1 private key,
// and returns the key with the name of its encoding.
func ParsePrivateKeyPEM(keyPEM []byte) (crypto.Signer, string, error) {
	keyDER, err := privateKeyDER(keyPEM)
	if err != nil {
		return nil, "", err
	}
	return ParsePrivateKeyDER(keyDER)
}

// privateKeyDER skips EC PARAMETERS blocks, openssl includes them by default
func privateKeyDER(in []byte) ([]byte, error) {
	var block *pem.Block
	for {
		block, in = pem.Decode(in)
		if block == nil || block.Type != "EC PARAMETERS" {
			break
		}
	}
	if block == nil {
		return nil, errors.New("unable to decode private key")
	}
	if procType, ok := block.Headers["Proc-Type"]; ok && strings.Contains(procType, "ENCRYPTED") {
		return nil, errors.New("private key is encrypted")
	}
	return block.Bytes, nil
}

// ParsePrivateKeyDER parses a PKCS#8, PKCS#1 or SEC1 DER encoded RSA or ECDSA key
func ParsePrivateKeyDER(keyDER []byte) (crypto.Signer, string, error) {
	format := FormatPKCS8
	key, err := x509.ParsePKCS8PrivateKey(keyDER)
	if err != nil {
		format = FormatPKCS1
		if key, err = x509.ParsePKCS1PrivateKey(keyDER); err != nil {
			format = FormatSEC1
			if key, err = x509.ParseECPrivateKey(keyDER); err != nil {
				return nil, "", errors.New("failed to parse key")
			}
		}
	}

	switch typ := key.(type) {
	case *rsa.PrivateKey:
		return typ, format, nil
	case *ecdsa.PrivateKey:
		return typ, format, nil
	}
	return nil, "", errors.Errorf("key not supported: %T", key)
}

// ParsePKCS8PrivateKeyPEM parses a PEM-encoded "PRIVATE KEY" block,
// other key formats are rejected.
func ParsePKCS8PrivateKeyPEM(keyPEM []byte) (crypto.Signer, error) {
	block, _ := pem.Decode(keyPEM)
	if block == nil {
		return nil, errors.New("unable to decode private key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, errors.Errorf("unsupported type in PEM: %s", block.Type)
	}

	k, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse PKCS#8 key")
	}
	signer, ok := k.(crypto.Signer)
	if !ok {
		return nil, errors.Errorf("loaded key of %T type does not support crypto.Signer", k)
	}
	return signer, nil
}

// KeyMatches returns true if the private key corresponds to the public key
func KeyMatches(key crypto.Signer, pub crypto.PublicKey) bool {
	eq, ok := key.Public().(interface {
		Equal(x crypto.PublicKey) bool
	})
	return ok && eq.Equal(pub)
}
