// Package certutil describes keys found in CSRs and exported files.
package certutil

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rsa"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// KeyInfo provides information about the key
type KeyInfo struct {
	// Type is RSA or ECDSA
	Type string `json:"type" yaml:"type"`
	// KeySize is the RSA modulus or EC curve size in bits
	KeySize int `json:"size" yaml:"size"`
	// Curve is the name of EC curve
	Curve     string `json:"curve,omitempty" yaml:"curve,omitempty"`
	IsPrivate bool   `json:"private" yaml:"private"`
	// Hash is the default hash for the key size
	Hash crypto.Hash `json:"-" yaml:"-"`

	Public crypto.PublicKey `json:"-" yaml:"-"`
}

// NewKeyInfo returns *KeyInfo for a private or public key
func NewKeyInfo(k any) (*KeyInfo, error) {
	ki := new(KeyInfo)

	switch typ := k.(type) {
	case *rsa.PrivateKey:
		ki.IsPrivate = true
		ki.Public = typ.Public()
	case *ecdsa.PrivateKey:
		ki.IsPrivate = true
		ki.Public = typ.Public()
	case crypto.Signer:
		ki.IsPrivate = true
		ki.Public = typ.Public()
	default:
		ki.Public = k
	}

	switch pub := ki.Public.(type) {
	case *rsa.PublicKey:
		ki.Type = "RSA"
		ki.KeySize = pub.N.BitLen()
	case *ecdsa.PublicKey:
		ki.Type = "ECDSA"
		ki.KeySize = pub.Curve.Params().BitSize
		ki.Curve = pub.Curve.Params().Name
	default:
		return nil, errors.Errorf("key not supported: %T", pub)
	}
	ki.Hash = hashAlgo(ki.Public)
	return ki, nil
}

// KeyType returns the key type token, such as RSA_2048 or EC_P256
func (ki *KeyInfo) KeyType() string {
	if ki.Type == "RSA" {
		return fmt.Sprintf("RSA_%d", ki.KeySize)
	}
	return "EC_" + strings.ReplaceAll(ki.Curve, "-", "")
}

// String returns a summary of the key
func (ki *KeyInfo) String() string {
	s := fmt.Sprintf("%s %d", ki.Type, ki.KeySize)
	if ki.Curve != "" {
		s += " " + ki.Curve
	}
	return s
}

func hashAlgo(pub crypto.PublicKey) crypto.Hash {
	switch pub := pub.(type) {
	case *rsa.PublicKey:
		keySize := pub.N.BitLen()
		switch {
		case keySize >= 4096:
			return crypto.SHA512
		case keySize >= 3072:
			return crypto.SHA384
		case keySize >= 2048:
			return crypto.SHA256
		default:
			return crypto.SHA1
		}
	case *ecdsa.PublicKey:
		switch pub.Curve {
		case elliptic.P256():
			return crypto.SHA256
		case elliptic.P384():
			return crypto.SHA384
		case elliptic.P521():
			return crypto.SHA512
		}
	}
	return crypto.SHA1
}
