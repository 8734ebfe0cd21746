package cryptoprov

import (
	"crypto"
	"crypto/elliptic"
)

// Provider defines an interface to generate and export keys
type Provider interface {
	// Manufacturer returns name of the manufacturer
	Manufacturer() string
	// Model returns name of the model
	Model() string

	// GenerateRSAKey creates a new RSA key
	GenerateRSAKey(label string, bits int) (crypto.Signer, error)
	// GenerateECDSAKey creates a new ECDSA key
	GenerateECDSAKey(label string, curve elliptic.Curve) (crypto.Signer, error)

	// ExportKey returns PKCS#8 DER encoded private key
	ExportKey(key crypto.Signer) ([]byte, error)
}
