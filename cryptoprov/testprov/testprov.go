// Package testprov provides a key provider for unit tests,
// it counts calls and can be configured to fail.
package testprov

import (
	"crypto"
	"crypto/elliptic"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/cryptoprov/inmemcrypto"
)

// ErrInjected is returned by a provider configured to fail
var ErrInjected = errors.New("injected failure")

// Provider wraps inmemcrypto.Provider
type Provider struct {
	inner *inmemcrypto.Provider

	// FailGenerateAt fails the n-th key generation, starting from 1;
	// zero means never fail
	FailGenerateAt int64
	// FailExport fails every key export
	FailExport bool

	generated atomic.Int64
	exported  atomic.Int64
}

// Ensure compiles
var _ cryptoprov.Provider = (*Provider)(nil)

// Init returns a new test provider
func Init() *Provider {
	return &Provider{inner: inmemcrypto.NewProvider()}
}

// Manufacturer returns name of the manufacturer
func (p *Provider) Manufacturer() string {
	return "testprov"
}

// Model returns name of the model
func (p *Provider) Model() string {
	return "test"
}

// Generated returns number of key generation calls
func (p *Provider) Generated() int {
	return int(p.generated.Load())
}

// Exported returns number of key export calls
func (p *Provider) Exported() int {
	return int(p.exported.Load())
}

// GenerateRSAKey creates a new RSA key
func (p *Provider) GenerateRSAKey(label string, bits int) (crypto.Signer, error) {
	if err := p.count(); err != nil {
		return nil, err
	}
	return p.inner.GenerateRSAKey(label, bits)
}

// GenerateECDSAKey creates a new ECDSA key
func (p *Provider) GenerateECDSAKey(label string, curve elliptic.Curve) (crypto.Signer, error) {
	if err := p.count(); err != nil {
		return nil, err
	}
	return p.inner.GenerateECDSAKey(label, curve)
}

// ExportKey returns PKCS#8 DER encoded private key
func (p *Provider) ExportKey(key crypto.Signer) ([]byte, error) {
	p.exported.Add(1)
	if p.FailExport {
		return nil, errors.WithStack(ErrInjected)
	}
	return p.inner.ExportKey(key)
}

func (p *Provider) count() error {
	n := p.generated.Add(1)
	if p.FailGenerateAt > 0 && n == p.FailGenerateAt {
		return errors.WithStack(ErrInjected)
	}
	return nil
}
