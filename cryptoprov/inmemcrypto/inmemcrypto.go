// Package inmemcrypto provides a software key provider,
// the keys are generated in process memory and never persisted.
package inmemcrypto

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr/cryptoprov", "inmemcrypto")

// ProviderName specifies a provider name
const ProviderName = cryptoprov.DefaultManufacturer

// Model of the provider
const Model = "software"

func init() {
	_ = cryptoprov.Register(ProviderName, Loader)
}

// Loader returns the provider for the token config
func Loader(_ cryptoprov.TokenConfig) (cryptoprov.Provider, error) {
	return NewProvider(), nil
}

// Provider generates keys in memory
type Provider struct {
	rand io.Reader
}

// Ensure compiles
var _ cryptoprov.Provider = (*Provider)(nil)

// NewProvider returns a provider using crypto/rand
func NewProvider() *Provider {
	return &Provider{rand: rand.Reader}
}

// Manufacturer returns name of the manufacturer
func (p *Provider) Manufacturer() string {
	return ProviderName
}

// Model returns name of the model
func (p *Provider) Model() string {
	return Model
}

// GenerateRSAKey creates a new RSA key
func (p *Provider) GenerateRSAKey(label string, bits int) (crypto.Signer, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), ProviderName, "genkey_rsa")

	switch bits {
	case 2048, 3072, 4096:
	default:
		return nil, errors.Errorf("unsupported RSA key size: %d", bits)
	}

	key, err := rsa.GenerateKey(p.rand, bits)
	if err != nil {
		return nil, errors.WithMessagef(err, "generate RSA key")
	}

	logger.KV(xlog.DEBUG, "label", label, "type", "RSA", "size", bits)
	return key, nil
}

// GenerateECDSAKey creates a new ECDSA key
func (p *Provider) GenerateECDSAKey(label string, curve elliptic.Curve) (crypto.Signer, error) {
	defer metricskey.PerfCryptoOperation.MeasureSince(time.Now(), ProviderName, "genkey_ecdsa")

	if curve == nil {
		return nil, errors.New("curve is not specified")
	}

	key, err := ecdsa.GenerateKey(curve, p.rand)
	if err != nil {
		return nil, errors.WithMessagef(err, "generate ECDSA key")
	}

	logger.KV(xlog.DEBUG, "label", label, "type", "ECDSA", "curve", curve.Params().Name)
	return key, nil
}

// ExportKey returns PKCS#8 DER encoded private key
func (p *Provider) ExportKey(key crypto.Signer) ([]byte, error) {
	switch key.(type) {
	case *rsa.PrivateKey, *ecdsa.PrivateKey:
	default:
		return nil, errors.Errorf("key not supported: %T", key)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal PKCS#8 key")
	}
	return der, nil
}
