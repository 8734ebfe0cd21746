package csr

import (
	"crypto"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/metricskey"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "csr")

// PEM block types
const (
	PEMTypeCertificateRequest = "CERTIFICATE REQUEST"
	PEMTypePrivateKey         = "PRIVATE KEY"
)

// ErrCryptoFailure is matched by any *CryptoError
var ErrCryptoFailure = errors.New("cryptographic failure")

// CryptoError is returned when key generation, signing or encoding fails
type CryptoError struct {
	CommonName string
	Op         string
	Err        error
}

func (e *CryptoError) Error() string {
	return fmt.Sprintf("failed to %s for %q: %v", e.Op, e.CommonName, e.Err)
}

// Unwrap returns the cause
func (e *CryptoError) Unwrap() error {
	return e.Err
}

// Is returns true for ErrCryptoFailure
func (e *CryptoError) Is(target error) bool {
	return target == ErrCryptoFailure
}

// Generator creates key pairs and CSRs
type Generator struct {
	prov cryptoprov.Provider
}

// NewGenerator returns a generator that creates keys with the provider
func NewGenerator(prov cryptoprov.Provider) *Generator {
	return &Generator{prov: prov}
}

// Provider returns the key provider
func (g *Generator) Provider() cryptoprov.Provider {
	return g.prov
}

// Generate creates a new key pair and a CSR signed by it.
// The CSR subject contains only the Common Name.
// Returns PEM encoded CSR, and PEM encoded PKCS#8 private key.
func (g *Generator) Generate(commonName string, algo KeyAlgorithm, hash HashAlgorithm) (csrPEM, keyPEM []byte, err error) {
	defer metricskey.PerfCSRGenerate.MeasureSince(time.Now(), algo.Token(), hash.Name())

	key, err := g.generateKey(commonName, algo)
	if err != nil {
		return nil, nil, &CryptoError{CommonName: commonName, Op: "generate key", Err: err}
	}

	template := &x509.CertificateRequest{
		Subject: pkix.Name{
			CommonName: commonName,
		},
		SignatureAlgorithm: algo.SignatureAlgorithm(hash),
	}

	der, err := x509.CreateCertificateRequest(rand.Reader, template, key)
	if err != nil {
		return nil, nil, &CryptoError{CommonName: commonName, Op: "sign request", Err: errors.WithStack(err)}
	}

	pkcs8, err := g.prov.ExportKey(key)
	if err != nil {
		return nil, nil, &CryptoError{CommonName: commonName, Op: "export key", Err: err}
	}

	csrPEM = pem.EncodeToMemory(&pem.Block{Type: PEMTypeCertificateRequest, Bytes: der})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: PEMTypePrivateKey, Bytes: pkcs8})
	Wipe(pkcs8)

	logger.KV(xlog.DEBUG,
		"cn", commonName,
		"key", algo.DisplayName(),
		"sig", template.SignatureAlgorithm.String())

	return csrPEM, keyPEM, nil
}

func (g *Generator) generateKey(label string, algo KeyAlgorithm) (crypto.Signer, error) {
	switch algo.Family() {
	case RSA:
		return g.prov.GenerateRSAKey(label, algo.RSABits())
	case EC:
		return g.prov.GenerateECDSAKey(label, algo.Curve())
	}
	return nil, errors.Mark(errors.Errorf("unsupported key type: %d", int(algo)), ErrUnsupportedKeyType)
}

// Wipe overwrites b with zeros
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
