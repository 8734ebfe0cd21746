package csr

import (
	"crypto/x509"
	"encoding/pem"

	"github.com/cockroachdb/errors"
)

// Parse takes DER encoded certificate request,
// and verifies its signature.
func Parse(csrBytes []byte) (*x509.CertificateRequest, error) {
	csrv, err := x509.ParseCertificateRequest(csrBytes)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to parse")
	}

	err = csrv.CheckSignature()
	if err != nil {
		return nil, errors.WithMessagef(err, "key mismatch")
	}

	return csrv, nil
}

// ParsePEM takes PEM encoded certificate request,
// and verifies its signature.
func ParsePEM(csrPEM []byte) (*x509.CertificateRequest, error) {
	block, _ := pem.Decode(csrPEM)
	if block == nil {
		return nil, errors.New("unable to parse PEM")
	}

	if block.Type != "NEW "+PEMTypeCertificateRequest && block.Type != PEMTypeCertificateRequest {
		return nil, errors.Errorf("unsupported type in PEM: %s", block.Type)
	}

	return Parse(block.Bytes)
}
