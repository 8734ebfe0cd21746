package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/csr"
)

// CsrInfoCmd specifies flags for CsrInfo command
type CsrInfoCmd struct {
	Csr string `kong:"arg" required:"" help:"CSR file name, or - for stdin"`
}

// CsrInfo is printed by CsrInfo command
type CsrInfo struct {
	Subject            string            `json:"subject" yaml:"subject"`
	CommonName         string            `json:"common_name" yaml:"common_name"`
	SignatureAlgorithm string            `json:"signature_algorithm" yaml:"signature_algorithm"`
	KeyType            string            `json:"key_type" yaml:"key_type"`
	Key                *certutil.KeyInfo `json:"key" yaml:"key"`
}

// Run the command
func (a *CsrInfoCmd) Run(ctx *Cli) error {
	csrb, err := ctx.ReadFile(a.Csr)
	if err != nil {
		return errors.WithMessage(err, "unable to load CSR file")
	}

	csrv, err := csr.ParsePEM(csrb)
	if err != nil {
		return errors.WithMessage(err, "unable to parse CSR")
	}

	ki, err := certutil.NewKeyInfo(csrv.PublicKey)
	if err != nil {
		return err
	}

	return ctx.Print(&CsrInfo{
		Subject:            csrv.Subject.String(),
		CommonName:         csrv.Subject.CommonName,
		SignatureAlgorithm: csrv.SignatureAlgorithm.String(),
		KeyType:            ki.KeyType(),
		Key:                ki,
	})
}
