package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xcsr/certutil"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/export"
	"github.com/effective-security/xlog"
	"github.com/spf13/afero"
)

// VerifyCmd specifies flags for Verify command
type VerifyCmd struct {
	File string `kong:"arg" required:"" help:"exported CSV file name" type:"path"`
}

// VerifyResult is printed by Verify command
type VerifyResult struct {
	File        string   `json:"file" yaml:"file"`
	Total       int      `json:"total" yaml:"total"`
	KeyTypes    []string `json:"key_types" yaml:"key_types"`
	CommonNames []string `json:"common_names" yaml:"common_names"`
}

// Run the command
func (a *VerifyCmd) Run(ctx *Cli) error {
	tbl, err := export.Load(afero.NewOsFs(), a.File)
	if err != nil {
		return err
	}

	for _, col := range []string{
		export.ColumnSubject,
		export.ColumnSignHashAlg,
		export.ColumnCSR,
		export.ColumnKeyPairType,
		export.ColumnPrivateKey,
	} {
		if !tbl.Has(col) {
			return errors.Errorf("missing %s column: %s", col, a.File)
		}
	}

	res := &VerifyResult{
		File:        a.File,
		Total:       tbl.Len(),
		KeyTypes:    []string{},
		CommonNames: []string{},
	}
	for i := 0; i < tbl.Len(); i++ {
		cn, keyType, err := verifyRow(tbl, i)
		if err != nil {
			return errors.WithMessagef(err, "row %d", i+1)
		}
		logger.KV(xlog.DEBUG, "row", i+1, "cn", cn)

		res.CommonNames = append(res.CommonNames, cn)
		if !slices.ContainsString(res.KeyTypes, keyType) {
			res.KeyTypes = append(res.KeyTypes, keyType)
		}
	}

	return ctx.Print(res)
}

func verifyRow(tbl *export.Table, row int) (string, string, error) {
	cr, err := csr.ParsePEM([]byte(tbl.Get(row, export.ColumnCSR)))
	if err != nil {
		return "", "", errors.WithMessage(err, "invalid CSR")
	}

	keyPEM := []byte(tbl.Get(row, export.ColumnPrivateKey))
	key, err := cryptoprov.ParsePKCS8PrivateKeyPEM(keyPEM)
	if err != nil {
		if _, format, perr := cryptoprov.ParsePrivateKeyPEM(keyPEM); perr == nil {
			return "", "", errors.Errorf("private key is %s, expected %s", format, cryptoprov.FormatPKCS8)
		}
		return "", "", errors.WithMessage(err, "invalid private key")
	}
	if !cryptoprov.KeyMatches(key, cr.PublicKey) {
		return "", "", errors.Errorf("private key does not match CSR of %q", cr.Subject.CommonName)
	}

	ki, err := certutil.NewKeyInfo(cr.PublicKey)
	if err != nil {
		return "", "", err
	}
	algo, err := csr.ResolveKeyAlgorithm(ki.KeyType())
	if err != nil {
		return "", "", err
	}
	keyType := tbl.Get(row, export.ColumnKeyPairType)
	if algo.DisplayName() != keyType {
		return "", "", errors.Errorf("key type %s does not match %s", keyType, algo.DisplayName())
	}

	hash := tbl.Get(row, export.ColumnSignHashAlg)
	if exp := algo.SignatureAlgorithm(csr.ResolveHash(hash)); exp != cr.SignatureAlgorithm {
		return "", "", errors.Errorf("signature algorithm %s does not match %s", cr.SignatureAlgorithm, hash)
	}

	return cr.Subject.CommonName, keyType, nil
}
