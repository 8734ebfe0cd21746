package cli

import (
	"github.com/effective-security/x/values"
	"github.com/effective-security/xcsr/batch"
)

// GenerateCmd specifies flags for Generate command
type GenerateCmd struct {
	Request         string `help:"optional JSON or YAML file with the request, the flags override its values" type:"path" env:"XCSR_REQUEST"`
	CNRange         string `name:"cn-range" help:"range of common names, e.g. YDL0001-YDL0010" env:"XCSR_CN_RANGE"`
	SubjectTemplate string `help:"subject, where {CN} is replaced by the common name (default: CN={CN})" env:"XCSR_SUBJECT_TEMPLATE"`
	KeyType         string `help:"key type: RSA_2048, RSA_3072, RSA_4096, EC_P256, EC_P384, EC_P521 (default: RSA_2048)" env:"XCSR_KEY_TYPE"`
	SignHashAlg     string `help:"hash algorithm: SHA1, SHA256, SHA384, SHA512, MatchIssuer (default: SHA256)" env:"XCSR_SIGN_HASH_ALG"`
	NotBefore       string `help:"validity start, recorded as is" env:"XCSR_NOT_BEFORE"`
	NotAfter        string `help:"validity end, recorded as is" env:"XCSR_NOT_AFTER"`
	UniqueID        string `name:"unique-id" help:"unique ID, recorded as is" env:"XCSR_UNIQUE_ID"`
	SANs            string `name:"sans" help:"subject alternative names, recorded as is" env:"XCSR_SANS"`
	Output          string `help:"output CSV file" type:"path" env:"XCSR_OUTPUT"`
	Workers         int    `help:"number of identities generated in parallel" default:"1" env:"XCSR_WORKERS"`
}

// Run the command
func (a *GenerateCmd) Run(ctx *Cli) error {
	req, err := a.generationRequest()
	if err != nil {
		return err
	}

	prov, err := ctx.CryptoProv()
	if err != nil {
		return err
	}

	res, err := batch.New(
		batch.WithProvider(prov),
		batch.WithWorkers(a.Workers),
	).Run(ctx.Context(), req)
	if err != nil {
		return err
	}

	return ctx.Print(res)
}

func (a *GenerateCmd) generationRequest() (*batch.GenerationRequest, error) {
	req := new(batch.GenerationRequest)
	if a.Request != "" {
		var err error
		req, err = batch.LoadRequest(a.Request)
		if err != nil {
			return nil, err
		}
	}

	req.CNRange = values.StringsCoalesce(a.CNRange, req.CNRange)
	req.SubjectTemplate = values.StringsCoalesce(a.SubjectTemplate, req.SubjectTemplate, batch.DefaultSubjectTemplate)
	req.KeyType = values.StringsCoalesce(a.KeyType, req.KeyType, batch.DefaultKeyType)
	req.SignHashAlg = values.StringsCoalesce(a.SignHashAlg, req.SignHashAlg, batch.DefaultSignHashAlg)
	req.NotBefore = values.StringsCoalesce(a.NotBefore, req.NotBefore)
	req.NotAfter = values.StringsCoalesce(a.NotAfter, req.NotAfter)
	req.UniqueID = values.StringsCoalesce(a.UniqueID, req.UniqueID)
	req.SANs = values.StringsCoalesce(a.SANs, req.SANs)
	req.OutputPath = values.StringsCoalesce(a.Output, req.OutputPath)

	return req, nil
}
