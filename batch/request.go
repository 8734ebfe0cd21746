package batch

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
	"github.com/effective-security/xcsr/export"
)

// CNPlaceholder is substituted by the common name in the subject template
const CNPlaceholder = "{CN}"

// Request defaults
const (
	DefaultSubjectTemplate = "CN=" + CNPlaceholder
	DefaultKeyType         = "RSA_2048"
	DefaultSignHashAlg     = "SHA256"
)

// GenerationRequest specifies a batch
type GenerationRequest struct {
	// CNRange is the range expression, e.g. YDL0001-YDL0010
	CNRange string `json:"cn_range,omitempty" yaml:"cn_range,omitempty"`
	// SubjectTemplate is the subject string, where {CN} is replaced by the common name
	SubjectTemplate string `json:"subject_template,omitempty" yaml:"subject_template,omitempty"`
	// KeyType is one of RSA_2048, RSA_3072, RSA_4096, EC_P256, EC_P384, EC_P521
	KeyType string `json:"key_type,omitempty" yaml:"key_type,omitempty"`
	// SignHashAlg is one of SHA1, SHA256, SHA384, SHA512 or MatchIssuer
	SignHashAlg string `json:"sign_hash_alg,omitempty" yaml:"sign_hash_alg,omitempty"`

	// NotBefore, NotAfter, UniqueID and SANs are copied to every identity as is
	NotBefore string `json:"not_before,omitempty" yaml:"not_before,omitempty"`
	NotAfter  string `json:"not_after,omitempty" yaml:"not_after,omitempty"`
	UniqueID  string `json:"unique_id,omitempty" yaml:"unique_id,omitempty"`
	SANs      string `json:"sans,omitempty" yaml:"sans,omitempty"`

	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
}

// LoadRequest loads the request from a file,
// the file is decoded as JSON if it has .json extension, and as YAML otherwise.
func LoadRequest(filename string) (*GenerationRequest, error) {
	req := new(GenerationRequest)
	if err := configloader.Unmarshal(filename, req); err != nil {
		return nil, errors.WithMessagef(err, "failed to load request: %s", filename)
	}
	return req, nil
}

// Subject returns the subject for the common name
func (r *GenerationRequest) Subject(commonName string) string {
	return strings.ReplaceAll(r.SubjectTemplate, CNPlaceholder, commonName)
}

// Identity is a generated key pair and CSR for one common name
type Identity struct {
	CommonName string
	export.Record
}

// Result is returned to the caller of a batch
type Result struct {
	Success    bool   `json:"success" yaml:"success"`
	Message    string `json:"message" yaml:"message"`
	Total      int    `json:"total" yaml:"total"`
	OutputPath string `json:"output_path" yaml:"output_path"`
}
