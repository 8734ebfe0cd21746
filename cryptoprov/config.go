package cryptoprov

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/configloader"
)

// TokenConfig holds the configuration of a key provider.
type TokenConfig interface {
	// Manufacturer name of the manufacturer
	Manufacturer() string

	// Model name of the device
	Model() string

	// Comma separated key=value pair of attributes(e.g. "ServiceName=x,UserName=y")
	Attributes() string
}

type tokenConfig struct {
	Man   string `json:"Manufacturer" yaml:"manufacturer"`
	Mod   string `json:"Model"        yaml:"model"`
	Attrs string `json:"Attributes"   yaml:"attributes"`
}

// Manufacturer name of the manufacturer
func (c *tokenConfig) Manufacturer() string {
	return c.Man
}

// Model name of the device
func (c *tokenConfig) Model() string {
	return c.Mod
}

// Attributes is list of additional key=value pairs
func (c *tokenConfig) Attributes() string {
	return c.Attrs
}

// LoadTokenConfig loads token configuration,
// the file is decoded as JSON if it has .json extension, and as YAML otherwise.
func LoadTokenConfig(filename string) (TokenConfig, error) {
	tokenConfig := new(tokenConfig)
	if err := configloader.Unmarshal(filename, tokenConfig); err != nil {
		return nil, errors.WithMessagef(err, "failed to load config: %s", filename)
	}
	if tokenConfig.Man == "" {
		return nil, errors.Errorf("manufacturer is not specified: %s", filename)
	}

	return tokenConfig, nil
}
