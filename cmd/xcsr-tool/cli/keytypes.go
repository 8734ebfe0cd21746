package cli

import "github.com/effective-security/xcsr/csr"

// KeyTypesCmd prints supported key types
type KeyTypesCmd struct{}

// KeyType is printed by KeyTypes command
type KeyType struct {
	Token string `json:"token" yaml:"token"`
	Name  string `json:"name" yaml:"name"`
}

// Run the command
func (a *KeyTypesCmd) Run(ctx *Cli) error {
	var list []KeyType
	for _, k := range csr.KeyAlgorithms() {
		list = append(list, KeyType{Token: k.Token(), Name: k.DisplayName()})
	}
	return ctx.Print(list)
}
