// Package cryptoprov provides the key generation capability used to
// create CSR key pairs.
//
// A Provider generates exportable RSA and ECDSA keys and exports them in
// PKCS#8 form. Providers are registered by manufacturer name and loaded
// from a token configuration file in JSON or YAML format; when no
// configuration is given, the provider registered as DefaultManufacturer
// is used.
//
// The package also provides helpers to parse PEM encoded private keys
// and to check that a private key matches a public key.
package cryptoprov
