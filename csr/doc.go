// Package csr provides key algorithm resolution and generation of
// Certificate Signing Requests (CSRs) as defined by RFC 2986.
//
// This package supports:
//   - RSA 2048, 3072, 4096 and ECDSA P-256, P-384, P-521 keys
//   - SHA-1, SHA-256, SHA-384 and SHA-512 signature hashes
//   - CSR generation with a Common Name only subject
//   - PKCS#8 private key export
//   - CSR parsing and signature validation
//
// Keys are created by an injected cryptoprov.Provider.
package csr
