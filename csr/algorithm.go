package csr

import (
	"crypto"
	"crypto/elliptic"
	"crypto/x509"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedKeyType is returned for an unknown key type token
var ErrUnsupportedKeyType = errors.New("unsupported key type")

// KeyFamily of the asymmetric key
type KeyFamily int

const (
	// RSA keys
	RSA KeyFamily = iota + 1
	// EC keys
	EC
)

// String returns the family name
func (f KeyFamily) String() string {
	switch f {
	case RSA:
		return "RSA"
	case EC:
		return "EC"
	}
	return "unknown"
}

// KeyAlgorithm specifies the key family and size, or curve
type KeyAlgorithm int

// Supported key algorithms
const (
	RSA2048 KeyAlgorithm = iota + 1
	RSA3072
	RSA4096
	ECP256
	ECP384
	ECP521
)

// KeyAlgorithms returns all supported key algorithms
func KeyAlgorithms() []KeyAlgorithm {
	return []KeyAlgorithm{RSA2048, RSA3072, RSA4096, ECP256, ECP384, ECP521}
}

// ResolveKeyAlgorithm returns the key algorithm for the token.
// The tokens are case-sensitive: RSA_2048, RSA_3072, RSA_4096,
// EC_P256, EC_P384, EC_P521.
func ResolveKeyAlgorithm(token string) (KeyAlgorithm, error) {
	for _, a := range KeyAlgorithms() {
		if a.Token() == token {
			return a, nil
		}
	}
	return 0, errors.Mark(errors.Errorf("unsupported key type: %q", token), ErrUnsupportedKeyType)
}

// Token returns the request token of the algorithm
func (a KeyAlgorithm) Token() string {
	switch a {
	case RSA2048:
		return "RSA_2048"
	case RSA3072:
		return "RSA_3072"
	case RSA4096:
		return "RSA_4096"
	case ECP256:
		return "EC_P256"
	case ECP384:
		return "EC_P384"
	case ECP521:
		return "EC_P521"
	}
	return ""
}

// DisplayName returns the name used in exported records
func (a KeyAlgorithm) DisplayName() string {
	switch a {
	case RSA2048:
		return "RSA_2048"
	case RSA3072:
		return "RSA_3072"
	case RSA4096:
		return "RSA_4096"
	case ECP256:
		return "EC_P-256"
	case ECP384:
		return "EC_P-384"
	case ECP521:
		return "EC_P-521"
	}
	return ""
}

func (a KeyAlgorithm) String() string {
	return a.DisplayName()
}

// Family returns the key family
func (a KeyAlgorithm) Family() KeyFamily {
	switch a {
	case RSA2048, RSA3072, RSA4096:
		return RSA
	case ECP256, ECP384, ECP521:
		return EC
	}
	return 0
}

// RSABits returns the modulus size for RSA, or 0
func (a KeyAlgorithm) RSABits() int {
	switch a {
	case RSA2048:
		return 2048
	case RSA3072:
		return 3072
	case RSA4096:
		return 4096
	}
	return 0
}

// Curve returns the elliptic curve for EC, or nil
func (a KeyAlgorithm) Curve() elliptic.Curve {
	switch a {
	case ECP256:
		return elliptic.P256()
	case ECP384:
		return elliptic.P384()
	case ECP521:
		return elliptic.P521()
	}
	return nil
}

// SignatureAlgorithm returns x509 signature algorithm for the key and hash
func (a KeyAlgorithm) SignatureAlgorithm(h HashAlgorithm) x509.SignatureAlgorithm {
	switch a.Family() {
	case RSA:
		switch h {
		case SHA1:
			return x509.SHA1WithRSA
		case SHA384:
			return x509.SHA384WithRSA
		case SHA512:
			return x509.SHA512WithRSA
		default:
			return x509.SHA256WithRSA
		}
	case EC:
		switch h {
		case SHA1:
			return x509.ECDSAWithSHA1
		case SHA384:
			return x509.ECDSAWithSHA384
		case SHA512:
			return x509.ECDSAWithSHA512
		default:
			return x509.ECDSAWithSHA256
		}
	}
	return x509.UnknownSignatureAlgorithm
}

// MatchIssuer is the hash token that requests the issuer's hash,
// it resolves to SHA-256
const MatchIssuer = "MatchIssuer"

// HashAlgorithm is the hash used to sign a CSR,
// the zero value is SHA256
type HashAlgorithm int

// Supported hash algorithms
const (
	SHA256 HashAlgorithm = iota
	SHA1
	SHA384
	SHA512
)

// ResolveHash returns the hash for the token.
// SHA1, SHA384 and SHA512 map to their algorithms,
// any other token, including MatchIssuer and SHA256, maps to SHA256.
func ResolveHash(token string) HashAlgorithm {
	switch token {
	case "SHA384":
		return SHA384
	case "SHA512":
		return SHA512
	case "SHA1":
		return SHA1
	default:
		return SHA256
	}
}

// Name returns the canonical name used in exported records
func (h HashAlgorithm) Name() string {
	switch h {
	case SHA1:
		return "SHA1"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	default:
		return "SHA256"
	}
}

func (h HashAlgorithm) String() string {
	return h.Name()
}

// Hash returns crypto.Hash
func (h HashAlgorithm) Hash() crypto.Hash {
	switch h {
	case SHA1:
		return crypto.SHA1
	case SHA384:
		return crypto.SHA384
	case SHA512:
		return crypto.SHA512
	default:
		return crypto.SHA256
	}
}
