// Package export writes generated CSRs and keys to a CSV file.
//
// The columns are:
//
//	subject, signHashAlg, notBefore, notAfter, [uniqueId], [sans], csr, keyPairType, privateKey
//
// The optional uniqueId and sans columns are included for the whole file
// when at least one record has a non-empty value for the field.
package export
