// Package batch generates key pairs and CSRs for every common name of a range,
// and exports them to a CSV file.
//
// The batch is all-or-nothing: any failure aborts it before the file is created,
// and the private keys are wiped from memory after the export.
package batch
