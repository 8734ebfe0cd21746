package export

// Column names
const (
	ColumnSubject     = "subject"
	ColumnSignHashAlg = "signHashAlg"
	ColumnNotBefore   = "notBefore"
	ColumnNotAfter    = "notAfter"
	ColumnUniqueID    = "uniqueId"
	ColumnSANs        = "sans"
	ColumnCSR         = "csr"
	ColumnKeyPairType = "keyPairType"
	ColumnPrivateKey  = "privateKey"
)

// Record is a single exported identity
type Record struct {
	Subject     string
	SignHashAlg string
	NotBefore   string
	NotAfter    string
	UniqueID    string
	SANs        string
	// CSR is PEM encoded
	CSR         []byte
	KeyPairType string
	// PrivateKey is PEM encoded PKCS#8
	PrivateKey []byte
}

// Schema specifies the optional columns
type Schema struct {
	UniqueID bool
	SANs     bool
}

// NewSchema returns the schema for the records
func NewSchema(rows []*Record) Schema {
	var s Schema
	for _, r := range rows {
		if r.UniqueID != "" {
			s.UniqueID = true
		}
		if r.SANs != "" {
			s.SANs = true
		}
	}
	return s
}

// Header returns the column names
func (s Schema) Header() []string {
	h := []string{ColumnSubject, ColumnSignHashAlg, ColumnNotBefore, ColumnNotAfter}
	if s.UniqueID {
		h = append(h, ColumnUniqueID)
	}
	if s.SANs {
		h = append(h, ColumnSANs)
	}
	return append(h, ColumnCSR, ColumnKeyPairType, ColumnPrivateKey)
}

// Row returns the values of the record, in the Header order
func (s Schema) Row(r *Record) []string {
	row := []string{r.Subject, r.SignHashAlg, r.NotBefore, r.NotAfter}
	if s.UniqueID {
		row = append(row, r.UniqueID)
	}
	if s.SANs {
		row = append(row, r.SANs)
	}
	return append(row, string(r.CSR), r.KeyPairType, string(r.PrivateKey))
}
