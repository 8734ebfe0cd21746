package export

import (
	"encoding/csv"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/spf13/afero"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "export")

// ErrIO is matched by any error creating, writing or reading a file
var ErrIO = errors.New("file I/O failure")

// Exporter writes records to files
type Exporter struct {
	fs afero.Fs
}

// New returns an exporter on the file system
func New(fs afero.Fs) *Exporter {
	return &Exporter{fs: fs}
}

// NewOS returns an exporter on the OS file system
func NewOS() *Exporter {
	return New(afero.NewOsFs())
}

// FS returns the file system
func (e *Exporter) FS() afero.Fs {
	return e.fs
}

// Export creates or truncates the destination file and writes the records.
// On failure the partially written file is left in place.
func (e *Exporter) Export(rows []*Record, destination string) (err error) {
	f, err := e.fs.Create(destination)
	if err != nil {
		return ioError(err, "create file: %s", destination)
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = ioError(cerr, "close file: %s", destination)
		}
	}()

	if err = Write(f, rows); err != nil {
		return ioError(err, "write file: %s", destination)
	}

	logger.KV(xlog.INFO, "file", destination, "records", len(rows))
	return nil
}

// Write writes the header and records in CSV format
func Write(w io.Writer, rows []*Record) error {
	schema := NewSchema(rows)
	cw := csv.NewWriter(w)

	if err := cw.Write(schema.Header()); err != nil {
		return errors.WithStack(err)
	}
	for _, r := range rows {
		if err := cw.Write(schema.Row(r)); err != nil {
			return errors.WithStack(err)
		}
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// Table is a loaded CSV file
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// Load reads an exported file
func Load(fs afero.Fs, path string) (*Table, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, ioError(err, "open file: %s", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, ioError(err, "read file: %s", path)
	}
	if len(records) == 0 {
		return nil, errors.Errorf("missing header: %s", path)
	}

	t := &Table{
		Header: records[0],
		Rows:   records[1:],
		index:  map[string]int{},
	}
	for i, h := range t.Header {
		t.index[h] = i
	}
	return t, nil
}

// Len returns number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Has returns true if the column is present
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Get returns the value of the column in the row,
// or empty string if the column is not present
func (t *Table) Get(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

func ioError(err error, format string, args ...any) error {
	return errors.Mark(errors.WithMessagef(err, format, args...), ErrIO)
}
