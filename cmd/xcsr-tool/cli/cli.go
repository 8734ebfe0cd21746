package cli

import (
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/x/print"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xlog"
	"golang.org/x/net/context"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "cli")

// Cli provides CLI context to run commands
type Cli struct {
	Version   ctl.VersionFlag `name:"version" help:"Print version information and quit" hidden:""`
	Debug     bool            `short:"D" help:"Enable debug mode"`
	LogLevel  string          `short:"l" help:"Set the logging level (debug|info|warn|error)" default:"error" env:"XCSR_LOG_LEVEL"`
	CryptoCfg string          `help:"Location of the key provider config file, the keys are generated in memory if not set" type:"path" env:"XCSR_CRYPTO_CFG"`
	Format    string          `short:"o" help:"Output format (json|yaml)" default:"json" enum:"json,yaml" env:"XCSR_FORMAT"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destinaton for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer

	ctx  context.Context
	prov cryptoprov.Provider
}

// Context for requests
func (c *Cli) Context() context.Context {
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c.ctx
}

// WithContext allows to specify a custom context
func (c *Cli) WithContext(ctx context.Context) *Cli {
	c.ctx = ctx
	return c
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// AfterApply hook sets the log level
func (c *Cli) AfterApply(_ *kong.Kong, _ kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		val := strings.TrimLeft(c.LogLevel, "=")
		l, err := xlog.ParseLevel(strings.ToUpper(val))
		if err != nil {
			return errors.WithStack(err)
		}
		xlog.SetGlobalLogLevel(l)
	}
	return nil
}

// CryptoProv returns the key provider
func (c *Cli) CryptoProv() (cryptoprov.Provider, error) {
	if c.prov != nil {
		return c.prov, nil
	}
	prov, err := cryptoprov.LoadProvider(c.CryptoCfg)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to initialize key provider, registered: %s",
			strings.Join(cryptoprov.Registered(), ","))
	}
	logger.KV(xlog.DEBUG, "provider", prov.Manufacturer(), "model", prov.Model())
	c.prov = prov
	return prov, nil
}

// Print writes value to out in the selected format
func (c *Cli) Print(value any) error {
	if c.Format == "yaml" {
		return c.WriteYAML(value)
	}
	return c.WriteJSON(value)
}

// WriteJSON prints response to out
func (c *Cli) WriteJSON(value any) error {
	print.JSON(c.Writer(), value)
	return nil
}

// WriteYAML prints response to out
func (c *Cli) WriteYAML(value any) error {
	enc := yaml.NewEncoder(c.Writer())
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return errors.WithMessage(err, "failed to encode")
	}
	return errors.WithStack(enc.Close())
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		b, err := io.ReadAll(c.Reader())
		return b, errors.WithStack(err)
	}
	b, err := os.ReadFile(filename)
	return b, errors.WithStack(err)
}
