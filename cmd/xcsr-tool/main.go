package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/xcsr/cmd/xcsr-tool/cli"
	"github.com/effective-security/xcsr/internal/version"

	// register providers
	_ "github.com/effective-security/xcsr/cryptoprov/inmemcrypto"
)

type app struct {
	cli.Cli

	Generate cli.GenerateCmd `cmd:"" help:"generate key pairs and CSRs for a range of common names"`
	CsrInfo  cli.CsrInfoCmd  `cmd:"" help:"print CSR info"`
	Verify   cli.VerifyCmd   `cmd:"" help:"verify CSRs and keys in an exported file"`
	KeyTypes cli.KeyTypesCmd `cmd:"" help:"list supported key types"`
}

func main() {
	realMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

func realMain(args []string, out io.Writer, errout io.Writer, exit func(int)) {
	cl := app{
		Cli: cli.Cli{},
	}
	cl.Cli.WithErrWriter(errout).
		WithWriter(out)

	parser, err := kong.New(&cl,
		kong.Name("xcsr-tool"),
		kong.Description("Batch CSR generator"),
		kong.Writers(out, errout),
		kong.Exit(exit),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version.Current().String(),
		})
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args[1:])
	parser.FatalIfErrorf(err)

	if ctx != nil {
		err = ctx.Run(&cl.Cli)
		ctx.FatalIfErrorf(err)
	}
}
