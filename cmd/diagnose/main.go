// Command diagnose dumps the pages of a dataset as JSON.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// CLI defines the command-line interface for diagnose.
var CLI struct {
	Dump    DumpCmd    `cmd:"" help:"Decode every page and print it as one JSON object per line"`
	Summary SummaryCmd `cmd:"" help:"Print page and row counts"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("diagnose"),
		kong.Description("Inspect self-describing tabular page files"),
		kong.UsageOnError(),
		kong.BindTo(io.Writer(os.Stdout), (*io.Writer)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
