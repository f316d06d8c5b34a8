package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/duoledger"
	"github.com/google/subcommands"
)

type reportCmd struct {
	outputFile string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "write the plain-text ledger report" }
func (*reportCmd) Usage() string {
	return `dl report [-o <file>]

  Writes the plain-text summary of the ledger (totals and net balance) to
  stdout, or to a file with -o.
`
}

func (r *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.outputFile, "o", "", "File to write the report to. Defaults to stdout.")
}

func (r *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	report := duoledger.NewReport(db.Read(), *defaultCurrency)
	if r.outputFile == "" {
		fmt.Print(report.Text())
		return subcommands.ExitSuccess
	}

	if err := os.WriteFile(r.outputFile, []byte(report.Text()), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing report to %q: %v\n", r.outputFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Report written to %s\n", r.outputFile)
	return subcommands.ExitSuccess
}
