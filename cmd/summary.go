package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/duoledger/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the ledger totals and recent activity" }
func (*summaryCmd) Usage() string {
	return `dl summary

  Shows the running totals (costs, paid, net balance), the sync state, and
  the recorded charges and payments.
`
}

func (*summaryCmd) SetFlags(f *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Summary(db.Read(), *defaultCurrency, db.SyncKey()))
	return subcommands.ExitSuccess
}
