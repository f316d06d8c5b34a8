package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type pullCmd struct{}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "pull the remote ledger once and reconcile" }
func (*pullCmd) Usage() string {
	return `dl pull

  Fetches the remote document for the linked sync session and overwrites the
  local ledger when the remote copy is strictly newer. A no-op when unlinked.
`
}

func (*pullCmd) SetFlags(f *flag.FlagSet) {}

func (*pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !db.Linked() {
		fmt.Println("Not linked to any sync session, nothing to pull.")
		return subcommands.ExitSuccess
	}

	overwritten, err := db.Sync(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if overwritten {
		fmt.Println("Local ledger updated from remote.")
	} else {
		fmt.Println("Local ledger is up to date.")
	}
	return subcommands.ExitSuccess
}
