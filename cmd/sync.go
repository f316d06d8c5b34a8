package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type syncStartCmd struct{}

func (*syncStartCmd) Name() string     { return "sync-start" }
func (*syncStartCmd) Synopsis() string { return "create a new sync session seeded from this ledger" }
func (*syncStartCmd) Usage() string {
	return `dl sync-start

  Creates a fresh remote document from the local ledger and prints the sync
  key. Share the key with the other party so they can 'dl sync-join' it.
`
}

func (*syncStartCmd) SetFlags(f *flag.FlagSet) {}

func (*syncStartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if key := db.SyncKey(); key != "" {
		fmt.Fprintf(os.Stderr, "Error: already linked to sync session %q. Run 'dl sync-leave' first.\n", key)
		return subcommands.ExitFailure
	}

	key, err := db.StartNewSync(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Sync session started.\nSync key: %s\n", key)
	return subcommands.ExitSuccess
}

type syncJoinCmd struct{}

func (*syncJoinCmd) Name() string     { return "sync-join" }
func (*syncJoinCmd) Synopsis() string { return "join an existing sync session by key" }
func (*syncJoinCmd) Usage() string {
	return `dl sync-join <key>

  Links this device to an existing sync session and pulls the remote
  document immediately.
`
}

func (*syncJoinCmd) SetFlags(f *flag.FlagSet) {}

func (*syncJoinCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expects exactly one sync key.")
		return subcommands.ExitUsageError
	}

	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := db.JoinSync(f.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	overwritten, err := db.Sync(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if overwritten {
		fmt.Println("Joined sync session and pulled remote ledger.")
	} else {
		fmt.Println("Joined sync session. Local ledger is already up to date.")
	}
	return subcommands.ExitSuccess
}

type syncLeaveCmd struct{}

func (*syncLeaveCmd) Name() string     { return "sync-leave" }
func (*syncLeaveCmd) Synopsis() string { return "leave the current sync session" }
func (*syncLeaveCmd) Usage() string {
	return `dl sync-leave

  Unlinks this device from its sync session. Local data is retained.
`
}

func (*syncLeaveCmd) SetFlags(f *flag.FlagSet) {}

func (*syncLeaveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !db.Linked() {
		fmt.Println("Not linked to any sync session.")
		return subcommands.ExitSuccess
	}
	if err := db.LeaveSync(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Left sync session. Local data retained.")
	return subcommands.ExitSuccess
}
