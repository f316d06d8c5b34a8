package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/duoledger/renderer"
	"github.com/google/subcommands"
)

type seclogCmd struct {
	clear bool
}

func (*seclogCmd) Name() string     { return "seclog" }
func (*seclogCmd) Synopsis() string { return "list or clear the local security log" }
func (*seclogCmd) Usage() string {
	return `dl seclog [-clear]

  Lists failed access attempts recorded on this device. The security log
  never leaves this device: it is not pushed, exported, or imported.
`
}

func (s *seclogCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&s.clear, "clear", false, "Empty the security log.")
}

func (s *seclogCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if s.clear {
		if err := db.ClearSecurityLogs(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Security log cleared.")
		return subcommands.ExitSuccess
	}

	printMarkdown(renderer.SecurityLogs(db.Read()))
	return subcommands.ExitSuccess
}
