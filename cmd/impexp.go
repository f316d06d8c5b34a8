package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print the ledger as a shareable text token" }
func (*exportCmd) Usage() string {
	return `dl export

  Prints the whole ledger (security log stripped) as a single base64 token
  suitable for pasting into chat or email.
`
}

func (*exportCmd) SetFlags(f *flag.FlagSet) {}

func (*exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	token, err := db.Export()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(token)
	return subcommands.ExitSuccess
}

type importCmd struct {
	token string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace the ledger from an export token" }
func (*importCmd) Usage() string {
	return `dl import [-token <token>]

  Wholesale-replaces the local ledger with the decoded token. Reads the
  token from stdin when -token is not given. The local security log is
  preserved.
`
}

func (i *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&i.token, "token", "", "Export token. Read from stdin when empty.")
}

func (i *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	token := i.token
	if token == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading token from stdin: %v\n", err)
			return subcommands.ExitFailure
		}
		token = strings.TrimSpace(string(data))
	}
	if token == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to import.")
		return subcommands.ExitUsageError
	}

	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := db.Import(token); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Wait()

	l := db.Read()
	fmt.Printf("Imported %d charges and %d payments\n", len(l.Charges), len(l.Payments))
	return subcommands.ExitSuccess
}
