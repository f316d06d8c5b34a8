// Package cmd implements the CLI application to manage a shared design ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/duoledger"
	"github.com/google/subcommands"
)

// Commands lists every subcommand of the application.
// A main package registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&chargeCmd{},
	&paymentCmd{},
	&templateCmd{},
	&summaryCmd{},
	&reportCmd{},
	&exportCmd{},
	&importCmd{},
	&syncStartCmd{},
	&syncJoinCmd{},
	&syncLeaveCmd{},
	&pullCmd{},
	&watchCmd{},
	&seclogCmd{},
	&analyzeCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", defaultDataDir(), "Path to the directory holding the ledger document and sync key")
var relayURL = flag.String("relay-url", duoledger.DefaultRelayURL, "Base URL of the JSON document relay")
var defaultCurrency = flag.String("currency", "LKR", "Display currency for amounts")

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".duoledger"
	}
	return filepath.Join(home, ".duoledger")
}

// OpenDB is the central function to open the ledger mutation API over the
// app's data directory and relay.
func OpenDB() (*duoledger.DB, error) {
	store, err := duoledger.NewStore(*dataDir)
	if err != nil {
		return nil, err
	}
	return duoledger.NewDB(store, duoledger.NewHTTPRelay(*relayURL)), nil
}

// printMarkdown renders markdown to the terminal, falling back to the raw
// text when rendering fails (e.g. no tty).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
