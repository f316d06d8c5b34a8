package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/duoledger"
	"github.com/etnz/duoledger/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type templateCmd struct {
	add    string
	amount string
	remove string
}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "list, add or remove price templates" }
func (*templateCmd) Usage() string {
	return `dl template [-add <name> -a <amount>] [-rm <id>]

  Without flags, lists the price templates. -add creates a preset that can
  seed future charges; -rm deletes one by id.
`
}

func (t *templateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.add, "add", "", "Name of a new template.")
	f.StringVar(&t.amount, "a", "", "Amount of the new template.")
	f.StringVar(&t.remove, "rm", "", "Id of a template to remove.")
}

func (t *templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case t.add != "":
		if t.amount == "" {
			fmt.Fprintln(os.Stderr, "Error: a new template needs an amount (-a).")
			return subcommands.ExitUsageError
		}
		value, err := decimal.NewFromString(t.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", t.amount, err)
			return subcommands.ExitFailure
		}
		templates := append(db.Read().Templates, duoledger.PriceTemplate{
			ID:     duoledger.NewID(),
			Name:   t.add,
			Amount: value,
		})
		if err := db.SaveTemplates(templates); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving templates: %v\n", err)
			return subcommands.ExitFailure
		}
		defer db.Wait()
		fmt.Printf("Added template %q at %s\n", t.add, duoledger.M(value, *defaultCurrency))

	case t.remove != "":
		templates := db.Read().Templates
		remaining := slices.DeleteFunc(slices.Clone(templates), func(tpl duoledger.PriceTemplate) bool {
			return tpl.ID == t.remove
		})
		if len(remaining) == len(templates) {
			fmt.Fprintf(os.Stderr, "Error: no template with id %q\n", t.remove)
			return subcommands.ExitFailure
		}
		if err := db.SaveTemplates(remaining); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving templates: %v\n", err)
			return subcommands.ExitFailure
		}
		defer db.Wait()
		fmt.Printf("Removed template %s\n", t.remove)

	default:
		printMarkdown(renderer.Templates(db.Read(), *defaultCurrency))
	}
	return subcommands.ExitSuccess
}
