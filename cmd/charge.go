package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/duoledger"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type chargeCmd struct {
	date        string
	chargeType  string
	description string
	amount      string
	template    string
	addedBy     string
}

func (*chargeCmd) Name() string     { return "charge" }
func (*chargeCmd) Synopsis() string { return "record a design charge in the ledger" }
func (*chargeCmd) Usage() string {
	return `dl charge -t <type> -a <amount> [-d <date>] [-m <description>] [-by <name>]
dl charge -from <template> [-d <date>] [-m <description>] [-by <name>]

  Records a cost entry. With -from, the charge's type and amount are seeded
  from a price template; -t and -a override the seeded values.

Usage Examples:
# Record an ad-hoc charge.
$ dl charge -t "Logo Design" -a 1500 -by Sanjaya

# Record a charge from a preset.
$ dl charge -from "Photo Retouch" -by Sanjaya
`
}

func (c *chargeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", duoledger.Today().String(), "Date of the service.")
	f.StringVar(&c.chargeType, "t", "", "Category of the charge.")
	f.StringVar(&c.description, "m", "", "Optional free-text description.")
	f.StringVar(&c.amount, "a", "", "Amount charged.")
	f.StringVar(&c.template, "from", "", "Price template to seed type and amount from.")
	f.StringVar(&c.addedBy, "by", "", "Display name of the person recording the charge.")
}

func (c *chargeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	on, err := duoledger.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	chargeType, amount := c.chargeType, c.amount
	if c.template != "" {
		tpl := db.Read().Template(c.template)
		if tpl == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown price template %q\n", c.template)
			return subcommands.ExitFailure
		}
		if chargeType == "" {
			chargeType = tpl.Name
		}
		if amount == "" {
			amount = tpl.Amount.String()
		}
	}
	if chargeType == "" || amount == "" {
		fmt.Fprintln(os.Stderr, "Error: a charge needs a type (-t) and an amount (-a), or a template (-from).")
		return subcommands.ExitUsageError
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", amount, err)
		return subcommands.ExitFailure
	}
	if value.IsNegative() {
		fmt.Fprintln(os.Stderr, "Error: a charge amount cannot be negative.")
		return subcommands.ExitFailure
	}

	charge := duoledger.NewCharge(on, chargeType, c.description, value, c.addedBy)
	if err := db.AddCharge(charge); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording charge: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Wait()

	fmt.Printf("Recorded charge %q of %s on %s\n", chargeType, duoledger.M(value, *defaultCurrency), on)
	return subcommands.ExitSuccess
}
