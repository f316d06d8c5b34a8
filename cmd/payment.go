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

type paymentCmd struct {
	date    string
	method  string
	amount  string
	note    string
	addedBy string
}

func (*paymentCmd) Name() string     { return "payment" }
func (*paymentCmd) Synopsis() string { return "record a payment in the ledger" }
func (*paymentCmd) Usage() string {
	return `dl payment -a <amount> [-method <method>] [-d <date>] [-m <note>] [-by <name>]

  Records money received against the ledger's charges.

Usage Examples:
# Record a bank transfer.
$ dl payment -a 5000 -method "Bank Transfer" -by Ravi
`
}

func (p *paymentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", duoledger.Today().String(), "Date of the payment.")
	f.StringVar(&p.method, "method", "Cash", "Payment method.")
	f.StringVar(&p.amount, "a", "", "Amount paid.")
	f.StringVar(&p.note, "m", "", "Optional free-text note.")
	f.StringVar(&p.addedBy, "by", "", "Display name of the person recording the payment.")
}

func (p *paymentCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: a payment needs an amount (-a).")
		return subcommands.ExitUsageError
	}

	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	on, err := duoledger.ParseDate(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitFailure
	}

	value, err := decimal.NewFromString(p.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", p.amount, err)
		return subcommands.ExitFailure
	}
	if value.IsNegative() {
		fmt.Fprintln(os.Stderr, "Error: a payment amount cannot be negative.")
		return subcommands.ExitFailure
	}

	payment := duoledger.NewPayment(on, p.method, value, p.note, p.addedBy)
	if err := db.AddPayment(payment); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording payment: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Wait()

	fmt.Printf("Recorded payment of %s by %s on %s\n", duoledger.M(value, *defaultCurrency), p.method, on)
	return subcommands.ExitSuccess
}
