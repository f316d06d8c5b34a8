package duoledger

import (
	"fmt"
	"strings"
	"time"
)

// Report is the exportable summary of the ledger's financial position.
// Its values are the core totals; the text rendering below is the boundary
// format shared with the other party.
type Report struct {
	GeneratedAt time.Time
	TotalCosts  Money
	TotalPaid   Money
	NetBalance  Money
}

// NewReport computes a report over the ledger in the given display currency.
func NewReport(l *Ledger, currency string) *Report {
	costs := M(l.TotalCosts(), currency)
	paid := M(l.TotalPaid(), currency)
	return &Report{
		GeneratedAt: time.Now(),
		TotalCosts:  costs,
		TotalPaid:   paid,
		NetBalance:  paid.Sub(costs),
	}
}

// Text renders the report in its plain-text form: title, generation
// timestamp, total costs, total paid, net balance.
func (r *Report) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DESIGN LEDGER REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Costs: %s\n", r.TotalCosts)
	fmt.Fprintf(&b, "Total Paid: %s\n", r.TotalPaid)
	fmt.Fprintf(&b, "Net Balance: %s\n", r.NetBalance)
	return b.String()
}
