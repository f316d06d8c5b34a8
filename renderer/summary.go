package renderer

import (
	"github.com/etnz/duoledger"
)

// Summary renders the dashboard view of a ledger: totals, sync state, and
// the most recent activity.
func Summary(l *duoledger.Ledger, currency, syncKey string) string {
	r := newRenderer()

	r.Printf("# Ledger Summary\n\n")

	costs := duoledger.M(l.TotalCosts(), currency)
	paid := duoledger.M(l.TotalPaid(), currency)
	balance := paid.Sub(costs)

	r.Printf("| Total Costs | Total Paid | Net Balance |\n")
	r.Printf("|:---|:---|:---|\n")
	r.Printf("| %s | %s | %s |\n\n", costs, paid, balance.SignedString())

	if syncKey != "" {
		r.Printf("Live sync enabled, key `%s`.\n\n", syncKey)
	} else {
		r.Printf("Local mode, no sync key set.\n\n")
	}

	if len(l.Charges) > 0 {
		r.renderCharges(l, currency)
	}
	if len(l.Payments) > 0 {
		r.renderPayments(l, currency)
	}
	return r.String()
}

// Charges renders the charge list alone.
func Charges(l *duoledger.Ledger, currency string) string {
	r := newRenderer()
	r.renderCharges(l, currency)
	return r.String()
}

// Payments renders the payment list alone.
func Payments(l *duoledger.Ledger, currency string) string {
	r := newRenderer()
	r.renderPayments(l, currency)
	return r.String()
}

func (r *mdRenderer) renderCharges(l *duoledger.Ledger, currency string) {
	r.Printf("## Charges\n\n")
	r.Printf("| Date | Type | Description | Amount | Added By |\n")
	r.Printf("|:---|:---|:---|---:|:---|\n")
	for _, c := range l.Charges {
		r.Printf("| %s | %s | %s | %s | %s |\n",
			c.Date, c.Type, c.Description, duoledger.M(c.Amount, currency), c.AddedBy)
	}
	r.Printf("\n")
}

func (r *mdRenderer) renderPayments(l *duoledger.Ledger, currency string) {
	r.Printf("## Payments\n\n")
	r.Printf("| Date | Method | Note | Amount | Added By |\n")
	r.Printf("|:---|:---|:---|---:|:---|\n")
	for _, p := range l.Payments {
		r.Printf("| %s | %s | %s | %s | %s |\n",
			p.Date, p.Method, p.Note, duoledger.M(p.Amount, currency), p.AddedBy)
	}
	r.Printf("\n")
}

// Templates renders the price template list.
func Templates(l *duoledger.Ledger, currency string) string {
	r := newRenderer()
	r.Printf("## Price Templates\n\n")
	if len(l.Templates) == 0 {
		r.Printf("No templates defined.\n")
		return r.String()
	}
	r.Printf("| ID | Name | Amount |\n")
	r.Printf("|:---|:---|---:|\n")
	for _, t := range l.Templates {
		r.Printf("| %s | %s | %s |\n", t.ID, t.Name, duoledger.M(t.Amount, currency))
	}
	r.Printf("\n")
	return r.String()
}

// SecurityLogs renders the local audit trail of failed login attempts.
func SecurityLogs(l *duoledger.Ledger) string {
	r := newRenderer()
	r.Printf("## Security Log\n\n")
	if len(l.SecurityLogs) == 0 {
		r.Printf("No failed login attempts recorded.\n")
		return r.String()
	}
	r.Printf("| When | Attempted Email | Status |\n")
	r.Printf("|:---|:---|:---|\n")
	for _, e := range l.SecurityLogs {
		r.Printf("| %s | %s | %s |\n", e.Date, e.AttemptedEmail, e.Status)
	}
	r.Printf("\n")
	return r.String()
}
