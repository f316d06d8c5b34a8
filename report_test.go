package duoledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestReportText(t *testing.T) {
	l := NewLedger()
	l.AppendCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(6000), "designer"))
	l.AppendPayment(NewPayment(Today(), "Cash", decimal.NewFromInt(2500), "", "client"))

	r := NewReport(l, "USD")
	text := r.Text()

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("report has %d lines, want 5:\n%s", len(lines), text)
	}
	if lines[0] != "DESIGN LEDGER REPORT" {
		t.Errorf("title = %q, want DESIGN LEDGER REPORT", lines[0])
	}
	wantPrefixes := []string{"Generated: ", "Total Costs: ", "Total Paid: ", "Net Balance: "}
	for i, p := range wantPrefixes {
		if !strings.HasPrefix(lines[i+1], p) {
			t.Errorf("line %d = %q, want prefix %q", i+1, lines[i+1], p)
		}
	}
}

func TestReportNetBalance(t *testing.T) {
	l := NewLedger()
	l.AppendCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(100), "designer"))
	l.AppendPayment(NewPayment(Today(), "Cash", decimal.NewFromInt(300), "", "client"))

	r := NewReport(l, "USD")
	if !r.NetBalance.Amount().Equal(decimal.NewFromInt(200)) {
		t.Errorf("NetBalance = %v, want 200 (paid minus costs)", r.NetBalance.Amount())
	}
	if !r.NetBalance.IsPositive() {
		t.Error("overpaid ledger should yield a positive net balance")
	}
}

func TestReportEmptyLedger(t *testing.T) {
	r := NewReport(NewLedger(), "LKR")
	if !r.TotalCosts.IsZero() || !r.TotalPaid.IsZero() || !r.NetBalance.IsZero() {
		t.Error("empty ledger should report all-zero totals")
	}
}
