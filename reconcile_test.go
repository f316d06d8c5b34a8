package duoledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReconcile(t *testing.T) {
	testCases := []struct {
		name            string
		local           func() *Ledger
		remote          func() *Ledger
		wantOverwritten bool
	}{
		{
			name:            "no remote document",
			local:           func() *Ledger { l := NewLedger(); l.UpdatedAt = 10; return l },
			remote:          func() *Ledger { return nil },
			wantOverwritten: false,
		},
		{
			name:            "remote older",
			local:           func() *Ledger { l := NewLedger(); l.UpdatedAt = 10; return l },
			remote:          func() *Ledger { l := NewLedger(); l.UpdatedAt = 5; return l },
			wantOverwritten: false,
		},
		{
			name:            "clocks equal",
			local:           func() *Ledger { l := NewLedger(); l.UpdatedAt = 10; return l },
			remote:          func() *Ledger { l := NewLedger(); l.UpdatedAt = 10; return l },
			wantOverwritten: false,
		},
		{
			name:            "remote newer",
			local:           func() *Ledger { l := NewLedger(); l.UpdatedAt = 10; return l },
			remote:          func() *Ledger { l := NewLedger(); l.UpdatedAt = 20; return l },
			wantOverwritten: true,
		},
		{
			name:  "local never mutated",
			local: func() *Ledger { return NewLedger() },
			// Even a zero-clock remote wins over a never-mutated local.
			remote:          func() *Ledger { return NewLedger() },
			wantOverwritten: true,
		},
	}
	for _, tc := range testCases {
		local, remote := tc.local(), tc.remote()
		merged, overwritten := Reconcile(local, remote)
		if overwritten != tc.wantOverwritten {
			t.Errorf("%s: overwritten = %v, want %v", tc.name, overwritten, tc.wantOverwritten)
		}
		if !overwritten && merged != local {
			t.Errorf("%s: losing reconcile should return the local document unchanged", tc.name)
		}
	}
}

func TestReconcileSplicesLocalSecurityLog(t *testing.T) {
	local := NewLedger()
	local.UpdatedAt = 10
	local.AppendSecurityLog(NewSecurityLog("x@example.com", LogWrongPassword))

	remote := NewLedger()
	remote.AppendCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(500), "designer"))
	remote.UpdatedAt = 20

	merged, overwritten := Reconcile(local, remote)
	if !overwritten {
		t.Fatal("newer remote should overwrite")
	}
	if len(merged.Charges) != 1 {
		t.Errorf("merged carries %d charges, want the remote's 1", len(merged.Charges))
	}
	if len(merged.SecurityLogs) != 1 || merged.SecurityLogs[0].AttemptedEmail != "x@example.com" {
		t.Error("merged document should keep the local security log")
	}
}

func TestReconcileFallsBackToLocalTemplates(t *testing.T) {
	local := NewLedger() // carries the default templates
	local.UpdatedAt = 10

	remote := &Ledger{UpdatedAt: 20} // sparse remote without templates

	merged, overwritten := Reconcile(local, remote)
	if !overwritten {
		t.Fatal("newer remote should overwrite")
	}
	if len(merged.Templates) != len(local.Templates) {
		t.Errorf("merged carries %d templates, want the local %d as fallback",
			len(merged.Templates), len(local.Templates))
	}
}

func TestReconcileKeepsRemoteTemplatesWhenPresent(t *testing.T) {
	local := NewLedger()
	local.UpdatedAt = 10

	remote := NewLedger()
	remote.SetTemplates([]PriceTemplate{{ID: "9", Name: "Rush Job", Amount: decimal.NewFromInt(1500)}})
	remote.UpdatedAt = 20

	merged, _ := Reconcile(local, remote)
	if len(merged.Templates) != 1 || merged.Templates[0].Name != "Rush Job" {
		t.Error("a winning remote's templates are authoritative when present")
	}
}
