package duoledger

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	return s
}

func TestReadMissingFileYieldsDefault(t *testing.T) {
	s := newTestStore(t)
	l := s.Read()
	if len(l.Charges) != 0 || len(l.Payments) != 0 {
		t.Error("missing file should yield an empty ledger")
	}
	if len(l.Templates) == 0 {
		t.Error("missing file should yield the default templates")
	}
}

func TestReadMalformedFileYieldsDefault(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.Dir(), ledgerFileName), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	l := s.Read()
	if len(l.Charges) != 0 || len(l.Templates) == 0 {
		t.Error("malformed file should yield the default ledger")
	}
	// The corrupt bytes are left in place until the next write.
	data, err := os.ReadFile(filepath.Join(s.Dir(), ledgerFileName))
	if err != nil || string(data) != "{broken" {
		t.Error("reading must not modify the file on disk")
	}
}

func TestWriteReadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	l := NewLedger()
	l.AppendCharge(NewCharge(MustParseDate("2025-06-01"), "Design", "logo set", decimal.NewFromInt(6000), "designer"))
	l.AppendPayment(NewPayment(MustParseDate("2025-06-02"), "Bank", decimal.NewFromInt(2500), "advance", "client"))

	if err := s.Write(l); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	got := s.Read()
	if !reflect.DeepEqual(got, l) {
		t.Errorf("roundtrip mismatch:\ngot  %+v\nwant %+v", got, l)
	}
}

func TestWriteNotifiesSubscribers(t *testing.T) {
	s := newTestStore(t)
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	if err := s.Write(NewLedger()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("got %d notifications after one write, want 1", calls)
	}

	unsubscribe()
	if err := s.Write(NewLedger()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("got %d notifications after unsubscribe, want still 1", calls)
	}
}

func TestSyncKeyLifecycle(t *testing.T) {
	s := newTestStore(t)
	if got := s.SyncKey(); got != "" {
		t.Errorf("fresh store SyncKey = %q, want empty", got)
	}

	if err := s.SetSyncKey("abc123"); err != nil {
		t.Fatalf("SetSyncKey returned error: %v", err)
	}
	if got := s.SyncKey(); got != "abc123" {
		t.Errorf("SyncKey = %q, want abc123", got)
	}

	if err := s.ClearSyncKey(); err != nil {
		t.Fatalf("ClearSyncKey returned error: %v", err)
	}
	if got := s.SyncKey(); got != "" {
		t.Errorf("SyncKey after clear = %q, want empty", got)
	}
	// Clearing again is a no-op, not an error.
	if err := s.ClearSyncKey(); err != nil {
		t.Errorf("second ClearSyncKey returned error: %v", err)
	}
}

func TestSyncKeyStoredApartFromLedger(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetSyncKey("abc123"); err != nil {
		t.Fatal(err)
	}
	l := NewLedger()
	l.AppendCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(1), "designer"))
	if err := s.Write(l); err != nil {
		t.Fatal(err)
	}
	// Rewriting the document must not disturb the key, and vice versa.
	if got := s.SyncKey(); got != "abc123" {
		t.Errorf("SyncKey = %q after document write, want abc123", got)
	}
	if err := s.ClearSyncKey(); err != nil {
		t.Fatal(err)
	}
	if got := s.Read(); len(got.Charges) != 1 {
		t.Error("clearing the sync key must not touch the ledger document")
	}
}
