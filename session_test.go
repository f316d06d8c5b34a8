package duoledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestStartNewSyncLinksDevice(t *testing.T) {
	db, relay := newTestDB(t)
	relay.createKey = "brand-new-key"

	key, err := db.StartNewSync(context.Background())
	if err != nil {
		t.Fatalf("StartNewSync returned error: %v", err)
	}
	if key != "brand-new-key" {
		t.Errorf("key = %q, want brand-new-key", key)
	}
	if !db.Linked() || db.SyncKey() != "brand-new-key" {
		t.Error("device should be linked after StartNewSync")
	}
}

func TestStartNewSyncFailureLeavesDeviceUnlinked(t *testing.T) {
	db, relay := newTestDB(t)
	if err := db.AddCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(100), "designer")); err != nil {
		t.Fatal(err)
	}
	db.Wait()

	relay.err = ErrRelayUnavailable
	_, err := db.StartNewSync(context.Background())
	if !errors.Is(err, ErrRelayUnavailable) {
		t.Fatalf("error %v should wrap ErrRelayUnavailable", err)
	}
	if db.Linked() {
		t.Error("device must stay unlinked after a failed session start")
	}
	if l := db.Read(); len(l.Charges) != 1 {
		t.Error("local data must survive a failed session start")
	}
}

func TestJoinSyncRejectsEmptyKey(t *testing.T) {
	db, _ := newTestDB(t)
	if err := db.JoinSync(""); !errors.Is(err, ErrEmptySyncKey) {
		t.Errorf("JoinSync(\"\") = %v, want ErrEmptySyncKey", err)
	}
	if db.Linked() {
		t.Error("device must stay unlinked after a rejected join")
	}
}

func TestJoinSyncDoesNotValidateKey(t *testing.T) {
	db, _ := newTestDB(t)
	// Any non-empty key links immediately; the next pull decides whether it
	// resolves to a document.
	if err := db.JoinSync("possibly-bogus"); err != nil {
		t.Fatalf("JoinSync returned error: %v", err)
	}
	if db.SyncKey() != "possibly-bogus" {
		t.Errorf("SyncKey = %q, want possibly-bogus", db.SyncKey())
	}
}

func TestLeaveSyncRetainsData(t *testing.T) {
	db, _ := newTestDB(t)
	if err := db.JoinSync("fake-key"); err != nil {
		t.Fatal(err)
	}
	if err := db.AddCharge(NewCharge(Today(), "Design", "", decimal.NewFromInt(100), "designer")); err != nil {
		t.Fatal(err)
	}
	db.Wait()

	if err := db.LeaveSync(); err != nil {
		t.Fatalf("LeaveSync returned error: %v", err)
	}
	if db.Linked() {
		t.Error("device should be unlinked after LeaveSync")
	}
	if l := db.Read(); len(l.Charges) != 1 {
		t.Error("local data must be retained after leaving a session")
	}
}
