package duoledger

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// DB binds the local store and the relay client into the ledger mutation
// API: the only legitimate way to change ledger entities.
//
// Every mutation reads the current document, applies its change, and writes
// it back through the store (inheriting the store's notify side effect).
// Sync-eligible mutations additionally push to the relay in the background
// when a sync key is set; the local write never waits for, nor is rolled
// back by, the remote push.
type DB struct {
	store *Store
	relay Relay

	syncing atomic.Bool // in-flight guard shared by the poller and manual sync
	pushes  sync.WaitGroup
}

// NewDB creates the mutation API over a store and a relay client.
func NewDB(store *Store, relay Relay) *DB {
	return &DB{store: store, relay: relay}
}

// Store returns the underlying local store.
func (db *DB) Store() *Store { return db.store }

// Read returns the current ledger document.
func (db *DB) Read() *Ledger { return db.store.Read() }

// Subscribe registers a change handler and returns its unsubscribe function.
func (db *DB) Subscribe(handler func()) (unsubscribe func()) {
	return db.store.Subscribe(handler)
}

// AddCharge records a charge: write locally, notify, push in the background.
func (db *DB) AddCharge(c Charge) error {
	l := db.store.Read()
	l.AppendCharge(c)
	if err := db.store.Write(l); err != nil {
		return err
	}
	db.pushAsync(l)
	return nil
}

// AddPayment records a payment: write locally, notify, push in the background.
func (db *DB) AddPayment(p Payment) error {
	l := db.store.Read()
	l.AppendPayment(p)
	if err := db.store.Write(l); err != nil {
		return err
	}
	db.pushAsync(l)
	return nil
}

// SaveTemplates replaces the price templates.
func (db *DB) SaveTemplates(ts []PriceTemplate) error {
	l := db.store.Read()
	l.SetTemplates(ts)
	if err := db.store.Write(l); err != nil {
		return err
	}
	db.pushAsync(l)
	return nil
}

// AppendSecurityLog records a failed login attempt. The security log is
// local-only: this neither bumps the document clock nor pushes.
func (db *DB) AppendSecurityLog(e SecurityLogEntry) error {
	l := db.store.Read()
	l.AppendSecurityLog(e)
	return db.store.Write(l)
}

// ClearSecurityLogs empties the security log. Local-only, like append.
func (db *DB) ClearSecurityLogs() error {
	l := db.store.Read()
	l.ClearSecurityLogs()
	return db.store.Write(l)
}

// Sync performs one pull-reconcile-notify pass against the relay. It reports
// whether the local document was overwritten by the remote one.
//
// Only one pass runs at a time: a call arriving while another is in flight
// is a no-op, not queued. Unlinked devices and unreachable relays are also
// no-ops; pull failures are logged, never surfaced.
func (db *DB) Sync(ctx context.Context) (overwritten bool, err error) {
	key := db.store.SyncKey()
	if key == "" {
		return false, nil
	}
	if !db.syncing.CompareAndSwap(false, true) {
		return false, nil // a pass is already in flight
	}
	defer db.syncing.Store(false)

	remote, err := db.relay.Pull(ctx, key)
	if err != nil {
		log.Printf("sync pull failed, keeping local state: %v", err)
		return false, nil
	}

	local := db.store.Read()
	merged, overwritten := Reconcile(local, remote)
	if !overwritten {
		return false, nil
	}
	// The reconciler is the only path allowed to overwrite the store from a
	// remote read. The store write notifies; it never pushes back.
	if err := db.store.Write(merged); err != nil {
		return false, err
	}
	return true, nil
}

// pushAsync replaces the remote document in a detached background task.
// Failures are logged only: the next interval's sync is the retry.
func (db *DB) pushAsync(l *Ledger) {
	key := db.store.SyncKey()
	if key == "" {
		return
	}
	db.pushes.Add(1)
	go func() {
		defer db.pushes.Done()
		ctx, cancel := context.WithTimeout(context.Background(), relayTimeout)
		defer cancel()
		if err := db.relay.Push(ctx, key, l); err != nil {
			log.Printf("background push failed (remote will catch up on a later sync): %v", err)
		}
	}()
}

// Wait blocks until all in-flight background pushes have completed. Used on
// shutdown and in tests; regular callers never wait on pushes.
func (db *DB) Wait() { db.pushes.Wait() }
