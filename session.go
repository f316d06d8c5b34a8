package duoledger

import (
	"context"
	"errors"
	"fmt"
)

// The sync session is a two-state machine: Unlinked (no sync key on this
// device) and Linked (a key is set). Linking does not guarantee a successful
// first sync; a pull or push must still occur.

// ErrEmptySyncKey rejects joining with a blank key.
var ErrEmptySyncKey = errors.New("sync key is empty")

// Linked reports whether a sync key is set on this device.
func (db *DB) Linked() bool { return db.store.SyncKey() != "" }

// SyncKey returns the sync key set on this device, or "" when unlinked.
func (db *DB) SyncKey() string { return db.store.SyncKey() }

// StartNewSync creates a new remote document seeded from the current local
// ledger (security log stripped) and links this device to it. On relay
// failure the error wraps ErrRelayUnavailable and the device stays unlinked,
// local data untouched.
func (db *DB) StartNewSync(ctx context.Context) (string, error) {
	key, err := db.relay.Create(ctx, db.store.Read())
	if err != nil {
		return "", fmt.Errorf("could not start sync session: %w", err)
	}
	if err := db.store.SetSyncKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// JoinSync links this device to an existing remote document. The key is not
// validated against the relay: the next pull determines whether it actually
// resolves to a document.
func (db *DB) JoinSync(key string) error {
	if key == "" {
		return ErrEmptySyncKey
	}
	return db.store.SetSyncKey(key)
}

// LeaveSync unlinks this device. Local data is retained unchanged.
func (db *DB) LeaveSync() error {
	return db.store.ClearSyncKey()
}
