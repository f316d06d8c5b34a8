package duoledger

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// File names under the store's data directory.
const (
	ledgerFileName  = "ledger.json"
	syncKeyFileName = "sync-key"
	markerFileName  = ".changed"
	lockFileName    = ".lock"
)

// Store owns the canonical ledger document on this device: one JSON document
// file plus one sync-key file under a data directory. It is the only
// component that reads or writes them.
//
// A Store is constructed once and passed by reference to every consumer;
// there is no package-level instance.
type Store struct {
	dir      string
	lock     *flock.Flock
	notifier *Notifier
}

// NewStore opens (creating if needed) the data directory and returns a store
// bound to it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	return &Store{
		dir:      dir,
		lock:     flock.New(filepath.Join(dir, lockFileName)),
		notifier: NewNotifier(filepath.Join(dir, markerFileName)),
	}, nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dir }

// Notifier returns the store's change notifier.
func (s *Store) Notifier() *Notifier { return s.notifier }

// Subscribe registers a change handler and returns its unsubscribe function.
func (s *Store) Subscribe(handler func()) (unsubscribe func()) {
	return s.notifier.Subscribe(handler)
}

// Read returns the current ledger document. It never fails: a missing file
// yields a default-seeded document, and a malformed file is treated as
// absent (the corrupt bytes stay on disk untouched until the next write).
func (s *Store) Read() *Ledger {
	data, err := os.ReadFile(filepath.Join(s.dir, ledgerFileName))
	if err != nil {
		return NewLedger()
	}
	l, err := DecodeLedger(bytes.NewReader(data))
	if err != nil {
		log.Printf("ignoring malformed ledger document: %v", err)
		return NewLedger()
	}
	return l
}

// Write durably persists the ledger document and broadcasts a change signal.
// The write is atomic (temp file + rename) and serialized against other
// processes on the same device through a file lock.
func (s *Store) Write(l *Ledger) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("could not lock data directory %q: %w", s.dir, err)
	}
	defer s.lock.Unlock()

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, l); err != nil {
		return err
	}

	path := filepath.Join(s.dir, ledgerFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("could not write ledger document: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("could not replace ledger document: %w", err)
	}

	s.notifier.Notify()
	return nil
}

// SyncKey returns the sync key set on this device, or "" when unlinked.
// The key is a device setting, stored apart from the ledger document.
func (s *Store) SyncKey() string {
	data, err := os.ReadFile(filepath.Join(s.dir, syncKeyFileName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetSyncKey persists the sync key and broadcasts a change signal.
func (s *Store) SetSyncKey(key string) error {
	if err := os.WriteFile(filepath.Join(s.dir, syncKeyFileName), []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("could not write sync key: %w", err)
	}
	s.notifier.Notify()
	return nil
}

// ClearSyncKey removes the sync key and broadcasts a change signal.
// Clearing an absent key is a no-op.
func (s *Store) ClearSyncKey() error {
	err := os.Remove(filepath.Join(s.dir, syncKeyFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not clear sync key: %w", err)
	}
	s.notifier.Notify()
	return nil
}
