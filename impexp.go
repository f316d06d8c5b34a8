package duoledger

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// this file contains functions to handle the import/export format.
// It is a reversible text encoding of the ledger document, suitable for
// pasting or transmitting out-of-band (chat, email) between the two parties.

// ErrInvalidImport rejects payloads that do not decode to a ledger document.
var ErrInvalidImport = errors.New("not a valid ledger export")

// Export encodes the ledger document, with the security log stripped, as a
// single base64 text token over the canonical JSON encoding.
func Export(l *Ledger) (string, error) {
	data, err := json.Marshal(l.Stripped())
	if err != nil {
		return "", fmt.Errorf("could not encode ledger for export: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Import decodes an export token back into a ledger document. The payload
// must carry at least one of the charges or payments fields to be accepted.
func Import(token string) (*Ledger, error) {
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	// Decode twice: once strictly into the document, once loosely to check
	// which fields the payload actually carried.
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	_, hasCharges := fields["charges"]
	_, hasPayments := fields["payments"]
	if !hasCharges && !hasPayments {
		return nil, fmt.Errorf("%w: payload carries neither charges nor payments", ErrInvalidImport)
	}

	l, err := DecodeLedger(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	// Whatever the token claimed, imported data carries no security log.
	l.SecurityLogs = []SecurityLogEntry{}
	return l, nil
}

// Export returns the current document as an export token.
func (db *DB) Export() (string, error) {
	return Export(db.store.Read())
}

// Import wholesale-replaces the local document with the decoded one, except
// the local security log which is preserved. The document clock is refreshed
// so the import propagates to the other party on the next push or pull.
func (db *DB) Import(token string) error {
	imported, err := Import(token)
	if err != nil {
		return err
	}
	local := db.store.Read()
	imported.SecurityLogs = local.SecurityLogs
	imported.touch()
	if err := db.store.Write(imported); err != nil {
		return err
	}
	db.pushAsync(imported)
	return nil
}
