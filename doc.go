// Package duoledger implements a two-party shared financial ledger: one side
// records design charges, the other records payments, and both ends of the
// relationship see the same running balance. It is designed to be local-first:
// every mutation lands in a plain JSON document on disk, and synchronization
// with the other party is opportunistic, through a third-party JSON document
// relay identified by a shared key.
//
// The core responsibilities are:
//   - Local Store: durable read/write of the single ledger document, with a
//     change notification fan-out to every open view on the same device.
//   - Mutation API: the only legitimate way to change ledger entities (add
//     charge, add payment, save templates, append/clear the security log).
//   - Sync Session: create, join and leave a shared remote document.
//   - Relay Client: create/replace/fetch of the document on the relay,
//     always with the local security log stripped out.
//   - Reconciler: a last-writer-wins merge of the remote copy into the
//     local one, keyed by the document's update timestamp.
//   - Poller: a periodic pull-reconcile-notify loop with an in-flight guard.
//
// This package serves as the foundational logic for the `dl` command-line
// tool; rendering, reporting and the reference relay server build on top of
// it and never touch the document file directly.
package duoledger
