package duoledger

// Reconcile merges a freshly fetched remote document into the local one
// using a whole-document last-writer-wins rule keyed by UpdatedAt.
//
// If remote is nil there is no usable remote data and local is returned
// unchanged. The remote document wins when the local one has never been
// mutated (zero clock) or when the remote clock is strictly greater. A
// winning remote gets the local security log spliced back in (the remote's
// stripped log is never authoritative) and, if it carries no templates, the
// local templates as fallback.
//
// This deliberately does not merge individual entries: if both parties
// added different charges since the last sync, one side's additions are
// discarded. An id-keyed append-only merge of charges and payments would be
// a strict improvement if the product ever needs it.
func Reconcile(local, remote *Ledger) (merged *Ledger, overwritten bool) {
	if remote == nil {
		return local, false
	}
	if local.UpdatedAt != 0 && remote.UpdatedAt <= local.UpdatedAt {
		return local, false
	}

	result := *remote
	result.SecurityLogs = local.SecurityLogs
	if len(result.Templates) == 0 {
		result.Templates = local.Templates
	}
	result.normalize()
	return &result, true
}
