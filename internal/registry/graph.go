package registry

// Referrer resolves target.ReferredBy against the merged collection.
// Unset or dangling references degrade to "no referrer found".
func Referrer(records []Record, target Record) (Record, bool) {
	if target.ReferredBy == "" {
		return Record{}, false
	}
	for _, r := range records {
		if r.ID == target.ReferredBy {
			return r, true
		}
	}
	return Record{}, false
}

// Referrals lists every record referred by target, in the order of the
// merged collection (newest first). Recomputed per call; nothing is
// persisted. No acyclicity is assumed.
func Referrals(records []Record, target Record) []Record {
	var out []Record
	for _, r := range records {
		if r.ReferredBy != "" && r.ReferredBy == target.ID {
			out = append(out, r)
		}
	}
	return out
}
