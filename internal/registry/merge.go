package registry

import "sort"

// Merge combines device-local and server-backed records into the single
// view every consumer reads: newest first by creation time. It is pure
// and performs no deduplication; duplicate phones are rejected at
// creation time, never repaired here. Records whose wire timestamp
// failed to parse carry the zero time and therefore sort last.
func Merge(local, remote []Record) []Record {
	merged := make([]Record, 0, len(local)+len(remote))
	merged = append(merged, local...)
	merged = append(merged, remote...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// FindByPhone scans for a record with the given normalized phone. The
// comparison is an exact match on the canonical form.
func FindByPhone(records []Record, normalizedPhone string) (Record, bool) {
	if normalizedPhone == "" {
		return Record{}, false
	}
	for _, r := range records {
		if r.Phone == normalizedPhone {
			return r, true
		}
	}
	return Record{}, false
}
