package extract

// dedupSet is a bounded presence map over dedup keys, owned by one
// Extractor for one call. Once capacity is exceeded, Insert always
// reports the key as new so later errors are emitted unconditionally
// rather than dropped.
type dedupSet struct {
	seen     map[string]struct{}
	capacity int
}

func newDedupSet(capacity int) *dedupSet {
	return &dedupSet{
		seen:     make(map[string]struct{}),
		capacity: capacity,
	}
}

// Insert records the key and reports whether the record should be
// emitted.
func (d *dedupSet) Insert(key string) bool {
	if len(d.seen) >= d.capacity {
		// Past capacity: stop bookkeeping, always emit.
		return true
	}
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}
