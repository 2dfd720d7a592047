package intern

import "sync/atomic"

// stats holds the Interner's internal counters.
type stats struct {
	hits      atomic.Uint64
	misses    atomic.Uint64
	reclaimed atomic.Uint64
}

// Stats is a point-in-time snapshot of an Interner's counters.
type Stats struct {
	// Hits counts requests served from the cache.
	Hits uint64
	// Misses counts requests that constructed and cached a new Position.
	Misses uint64
	// Reclaimed counts entries removed after their Position was
	// garbage-collected.
	Reclaimed uint64
}

// Stats returns a snapshot of the Interner's counters. The counters are
// read independently, so a snapshot taken under concurrent load is only
// approximately consistent.
func (i *Interner) Stats() Stats {
	return Stats{
		Hits:      i.stats.hits.Load(),
		Misses:    i.stats.misses.Load(),
		Reclaimed: i.stats.reclaimed.Load(),
	}
}
