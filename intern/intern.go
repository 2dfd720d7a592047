// Package intern deduplicates live Position instances.
//
// A search index that materializes posting lists decodes the same
// (record, index) pair over and over. Interning makes logically equal
// Positions physically identical, which collapses the heap footprint of
// large result sets and lets equality fall back to pointer identity.
//
// The cache holds its entries weakly: an interned Position that no caller
// references anymore is garbage-collected like any other value, and its
// entry is removed. A long-running process that streams over many distinct
// positions therefore does not accumulate them.
package intern

import (
	"log/slog"
	"runtime"
	"weak"

	"github.com/go4org/hashtriemap"
	"github.com/hupe1980/lexpos"
)

// key is the composite cache key for one interned Position.
type key struct {
	record lexpos.PrimaryKey
	index  int32
}

// Interner maps (record, index) pairs to canonical *lexpos.Position
// instances. It is safe for concurrent use; the zero value is not valid,
// use New.
//
// Interners are independent: two Interners may hold distinct instances for
// the same pair. Share one Interner across every code path that should see
// canonical Positions (typically one per search index, created at open
// time).
type Interner struct {
	entries hashtriemap.HashTrieMap[key, weak.Pointer[lexpos.Position]]
	logger  *slog.Logger
	stats   stats
}

// New creates an Interner.
func New(optFns ...func(o *Options)) *Interner {
	opts := Options{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Interner{
		logger: opts.Logger,
	}
}

// Get returns the canonical Position for (record, index), constructing and
// caching one on first request. It fails with lexpos.ErrInvalidIndex if
// index is not positive; nothing is cached in that case.
func (i *Interner) Get(record lexpos.PrimaryKey, index int32) (*lexpos.Position, error) {
	k := key{record: record, index: index}
	if wp, ok := i.entries.Load(k); ok {
		if p := wp.Value(); p != nil {
			i.stats.hits.Add(1)
			return p, nil
		}
		// Collected but not yet cleaned up; evict so the slow path can
		// install a fresh entry.
		i.entries.CompareAndDelete(k, wp)
	}

	p, err := lexpos.NewPosition(record, index)
	if err != nil {
		return nil, err
	}
	return i.intern(k, p), nil
}

// Decode decodes one encoded Position from b (see lexpos.ReadPosition for
// the framing contract) and interns it by its decoded fields. If an equal
// Position is already live, that instance is returned and the freshly
// decoded one is discarded, so decoding never yields a second live
// instance equal to an existing one.
//
// Like ReadPosition, Decode does not validate that the decoded index is
// positive.
func (i *Interner) Decode(b []byte) (*lexpos.Position, error) {
	p, err := lexpos.ReadPosition(b)
	if err != nil {
		return nil, err
	}
	return i.intern(key{record: p.Record(), index: p.Index()}, p), nil
}

// intern installs p as the canonical instance for k unless a live one is
// already cached, in which case the cached instance wins. A lost race
// still converges: every caller ends up with the single instance that made
// it into the map.
func (i *Interner) intern(k key, p *lexpos.Position) *lexpos.Position {
	for {
		wp := weak.Make(p)
		if old, loaded := i.entries.LoadOrStore(k, wp); loaded {
			if q := old.Value(); q != nil {
				i.stats.hits.Add(1)
				return q
			}
			i.entries.CompareAndDelete(k, old)
			continue
		}
		i.stats.misses.Add(1)
		// The cleanup must not capture p, only the weak pointer: the
		// CompareAndDelete guard keeps it from removing a newer entry
		// installed after this one was reclaimed.
		runtime.AddCleanup(p, func(k key) {
			if i.entries.CompareAndDelete(k, wp) {
				i.stats.reclaimed.Add(1)
				i.logger.Debug("interner: reclaimed entry",
					"record", k.record, "index", k.index)
			}
		}, k)
		return p
	}
}

// Len returns the number of live entries. Entries whose Position has been
// collected but not yet cleaned up are not counted.
func (i *Interner) Len() int {
	n := 0
	i.entries.Range(func(_ key, wp weak.Pointer[lexpos.Position]) bool {
		if wp.Value() != nil {
			n++
		}
		return true
	})
	return n
}
