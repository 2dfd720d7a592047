package lexpos

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
)

const (
	// MinSize is the smallest encoded Position: a PrimaryKey plus a
	// single-byte index.
	MinSize = PrimaryKeySize + 1

	// MaxSize is the largest encoded Position: a PrimaryKey plus a
	// four-byte index.
	MaxSize = PrimaryKeySize + 4
)

// Position locates one occurrence of a term: the record it appears in and
// the strictly positive index of the occurrence within that record.
//
// Positions are immutable. Construct them with NewPosition or ReadPosition,
// or (preferably, when many equal values are expected) through an
// intern.Interner so that equal Positions share one instance.
type Position struct {
	record PrimaryKey
	index  int32

	// size is fixed at construction; enc is the compute-once byte cache
	// published by Bytes. Losers of the publication race adopt the
	// winner's slice, so all callers converge on one value.
	size int
	enc  atomic.Pointer[[]byte]
}

// NewPosition returns a Position for index within the record identified by
// record. It fails with ErrInvalidIndex if index is not positive.
func NewPosition(record PrimaryKey, index int32) (*Position, error) {
	if index <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIndex, index)
	}
	return &Position{
		record: record,
		index:  index,
		size:   PrimaryKeySize + indexWidth(index),
	}, nil
}

// ReadPosition decodes exactly one Position from b. The first
// PrimaryKeySize bytes are the record key; the remaining 1, 2 or 4 bytes
// are the index, its width inferred from the remaining length. Any other
// length fails with ErrBadFrame (or ErrShortBuffer if even the key does
// not fit), so the framing layer must slice frames exactly.
//
// ReadPosition retains b as the Position's cached encoding; the caller
// must not modify it afterwards. The index is trusted as written: bytes
// produced by a foreign encoder may carry a non-positive index, which
// ReadPosition does not reject.
func ReadPosition(b []byte) (*Position, error) {
	record, err := ReadPrimaryKey(b)
	if err != nil {
		return nil, err
	}

	var index int32
	switch rest := b[PrimaryKeySize:]; len(rest) {
	case 1:
		index = int32(int8(rest[0]))
	case 2:
		index = int32(int16(binary.BigEndian.Uint16(rest)))
	case 4:
		index = int32(binary.BigEndian.Uint32(rest))
	default:
		return nil, fmt.Errorf("%w: %d trailing index bytes (want 1, 2 or 4)", ErrBadFrame, len(rest))
	}

	p := &Position{
		record: record,
		index:  index,
		size:   len(b),
	}
	p.enc.Store(&b)
	return p, nil
}

// Record returns the key of the record this Position belongs to.
func (p *Position) Record() PrimaryKey { return p.record }

// Index returns the occurrence index within the record.
func (p *Position) Index() int32 { return p.index }

// Size returns the number of bytes in the Position's encoding.
func (p *Position) Size() int { return p.size }

// Bytes returns the Position's binary encoding: the record key followed by
// the index in its minimal signed width. The result is computed at most
// once and shared across calls; callers must treat it as read-only.
func (p *Position) Bytes() []byte {
	if b := p.enc.Load(); b != nil {
		return *b
	}
	b := p.AppendTo(make([]byte, 0, p.size))
	if p.enc.CompareAndSwap(nil, &b) {
		return b
	}
	return *p.enc.Load()
}

// AppendTo appends the Position's encoding to dst and returns the extended
// slice. Unlike Bytes it never shares cached state.
func (p *Position) AppendTo(dst []byte) []byte {
	dst = p.record.AppendTo(dst)
	switch {
	case p.index <= math.MaxInt8:
		return append(dst, byte(int8(p.index)))
	case p.index <= math.MaxInt16:
		return binary.BigEndian.AppendUint16(dst, uint16(int16(p.index)))
	default:
		return binary.BigEndian.AppendUint32(dst, uint32(p.index))
	}
}

// Compare orders Positions by record key first, then by index. It returns
// -1, 0 or 1. This is the canonical sort order for a term's postings:
// occurrences group by record and run in document order within it.
func (p *Position) Compare(other *Position) int {
	if c := p.record.Compare(other.record); c != 0 {
		return c
	}
	switch {
	case p.index < other.index:
		return -1
	case p.index > other.index:
		return 1
	default:
		return 0
	}
}

// Equal reports whether p and other denote the same record and index.
func (p *Position) Equal(other *Position) bool {
	return p.record == other.record && p.index == other.index
}

// Hash returns a hash of the Position consistent with Equal: equal
// Positions hash identically. The value is stable only within a process.
func (p *Position) Hash() uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	h = (h ^ uint64(p.record)) * prime
	h = (h ^ uint64(uint32(p.index))) * prime
	return h
}

// String renders the Position for debugging. The format is not part of the
// binary contract.
func (p *Position) String() string {
	return fmt.Sprintf("Position %d in Record %s", p.index, p.record)
}

// indexWidth returns the minimal number of bytes needed to encode index as
// a signed big-endian integer: 1, 2 or 4.
func indexWidth(index int32) int {
	switch {
	case index <= math.MaxInt8:
		return 1
	case index <= math.MaxInt16:
		return 2
	default:
		return 4
	}
}
