// Package lexpos provides the position primitives used by lexical
// (inverted) search indexes: a fixed-width record identifier, an immutable
// Position value that locates a term occurrence inside a record, and a
// compact tagless binary encoding for both.
//
// # Positions
//
// A Position associates a PrimaryKey with a strictly positive index, the
// relative location of a term within that record. Positions are pure
// values: once constructed they never change, and their encoding is
// computed at most once.
//
//	p, _ := lexpos.NewPosition(lexpos.PrimaryKey(42), 7)
//	fmt.Println(p)        // Position 7 in Record 42
//	frame := p.Bytes()    // 9 bytes: 8-byte key + 1-byte index
//
// # Encoding
//
// The binary layout is the identifier's 8 fixed bytes followed by the
// index in its minimal signed width (1, 2 or 4 bytes, big endian). There
// is no width tag: the decoder infers the width from the slice length, so
// the framing layer must hand ReadPosition exactly one encoded Position.
//
//	q, _ := lexpos.ReadPosition(frame)
//	p.Equal(q) // true
//
// # Interning
//
// The intern subpackage deduplicates live Positions so that logically
// equal values are physically identical, without pinning unused ones in
// memory. Index code that materializes large posting lists should go
// through an intern.Interner rather than NewPosition.
//
// # Ordering
//
// Positions order by record first, then by index. This is the canonical
// sort order for the postings of a single term: all occurrences within one
// record are adjacent and in document order.
package lexpos
