package lexpos

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// PrimaryKeySize is the fixed number of bytes in an encoded PrimaryKey.
const PrimaryKeySize = 8

// PrimaryKey is the stable identifier of a record in the index.
//
// Keys are totally ordered by their numeric value. The encoding is
// big endian, so the byte-wise order of encoded keys matches the numeric
// order; storage layers may compare encoded keys directly.
type PrimaryKey uint64

// Compare returns -1, 0 or 1 depending on whether k orders before, equal
// to, or after other.
func (k PrimaryKey) Compare(other PrimaryKey) int {
	switch {
	case k < other:
		return -1
	case k > other:
		return 1
	default:
		return 0
	}
}

// Size returns PrimaryKeySize.
func (k PrimaryKey) Size() int { return PrimaryKeySize }

// Bytes returns the key's fixed-width big-endian encoding.
func (k PrimaryKey) Bytes() []byte {
	return k.AppendTo(make([]byte, 0, PrimaryKeySize))
}

// AppendTo appends the key's encoding to dst and returns the extended
// slice.
func (k PrimaryKey) AppendTo(dst []byte) []byte {
	return binary.BigEndian.AppendUint64(dst, uint64(k))
}

// String returns the key's decimal representation.
func (k PrimaryKey) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

// ReadPrimaryKey decodes a PrimaryKey from the first PrimaryKeySize bytes
// of b. Extra bytes are ignored; they belong to whatever follows the key
// in the enclosing frame.
func ReadPrimaryKey(b []byte) (PrimaryKey, error) {
	if len(b) < PrimaryKeySize {
		return 0, fmt.Errorf("%w: need %d bytes for primary key, got %d", ErrShortBuffer, PrimaryKeySize, len(b))
	}
	return PrimaryKey(binary.BigEndian.Uint64(b)), nil
}
