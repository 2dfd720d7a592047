package lexpos

// Byteable is the encoding boundary for index primitives.
//
// Lexpos intentionally keeps the wire format tagless and minimal: a
// Byteable knows its own encoded size, and the framing layer (segment
// files, posting blocks) is responsible for recording how many bytes each
// value occupies. Decoders are per-type functions, not part of the
// interface, because the decode contract differs (fixed width for
// PrimaryKey, length-inferred width for Position).
//
// Implementations must be safe for concurrent use; returned slices must be
// treated as read-only.
type Byteable interface {
	// Size returns the number of bytes Bytes will produce.
	Size() int

	// Bytes returns the value's binary encoding. The slice is shared,
	// possibly cached state: callers must not modify it.
	Bytes() []byte

	// AppendTo appends the value's binary encoding to dst and returns the
	// extended slice.
	AppendTo(dst []byte) []byte
}

var (
	_ Byteable = PrimaryKey(0)
	_ Byteable = (*Position)(nil)
)
