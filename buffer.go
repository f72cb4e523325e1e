package ioloop

// InlineBufferSize is the capacity of a Buffer's inline storage, used to
// avoid a heap allocation for small, short-lived read/write operations.
const InlineBufferSize = 32

// Buffer is the read/write payload carried by an Operation. It is either a
// caller-owned (borrowed) byte slice, or a small inline array embedded
// directly in the Buffer value. The inline variant carries an explicit
// length, since its backing array is always InlineBufferSize long.
type Buffer struct {
	slice     []byte
	inline    [InlineBufferSize]byte
	inlineLen int
	isInline  bool
}

// SliceBuffer wraps a caller-owned byte slice as a Buffer. The slice must
// remain valid and unmodified by the caller for as long as the owning
// Completion is not dead.
func SliceBuffer(b []byte) Buffer {
	return Buffer{slice: b}
}

// InlineBuffer copies up to InlineBufferSize bytes of b into a Buffer backed
// by inline storage, with no further reference to b retained. Longer writes
// should use SliceBuffer instead; Bytes() reports only what was copied.
func InlineBuffer(b []byte) Buffer {
	var buf Buffer
	buf.isInline = true
	buf.inlineLen = copy(buf.inline[:], b)
	return buf
}

// InlineReadBuffer returns an empty inline Buffer of capacity
// InlineBufferSize, suitable as a read target; Bytes() exposes the full
// backing array so a read operation can fill it.
func InlineReadBuffer() Buffer {
	var buf Buffer
	buf.isInline = true
	buf.inlineLen = InlineBufferSize
	return buf
}

// Bytes returns the buffer's contents: the borrowed slice, or the occupied
// prefix of the inline array.
func (b *Buffer) Bytes() []byte {
	if b.isInline {
		return b.inline[:b.inlineLen]
	}
	return b.slice
}

// IsInline reports whether the Buffer uses inline storage.
func (b *Buffer) IsInline() bool { return b.isInline }

// Truncate shrinks the buffer to n bytes, used after a read/recv operation
// reports fewer bytes transferred than the buffer's capacity.
func (b *Buffer) Truncate(n int) {
	if b.isInline {
		b.inlineLen = n
		return
	}
	b.slice = b.slice[:n]
}

// Len reports the number of bytes currently addressable by the Buffer.
func (b *Buffer) Len() int { return len(b.Bytes()) }
