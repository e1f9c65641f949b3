package filecursor

// Source is the byte store a Cursor reads from. Fetch returns up to size
// bytes starting at the absolute offset. Returning fewer bytes than
// requested signals that no data exists past the returned bytes; it is not
// an error. Errors are handed back to the cursor's caller unchanged.
//
// The cursor keeps the returned slice as its cache and never modifies it.
// Implementations may reuse the slice's memory on the next call to Fetch,
// but must leave it untouched until then. Bytes handed to callers are always
// copied out of the cache.
//
// The cursor never retains a Source past its own lifetime and never closes
// it. Implementations for files, memory maps and in-memory buffers live in
// the source package.
type Source interface {
	Fetch(offset int64, size int) ([]byte, error)
}

// SourceFunc adapts a function into a Source.
type SourceFunc func(offset int64, size int) ([]byte, error)

func (f SourceFunc) Fetch(offset int64, size int) ([]byte, error) {
	return f(offset, size)
}
