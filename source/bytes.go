// Package source provides byte sources a cursor can read from: plain
// io.ReaderAt implementations such as *os.File, read-only memory maps,
// go-billy files and in-memory buffers. None of them take ownership of the
// handles they wrap.
package source

// Bytes is an in-memory source backed by a byte slice. The slice must not be
// modified while in use.
type Bytes []byte

func (b Bytes) Fetch(offset int64, size int) ([]byte, error) {
	if offset < 0 || size <= 0 || offset >= int64(len(b)) {
		return nil, nil
	}
	end := offset + int64(size)
	if end > int64(len(b)) {
		end = int64(len(b))
	}
	return b[offset:end:end], nil
}
