package filecursor

import (
	"io"
	"iter"
)

// Chunks returns a lazy sequence of chunks read from the current position.
// Each step performs a single Seek(ChunkSize()). The sequence ends once a
// step yields no bytes, the end of data is reached, or the source fails, in
// which case the error is yielded as the last element. Once exhausted, the
// sequence cannot be restarted; a new one resumes from the cursor's position
// at the time it is ranged over.
func (c *Cursor) Chunks() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for !c.EOF() {
			data, err := c.Seek(c.chunkSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(data) == 0 {
				return
			}
			if !yield(data, nil) {
				return
			}
		}
	}
}

// ReadByte returns the byte at the current position and advances the cursor.
// Returns io.EOF when no bytes are left.
func (c *Cursor) ReadByte() (byte, error) {
	data, err := c.Seek(1)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, io.EOF
	}
	return data[0], nil
}

// Reader returns an io.Reader consuming bytes from the cursor's current
// position. Reads advance the cursor itself.
func (c *Cursor) Reader() io.Reader {
	return &reader{c: c}
}

type reader struct {
	c *Cursor
}

func (r *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	data, err := r.c.Seek(len(p))
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, io.EOF
	}
	return copy(p, data), nil
}

func (r *reader) ReadByte() (byte, error) {
	return r.c.ReadByte()
}
