package filecursor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/greguz/file-cursor/source"
)

type fetchCall struct {
	Offset int64
	Size   int
}

// countingSource records every fetch performed against an in-memory buffer.
type countingSource struct {
	data  source.Bytes
	calls []fetchCall
	err   error
}

func (c *countingSource) Fetch(offset int64, size int) ([]byte, error) {
	c.calls = append(c.calls, fetchCall{Offset: offset, Size: size})
	if c.err != nil {
		return nil, c.err
	}
	return c.data.Fetch(offset, size)
}

func sequence(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func newCounting(size int) *countingSource {
	return &countingSource{data: sequence(size)}
}

func mustCursor(t *testing.T, src Source, opts ...Option) *Cursor {
	t.Helper()
	c, err := New(src, opts...)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

// scratchSource serves every fetch through a single reused buffer, the way a
// ReadAt-into-scratch implementation does.
func scratchSource(data []byte, size int) Source {
	scratch := make([]byte, size)
	return SourceFunc(func(offset int64, n int) ([]byte, error) {
		if offset >= int64(len(data)) {
			return nil, nil
		}
		if n > len(scratch) {
			scratch = make([]byte, n)
		}
		read := copy(scratch[:n], data[offset:])
		return scratch[:read], nil
	})
}
