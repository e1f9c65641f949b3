package filecursor

import (
	errs "errors"
	"os"
	"testing"

	"github.com/go-stdlog/stdlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greguz/file-cursor/errors"
	"github.com/greguz/file-cursor/source"
)

func TestNewDefaults(t *testing.T) {
	c := mustCursor(t, source.Bytes(sequence(4)))
	assert.Equal(t, int64(0), c.Position())
	assert.False(t, c.EOF())
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())

	_, bounded := c.Remaining()
	assert.False(t, bounded)
}

func TestNewMissingSource(t *testing.T) {
	c, err := New(nil)
	require.Nil(t, c)
	assert.True(t, errs.As(err, &errors.MissingSource{}))
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	cases := map[string][]Option{
		"zero chunk size":           {WithChunkSize(0)},
		"negative chunk size":       {WithChunkSize(-1)},
		"negative position":         {WithPosition(-1)},
		"negative window start":     {WithWindowStart(-1)},
		"negative window end":       {WithWindowEnd(-1)},
		"end before start":          {WithWindow(10, 9)},
		"position overflows window": {WithWindowStart(10), WithPosition(1<<63 - 1)},
	}

	for name, opts := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := New(source.Bytes(sequence(4)), opts...)
			require.Nil(t, c)
			var invalid errors.InvalidArgument
			require.True(t, errs.As(err, &invalid), "got %v", err)
		})
	}
}

func TestNewWithWindowAndPosition(t *testing.T) {
	src := newCounting(16)
	c := mustCursor(t, src, WithWindow(2, 9), WithPosition(3), WithChunkSize(4))
	assert.Equal(t, int64(3), c.Position())
	assert.False(t, c.EOF())
	assert.Empty(t, src.calls)

	remaining, bounded := c.Remaining()
	assert.True(t, bounded)
	assert.Equal(t, int64(5), remaining)
}

func TestNewSingleByteWindow(t *testing.T) {
	c := mustCursor(t, source.Bytes(sequence(16)), WithWindow(5, 5))
	data, err := c.Read(1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05}, data)
	assert.True(t, c.EOF())
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, Config{}.GetLogger())
}

func TestCursorWithLogger(t *testing.T) {
	logs, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer logs.Close()

	src := newCounting(16)
	c := mustCursor(t, src, WithLogger(stdlog.NewStd(logs)), WithChunkSize(4))
	_, err = c.Seek(2)
	require.NoError(t, err)
	require.NoError(t, c.Set(1))
	require.NoError(t, c.Set(12))
	data, err := c.Seek(8)
	require.NoError(t, err)
	assert.Equal(t, []byte{12, 13, 14, 15}, data)
	assert.Equal(t, []fetchCall{{0, 4}, {12, 8}}, src.calls)
}
