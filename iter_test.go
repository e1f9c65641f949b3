package filecursor

import (
	"bufio"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greguz/file-cursor/source"
)

func TestChunksRoundTrip(t *testing.T) {
	src := newCounting(100)
	c := mustCursor(t, src, WithChunkSize(16))

	var out []byte
	var sizes []int
	for data, err := range c.Chunks() {
		require.NoError(t, err)
		out = append(out, data...)
		sizes = append(sizes, len(data))
	}
	assert.Equal(t, sequence(100), out)
	assert.Equal(t, []int{16, 16, 16, 16, 16, 16, 4}, sizes)
	assert.True(t, c.EOF())
	assert.Len(t, src.calls, 7)

	for range c.Chunks() {
		t.Fatal("exhausted cursor must not yield")
	}
}

func TestChunksStopsOnZeroBytes(t *testing.T) {
	src := newCounting(32)
	c := mustCursor(t, src, WithChunkSize(16))

	count := 0
	for data, err := range c.Chunks() {
		require.NoError(t, err)
		assert.Len(t, data, 16)
		count++
	}
	assert.Equal(t, 2, count)
	assert.True(t, c.EOF())
}

func TestChunksResumesFromPosition(t *testing.T) {
	c := mustCursor(t, source.Bytes(sequence(40)), WithChunkSize(16))
	for data, err := range c.Chunks() {
		require.NoError(t, err)
		assert.Equal(t, sequence(16), data)
		break
	}
	assert.Equal(t, int64(16), c.Position())

	var rest []byte
	for data, err := range c.Chunks() {
		require.NoError(t, err)
		rest = append(rest, data...)
	}
	assert.Equal(t, sequence(40)[16:], rest)
}

func TestChunksYieldsSourceError(t *testing.T) {
	boom := fmt.Errorf("unreadable sector")
	src := newCounting(32)
	src.err = boom
	c := mustCursor(t, src)

	var got []error
	for data, err := range c.Chunks() {
		assert.Nil(t, data)
		got = append(got, err)
	}
	require.Len(t, got, 1)
	assert.ErrorIs(t, got[0], boom)
}

func TestReader(t *testing.T) {
	c := mustCursor(t, source.Bytes(sequence(300)), WithChunkSize(64))
	data, err := io.ReadAll(c.Reader())
	require.NoError(t, err)
	assert.Equal(t, sequence(300), data)
	assert.True(t, c.EOF())
}

func TestReaderLines(t *testing.T) {
	text := "first\nsecond\n\nlast"
	c := mustCursor(t, source.Bytes(text), WithChunkSize(4))
	scanner := bufio.NewScanner(c.Reader())
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, []string{"first", "second", "", "last"}, lines)
}

func TestSeekUntilByteSplitsRecords(t *testing.T) {
	c := mustCursor(t, source.Bytes("a,bb,,ccc"), WithChunkSize(2))
	var records []string
	for !c.EOF() {
		record, err := c.SeekUntilByte(',')
		require.NoError(t, err)
		records = append(records, string(record))
	}
	assert.Equal(t, []string{"a,", "bb,", ",", "ccc"}, records)
}

func TestReadByte(t *testing.T) {
	c := mustCursor(t, source.Bytes([]byte{0xCA, 0xFE}))
	b, err := c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xCA), b)
	b, err = c.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xFE), b)
	_, err = c.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
}
