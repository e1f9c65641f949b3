package filecursor

import (
	"github.com/go-stdlog/stdlog"

	"github.com/greguz/file-cursor/errors"
	"github.com/greguz/file-cursor/internal"
	"github.com/greguz/file-cursor/internal/metrics"
)

// Cursor provides buffered, random-access reads over a Source. It keeps the
// most recently fetched chunk in memory and serves reads from it whenever
// possible, issuing at most one fetch per refill.
//
// A Cursor is not safe for concurrent use. Calls on the same instance must be
// serialized by the caller. After a Source error, the cursor state is
// undefined and the instance should be discarded.
type Cursor struct {
	source    Source
	chunkSize int
	window    internal.Window
	log       stdlog.Logger

	// cache holds bytes starting at the absolute offset base. offset is the
	// index of the next unread byte within cache.
	cache  []byte
	base   int64
	offset int

	// drained is set once the source is known to have no bytes past the end
	// of cache, either because a fetch came back short or the window's upper
	// bound was reached.
	drained bool
}

// New returns a Cursor reading from src, configured by the provided options.
// Returns MissingSource if src is nil, or InvalidArgument if any configured
// value is out of range.
func New(src Source, opts ...Option) (*Cursor, error) {
	if src == nil {
		return nil, errors.MissingSource{}
	}

	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	c := &Cursor{
		source:    src,
		chunkSize: config.ChunkSize,
		window:    config.window(),
		log:       config.GetLogger(),
	}
	c.invalidate(c.window.Absolute(config.Position))
	c.log.Debug("Cursor initialized",
		"chunk_size", c.chunkSize,
		"window_start", c.window.Start,
		"position", config.Position,
	)
	return c, nil
}

// Position returns the current logical position of the cursor.
func (c *Cursor) Position() int64 {
	return c.window.Logical(c.base + int64(c.offset))
}

// EOF reports whether no further bytes can be read from the current
// position.
func (c *Cursor) EOF() bool {
	return c.drained && c.offset >= len(c.cache)
}

// ChunkSize returns the amount of bytes requested per fetch.
func (c *Cursor) ChunkSize() int { return c.chunkSize }

// Remaining returns the amount of bytes left between the current position and
// the window's upper bound. The second value is false when the window is
// unbounded.
func (c *Cursor) Remaining() (int64, bool) {
	length, ok := c.window.Length()
	if !ok {
		return 0, false
	}
	return max(length-c.Position(), 0), true
}

// Set moves the cursor to the given logical position. When the position is
// held by the cache no I/O takes place; otherwise the cache is dropped and the
// next read fetches from the new position.
func (c *Cursor) Set(position int64) error {
	if position < 0 {
		return errors.InvalidArgument{Name: "position", Value: position, Reason: "must be non-negative"}
	}
	if internal.AddOverflows(c.window.Start, position) {
		return errors.InvalidArgument{Name: "position", Value: position, Reason: "exceeds addressable range"}
	}

	target := c.window.Absolute(position)
	if target >= c.base && target < c.base+int64(len(c.cache)) {
		c.offset = int(target - c.base)
		c.log.Debug("Position served from cache", "offset", target)
		metrics.Simple(metrics.CursorCacheHits, 1)
		return nil
	}

	metrics.Simple(metrics.CursorCacheMisses, 1)
	c.invalidate(target)
	return nil
}

// Skip advances the cursor by n bytes. n must be non-negative.
func (c *Cursor) Skip(n int64) error {
	if n < 0 {
		return errors.InvalidArgument{Name: "skip length", Value: n, Reason: "must be non-negative"}
	}
	position := c.Position()
	if internal.AddOverflows(position, n) {
		return errors.InvalidArgument{Name: "skip length", Value: n, Reason: "exceeds addressable range"}
	}
	return c.Set(position + n)
}

// Seek returns up to length bytes from the current position and advances the
// cursor past them. Fewer bytes are returned only when the end of data is
// reached, which is not an error. At most one fetch is issued per call.
func (c *Cursor) Seek(length int) ([]byte, error) {
	if length < 0 {
		return nil, errors.InvalidArgument{Name: "length", Value: int64(length), Reason: "must be non-negative"}
	}

	head := c.take(length)
	if len(head) == length {
		if length > 0 {
			metrics.Simple(metrics.CursorCacheHits, 1)
		}
		return c.own(head), nil
	}
	if c.drained {
		return c.own(head), nil
	}

	// head must be copied out before the refill, as the source may reuse
	// the buffer backing the current cache.
	result := c.own(head)
	remaining := length - len(head)
	if err := c.refill(remaining); err != nil {
		return nil, err
	}
	return append(result, c.take(remaining)...), nil
}

// Read behaves like Seek, but returns a Truncated error alongside the bytes
// consumed when fewer than length bytes were available.
func (c *Cursor) Read(length int) ([]byte, error) {
	data, err := c.Seek(length)
	if err != nil {
		return nil, err
	}
	if len(data) < length {
		metrics.Simple(metrics.CursorTruncatedReads, 1)
		return data, errors.Truncated{Requested: length, Returned: len(data)}
	}
	return data, nil
}

// SeekUntil consumes bytes one at a time, invoking predicate with each byte
// and its logical position, until predicate returns true or the end of data
// is reached. The returned slice includes the byte that satisfied predicate.
// predicate is not invoked when the cursor is already at the end.
func (c *Cursor) SeekUntil(predicate func(b byte, position int64) bool) ([]byte, error) {
	if c.EOF() {
		return []byte{}, nil
	}
	done := metrics.Measure(metrics.CursorScanLatency)
	defer done()

	result := []byte{}
	for {
		if c.offset >= len(c.cache) {
			if c.drained {
				break
			}
			if err := c.refill(c.chunkSize); err != nil {
				return nil, err
			}
			if c.offset >= len(c.cache) {
				break
			}
		}

		start := c.offset
		found := false
		for c.offset < len(c.cache) {
			b := c.cache[c.offset]
			position := c.Position()
			c.offset++
			if predicate(b, position) {
				found = true
				break
			}
		}
		result = append(result, c.cache[start:c.offset]...)
		if found {
			break
		}
	}
	return result, nil
}

// SeekUntilByte consumes bytes up to and including the first occurrence of
// delim, or until the end of data.
func (c *Cursor) SeekUntilByte(delim byte) ([]byte, error) {
	return c.SeekUntil(func(b byte, _ int64) bool { return b == delim })
}

// take consumes up to n cached bytes and returns a view over them.
func (c *Cursor) take(n int) []byte {
	available := len(c.cache) - c.offset
	if available <= 0 || n <= 0 {
		return nil
	}
	n = min(n, available)
	view := c.cache[c.offset : c.offset+n]
	c.offset += n
	return view
}

// own copies view into a freshly allocated slice, so callers never hold a
// reference into the cache.
func (c *Cursor) own(view []byte) []byte {
	result := make([]byte, len(view))
	copy(result, view)
	return result
}

// invalidate drops the cache and moves it to the given absolute offset.
func (c *Cursor) invalidate(absolute int64) {
	c.cache = nil
	c.base = absolute
	c.offset = 0
	c.drained = c.window.Reached(absolute)
	c.log.Debug("Cache invalidated", "offset", absolute, "end_of_data", c.drained)
}

// refill replaces the cache with a single fetch positioned right after the
// current cache end, requesting at least minimum bytes.
func (c *Cursor) refill(minimum int) error {
	at := c.base + int64(len(c.cache))
	requested, boundary := c.window.Clip(at, max(c.chunkSize, minimum))
	if requested == 0 {
		c.invalidate(at)
		c.drained = true
		return nil
	}

	metrics.Simple(metrics.CursorFetchCalls, 1)
	done := metrics.Measure(metrics.CursorFetchLatency)
	data, err := c.source.Fetch(at, requested)
	done()
	if err != nil {
		metrics.Simple(metrics.CursorFetchFailures, 1)
		c.log.Error(err, "Source fetch failed", "offset", at, "size", requested)
		return err
	}
	if len(data) > requested {
		data = data[:requested]
	}
	metrics.Simple(metrics.CursorFetchedBytes, float64(len(data)))

	c.cache = data
	c.base = at
	c.offset = 0
	c.drained = boundary || len(data) < requested
	if c.drained {
		metrics.Simple(metrics.CursorShortFetches, 1)
		c.log.Debug("Reached end of data", "offset", at, "requested", requested, "fetched", len(data))
	}
	return nil
}
