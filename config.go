package filecursor

import (
	"github.com/go-stdlog/stdlog"

	"github.com/greguz/file-cursor/errors"
	"github.com/greguz/file-cursor/internal"
)

// DefaultChunkSize is the amount of bytes fetched per underlying read when no
// other value is configured.
const DefaultChunkSize = 16384

// Bound is an optional upper window bound. Its zero value is unbounded.
type Bound struct {
	at  int64
	set bool
}

// Unbounded returns a Bound that does not limit the visible source.
func Unbounded() Bound { return Bound{} }

// EndAt returns a Bound whose last visible byte lives at the given absolute
// offset.
func EndAt(offset int64) Bound { return Bound{at: offset, set: true} }

// Value returns the bound's absolute offset, and whether the bound is set.
func (b Bound) Value() (int64, bool) { return b.at, b.set }

type Config struct {
	// ChunkSize defines the minimum amount of bytes requested from the
	// source each time the cache must be refilled. Must be positive.
	ChunkSize int

	// Position is the initial logical position of the cursor.
	Position int64

	// WindowStart is the absolute offset of the source mapped to logical
	// position zero.
	WindowStart int64

	// WindowEnd is the absolute offset of the last byte visible through the
	// cursor (inclusive). When unset, the cursor reads until the source
	// reports no more data.
	WindowEnd Bound

	// Logger allows a given stdlog.Logger instance to be set as the cursor
	// logger. If unset, no logs will be generated.
	Logger stdlog.Logger
}

type Option func(*Config)

// WithChunkSize sets the amount of bytes fetched per underlying read.
func WithChunkSize(size int) Option {
	return func(c *Config) { c.ChunkSize = size }
}

// WithPosition sets the initial logical position.
func WithPosition(position int64) Option {
	return func(c *Config) { c.Position = position }
}

// WithWindowStart sets the absolute offset that becomes logical position
// zero.
func WithWindowStart(start int64) Option {
	return func(c *Config) { c.WindowStart = start }
}

// WithWindowEnd sets the absolute offset of the last visible byte.
func WithWindowEnd(end int64) Option {
	return func(c *Config) { c.WindowEnd = EndAt(end) }
}

// WithWindow sets both window bounds at once. Both are absolute, inclusive
// offsets.
func WithWindow(start, end int64) Option {
	return func(c *Config) {
		c.WindowStart = start
		c.WindowEnd = EndAt(end)
	}
}

func WithLogger(logger stdlog.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func DefaultConfig() Config {
	return Config{ChunkSize: DefaultChunkSize}
}

func (c Config) GetLogger() stdlog.Logger {
	if c.Logger != nil {
		return c.Logger.Named("cursor")
	}
	return stdlog.Discard
}

func (c Config) validate() error {
	if c.ChunkSize <= 0 {
		return errors.InvalidArgument{Name: "chunk size", Value: int64(c.ChunkSize), Reason: "must be positive"}
	}
	if c.Position < 0 {
		return errors.InvalidArgument{Name: "position", Value: c.Position, Reason: "must be non-negative"}
	}
	if c.WindowStart < 0 {
		return errors.InvalidArgument{Name: "window start", Value: c.WindowStart, Reason: "must be non-negative"}
	}
	if end, ok := c.WindowEnd.Value(); ok {
		if end < 0 {
			return errors.InvalidArgument{Name: "window end", Value: end, Reason: "must be non-negative"}
		}
		if end < c.WindowStart {
			return errors.InvalidArgument{Name: "window end", Value: end, Reason: "must not precede window start"}
		}
	}
	if internal.AddOverflows(c.WindowStart, c.Position) {
		return errors.InvalidArgument{Name: "position", Value: c.Position, Reason: "exceeds addressable range"}
	}
	return nil
}

func (c Config) window() internal.Window {
	end, bounded := c.WindowEnd.Value()
	return internal.Window{Start: c.WindowStart, Last: end, Bounded: bounded}
}
