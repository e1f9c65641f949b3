package metrics

import (
	"sync/atomic"

	"github.com/greguz/file-cursor/internal/metrics"
)

var hasDelegate atomic.Bool

// InstallDelegate starts forwarding cursor readings to del. Only the first
// call has any effect; subsequent calls are ignored.
func InstallDelegate(del *Delegates) {
	if hasDelegate.Swap(true) {
		return
	}
	go metrics.Dispatch(del)
}

type Delegates struct {
	Cursor CursorInstrumentationDelegate
}

func (d *Delegates) Dispatch(kind metrics.MetricKind, value float64) {
	if d.Cursor == nil {
		return
	}
	switch kind {
	case metrics.CursorFetchCalls:
		d.Cursor.FetchCalls(value)
	case metrics.CursorFetchLatency:
		d.Cursor.FetchLatency(value)
	case metrics.CursorFetchFailures:
		d.Cursor.FetchFailures(value)
	case metrics.CursorFetchedBytes:
		d.Cursor.FetchedBytes(value)
	case metrics.CursorShortFetches:
		d.Cursor.ShortFetches(value)
	case metrics.CursorCacheHits:
		d.Cursor.CacheHits(value)
	case metrics.CursorCacheMisses:
		d.Cursor.CacheMisses(value)
	case metrics.CursorTruncatedReads:
		d.Cursor.TruncatedReads(value)
	case metrics.CursorScanLatency:
		d.Cursor.ScanLatency(value)
	}
}

type CursorInstrumentationDelegate interface {
	// FetchCalls is invoked once per underlying source fetch.
	FetchCalls(float64)
	// FetchLatency reports how long a fetch took, in microseconds.
	FetchLatency(float64)
	FetchFailures(float64)
	// FetchedBytes reports the amount of bytes returned by a fetch.
	FetchedBytes(float64)
	// ShortFetches is invoked whenever a fetch returns fewer bytes than
	// requested, or stops at the window's upper bound.
	ShortFetches(float64)

	// CacheHits is invoked when a Seek or Set is fully served by the cache.
	CacheHits(float64)
	// CacheMisses is invoked when a Set invalidates the cache.
	CacheMisses(float64)

	TruncatedReads(float64)
	ScanLatency(float64)
}
