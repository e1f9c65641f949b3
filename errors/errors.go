package errors

import "fmt"

// InvalidArgument indicates that a length, position, chunk size or window
// bound was rejected before any state was changed or any I/O took place.
type InvalidArgument struct {
	Name   string
	Value  int64
	Reason string
}

func (i InvalidArgument) Error() string {
	return fmt.Sprintf("invalid %s %d: %s", i.Name, i.Value, i.Reason)
}

// MissingSource indicates that a cursor was constructed without a byte
// source.
type MissingSource struct{}

func (MissingSource) Error() string {
	return "cannot initialize cursor without a byte source"
}

// Truncated indicates that an exact-length read reached the end of data
// before the requested amount of bytes could be returned. Returned holds
// how many bytes were actually consumed.
type Truncated struct {
	Requested int
	Returned  int
}

func (t Truncated) Error() string {
	return fmt.Sprintf("truncated read: requested %d bytes, found %d before end of data", t.Requested, t.Returned)
}
