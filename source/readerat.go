package source

import (
	errs "errors"
	"io"
)

// ReaderAt adapts an io.ReaderAt, such as an *os.File, into a source. A short
// read accompanied by io.EOF marks the end of data; any other error is
// returned unchanged.
type ReaderAt struct {
	r io.ReaderAt
}

func NewReaderAt(r io.ReaderAt) *ReaderAt {
	return &ReaderAt{r: r}
}

func (s *ReaderAt) Fetch(offset int64, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := s.r.ReadAt(buf, offset)
	if err != nil && !errs.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:n], nil
}
