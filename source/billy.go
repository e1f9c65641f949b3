package source

import (
	errs "errors"
	"fmt"
	"io"

	"github.com/go-git/go-billy/v5"
)

// Billy reads from a file opened through a go-billy filesystem, such as
// osfs or memfs. Errors other than the end of data are wrapped with the
// file's name.
type Billy struct {
	file billy.File
}

func NewBilly(f billy.File) *Billy {
	return &Billy{file: f}
}

func (b *Billy) Fetch(offset int64, size int) ([]byte, error) {
	buf := make([]byte, size)
	n, err := b.file.ReadAt(buf, offset)
	if err != nil && !errs.Is(err, io.EOF) {
		return nil, fmt.Errorf("billy: readat %q off=%d: %w", b.file.Name(), offset, err)
	}
	return buf[:n], nil
}
