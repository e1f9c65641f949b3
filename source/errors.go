package source

import "fmt"

var ErrClosed = fmt.Errorf("source has already been closed")
