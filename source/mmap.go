package source

import (
	"fmt"
	"os"
	"sync"

	"github.com/heyvito/gommap"
)

// MMap serves fetches from a read-only memory mapping of an already-open
// file. The mapping reflects the file size at the time NewMMap is called.
// Close releases the mapping, but leaves the file itself open.
type MMap struct {
	mu     sync.RWMutex
	data   gommap.MMap
	size   int64
	closed bool
}

func NewMMap(f *os.File) (*MMap, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%s: is a directory", f.Name())
	}

	m := &MMap{size: stat.Size()}
	if m.size == 0 {
		// Empty files cannot be mapped.
		return m, nil
	}

	m.data, err = gommap.Map(f.Fd(), gommap.PROT_READ, gommap.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("failed mapping %s: %w", f.Name(), err)
	}
	return m, nil
}

// Size returns the amount of mapped bytes.
func (m *MMap) Size() int64 { return m.size }

// Fetch copies up to size bytes from the mapping. The returned slice never
// aliases the mapping, so it remains valid after Close.
func (m *MMap) Fetch(offset int64, size int) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if offset < 0 || size <= 0 || offset >= m.size {
		return nil, nil
	}
	end := min(offset+int64(size), m.size)
	buf := make([]byte, end-offset)
	copy(buf, m.data[offset:end])
	return buf, nil
}

func (m *MMap) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.closed = true
	if m.data == nil {
		return nil
	}
	err := m.data.UnsafeUnmap()
	m.data = nil
	return err
}
