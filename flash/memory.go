package flash

import (
	"fmt"
	"sync"
)

// Memory is a Device held in RAM. The zero value is not usable; use
// NewMemory.
type Memory struct {
	mu       sync.Mutex
	data     []byte
	pageSize int
}

// NewMemory returns an erased in-memory device of size bytes split into
// pages of pageSize bytes. size must be a multiple of pageSize.
func NewMemory(size int64, pageSize int) *Memory {
	if pageSize <= 0 || size%int64(pageSize) != 0 {
		panic(fmt.Sprintf("flash: size %d is not a multiple of page size %d", size, pageSize))
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = Erased
	}
	return &Memory{data: data, pageSize: pageSize}
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, fmt.Errorf("%w: read %d bytes at 0x%x", ErrOutOfRange, len(p), off)
	}
	return copy(p, m.data[off:]), nil
}

func (m *Memory) ErasePage(page int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkPage(int64(len(m.data)), m.pageSize, page); err != nil {
		return err
	}
	start := page * m.pageSize
	for i := start; i < start+m.pageSize; i++ {
		m.data[i] = Erased
	}
	return nil
}

func (m *Memory) Program(off int64, chunk []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := checkProgram(int64(len(m.data)), off, chunk); err != nil {
		return err
	}
	if !erased(m.data[off : off+ChunkSize]) {
		return fmt.Errorf("%w: 0x%x", ErrNotErased, off)
	}
	copy(m.data[off:], chunk)
	return nil
}

func (m *Memory) PageSize() int { return m.pageSize }

func (m *Memory) Size() int64 { return int64(len(m.data)) }
