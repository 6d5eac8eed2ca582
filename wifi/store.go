package wifi

import (
	"fmt"

	"github.com/weaver-sensing/weaver/flash"
)

//go:generate go tool mockgen -destination=mock_store.go -package=wifi . ConfigStore

// ConfigStore persists the Configuration across restarts.
type ConfigStore interface {
	// Load returns the stored configuration.
	Load() (Configuration, error)
	// Save replaces the stored configuration. It returns only once the
	// write is durable or has failed.
	Save(c Configuration) error
}

// DefaultConfigOffset is the record offset inside the flash image: the
// last 2 KiB page of a 128 KiB part.
const DefaultConfigOffset = 0x1F800

// FlashStore keeps the configuration in one page of a flash.Device. Save
// erases the whole page first.
type FlashStore struct {
	dev flash.Device
	off int64
}

// NewFlashStore returns a store at off. The block must be chunk aligned
// and must not cross a page boundary.
func NewFlashStore(dev flash.Device, off int64) (*FlashStore, error) {
	page := int64(dev.PageSize())
	switch {
	case off < 0 || off+BlockSize > dev.Size():
		return nil, fmt.Errorf("%w: configuration block at 0x%x", flash.ErrOutOfRange, off)
	case off%flash.ChunkSize != 0:
		return nil, fmt.Errorf("%w: configuration block at 0x%x", flash.ErrUnaligned, off)
	case off%page+BlockSize > page:
		return nil, fmt.Errorf("flash: configuration block at 0x%x crosses a page boundary", off)
	}
	return &FlashStore{dev: dev, off: off}, nil
}

func (s *FlashStore) Load() (Configuration, error) {
	var (
		c   Configuration
		buf [RecordSize]byte
	)
	if _, err := s.dev.ReadAt(buf[:], s.off); err != nil {
		return c, fmt.Errorf("read configuration: %w", err)
	}
	err := c.UnmarshalBinary(buf[:])
	return c, err
}

// Save erases the page and programs the block chunk by chunk. The first
// failing chunk aborts the write; the page is then left partially
// programmed.
func (s *FlashStore) Save(c Configuration) error {
	block, err := c.MarshalBinary()
	if err != nil {
		return err
	}
	page := flash.PageOf(s.dev, s.off)
	if err := s.dev.ErasePage(page); err != nil {
		return fmt.Errorf("erase page %d: %w", page, err)
	}
	for i := 0; i < len(block); i += flash.ChunkSize {
		if err := s.dev.Program(s.off+int64(i), block[i:i+flash.ChunkSize]); err != nil {
			return fmt.Errorf("program configuration: %w", err)
		}
	}
	return nil
}
