// Package flash models a small NOR-style non-volatile memory: bytes read
// back freely, writes go through page erase and aligned chunk programming.
//
// The semantics follow on-chip MCU flash. An erased byte reads 0xFF,
// programming can only target erased chunks, and a chunk is the unit of
// one program operation.
package flash

import (
	"errors"
	"fmt"
	"io"
)

const (
	// DefaultPageSize is the erase granularity.
	DefaultPageSize = 2048
	// ChunkSize is the program granularity (one double word).
	ChunkSize = 8
	// Erased is the value of every byte of an erased page.
	Erased = 0xFF
)

var (
	// ErrOutOfRange is returned for accesses outside the device.
	ErrOutOfRange = errors.New("flash: address out of range")
	// ErrUnaligned is returned when a program operation is not a single
	// chunk at a chunk-aligned offset.
	ErrUnaligned = errors.New("flash: unaligned program")
	// ErrNotErased is returned when programming over non-erased bytes.
	ErrNotErased = errors.New("flash: target not erased")
)

//go:generate go tool mockgen -destination=mock_device.go -package=flash . Device

// Device is a page-erasable, chunk-programmable memory.
type Device interface {
	io.ReaderAt
	// ErasePage sets every byte of page to Erased.
	ErasePage(page int) error
	// Program writes exactly ChunkSize bytes at a ChunkSize-aligned offset
	// that is currently erased.
	Program(off int64, chunk []byte) error
	// PageSize returns the erase granularity in bytes.
	PageSize() int
	// Size returns the device size in bytes.
	Size() int64
}

// PageOf returns the index of the page containing off.
func PageOf(d Device, off int64) int {
	return int(off / int64(d.PageSize()))
}

// checkProgram validates a program request against a device of the
// given size.
func checkProgram(size, off int64, chunk []byte) error {
	if len(chunk) != ChunkSize || off%ChunkSize != 0 {
		return fmt.Errorf("%w: %d bytes at 0x%x", ErrUnaligned, len(chunk), off)
	}
	if off < 0 || off+ChunkSize > size {
		return fmt.Errorf("%w: 0x%x", ErrOutOfRange, off)
	}
	return nil
}

func checkPage(size int64, pageSize, page int) error {
	if page < 0 || int64(page+1)*int64(pageSize) > size {
		return fmt.Errorf("%w: page %d", ErrOutOfRange, page)
	}
	return nil
}

func erased(b []byte) bool {
	for _, c := range b {
		if c != Erased {
			return false
		}
	}
	return true
}
