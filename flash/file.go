package flash

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// File is a Device backed by an image file. Every erase and program is
// flushed to disk before it returns.
type File struct {
	mu       sync.Mutex
	f        *os.File
	size     int64
	pageSize int
}

// OpenFile opens the image at path, creating it if needed. A new or short
// image is extended to size bytes of erased flash.
func OpenFile(path string, size int64, pageSize int) (*File, error) {
	if pageSize <= 0 || size%int64(pageSize) != 0 {
		return nil, fmt.Errorf("flash: size %d is not a multiple of page size %d", size, pageSize)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open flash image: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat flash image: %w", err)
	}
	if info.Size() < size {
		fill := bytes.Repeat([]byte{Erased}, int(size-info.Size()))
		if _, err := f.WriteAt(fill, info.Size()); err != nil {
			f.Close()
			return nil, fmt.Errorf("extend flash image: %w", err)
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return nil, fmt.Errorf("sync flash image: %w", err)
		}
	}
	return &File{f: f, size: size, pageSize: pageSize}, nil
}

func (d *File) ReadAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off < 0 || off+int64(len(p)) > d.size {
		return 0, fmt.Errorf("%w: read %d bytes at 0x%x", ErrOutOfRange, len(p), off)
	}
	return d.f.ReadAt(p, off)
}

func (d *File) ErasePage(page int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkPage(d.size, d.pageSize, page); err != nil {
		return err
	}
	fill := bytes.Repeat([]byte{Erased}, d.pageSize)
	if _, err := d.f.WriteAt(fill, int64(page)*int64(d.pageSize)); err != nil {
		return fmt.Errorf("erase page %d: %w", page, err)
	}
	return d.f.Sync()
}

func (d *File) Program(off int64, chunk []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkProgram(d.size, off, chunk); err != nil {
		return err
	}
	var cur [ChunkSize]byte
	if _, err := d.f.ReadAt(cur[:], off); err != nil {
		return fmt.Errorf("read before program at 0x%x: %w", off, err)
	}
	if !erased(cur[:]) {
		return fmt.Errorf("%w: 0x%x", ErrNotErased, off)
	}
	if _, err := d.f.WriteAt(chunk, off); err != nil {
		return fmt.Errorf("program 0x%x: %w", off, err)
	}
	return d.f.Sync()
}

func (d *File) PageSize() int { return d.pageSize }

func (d *File) Size() int64 { return d.size }

// Close closes the image file.
func (d *File) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.Close()
}
