// Package ringbuf provides a fixed-capacity single-producer/single-consumer
// byte queue. It sits between a receive callback (the producer, which may
// run on another goroutine or in interrupt context) and a polled consumer.
//
// The producer only ever advances head and the consumer only ever advances
// tail. Both cursors are published with atomic stores, so one producer and
// one consumer may use a Buffer concurrently without a lock.
//
// A Buffer holds at most capacity-1 unread bytes. Full and empty are not
// distinguished: pushing into a buffer that already holds capacity-1
// unread bytes makes it report empty, and further pushes overwrite the
// oldest slots. No loss is signaled.
package ringbuf

import "sync/atomic"

// Buffer is a byte ring buffer. The zero value is not usable; use New.
type Buffer struct {
	data []byte
	head atomic.Uint32
	tail atomic.Uint32
}

// New returns a Buffer backed by capacity bytes. capacity must be at least 2.
func New(capacity int) *Buffer {
	if capacity < 2 {
		panic("ringbuf: capacity must be at least 2")
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Cap returns the size of the backing array.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Push stores c at head and advances head. Producer side only.
func (b *Buffer) Push(c byte) {
	head := b.head.Load()
	b.data[head] = c
	head++
	if head >= uint32(len(b.data)) {
		head = 0
	}
	b.head.Store(head)
}

// Pop reads the byte at tail and advances tail. Consumer side only.
// ok is false when the buffer is empty.
func (b *Buffer) Pop() (c byte, ok bool) {
	tail := b.tail.Load()
	if tail == b.head.Load() {
		return 0, false
	}
	c = b.data[tail]
	tail++
	if tail >= uint32(len(b.data)) {
		tail = 0
	}
	b.tail.Store(tail)
	return c, true
}

// HasData reports whether head and tail differ.
func (b *Buffer) HasData() bool {
	return b.head.Load() != b.tail.Load()
}

// Reset drops all unread bytes. It moves tail onto head, so it is safe
// to call from the consumer side while the producer keeps pushing.
func (b *Buffer) Reset() {
	b.tail.Store(b.head.Load())
}
