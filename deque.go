package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyQueue      = errors.New("deque is empty")
	ErrInvalidCapacity = errors.New("invalid capacity")
)

// Deques never shrink below this many slots on their own.
const minShrinkCapacity = 4

// Deque is a double-ended queue over a circular buffer that doubles when
// full and halves when at most a quarter occupied.
//
// The front element is buf[head] and the back element is
// buf[(head+size-1) % len(buf)]. The tail (one past the back) is derived
// from head and size rather than stored.
type Deque[T any] struct {
	buf  []T
	head int
	size int
}

// NewDeque creates an empty deque with the given initial capacity.
func NewDeque[T any](capacity int) *Deque[T] {
	if capacity <= 0 {
		panic("capacity must be > 0")
	}
	return &Deque[T]{buf: make([]T, capacity)}
}

func (d *Deque[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Slice())
}

func (d *Deque[T]) Len() int {
	return d.size
}

func (d *Deque[T]) Cap() int {
	return len(d.buf)
}

func (d *Deque[T]) IsEmpty() bool {
	return d.size == 0
}

func (d *Deque[T]) index(i int) int {
	return (d.head + i) % len(d.buf)
}

func (d *Deque[T]) Front() (T, error) {
	if d.size == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return d.buf[d.head], nil
}

func (d *Deque[T]) Back() (T, error) {
	if d.size == 0 {
		var zero T
		return zero, ErrEmptyQueue
	}
	return d.buf[d.index(d.size-1)], nil
}

// PushFront makes x the new front element, growing first if full.
func (d *Deque[T]) PushFront(x T) {
	if d.size == len(d.buf) {
		d.resize(max(1, 2*len(d.buf)))
	}
	d.head = (d.head - 1 + len(d.buf)) % len(d.buf)
	d.buf[d.head] = x
	d.size++
}

// PushBack makes x the new back element, growing first if full.
func (d *Deque[T]) PushBack(x T) {
	if d.size == len(d.buf) {
		d.resize(max(1, 2*len(d.buf)))
	}
	d.buf[d.index(d.size)] = x
	d.size++
}

func (d *Deque[T]) PopFront() (T, error) {
	var zero T
	if d.size == 0 {
		return zero, ErrEmptyQueue
	}
	x := d.buf[d.head]
	d.buf[d.head] = zero
	d.head = (d.head + 1) % len(d.buf)
	d.size--
	d.maybeShrink()
	return x, nil
}

func (d *Deque[T]) PopBack() (T, error) {
	var zero T
	if d.size == 0 {
		return zero, ErrEmptyQueue
	}
	i := d.index(d.size - 1)
	x := d.buf[i]
	d.buf[i] = zero
	d.size--
	d.maybeShrink()
	return x, nil
}

func (d *Deque[T]) maybeShrink() {
	if d.size <= len(d.buf)/4 && len(d.buf)/2 >= minShrinkCapacity {
		d.resize(len(d.buf) / 2)
	}
}

// Grow reallocates the deque with a capacity of at least its current one.
func (d *Deque[T]) Grow(capacity int) error {
	if capacity < len(d.buf) {
		return fmt.Errorf("%w: grow to %d below current capacity %d", ErrInvalidCapacity, capacity, len(d.buf))
	}
	return d.checkedResize(capacity)
}

// Shrink reallocates the deque with a capacity of at most its current one.
func (d *Deque[T]) Shrink(capacity int) error {
	if capacity > len(d.buf) {
		return fmt.Errorf("%w: shrink to %d above current capacity %d", ErrInvalidCapacity, capacity, len(d.buf))
	}
	return d.checkedResize(capacity)
}

func (d *Deque[T]) checkedResize(capacity int) error {
	if capacity < 1 || capacity < d.size {
		return fmt.Errorf("%w: %d cannot hold %d elements", ErrInvalidCapacity, capacity, d.size)
	}
	d.resize(capacity)
	return nil
}

// resize copies the elements in logical order to the start of a fresh
// block, so head is always 0 afterwards.
func (d *Deque[T]) resize(capacity int) {
	buf := make([]T, capacity)
	if d.size > 0 {
		n := copy(buf, d.buf[d.head:min(d.head+d.size, len(d.buf))])
		copy(buf[n:d.size], d.buf)
	}
	d.buf = buf
	d.head = 0
}

// Clear empties the deque but keeps its capacity.
func (d *Deque[T]) Clear() {
	clear(d.buf)
	d.head = 0
	d.size = 0
}

// At returns the i-th element in logical order [0..Len()-1],
// where 0 is the front and Len()-1 is the back.
func (d *Deque[T]) At(i int) T {
	if i < 0 || i >= d.size {
		panic("index out of range")
	}
	return d.buf[d.index(i)]
}

// Slice returns a copy of the elements from front to back.
func (d *Deque[T]) Slice() []T {
	out := make([]T, d.size)
	for i := range out {
		out[i] = d.buf[d.index(i)]
	}
	return out
}

// String renders the physical layout, marking the front with (F) and the
// back with (B).
func (d *Deque[T]) String() string {
	if d.size == 0 {
		return "Deque <empty>"
	}

	back := d.index(d.size - 1)
	var sb strings.Builder
	sb.WriteString("Deque <")
	for i, v := range d.buf {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprint(&sb, v)
		switch i {
		case d.head:
			sb.WriteString("(F)")
		case back:
			sb.WriteString("(B)")
		}
	}
	sb.WriteByte('>')
	return sb.String()
}
