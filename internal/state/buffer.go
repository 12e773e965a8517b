package state

import "github.com/five82/lantern/internal/entry"

const minCapacity = 64

// Buffer is a double-ended queue of log entries ordered oldest (front) to
// newest (back). Live entries are pushed at the back; history fetched while
// scrolling backward is pushed at the front.
//
// Buffer is not safe for concurrent use; the console is its only owner.
type Buffer struct {
	items []entry.Entry
	head  int
	count int
}

// NewBuffer returns an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{items: make([]entry.Entry, minCapacity)}
}

// Len returns the number of entries held.
func (b *Buffer) Len() int {
	return b.count
}

// At returns the entry at index i, where 0 is the oldest retained entry.
func (b *Buffer) At(i int) (entry.Entry, bool) {
	if i < 0 || i >= b.count {
		return entry.Entry{}, false
	}
	return b.items[(b.head+i)%len(b.items)], true
}

// PushBack appends e after the newest entry.
func (b *Buffer) PushBack(e entry.Entry) {
	b.grow()
	b.items[(b.head+b.count)%len(b.items)] = e
	b.count++
}

// PushFront inserts e ahead of the oldest entry.
func (b *Buffer) PushFront(e entry.Entry) {
	b.grow()
	b.head = (b.head - 1 + len(b.items)) % len(b.items)
	b.items[b.head] = e
	b.count++
}

// Slice copies out entries [from, to), clipped to the buffer.
func (b *Buffer) Slice(from, to int) []entry.Entry {
	if from < 0 {
		from = 0
	}
	if to > b.count {
		to = b.count
	}
	if from >= to {
		return nil
	}
	out := make([]entry.Entry, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, b.items[(b.head+i)%len(b.items)])
	}
	return out
}

func (b *Buffer) grow() {
	if len(b.items) == 0 {
		b.items = make([]entry.Entry, minCapacity)
		return
	}
	if b.count < len(b.items) {
		return
	}
	items := make([]entry.Entry, len(b.items)*2)
	for i := 0; i < b.count; i++ {
		items[i] = b.items[(b.head+i)%len(b.items)]
	}
	b.items = items
	b.head = 0
}
