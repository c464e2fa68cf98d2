// Package dedupe tracks client submission ids so a retried score submission
// is recorded at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// DefaultMaxSize is the number of submission ids remembered when no size is set.
const DefaultMaxSize = 10_000

// Deduper records seen submission ids.
type Deduper interface {
	// SeenAndRecord reports whether id was already seen and records it if not.
	// The check and the insert are a single atomic step.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so a submission that failed validation can be
	// retried with the same id.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// inMemoryDeduper keeps ids in a map plus an insertion-ordered list. Once
// maxSize is reached the oldest id is evicted first. maxSize <= 0 disables
// eviction and the list is not maintained.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]*list.Element)
	if d.maxSize > 0 {
		d.order = list.New()
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if d.order == nil {
		d.seen[id] = nil
		d.size.Add(1)
		return false
	}

	if len(d.seen) >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = d.order.PushBack(id)
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	el, ok := d.seen[id]
	if !ok {
		return
	}
	delete(d.seen, id)
	if el != nil {
		d.order.Remove(el)
	}
	d.size.Add(-1)
}

// evictOldest drops the earliest recorded id. Callers hold d.mu.
func (d *inMemoryDeduper) evictOldest() {
	front := d.order.Front()
	if front == nil {
		return
	}
	d.order.Remove(front)
	delete(d.seen, front.Value.(string))
	d.size.Add(-1)
}

// Size returns the number of ids currently remembered.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
