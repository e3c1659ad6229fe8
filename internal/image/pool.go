package image

import (
	"image"
	"sync"
)

// Pool reuses buffers of identical bounds.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[image.Rectangle][]*Buffer
	maxSize int
}

// NewPool creates a pool keeping at most maxPerBucket buffers per bounds.
// Zero means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[image.Rectangle][]*Buffer),
		maxSize: maxPerBucket,
	}
}

// Get returns a transparent buffer covering r, or nil for an empty r.
func (p *Pool) Get(r image.Rectangle) *Buffer {
	p.mu.Lock()
	bucket := p.buckets[r]
	if n := len(bucket); n > 0 {
		buf := bucket[n-1]
		p.buckets[r] = bucket[:n-1]
		p.mu.Unlock()
		buf.Clear()
		return buf
	}
	p.mu.Unlock()

	buf, err := NewBuffer(r)
	if err != nil {
		return nil
	}
	return buf
}

// Put returns buf to the pool. Buffers beyond the bucket limit are dropped.
func (p *Pool) Put(buf *Buffer) {
	if buf == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[buf.rect]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[buf.rect] = append(bucket, buf)
}
