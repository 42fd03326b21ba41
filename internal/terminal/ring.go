package terminal

import "sync"

// ringBuffer is a bounded output buffer. It keeps the most recent size bytes
// and a monotonic total of everything ever written, so callers can read "new
// output since offset" without the buffer growing unbounded.
type ringBuffer struct {
	mu    sync.Mutex
	buf   []byte
	size  int
	pos   int
	full  bool
	total int64
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{buf: make([]byte, size), size: size}
}

func (r *ringBuffer) Write(p []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range p {
		r.buf[r.pos] = b
		r.pos = (r.pos + 1) % r.size
		if r.pos == 0 {
			r.full = true
		}
	}
	r.total += int64(len(p))
}

// Total returns the count of bytes ever written.
func (r *ringBuffer) Total() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Since returns the bytes written after offset. When more than the buffer
// capacity was written since, only the retained tail is returned.
func (r *ringBuffer) Since(offset int64) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	content := r.snapshot()
	missed := r.total - offset
	if missed <= 0 {
		return nil
	}
	if missed >= int64(len(content)) {
		return content
	}
	return content[int64(len(content))-missed:]
}

// Reset drops the buffered content. The total is preserved so outstanding
// offsets stay valid.
func (r *ringBuffer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos = 0
	r.full = false
}

func (r *ringBuffer) snapshot() []byte {
	if !r.full {
		return append([]byte(nil), r.buf[:r.pos]...)
	}
	out := make([]byte, r.size)
	copy(out, r.buf[r.pos:])
	copy(out[r.size-r.pos:], r.buf[:r.pos])
	return out
}
