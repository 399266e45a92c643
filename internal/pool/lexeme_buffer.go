package pool

import (
	"sync"
	"unicode/utf8"
)

const (
	// LexemeBufferDefaultSize is the capacity of buffers handed out by the pool.
	// Numeric literals and short matched runs fit without growing.
	LexemeBufferDefaultSize = 64

	// LexemeBufferMaxThreshold is the largest buffer the pool retains.
	// Buffers that grew past it (pathological digit runs, huge matched
	// strings) are dropped to avoid memory bloat.
	LexemeBufferMaxThreshold = 4 * 1024
)

// LexemeBuffer accumulates the raw text of a token while a primitive scans
// the stream. It grows on demand; the common case never reallocates.
type LexemeBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewLexemeBuffer creates a new LexemeBuffer with the specified capacity.
func NewLexemeBuffer(capacity int) *LexemeBuffer {
	return &LexemeBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Reset resets the buffer to be empty, retaining the allocated memory for reuse.
func (lb *LexemeBuffer) Reset() {
	lb.B = lb.B[:0]
}

// Len returns the number of accumulated bytes.
func (lb *LexemeBuffer) Len() int {
	return len(lb.B)
}

// Cap returns the capacity of the buffer.
func (lb *LexemeBuffer) Cap() int {
	return cap(lb.B)
}

// AppendByte appends a single byte, growing the buffer if necessary.
func (lb *LexemeBuffer) AppendByte(b byte) {
	lb.B = append(lb.B, b)
}

// AppendRune appends the UTF-8 encoding of r, growing the buffer if necessary.
func (lb *LexemeBuffer) AppendRune(r rune) {
	lb.B = utf8.AppendRune(lb.B, r)
}

// Truncate discards all but the first n accumulated bytes.
// Panics if n is negative or beyond the current length.
func (lb *LexemeBuffer) Truncate(n int) {
	if n < 0 || n > len(lb.B) {
		panic("Truncate: invalid length")
	}
	lb.B = lb.B[:n]
}

// String returns the accumulated bytes as a string. The returned string is
// an independent copy and stays valid after the buffer is reused.
func (lb *LexemeBuffer) String() string {
	return string(lb.B)
}

// LexemeBufferPool is a pool of LexemeBuffers to minimize allocations.
//
// It uses sync.Pool internally. A maximum size threshold avoids retaining
// overly large buffers.
type LexemeBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewLexemeBufferPool creates a new LexemeBufferPool with buffers of the
// specified default capacity.
func NewLexemeBufferPool(defaultSize int, maxThreshold int) *LexemeBufferPool {
	return &LexemeBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewLexemeBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a LexemeBuffer from the pool.
func (lbp *LexemeBufferPool) Get() *LexemeBuffer {
	lb, _ := lbp.pool.Get().(*LexemeBuffer)
	return lb
}

// Put returns a LexemeBuffer to the pool for reuse.
func (lbp *LexemeBufferPool) Put(lb *LexemeBuffer) {
	if lb == nil {
		return
	}

	if lbp.maxThreshold > 0 && cap(lb.B) > lbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	lb.Reset()
	lbp.pool.Put(lb)
}

var lexemeDefaultPool = NewLexemeBufferPool(LexemeBufferDefaultSize, LexemeBufferMaxThreshold)

// GetLexemeBuffer retrieves a LexemeBuffer from the default pool.
func GetLexemeBuffer() *LexemeBuffer {
	return lexemeDefaultPool.Get()
}

// PutLexemeBuffer returns a LexemeBuffer to the default pool.
func PutLexemeBuffer(lb *LexemeBuffer) {
	lexemeDefaultPool.Put(lb)
}
