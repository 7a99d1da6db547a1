package pool

import "sync"

// Default sizes for the record and content pools.
const (
	RecordBufferDefaultSize    = 1024 * 64        // 64KiB
	RecordBufferMaxThreshold   = 1024 * 1024 * 16 // 16MiB
	ContentBufferDefaultSize   = 1024 * 64        // 64KiB
	ContentBufferMaxThreshold  = 1024 * 1024 * 16 // 16MiB
	smallBufferGrowthThreshold = 4 * RecordBufferDefaultSize
)

// ByteBuffer is an owned, growable byte sequence.
//
// A ByteBuffer obtained from a pool has exactly one owner at a time. Handing
// it to another component transfers ownership; the final owner returns it to
// the pool it came from and must not touch it afterwards.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary, and
// returns the newly exposed n-byte window.
func (bb *ByteBuffer) ExtendOrGrow(n int) []byte {
	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]

	return bb.B[start:]
}

// Grow ensures the buffer can hold requiredBytes more bytes without reallocating.
//
// Small buffers grow by at least RecordBufferDefaultSize, larger ones by 25%
// of their capacity, and never by less than requiredBytes.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	if cap(bb.B)-len(bb.B) >= requiredBytes {
		return
	}

	growBy := RecordBufferDefaultSize
	if cap(bb.B) > smallBufferGrowthThreshold {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// Buffers whose capacity exceeds maxThreshold are dropped on Put instead of
// being retained, so one huge input file does not pin its memory.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	recordPool  = NewByteBufferPool(RecordBufferDefaultSize, RecordBufferMaxThreshold)
	contentPool = NewByteBufferPool(ContentBufferDefaultSize, ContentBufferMaxThreshold)
)

// GetRecordBuffer retrieves a ByteBuffer for an encoded record.
func GetRecordBuffer() *ByteBuffer {
	return recordPool.Get()
}

// PutRecordBuffer releases an encoded record buffer.
func PutRecordBuffer(bb *ByteBuffer) {
	recordPool.Put(bb)
}

// GetContentBuffer retrieves a ByteBuffer for raw file content.
func GetContentBuffer() *ByteBuffer {
	return contentPool.Get()
}

// PutContentBuffer releases a raw file content buffer.
func PutContentBuffer(bb *ByteBuffer) {
	contentPool.Put(bb)
}
