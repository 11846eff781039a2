package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	capacity := 1024
	bb := NewByteBuffer(capacity)

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "new buffer should have zero length")
	assert.Equal(t, capacity, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Bytes(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.B = append(bb.B, []byte("hello")...)

	bytes := bb.Bytes()

	assert.Equal(t, []byte("hello"), bytes)
	assert.True(t, &bb.B[0] == &bytes[0], "Bytes() should return the same underlying slice")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.B = append(bb.B, []byte("some data")...)
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, len(bb.B), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Len(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)

	assert.Equal(t, 0, bb.Len(), "empty buffer should have zero length")

	bb.B = append(bb.B, []byte("test")...)
	assert.Equal(t, 4, bb.Len(), "buffer length should match data")

	bb.B = append(bb.B, []byte(" data")...)
	assert.Equal(t, 9, bb.Len(), "buffer length should update after append")
}

func TestByteBuffer_Extend(t *testing.T) {
	bb := NewByteBuffer(64)

	ok := bb.Extend(32)
	assert.True(t, ok, "should extend within existing capacity")
	assert.Equal(t, 32, bb.Len())

	ok = bb.Extend(1000)
	assert.False(t, ok, "should refuse to extend past capacity")
	assert.Equal(t, 32, bb.Len(), "length should be unchanged after a failed Extend")
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.ExtendOrGrow(64)

	assert.Equal(t, 64, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), 64)
}

func TestByteBuffer_Write(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)

	n, err := bb.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, []byte("hello"), bb.B)
}

func TestByteBuffer_Write_Multiple(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)

	n1, err1 := bb.Write([]byte("hello"))
	require.NoError(t, err1)
	assert.Equal(t, 5, n1)

	n2, err2 := bb.Write([]byte(" world"))
	require.NoError(t, err2)
	assert.Equal(t, 6, n2)

	assert.Equal(t, []byte("hello world"), bb.B)
	assert.Equal(t, 11, bb.Len())
}

// =============================================================================
// ByteBuffer Grow Tests
// =============================================================================

func TestByteBuffer_Grow_SufficientCapacity(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(100)

	assert.Equal(t, originalCap, cap(bb.B), "should not reallocate when capacity is sufficient")
}

func TestByteBuffer_Grow_SmallBuffer(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, FrameBufferDefaultSize)...) // Fill to capacity

	bb.Grow(1024)

	assert.GreaterOrEqual(t, cap(bb.B), FrameBufferDefaultSize+1024, "should have at least requested capacity")
	assert.Equal(t, FrameBufferDefaultSize, len(bb.B), "length should not change")
}

func TestByteBuffer_Grow_LargeBuffer(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	largeSize := 4*FrameBufferDefaultSize + 1024
	bb.B = make([]byte, largeSize)

	bb.Grow(2048)

	assert.GreaterOrEqual(t, cap(bb.B), largeSize+2048, "should have at least requested capacity")
}

func TestByteBuffer_Grow_ExactRequiredBytes(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, FrameBufferDefaultSize)...) // Fill to capacity

	bb.Grow(1)

	assert.Greater(t, cap(bb.B), FrameBufferDefaultSize, "should have grown")
}

func TestByteBuffer_Grow_MoreThanDefaultGrowth(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.B = append(bb.B, make([]byte, FrameBufferDefaultSize)...) // Fill to capacity

	hugeSize := FrameBufferDefaultSize * 10
	bb.Grow(hugeSize)

	assert.GreaterOrEqual(t, cap(bb.B), FrameBufferDefaultSize+hugeSize, "should accommodate huge growth request")
}

func TestByteBuffer_Grow_PreservesData(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	testData := []byte("important data that must be preserved")
	bb.B = append(bb.B, testData...)

	bb.Grow(FrameBufferDefaultSize * 2) // Force reallocation

	assert.Equal(t, testData, bb.B, "data should be preserved after growth")
}

func TestByteBuffer_Grow_ZeroBytes(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	originalCap := cap(bb.B)

	bb.Grow(0)

	assert.Equal(t, originalCap, cap(bb.B), "Grow(0) should not change capacity")
}

// =============================================================================
// Frame Pool Tests
// =============================================================================

func TestGetFrameBuffer(t *testing.T) {
	bb := GetFrameBuffer()

	require.NotNil(t, bb)
	require.NotNil(t, bb.B)
	assert.Equal(t, 0, len(bb.B), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), FrameBufferDefaultSize, "pooled buffer should have at least default capacity")
}

func TestPutFrameBuffer_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutFrameBuffer(nil)
	})
}

func TestGetPut_FrameBufferReuse(t *testing.T) {
	bb1 := GetFrameBuffer()
	bb1.B = append(bb1.B, []byte("test data")...)
	capacity1 := cap(bb1.B)

	PutFrameBuffer(bb1)

	bb2 := GetFrameBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer from pool should be reset")

	if capacity1 == cap(bb2.B) {
		t.Log("Buffer was likely reused from pool")
	}
}

func TestPool_ResetsClearsData(t *testing.T) {
	bb := GetFrameBuffer()
	bb.B = append(bb.B, []byte("frame payload")...)

	PutFrameBuffer(bb)

	bb2 := GetFrameBuffer()
	assert.Equal(t, 0, len(bb2.B), "buffer should be empty after retrieval from pool")
	assert.Equal(t, 0, len(bb.B), "PutFrameBuffer should reset the buffer")
}

func TestPool_MultipleGetsAndPuts(t *testing.T) {
	buffers := make([]*ByteBuffer, 10)

	for i := range buffers {
		buffers[i] = GetFrameBuffer()
		require.NotNil(t, buffers[i])
		_, _ = buffers[i].Write([]byte("data"))
	}

	for _, bb := range buffers {
		PutFrameBuffer(bb)
	}

	for range 10 {
		bb := GetFrameBuffer()
		assert.Equal(t, 0, bb.Len(), "each buffer should be reset")
		PutFrameBuffer(bb)
	}
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const numGoroutines = 100
	const numIterations = 1000

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()
			for range numIterations {
				bb := GetFrameBuffer()
				_, _ = bb.Write([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutFrameBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

// =============================================================================
// byteBufferPool Tests
// =============================================================================

func TestNewByteBufferPool(t *testing.T) {
	p := newByteBufferPool(8192, 65536)

	require.NotNil(t, p)

	bb := p.Get()
	require.NotNil(t, bb)
	assert.GreaterOrEqual(t, cap(bb.B), 8192, "buffer should have at least default size")

	p.Put(bb)
}

func TestByteBufferPool_CustomSizes(t *testing.T) {
	tests := []struct {
		name         string
		defaultSize  int
		maxThreshold int
	}{
		{"Small pool", 1024, 4096},
		{"Medium pool", 16384, 131072},
		{"Large pool", 1048576, 8388608},
		{"No threshold", 8192, 0}, // 0 means no limit
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newByteBufferPool(tt.defaultSize, tt.maxThreshold)
			bb := p.Get()
			assert.GreaterOrEqual(t, cap(bb.B), tt.defaultSize)
			p.Put(bb)
		})
	}
}

func TestByteBufferPool_MaxThreshold_Discard(t *testing.T) {
	p := newByteBufferPool(1024, 4096)

	bb := p.Get()
	bb.Grow(10000) // Grow beyond 4096 threshold

	assert.Greater(t, cap(bb.B), 4096, "buffer should have grown beyond threshold")

	p.Put(bb)

	bb2 := p.Get()
	assert.LessOrEqual(t, cap(bb2.B), 4096*2, "should not reuse buffer larger than threshold")
}

func TestByteBufferPool_MaxThreshold_Accept(t *testing.T) {
	p := newByteBufferPool(1024, 4096)

	bb := p.Get()
	_, _ = bb.Write(make([]byte, 500))
	capacity1 := cap(bb.B)

	p.Put(bb)

	bb2 := p.Get()
	assert.Equal(t, capacity1, cap(bb2.B), "buffer within threshold should be reused as-is")
}

func TestByteBufferPool_MaxThreshold_Zero(t *testing.T) {
	p := newByteBufferPool(1024, 0) // 0 means no limit

	bb := p.Get()
	bb.Grow(1024 * 1024) // 1MB

	assert.Greater(t, cap(bb.B), 100000, "buffer should have grown to large size")

	p.Put(bb)

	bb2 := p.Get()
	assert.NotNil(t, bb2)
}

// =============================================================================
// Integration Tests
// =============================================================================

func TestByteBuffer_LargeDataWrite(t *testing.T) {
	bb := GetFrameBuffer()
	defer PutFrameBuffer(bb)

	largeData := make([]byte, 1024*1024)
	for i := range largeData {
		largeData[i] = byte(i % 256)
	}

	_, _ = bb.Write(largeData)

	assert.Equal(t, len(largeData), bb.Len())
	assert.Equal(t, largeData, bb.B)
}

func TestByteBuffer_GrowAndWrite(t *testing.T) {
	bb := GetFrameBuffer()
	defer PutFrameBuffer(bb)

	bb.Grow(100 * 1024)
	initialCap := cap(bb.B)

	data := make([]byte, 50*1024)
	_, _ = bb.Write(data)

	assert.Equal(t, initialCap, cap(bb.B))
	assert.Equal(t, 50*1024, bb.Len())
}

func TestByteBuffer_MultipleWritesCauseGrowth(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	initialCap := cap(bb.B)

	largeData := make([]byte, FrameBufferDefaultSize+1000)
	_, _ = bb.Write(largeData)

	assert.Greater(t, cap(bb.B), initialCap, "buffer should have grown")
	assert.Equal(t, len(largeData), bb.Len())
}

func TestByteBuffer_ResetAndReuse(t *testing.T) {
	bb := GetFrameBuffer()
	defer PutFrameBuffer(bb)

	_, _ = bb.Write([]byte("first"))
	assert.Equal(t, 5, bb.Len())

	bb.Reset()
	assert.Equal(t, 0, bb.Len())

	_, _ = bb.Write([]byte("second"))
	assert.Equal(t, 6, bb.Len())
	assert.Equal(t, []byte("second"), bb.B)
}

// =============================================================================
// Benchmark Tests
// =============================================================================

func BenchmarkByteBuffer_Write(b *testing.B) {
	data := []byte("benchmark data for testing write performance")

	b.ResetTimer()
	for b.Loop() {
		bb := NewByteBuffer(FrameBufferDefaultSize)
		_, _ = bb.Write(data)
	}
}

func BenchmarkByteBuffer_Write_Small(b *testing.B) {
	bb := GetFrameBuffer()
	defer PutFrameBuffer(bb)
	data := []byte("small data")

	b.ResetTimer()
	for b.Loop() {
		bb.Reset()
		_, _ = bb.Write(data)
	}
}

func BenchmarkByteBuffer_Write_Large(b *testing.B) {
	bb := GetFrameBuffer()
	defer PutFrameBuffer(bb)
	data := make([]byte, 64*1024) // 64KB

	b.ResetTimer()
	for b.Loop() {
		bb.Reset()
		_, _ = bb.Write(data)
	}
}

func BenchmarkByteBuffer_Grow(b *testing.B) {
	b.ResetTimer()
	for b.Loop() {
		bb := NewByteBuffer(FrameBufferDefaultSize)
		bb.Grow(1024 * 1024) // 1MB
	}
}

func BenchmarkGetPut_Reuse(b *testing.B) {
	for b.Loop() {
		bb := GetFrameBuffer()
		_, _ = bb.Write([]byte("benchmark data"))
		PutFrameBuffer(bb)
	}
}

func BenchmarkNewBuffer_NoPool(b *testing.B) {
	for b.Loop() {
		bb := NewByteBuffer(FrameBufferDefaultSize)
		_, _ = bb.Write([]byte("benchmark data"))
		_ = bb
	}
}

func BenchmarkPool_GetPut(b *testing.B) {
	b.ResetTimer()
	for b.Loop() {
		bb := GetFrameBuffer()
		PutFrameBuffer(bb)
	}
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	data := []byte("benchmark data")

	b.ResetTimer()
	for b.Loop() {
		bb := GetFrameBuffer()
		_, _ = bb.Write(data)
		PutFrameBuffer(bb)
	}
}

func BenchmarkPool_vs_NewBuffer(b *testing.B) {
	data := make([]byte, 1024)

	b.Run("WithPool", func(b *testing.B) {
		for b.Loop() {
			bb := GetFrameBuffer()
			_, _ = bb.Write(data)
			PutFrameBuffer(bb)
		}
	})

	b.Run("WithoutPool", func(b *testing.B) {
		for b.Loop() {
			bb := NewByteBuffer(FrameBufferDefaultSize)
			_, _ = bb.Write(data)
		}
	})
}

func BenchmarkByteBuffer_LargeWrites(b *testing.B) {
	sizes := []int{
		1024,        // 1KB
		8192,        // 8KB
		64 * 1024,   // 64KB
		256 * 1024,  // 256KB
		1024 * 1024, // 1MB
	}

	for _, size := range sizes {
		data := make([]byte, size)
		b.Run(formatBytes(size), func(b *testing.B) {
			for b.Loop() {
				bb := GetFrameBuffer()
				_, _ = bb.Write(data)
				PutFrameBuffer(bb)
			}
		})
	}
}

// =============================================================================
// ByteBuffer vs Native Slice Comparison Benchmarks
// =============================================================================

func BenchmarkByteBuffer_vs_NativeSlice_SingleWrite(b *testing.B) {
	data := []byte("benchmark data for testing write performance")

	b.Run("ByteBuffer/Write", func(b *testing.B) {
		bb := NewByteBuffer(FrameBufferDefaultSize)
		for b.Loop() {
			_, _ = bb.Write(data)
			bb.Reset()
		}
	})

	b.Run("NativeSlice/Append", func(b *testing.B) {
		slice := make([]byte, 0, FrameBufferDefaultSize)
		for b.Loop() {
			slice = append(slice, data...)
			slice = slice[:0]
		}
	})
}

func BenchmarkConcurrentGetPut(b *testing.B) {
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			bb := GetFrameBuffer()
			_, _ = bb.Write([]byte("concurrent test data"))
			PutFrameBuffer(bb)
		}
	})
}

// =============================================================================
// Helper Functions
// =============================================================================

// formatBytes formats a byte count as a human-readable string
func formatBytes(b int) string {
	const unit = 1024
	if b < unit {
		return bytesToString(b) + "B"
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return bytesToString(b/int(div)) + []string{"K", "M", "G"}[exp] + "B"
}

func bytesToString(n int) string {
	if n == 0 {
		return "0"
	}
	digits := make([]byte, 0, 10)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}

	return string(digits)
}
