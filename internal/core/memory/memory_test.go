package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Budget 测试
// ============================================================================

// TestBudget_AllocFree 测试分配与释放记账
func TestBudget_AllocFree(t *testing.T) {
	b := NewBudget(0)

	buf, err := b.Alloc(16)
	require.NoError(t, err)
	assert.Len(t, buf, 16)

	stats := b.Stats()
	assert.Equal(t, int64(16), stats.InUse)
	assert.Equal(t, int64(1), stats.Outstanding)

	b.Free(buf)
	stats = b.Stats()
	assert.Equal(t, int64(0), stats.InUse)
	assert.Equal(t, int64(0), stats.Outstanding)
	assert.Equal(t, int64(1), stats.TotalAllocs)
	assert.Equal(t, int64(1), stats.TotalFrees)
}

// TestBudget_Limit 测试超出上限
func TestBudget_Limit(t *testing.T) {
	b := NewBudget(10)

	first, err := b.Alloc(8)
	require.NoError(t, err)

	_, err = b.Alloc(4)
	assert.ErrorIs(t, err, ErrNoMem)
	assert.Equal(t, int64(1), b.Stats().TotalFailed)

	b.Free(first)
	_, err = b.Alloc(10)
	assert.NoError(t, err)
}

// TestBudget_InvalidSize 测试非法大小
func TestBudget_InvalidSize(t *testing.T) {
	b := NewBudget(0)
	_, err := b.Alloc(0)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

// TestBudget_DoubleFreeIgnored 测试重复释放不破坏记账
func TestBudget_DoubleFreeIgnored(t *testing.T) {
	b := NewBudget(0)
	buf, _ := b.Alloc(4)

	b.Free(buf)
	b.Free(buf)

	stats := b.Stats()
	assert.Equal(t, int64(0), stats.Outstanding)
	assert.Equal(t, int64(0), stats.InUse)
	assert.Equal(t, int64(1), stats.TotalFrees)
}

// TestBudget_Concurrent 测试并发分配不超额
func TestBudget_Concurrent(t *testing.T) {
	b := NewBudget(64)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var held [][]byte
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if buf, err := b.Alloc(8); err == nil {
				mu.Lock()
				held = append(held, buf)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, held, 8)
	assert.LessOrEqual(t, b.Stats().InUse, int64(64))
}

// ============================================================================
// Buffer 测试
// ============================================================================

// TestBuffer_CopyIsPrivate 测试副本与调用方缓冲区独立
func TestBuffer_CopyIsPrivate(t *testing.T) {
	b := NewBudget(0)
	src := []byte{1, 2, 3}

	buf, err := Copy(b, src)
	require.NoError(t, err)

	src[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, buf.Bytes())
	assert.Equal(t, 3, buf.Len())
}

// TestBuffer_CopyEmpty 测试空载荷不分配
func TestBuffer_CopyEmpty(t *testing.T) {
	b := NewBudget(0)

	buf, err := Copy(b, nil)
	require.NoError(t, err)
	assert.True(t, buf.Empty())
	assert.Equal(t, int64(0), b.Stats().TotalAllocs)
}

// TestBuffer_CopyNoMem 测试分配失败
func TestBuffer_CopyNoMem(t *testing.T) {
	b := NewBudget(2)

	buf, err := Copy(b, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrNoMem)
	assert.True(t, buf.Empty())
}

// TestBuffer_MoveTransfersOwnership 测试所有权转移
func TestBuffer_MoveTransfersOwnership(t *testing.T) {
	b := NewBudget(0)
	src, _ := Copy(b, []byte{1, 2})

	dst := src.Move()
	assert.True(t, src.Empty())
	assert.Equal(t, []byte{1, 2}, dst.Bytes())

	// 源已为空，释放无副作用
	src.Free()
	assert.Equal(t, int64(1), b.Stats().Outstanding)

	dst.Free()
	dst.Free()
	assert.Equal(t, int64(0), b.Stats().Outstanding)
	assert.Equal(t, int64(1), b.Stats().TotalFrees)
}

// TestAutoLimit 测试自动预算推算
func TestAutoLimit(t *testing.T) {
	assert.Equal(t, int64(0), autoLimit(0))
	assert.Equal(t, int64(minAutoLimit), autoLimit(1<<20))
	assert.Equal(t, int64(8<<20), autoLimit(8<<30))

	limit := AutoLimit()
	assert.GreaterOrEqual(t, limit, int64(0))
}
