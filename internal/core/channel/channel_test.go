package channel

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// 基础功能测试
// ============================================================================

// TestNew_InvalidCapacity 测试非法容量
func TestNew_InvalidCapacity(t *testing.T) {
	_, err := New[int](0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New[int](-1)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

// TestChannel_FIFO 测试先进先出
func TestChannel_FIFO(t *testing.T) {
	c, err := New[int](4)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, c.PushBack(i, 0))
	}
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 4, c.Cap())

	for i := 1; i <= 3; i++ {
		v, err := c.Pop(0)
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
}

// TestChannel_PushFront 测试头部入队
func TestChannel_PushFront(t *testing.T) {
	c, _ := New[string](4)

	require.NoError(t, c.PushBack("b", 0))
	require.NoError(t, c.PushFront("a", 0))

	v, err := c.Pop(0)
	require.NoError(t, err)
	assert.Equal(t, "a", v)
}

// TestChannel_PeekDoesNotRemove 测试查看不移除
func TestChannel_PeekDoesNotRemove(t *testing.T) {
	c, _ := New[int](2)
	require.NoError(t, c.PushBack(7, 0))

	v, err := c.Peek(0)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, c.Len())
}

// TestChannel_NonBlocking 测试非阻塞语义
func TestChannel_NonBlocking(t *testing.T) {
	c, _ := New[int](1)

	_, err := c.Pop(0)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = c.Peek(0)
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, c.PushBack(1, 0))
	assert.ErrorIs(t, c.PushBack(2, 0), ErrFull)
	assert.ErrorIs(t, c.PushFront(2, 0), ErrFull)
}

// TestChannel_Timeout 测试超时
func TestChannel_Timeout(t *testing.T) {
	c, _ := New[int](1)

	start := time.Now()
	_, err := c.Pop(20 * time.Millisecond)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, c.PushBack(1, 0))
	assert.ErrorIs(t, c.PushBack(2, 20*time.Millisecond), ErrTimeout)
}

// ============================================================================
// 阻塞与唤醒测试
// ============================================================================

// TestChannel_BlockingPopWakesOnPush 测试阻塞出队被入队唤醒
func TestChannel_BlockingPopWakesOnPush(t *testing.T) {
	c, _ := New[int](1)

	got := make(chan int, 1)
	go func() {
		v, err := c.Pop(Forever)
		if err == nil {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, c.PushBack(42, 0))

	select {
	case v := <-got:
		assert.Equal(t, 42, v)
	case <-time.After(time.Second):
		t.Fatal("blocked Pop was not woken")
	}
}

// TestChannel_BlockingPushWakesOnPop 测试阻塞入队被出队唤醒
func TestChannel_BlockingPushWakesOnPop(t *testing.T) {
	c, _ := New[int](1)
	require.NoError(t, c.PushBack(1, 0))

	done := make(chan error, 1)
	go func() {
		done <- c.PushBack(2, time.Second)
	}()

	time.Sleep(10 * time.Millisecond)
	_, err := c.Pop(0)
	require.NoError(t, err)

	require.NoError(t, <-done)
	v, err := c.Pop(0)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

// TestChannel_CloseWakesWaiters 测试关闭唤醒等待者
func TestChannel_CloseWakesWaiters(t *testing.T) {
	c, _ := New[int](1)

	done := make(chan error, 1)
	go func() {
		_, err := c.Pop(Forever)
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	c.Close()
	c.Close()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("Close did not wake waiter")
	}
	assert.ErrorIs(t, c.PushBack(1, 0), ErrClosed)
}

// TestChannel_DrainAfterClose 测试关闭后取出剩余元素
func TestChannel_DrainAfterClose(t *testing.T) {
	c, _ := New[int](3)
	require.NoError(t, c.PushBack(1, 0))
	require.NoError(t, c.PushBack(2, 0))

	c.Close()
	assert.Equal(t, []int{1, 2}, c.Drain())
	assert.Equal(t, 0, c.Len())

	_, err := c.Pop(0)
	assert.ErrorIs(t, err, ErrClosed)
}

// ============================================================================
// 并发测试
// ============================================================================

// TestChannel_ConcurrentProducers 测试多生产者单消费者
func TestChannel_ConcurrentProducers(t *testing.T) {
	c, _ := New[int](8)

	const producers = 8
	const perProducer = 100

	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := c.PushBack(p*perProducer+i, Forever); err != nil {
					t.Errorf("PushBack failed: %v", err)
					return
				}
			}
		}(p)
	}

	seen := make(map[int]bool)
	lastByProducer := make(map[int]int)
	for i := 0; i < producers*perProducer; i++ {
		v, err := c.Pop(time.Second)
		require.NoError(t, err)
		seen[v] = true

		// 同一生产者内保持顺序
		p := v / perProducer
		if last, ok := lastByProducer[p]; ok {
			assert.Greater(t, v, last)
		}
		lastByProducer[p] = v
	}
	wg.Wait()

	assert.Len(t, seen, producers*perProducer)
}
