package channel

import (
	"container/list"
	"sync"
	"time"
)

// Forever 无限等待
const Forever time.Duration = -1

// ============================================================================
//                              Channel
// ============================================================================

// Channel 有界阻塞双端队列
type Channel[T any] struct {
	mu sync.Mutex

	items    *list.List
	capacity int
	closed   bool

	// changed 在每次状态变化时关闭并替换，用于唤醒等待者
	changed chan struct{}
}

// New 创建容量为 capacity 的 Channel
func New[T any](capacity int) (*Channel[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Channel[T]{
		items:    list.New(),
		capacity: capacity,
		changed:  make(chan struct{}),
	}, nil
}

// PushBack 尾部入队
func (c *Channel[T]) PushBack(item T, timeout time.Duration) error {
	return c.push(item, false, timeout)
}

// PushFront 头部入队
func (c *Channel[T]) PushFront(item T, timeout time.Duration) error {
	return c.push(item, true, timeout)
}

// Pop 出队队首元素
func (c *Channel[T]) Pop(timeout time.Duration) (T, error) {
	return c.take(true, timeout)
}

// Peek 查看队首元素（不移除）
func (c *Channel[T]) Peek(timeout time.Duration) (T, error) {
	return c.take(false, timeout)
}

// Len 返回当前元素数
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items.Len()
}

// Cap 返回容量
func (c *Channel[T]) Cap() int {
	return c.capacity
}

// Close 关闭队列并唤醒所有等待者
//
// 已缓存的元素保留，可通过 Drain 取出。重复关闭无副作用。
func (c *Channel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.broadcastLocked()
}

// Drain 取出所有剩余元素（按队列顺序）
func (c *Channel[T]) Drain() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]T, 0, c.items.Len())
	for e := c.items.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(T))
	}
	c.items.Init()
	c.broadcastLocked()
	return out
}

// ============================================================================
//                              内部方法
// ============================================================================

func (c *Channel[T]) push(item T, front bool, timeout time.Duration) error {
	var deadline <-chan time.Time

	for {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return ErrClosed
		}
		if c.items.Len() < c.capacity {
			if front {
				c.items.PushFront(item)
			} else {
				c.items.PushBack(item)
			}
			c.broadcastLocked()
			c.mu.Unlock()
			return nil
		}
		if timeout == 0 {
			c.mu.Unlock()
			return ErrFull
		}
		wait := c.changed
		c.mu.Unlock()

		if deadline == nil && timeout > 0 {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			deadline = timer.C
		}
		select {
		case <-wait:
		case <-deadline:
			return ErrTimeout
		}
	}
}

func (c *Channel[T]) take(remove bool, timeout time.Duration) (T, error) {
	var zero T
	var deadline <-chan time.Time

	for {
		c.mu.Lock()
		if front := c.items.Front(); front != nil {
			item := front.Value.(T)
			if remove {
				c.items.Remove(front)
				c.broadcastLocked()
			}
			c.mu.Unlock()
			return item, nil
		}
		if c.closed {
			c.mu.Unlock()
			return zero, ErrClosed
		}
		if timeout == 0 {
			c.mu.Unlock()
			return zero, ErrEmpty
		}
		wait := c.changed
		c.mu.Unlock()

		if deadline == nil && timeout > 0 {
			timer := time.NewTimer(timeout)
			defer timer.Stop()
			deadline = timer.C
		}
		select {
		case <-wait:
		case <-deadline:
			return zero, ErrTimeout
		}
	}
}

// broadcastLocked 唤醒所有等待者（需持有锁）
func (c *Channel[T]) broadcastLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}
