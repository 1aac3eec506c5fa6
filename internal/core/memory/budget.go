package memory

import (
	"sync/atomic"

	"github.com/meshx/go-meshx/pkg/lib/log"
)

var logger = log.Logger("core/memory")

// Allocator 载荷分配器
type Allocator interface {
	// Alloc 分配 n 字节
	Alloc(n int) ([]byte, error)

	// Free 释放由 Alloc 返回的缓冲区
	Free(b []byte)
}

// Stats 分配器统计
type Stats struct {
	InUse       int64 // 在用字节数
	Outstanding int64 // 未释放缓冲区数
	Limit       int64 // 字节上限（0 表示不限制）
	TotalAllocs int64 // 累计分配次数
	TotalFrees  int64 // 累计释放次数
	TotalFailed int64 // 累计分配失败次数
}

// ============================================================================
//                              Budget
// ============================================================================

// Budget 带字节上限的分配器
type Budget struct {
	limit int64

	inUse       atomic.Int64
	outstanding atomic.Int64
	allocs      atomic.Int64
	frees       atomic.Int64
	failed      atomic.Int64
}

// NewBudget 创建分配器，limit 为 0 表示不限制
func NewBudget(limit int64) *Budget {
	if limit < 0 {
		limit = 0
	}
	return &Budget{limit: limit}
}

// Alloc 分配 n 字节
func (b *Budget) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	if err := b.reserve(int64(n)); err != nil {
		b.failed.Add(1)
		return nil, err
	}
	b.outstanding.Add(1)
	b.allocs.Add(1)
	return make([]byte, n), nil
}

// Free 释放缓冲区
func (b *Budget) Free(buf []byte) {
	if buf == nil {
		return
	}
	if b.outstanding.Add(-1) < 0 {
		// 记账失衡说明有缓冲区被释放了两次
		b.outstanding.Add(1)
		logger.Error("检测到重复释放", "size", cap(buf))
		return
	}
	b.inUse.Add(-int64(cap(buf)))
	b.frees.Add(1)
}

// Stats 返回统计快照
func (b *Budget) Stats() Stats {
	return Stats{
		InUse:       b.inUse.Load(),
		Outstanding: b.outstanding.Load(),
		Limit:       b.limit,
		TotalAllocs: b.allocs.Load(),
		TotalFrees:  b.frees.Load(),
		TotalFailed: b.failed.Load(),
	}
}

// reserve 预留字节数（CAS 循环，避免并发超额）
func (b *Budget) reserve(n int64) error {
	for {
		current := b.inUse.Load()
		next := current + n
		if next < 0 || (b.limit > 0 && next > b.limit) {
			return ErrNoMem
		}
		if b.inUse.CompareAndSwap(current, next) {
			return nil
		}
	}
}
