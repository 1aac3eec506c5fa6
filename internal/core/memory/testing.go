package memory

import "sync"

// Tracker 记录每个缓冲区分配与释放的分配器（测试辅助）
//
// 按底层数组首地址识别缓冲区，可检测泄漏与重复释放。
type Tracker struct {
	mu          sync.Mutex
	live        map[*byte]int
	allocs      int
	frees       int
	doubleFrees int
	fail        bool
}

// NewTracker 创建 Tracker
func NewTracker() *Tracker {
	return &Tracker{live: make(map[*byte]int)}
}

// Alloc 分配 n 字节
func (t *Tracker) Alloc(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fail {
		return nil, ErrNoMem
	}
	b := make([]byte, n)
	t.live[&b[0]] = n
	t.allocs++
	return b, nil
}

// Free 释放缓冲区
func (t *Tracker) Free(b []byte) {
	if len(b) == 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := &b[0]
	if _, ok := t.live[key]; !ok {
		t.doubleFrees++
		return
	}
	delete(t.live, key)
	t.frees++
}

// SetFail 设置后续分配是否失败
func (t *Tracker) SetFail(fail bool) {
	t.mu.Lock()
	t.fail = fail
	t.mu.Unlock()
}

// Outstanding 返回未释放缓冲区数
func (t *Tracker) Outstanding() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

// Allocs 返回累计分配次数
func (t *Tracker) Allocs() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.allocs
}

// Frees 返回累计释放次数
func (t *Tracker) Frees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frees
}

// DoubleFrees 返回重复释放次数
func (t *Tracker) DoubleFrees() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doubleFrees
}

var _ Allocator = (*Tracker)(nil)
