// Package eventbus 实现控制任务事件总线
package eventbus

import (
	"sync"
	"sync/atomic"

	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/types"
)

// ============================================================================
// Subscription 实现
// ============================================================================

// Subscription 订阅
type Subscription struct {
	bus       *Bus
	code      types.MsgCode
	mask      types.Event
	out       chan pkgif.ControlMessage
	closeOnce sync.Once
	closed    atomic.Bool
}

// Out 返回事件通道
func (s *Subscription) Out() <-chan pkgif.ControlMessage {
	return s.out
}

// Close 取消订阅
//
// Close 是并发安全的，可以多次调用。
// 关闭后会：
//  1. 从总线移除订阅（此后不会再有发射者写入）
//  2. 关闭通道，已缓冲的事件仍可读出
func (s *Subscription) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.bus.removeSub(s)
		close(s.out)
	})

	return nil
}
