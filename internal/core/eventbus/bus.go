// Package eventbus 实现控制任务事件总线
package eventbus

import (
	"errors"
	"sync"
	"sync/atomic"

	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/lib/log"
	"github.com/meshx/go-meshx/pkg/types"
)

var logger = log.Logger("core/eventbus")

// ============================================================================
// 错误定义
// ============================================================================

var (
	// ErrClosed 事件总线已关闭
	ErrClosed = errors.New("eventbus closed")
	// ErrInvalidArg 非法参数（消息码越界、空掩码或空处理函数）
	ErrInvalidArg = errors.New("eventbus: invalid argument")
)

// defaultBufSize 默认订阅缓冲区大小
const defaultBufSize = 16

// ============================================================================
// Bus 实现
// ============================================================================

// Bus 控制任务事件总线
type Bus struct {
	mu sync.RWMutex

	// nodes 消息码节点映射
	nodes  map[types.MsgCode]*node
	closed bool

	// bufSize 订阅默认缓冲区大小
	bufSize int
}

// node 消息码节点
type node struct {
	lk        sync.Mutex
	code      types.MsgCode
	sinks     []*Subscription // 订阅者列表
	dropCount atomic.Int64    // 丢弃事件计数（用于慢消费者警告）
}

// NewBus 创建新的事件总线
func NewBus() *Bus {
	return NewBusWithBuffer(defaultBufSize)
}

// NewBusWithBuffer 创建指定默认订阅缓冲区大小的事件总线
func NewBusWithBuffer(size int) *Bus {
	if size < 0 {
		size = defaultBufSize
	}
	return &Bus{
		nodes:   make(map[types.MsgCode]*node),
		bufSize: size,
	}
}

var _ pkgif.EventBus = (*Bus)(nil)

// ============================================================================
// EventBus 接口实现
// ============================================================================

// Subscribe 订阅事件
func (b *Bus) Subscribe(code types.MsgCode, mask types.Event, opts ...pkgif.SubscriptionOpt) (pkgif.Subscription, error) {
	return b.subscribe(code, mask, opts)
}

// SubscribeFunc 订阅事件并在独立 goroutine 中调用 handler
//
// handler 返回的错误只记录日志。订阅关闭后 goroutine 退出。
func (b *Bus) SubscribeFunc(code types.MsgCode, mask types.Event, handler pkgif.EventHandler, opts ...pkgif.SubscriptionOpt) (pkgif.Subscription, error) {
	if handler == nil {
		return nil, ErrInvalidArg
	}

	sub, err := b.subscribe(code, mask, opts)
	if err != nil {
		return nil, err
	}

	go func() {
		for msg := range sub.out {
			if err := handler(msg); err != nil {
				logger.Warn("事件处理失败",
					"code", msg.Code,
					"evt", msg.Event,
					"err", err)
			}
		}
	}()

	return sub, nil
}

// Publish 发布事件
//
// params 会被复制，调用方可立即复用自己的缓冲区。
func (b *Bus) Publish(code types.MsgCode, evt types.Event, params []byte) error {
	if !code.Valid() || evt == 0 {
		return ErrInvalidArg
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrClosed
	}
	n, ok := b.nodes[code]
	b.mu.RUnlock()

	if !ok {
		logger.Debug("消息码无订阅者", "code", code, "evt", evt)
		return nil
	}

	var copied []byte
	if len(params) > 0 {
		copied = make([]byte, len(params))
		copy(copied, params)
	}

	n.emit(pkgif.ControlMessage{Code: code, Event: evt, Params: copied})
	return nil
}

// Close 关闭总线并关闭所有订阅
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true

	var subs []*Subscription
	for _, n := range b.nodes {
		n.lk.Lock()
		subs = append(subs, n.sinks...)
		n.lk.Unlock()
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	return nil
}

// ============================================================================
// 内部方法
// ============================================================================

// subscribe 创建订阅
func (b *Bus) subscribe(code types.MsgCode, mask types.Event, opts []pkgif.SubscriptionOpt) (*Subscription, error) {
	if !code.Valid() || mask == 0 {
		return nil, ErrInvalidArg
	}

	settings := &pkgif.SubscriptionSettings{
		Buffer: b.bufSize,
	}
	for _, opt := range opts {
		opt(settings)
	}
	if settings.Buffer < 0 {
		settings.Buffer = 0
	}

	sub := &Subscription{
		bus:  b,
		code: code,
		mask: mask,
		out:  make(chan pkgif.ControlMessage, settings.Buffer),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrClosed
	}
	n, ok := b.nodes[code]
	if !ok {
		n = &node{code: code}
		b.nodes[code] = n
	}
	n.lk.Lock()
	b.mu.Unlock()

	n.sinks = append(n.sinks, sub)
	n.lk.Unlock()

	return sub, nil
}

// removeSub 移除订阅
func (b *Bus) removeSub(sub *Subscription) {
	b.mu.Lock()
	n, ok := b.nodes[sub.code]
	if !ok {
		b.mu.Unlock()
		return
	}

	n.lk.Lock()
	for i, s := range n.sinks {
		if s == sub {
			n.sinks = append(n.sinks[:i], n.sinks[i+1:]...)
			break
		}
	}
	if len(n.sinks) == 0 {
		delete(b.nodes, sub.code)
	}
	n.lk.Unlock()
	b.mu.Unlock()
}

// emit 发射事件到掩码匹配的订阅者
func (n *node) emit(msg pkgif.ControlMessage) {
	n.lk.Lock()
	defer n.lk.Unlock()

	delivered := false
	for _, sub := range n.sinks {
		if !sub.mask.Has(msg.Event) {
			continue
		}
		select {
		case sub.out <- msg:
			delivered = true
		default:
			dropped := n.dropCount.Add(1)

			// 每丢弃 100 个事件警告一次，避免日志泛滥
			if dropped%100 == 1 {
				logger.Warn("慢消费者检测",
					"dropped", dropped,
					"code", n.code,
					"reason", "subscriber buffer full")
			}
		}
	}

	if !delivered {
		logger.Debug("事件无匹配订阅者", "code", msg.Code, "evt", msg.Event)
	}
}
