package txcm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"

	"github.com/meshx/go-meshx/internal/core/channel"
	"github.com/meshx/go-meshx/internal/core/memory"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/lib/log"
	"github.com/meshx/go-meshx/pkg/types"
)

var logger = log.Logger("core/txcm")

// ============================================================================
//                              Manager
// ============================================================================

// Manager 发送控制模块实例
//
// 每个 Manager 拥有独立的信号队列、待投递队列和工作协程，可在同一进程中并存。
type Manager struct {
	cfg      Config
	bus      pkgif.EventBus
	alloc    memory.Allocator
	ownAlloc bool

	observers atomic.Pointer[[]Observer]

	mu          sync.RWMutex
	initialized bool
	closed      bool
	sigQ        *channel.Channel[*request]
	txQ         *channel.Channel[*entry]
	done        chan struct{}

	// errLog 限制工作协程错误日志频率
	errLog  rate.Sometimes
	sendLog rate.Sometimes
}

var _ pkgif.TXCM = (*Manager)(nil)

// Option Manager 选项
type Option func(*Manager)

// WithAllocator 使用指定的载荷分配器
func WithAllocator(alloc memory.Allocator) Option {
	return func(m *Manager) {
		if alloc != nil {
			m.alloc = alloc
			m.ownAlloc = false
		}
	}
}

// WithObservers 注册观察者
func WithObservers(obs ...Observer) Option {
	return func(m *Manager) {
		for _, o := range obs {
			m.AddObserver(o)
		}
	}
}

// New 创建 Manager
//
// 创建后需调用 Init 启动工作协程。
func New(cfg Config, bus pkgif.EventBus, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid txcm config: %w", err)
	}
	if bus == nil {
		return nil, fmt.Errorf("%w: nil event bus", ErrInvalidArg)
	}

	m := &Manager{
		cfg:      cfg,
		bus:      bus,
		alloc:    memory.NewBudget(cfg.memoryLimit()),
		ownAlloc: true,
		errLog:   rate.Sometimes{First: 10, Interval: time.Second},
		sendLog:  rate.Sometimes{First: 10, Interval: time.Second},
	}
	m.observers.Store(&[]Observer{})

	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Init 创建两个队列并启动工作协程
//
// 幂等：重复调用直接返回 nil，不会重复创建任何资源。
func (m *Manager) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if m.initialized {
		logger.Debug("TXCM 已初始化，跳过")
		return nil
	}

	txQ, err := channel.New[*entry](m.cfg.TxQueueLen)
	if err != nil {
		return fmt.Errorf("create tx queue: %w", err)
	}
	sigQ, err := channel.New[*request](m.cfg.SignalQueueLen)
	if err != nil {
		return fmt.Errorf("create signal queue: %w", err)
	}

	m.txQ = txQ
	m.sigQ = sigQ
	m.done = make(chan struct{})
	m.initialized = true

	go m.run(sigQ, m.done)

	logger.Info("TXCM 已启动",
		"signalQueue", m.cfg.SignalQueueLen,
		"txQueue", m.cfg.TxQueueLen,
		"maxRetry", m.cfg.MaxRetry)
	return nil
}

// Submit 提交信号请求
//
// 载荷非空时制作私有副本，返回后调用方可立即复用 params。
// 入队失败时副本在返回前释放。
func (m *Manager) Submit(kind types.SignalKind, dest types.Address, params []byte, send pkgif.SendFunc) error {
	sig, err := newSignal(kind, send)
	if err != nil {
		return err
	}
	if m.cfg.MaxParamLen > 0 && len(params) > m.cfg.MaxParamLen {
		return ErrInvalidArg
	}

	id, err := m.enqueue(sig, dest, params)
	if err != nil {
		return err
	}

	m.notify(func(o Observer) { o.OnSubmit(kind, dest) })
	logger.Debug("信号已入队",
		"signal", kind,
		"dest", dest,
		"id", id,
		"len", len(params))
	return nil
}

// enqueue 复制载荷并推入信号队列
//
// 持有读锁直到入队完成，保证 Close 之后不再有副本被分配。
func (m *Manager) enqueue(sig signal, dest types.Address, params []byte) (uuid.UUID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return uuid.Nil, ErrClosed
	}
	if !m.initialized {
		return uuid.Nil, ErrNotInitialized
	}

	buf, err := memory.Copy(m.alloc, params)
	if err != nil {
		return uuid.Nil, err
	}

	req := &request{
		id:      uuid.New(),
		sig:     sig,
		dest:    dest,
		payload: buf.Move(),
	}
	if err := m.sigQ.PushBack(req, m.cfg.SubmitTimeout); err != nil {
		req.payload.Free()
		return uuid.Nil, opError("submit", sig.kind(), err)
	}
	return req.id, nil
}

// EnqueueSend 提交需要确认的消息
func (m *Manager) EnqueueSend(dest types.Address, params []byte, send pkgif.SendFunc) error {
	return m.Submit(types.SignalEnqSend, dest, params, send)
}

// DirectSend 提交发送即完成的消息
func (m *Manager) DirectSend(dest types.Address, params []byte, send pkgif.SendFunc) error {
	return m.Submit(types.SignalDirectSend, dest, params, send)
}

// Resend 请求重发队首消息
//
// ctx 在重试耗尽时原样附在 TIMEOUT 事件中。
func (m *Manager) Resend(dest types.Address, ctx []byte) error {
	return m.Submit(types.SignalResend, dest, ctx, nil)
}

// Ack 确认发往 dest 的队首消息
func (m *Manager) Ack(dest types.Address) error {
	return m.Submit(types.SignalAck, dest, nil, nil)
}

// AddObserver 注册观察者
func (m *Manager) AddObserver(o Observer) {
	if o == nil {
		return
	}
	for {
		old := m.observers.Load()
		next := make([]Observer, 0, len(*old)+1)
		next = append(next, *old...)
		next = append(next, o)
		if m.observers.CompareAndSwap(old, &next) {
			return
		}
	}
}

// Close 停止工作协程并释放仍持有的载荷
//
// 已入队的信号会先被处理完，随后待投递队列中剩余的条目被丢弃。
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	sigQ, txQ, done := m.sigQ, m.txQ, m.done
	m.mu.Unlock()

	if sigQ == nil {
		return nil
	}

	sigQ.Close()
	<-done
	txQ.Close()

	var err error
	for _, req := range sigQ.Drain() {
		req.payload.Free()
	}
	dropped := txQ.Drain()
	for _, e := range dropped {
		e.payload.Free()
		m.notify(func(o Observer) { o.OnDrop(DropClosed, e.dest) })
	}
	if len(dropped) > 0 {
		logger.Warn("关闭时丢弃未完成消息", "count", len(dropped))
	}

	if b, ok := m.alloc.(*memory.Budget); ok && m.ownAlloc {
		if n := b.Stats().Outstanding; n != 0 {
			err = multierr.Append(err, fmt.Errorf("txcm: %d payload buffers outstanding after close", n))
		}
	}

	logger.Info("TXCM 已关闭")
	return err
}

// ============================================================================
//                              统计
// ============================================================================

// Stats 运行状态快照
type Stats struct {
	Initialized bool
	Closed      bool
	PendingLen  int // 待投递队列长度
	SignalLen   int // 信号队列长度
	Memory      memory.Stats
}

// Stats 返回运行状态快照
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	s := Stats{
		Initialized: m.initialized,
		Closed:      m.closed,
	}
	txQ, sigQ := m.txQ, m.sigQ
	m.mu.RUnlock()

	if txQ != nil {
		s.PendingLen = txQ.Len()
	}
	if sigQ != nil {
		s.SignalLen = sigQ.Len()
	}
	if b, ok := m.alloc.(*memory.Budget); ok {
		s.Memory = b.Stats()
	}
	return s
}

// Config 返回配置
func (m *Manager) Config() Config {
	return m.cfg
}

// notify 通知所有观察者
func (m *Manager) notify(fn func(Observer)) {
	for _, o := range *m.observers.Load() {
		fn(o)
	}
}

// isClosedErr 是否为队列关闭错误
func isClosedErr(err error) bool {
	return errors.Is(err, channel.ErrClosed)
}
