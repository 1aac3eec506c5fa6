package client

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/multierr"

	"github.com/meshx/go-meshx/internal/core/txcm"
	pkgif "github.com/meshx/go-meshx/pkg/interfaces"
	"github.com/meshx/go-meshx/pkg/lib/log"
	"github.com/meshx/go-meshx/pkg/types"
)

var logger = log.Logger("model/client")

// inflight 最近一次被 TXCM 发送的 ACKED 消息
type inflight struct {
	dest types.Address
	ctx  ResendContext
}

// ============================================================================
//                              Base
// ============================================================================

// Base 客户端模型基类
type Base struct {
	name string
	tx   pkgif.TXCM
	bus  pkgif.EventBus

	mu        sync.RWMutex
	callbacks map[uint16][]Callback
	sub       pkgif.Subscription
	closed    bool

	current atomic.Pointer[inflight]
	seen    *expirable.LRU[dedupKey, struct{}]

	timeouts atomic.Int64
	dups     atomic.Int64
}

// New 创建客户端模型基类
func New(name string, tx pkgif.TXCM, bus pkgif.EventBus, cfg Config) (*Base, error) {
	if tx == nil || bus == nil {
		return nil, fmt.Errorf("%w: nil txcm or event bus", ErrInvalidArg)
	}
	if cfg.DedupCacheSize < 0 || (cfg.DedupCacheSize > 0 && cfg.DedupTTL <= 0) {
		return nil, fmt.Errorf("%w: dedup cache size %d ttl %s", ErrInvalidArg, cfg.DedupCacheSize, cfg.DedupTTL)
	}

	b := &Base{
		name:      name,
		tx:        tx,
		bus:       bus,
		callbacks: make(map[uint16][]Callback),
	}
	if cfg.DedupCacheSize > 0 {
		b.seen = expirable.NewLRU[dedupKey, struct{}](cfg.DedupCacheSize, nil, cfg.DedupTTL)
	}
	return b, nil
}

// Name 返回模型名
func (b *Base) Name() string {
	return b.name
}

// Register 注册模型回调
//
// 同一模型可注册多个回调，按注册顺序调用。
func (b *Base) Register(modelID uint16, cb Callback) error {
	if cb == nil {
		return fmt.Errorf("%w: nil callback", ErrInvalidArg)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	b.callbacks[modelID] = append(b.callbacks[modelID], cb)
	logger.Debug("模型回调已注册", "client", b.name, "model", modelID)
	return nil
}

// Start 订阅 TXCM 超时事件
//
// 幂等：重复调用直接返回 nil。
func (b *Base) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}
	if b.sub != nil {
		return nil
	}

	sub, err := b.bus.SubscribeFunc(types.MsgCodeTXCM, types.EvtTXCMTimeout, b.handleTimeout)
	if err != nil {
		return fmt.Errorf("subscribe txcm timeout: %w", err)
	}
	b.sub = sub
	logger.Info("客户端模型已启动", "client", b.name)
	return nil
}

// Close 取消订阅并清空过滤缓存
func (b *Base) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if b.seen != nil {
		b.seen.Purge()
	}
	if sub != nil {
		return sub.Close()
	}
	return nil
}

// Send 通过 TXCM 提交模型消息
//
// Acked 为 true 时使用 ENQ_SEND，等待对端状态确认；否则使用 DIRECT_SEND。
func (b *Base) Send(msg Message, send pkgif.SendFunc) error {
	if send == nil {
		return fmt.Errorf("%w: nil send function", ErrInvalidArg)
	}
	if msg.Dest.IsUnassigned() {
		return fmt.Errorf("%w: unassigned destination", ErrInvalidArg)
	}
	if b.isClosed() {
		return ErrClosed
	}

	kind := types.SignalDirectSend
	if msg.Acked {
		kind = types.SignalEnqSend
		send = b.track(msg, send)
	}

	if err := b.tx.Submit(kind, msg.Dest, msg.Params, send); err != nil {
		return fmt.Errorf("submit %s: %w", kind, err)
	}
	logger.Debug("模型消息已提交",
		"client", b.name,
		"model", msg.ModelID,
		"opcode", msg.Opcode,
		"dest", msg.Dest,
		"acked", msg.Acked)
	return nil
}

// track 包装 send，在工作协程真正发送时记录在途消息
func (b *Base) track(msg Message, send pkgif.SendFunc) pkgif.SendFunc {
	cur := &inflight{
		dest: msg.Dest,
		ctx:  ResendContext{ModelID: msg.ModelID, Opcode: msg.Opcode},
	}
	return func(params []byte) error {
		b.current.Store(cur)
		return send(params)
	}
}

// InflightContext 返回在途消息的 RESEND 上下文
//
// 供 ACK 超时定时器使用；info 与在途消息不符时返回 nil。
func (b *Base) InflightContext(info txcm.EntryInfo) []byte {
	cur := b.current.Load()
	if cur == nil || cur.dest != info.Dest {
		return nil
	}
	return cur.ctx.Encode()
}

// HandleStatus 处理网格栈上报的状态
//
// 失败（栈超时或错误）时提交 RESEND，上下文为模型 ID 与操作码；
// 成功时先提交 ACK(src) 再调用模型回调。
// 在有效期内重复到达的 (源地址, TID) 被忽略，不会再次 ACK。
func (b *Base) HandleStatus(st Status) error {
	if b.isClosed() {
		return ErrClosed
	}

	if st.Failed() {
		ctx := ResendContext{ModelID: st.ModelID, Opcode: st.Opcode}
		if err := b.tx.Submit(types.SignalResend, types.AddrUnassigned, ctx.Encode(), nil); err != nil {
			return fmt.Errorf("submit resend: %w", err)
		}
		logger.Debug("状态失败，已请求重发",
			"client", b.name,
			"model", st.ModelID,
			"timeout", st.Timeout,
			"err", st.Err)
		return nil
	}

	if b.duplicate(st) {
		b.dups.Add(1)
		logger.Debug("忽略重复状态",
			"client", b.name,
			"src", st.Src,
			"tid", st.TID)
		return nil
	}

	var err error
	if ackErr := b.tx.Submit(types.SignalAck, st.Src, nil, nil); ackErr != nil {
		err = multierr.Append(err, fmt.Errorf("submit ack: %w", ackErr))
	} else if cur := b.current.Load(); cur != nil && cur.dest == st.Src {
		b.current.CompareAndSwap(cur, nil)
	}

	return multierr.Append(err, b.invoke(st))
}

// duplicate 检查并记录 (源地址, TID)
func (b *Base) duplicate(st Status) bool {
	if b.seen == nil || st.TID == 0 {
		return false
	}
	key := dedupKey{src: st.Src, modelID: st.ModelID, opcode: st.Opcode, tid: st.TID}
	if b.seen.Contains(key) {
		return true
	}
	b.seen.Add(key, struct{}{})
	return false
}

// handleTimeout 处理 TXCM 超时事件（在事件总线 goroutine 中调用）
func (b *Base) handleTimeout(msg pkgif.ControlMessage) error {
	evt, err := txcm.DecodeTimeout(msg.Params)
	if err != nil {
		return err
	}
	ctx, err := DecodeResendContext(evt.Context)
	if err != nil {
		logger.Warn("超时事件缺少模型上下文", "client", b.name, "dest", evt.Dest)
		return nil
	}

	b.timeouts.Add(1)
	return b.invoke(Status{
		ModelID: ctx.ModelID,
		Opcode:  ctx.Opcode,
		Dst:     evt.Dest,
		Err:     txcm.ErrTimeout,
	})
}

// invoke 调用模型回调并合并错误
//
// 没有匹配回调时只记录告警。
func (b *Base) invoke(st Status) error {
	b.mu.RLock()
	cbs := b.callbacks[st.ModelID]
	b.mu.RUnlock()

	if len(cbs) == 0 {
		logger.Warn("没有匹配的模型回调", "client", b.name, "model", st.ModelID)
		return nil
	}

	var err error
	for _, cb := range cbs {
		err = multierr.Append(err, cb(st))
	}
	return err
}

func (b *Base) isClosed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// Stats 客户端统计
type Stats struct {
	Models     int
	Timeouts   int64
	Duplicates int64
}

// Stats 返回统计快照
func (b *Base) Stats() Stats {
	b.mu.RLock()
	models := len(b.callbacks)
	b.mu.RUnlock()
	return Stats{
		Models:     models,
		Timeouts:   b.timeouts.Load(),
		Duplicates: b.dups.Load(),
	}
}

// IsTimeout 报告回调错误是否为 TXCM 超时
func IsTimeout(err error) bool {
	return errors.Is(err, txcm.ErrTimeout)
}
