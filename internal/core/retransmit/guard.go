package retransmit

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/txcm"
	"github.com/meshx/go-meshx/pkg/lib/log"
	"github.com/meshx/go-meshx/pkg/types"
)

var logger = log.Logger("core/retransmit")

// Submitter 提交 RESEND 信号
type Submitter interface {
	Resend(dest types.Address, ctx []byte) error
}

// ContextFunc 为到期消息生成 RESEND 上下文
//
// 上下文在重试耗尽时随 TIMEOUT 事件发布。
type ContextFunc func(info txcm.EntryInfo) []byte

// Config 重发定时器配置
type Config struct {
	// Enabled 是否启用
	Enabled bool

	// AckTimeout 等待 ACK 的时间
	AckTimeout time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建重发配置
func ConfigFromUnified(cfg *config.Config) Config {
	c := config.DefaultRetransmitConfig()
	if cfg != nil {
		c = cfg.Retransmit
	}
	return Config{
		Enabled:    c.Enabled,
		AckTimeout: c.AckTimeout.Duration(),
	}
}

// ============================================================================
//                              Guard
// ============================================================================

// Guard ACK 超时重发定时器
type Guard struct {
	txcm.NopObserver

	cfg   Config
	clock clock.Clock
	sub   Submitter

	mu     sync.Mutex
	timer  *clock.Timer
	gen    uint64
	ctxFn  ContextFunc
	closed bool

	fired atomic.Int64
}

var _ txcm.Observer = (*Guard)(nil)

// NewGuard 创建 Guard
//
// clk 为 nil 时使用真实时钟。
func NewGuard(cfg Config, sub Submitter, clk clock.Clock) *Guard {
	if clk == nil {
		clk = clock.New()
	}
	return &Guard{
		cfg:   cfg,
		clock: clk,
		sub:   sub,
	}
}

// SetContextFunc 设置 RESEND 上下文生成函数
func (g *Guard) SetContextFunc(fn ContextFunc) {
	g.mu.Lock()
	g.ctxFn = fn
	g.mu.Unlock()
}

// Enabled 是否启用
func (g *Guard) Enabled() bool {
	return g.cfg.Enabled && g.cfg.AckTimeout > 0
}

// Fired 返回已触发的重发次数
func (g *Guard) Fired() int64 {
	return g.fired.Load()
}

// Armed 是否有定时器在等待
func (g *Guard) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.timer != nil
}

// OnSend ACKED 消息发送后布防
func (g *Guard) OnSend(info txcm.EntryInfo, _ error) {
	if info.Kind != types.MsgAcked || !g.Enabled() {
		return
	}
	g.arm(info)
}

// OnAck 消息确认后撤防
func (g *Guard) OnAck(txcm.EntryInfo) {
	g.disarm()
}

// OnTimeout 消息丢弃后撤防
func (g *Guard) OnTimeout(txcm.EntryInfo) {
	g.disarm()
}

// OnDrop 关闭丢弃时撤防
func (g *Guard) OnDrop(reason txcm.DropReason, _ types.Address) {
	if reason == txcm.DropClosed {
		g.disarm()
	}
}

// Close 撤防并停止接受新的布防
func (g *Guard) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.closed = true
	g.stopLocked()
	return nil
}

// ============================================================================
//                              内部方法
// ============================================================================

func (g *Guard) arm(info txcm.EntryInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}
	g.stopLocked()

	gen := g.gen
	g.timer = g.clock.AfterFunc(g.cfg.AckTimeout, func() {
		g.expire(gen, info)
	})
	logger.Debug("ACK 定时器已布防",
		"id", info.ID,
		"dest", info.Dest,
		"attempt", info.Attempts,
		"timeout", g.cfg.AckTimeout)
}

func (g *Guard) disarm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stopLocked()
}

// stopLocked 停止当前定时器并使其回调失效（需持有锁）
func (g *Guard) stopLocked() {
	g.gen++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

func (g *Guard) expire(gen uint64, info txcm.EntryInfo) {
	g.mu.Lock()
	if g.closed || gen != g.gen {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	ctxFn := g.ctxFn
	g.mu.Unlock()

	var ctx []byte
	if ctxFn != nil {
		ctx = ctxFn(info)
	}

	g.fired.Add(1)
	logger.Debug("ACK 超时，请求重发", "id", info.ID, "dest", info.Dest)

	if err := g.sub.Resend(info.Dest, ctx); err != nil {
		logger.Warn("提交 RESEND 失败，稍后重试", "dest", info.Dest, "err", err)
		g.arm(info)
	}
}
