package txcm

import (
	"time"

	"github.com/meshx/go-meshx/config"
	"github.com/meshx/go-meshx/internal/core/memory"
)

// UnlimitedRetry 不限制重试次数
const UnlimitedRetry = config.UnlimitedRetry

// Config 发送控制模块配置
type Config struct {
	// SignalQueueLen 信号队列长度
	SignalQueueLen int

	// TxQueueLen 待投递队列长度
	TxQueueLen int

	// MaxRetry 每条消息的最大重发次数
	//
	// 预算只在重发时扣减，首次发送不消耗：MaxRetry=3 即首发加 3 次重发，
	// 第 4 个 RESEND 发布 TIMEOUT。UnlimitedRetry 表示永不超时。
	MaxRetry int

	// MaxParamLen 单条载荷最大字节数（0 表示不限制）
	MaxParamLen int

	// SubmitTimeout 信号队列满时 Submit 的等待时间（0 表示立即返回）
	SubmitTimeout time.Duration

	// MatchAckAddress ACK 是否必须匹配队首目的地址
	MatchAckAddress bool

	// MemoryLimit 载荷内存预算（字节，0 表示不限制，AutoMemoryLimit 按物理内存推算）
	MemoryLimit int64
}

// AutoMemoryLimit 按物理内存自动推算载荷预算
const AutoMemoryLimit = config.AutoMemoryLimit

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建 TXCM 配置
func ConfigFromUnified(cfg *config.Config) Config {
	c := config.DefaultTXCMConfig()
	if cfg != nil {
		c = cfg.TXCM
	}
	return Config{
		SignalQueueLen:  c.SignalQueueLen,
		TxQueueLen:      c.TxQueueLen,
		MaxRetry:        c.MaxRetry,
		MaxParamLen:     c.MaxParamLen,
		SubmitTimeout:   c.SubmitTimeout.Duration(),
		MatchAckAddress: c.MatchAckAddress,
		MemoryLimit:     c.MemoryLimit,
	}
}

// Validate 验证配置
func (c Config) Validate() error {
	return config.TXCMConfig{
		SignalQueueLen:  c.SignalQueueLen,
		TxQueueLen:      c.TxQueueLen,
		MaxRetry:        c.MaxRetry,
		MaxParamLen:     c.MaxParamLen,
		SubmitTimeout:   config.Duration(c.SubmitTimeout),
		MatchAckAddress: c.MatchAckAddress,
		MemoryLimit:     c.MemoryLimit,
	}.Validate()
}

// memoryLimit 返回实际使用的载荷预算
func (c Config) memoryLimit() int64 {
	if c.MemoryLimit == AutoMemoryLimit {
		return memory.AutoLimit()
	}
	return c.MemoryLimit
}
