package config

import (
	"errors"
	"time"
)

// UnlimitedRetry 不限制重试次数
//
// 与 MatchAckAddress=false 组合即为无重试计数、无目的地址校验的简化策略。
const UnlimitedRetry = -1

// AutoMemoryLimit 按物理内存自动推算载荷预算
const AutoMemoryLimit = -1

// TXCMConfig 发送控制模块配置
type TXCMConfig struct {
	// SignalQueueLen 信号队列长度
	SignalQueueLen int `json:"signal_queue_len"`

	// TxQueueLen 待投递队列长度
	TxQueueLen int `json:"tx_queue_len"`

	// MaxRetry 每条消息的最大重发次数，首次发送不计入（UnlimitedRetry 表示不限制）
	MaxRetry int `json:"max_retry"`

	// MaxParamLen 单条载荷最大字节数（0 表示不限制）
	MaxParamLen int `json:"max_param_len"`

	// SubmitTimeout 信号入队等待时间（0 表示不等待）
	SubmitTimeout Duration `json:"submit_timeout"`

	// MatchAckAddress ACK 是否必须匹配队首目的地址
	MatchAckAddress bool `json:"match_ack_address"`

	// MemoryLimit 载荷内存预算（字节，0 表示不限制，AutoMemoryLimit 表示自动）
	MemoryLimit int64 `json:"memory_limit"`
}

// DefaultTXCMConfig 返回默认发送控制模块配置
func DefaultTXCMConfig() TXCMConfig {
	return TXCMConfig{
		SignalQueueLen:  10,
		TxQueueLen:      10,
		MaxRetry:        3,
		MaxParamLen:     64,
		SubmitTimeout:   0,
		MatchAckAddress: true,
		MemoryLimit:     0,
	}
}

// Validate 验证发送控制模块配置
func (c TXCMConfig) Validate() error {
	if c.SignalQueueLen <= 0 {
		return errors.New("txcm signal queue length must be positive")
	}
	if c.TxQueueLen <= 0 {
		return errors.New("txcm tx queue length must be positive")
	}
	if c.MaxRetry < UnlimitedRetry {
		return errors.New("txcm max retry must be >= -1")
	}
	if c.MaxParamLen < 0 {
		return errors.New("txcm max param length must be non-negative")
	}
	if c.SubmitTimeout < 0 {
		return errors.New("txcm submit timeout must be non-negative")
	}
	if c.MemoryLimit < AutoMemoryLimit {
		return errors.New("txcm memory limit must be >= -1")
	}
	if c.MemoryLimit > 0 && c.MaxParamLen > 0 && c.MemoryLimit < int64(c.MaxParamLen) {
		return errors.New("txcm memory limit must hold at least one payload")
	}
	return nil
}

// WithMaxRetry 设置最大重发次数
func (c TXCMConfig) WithMaxRetry(n int) TXCMConfig {
	c.MaxRetry = n
	return c
}

// WithQueueLen 设置信号队列与待投递队列长度
func (c TXCMConfig) WithQueueLen(signal, tx int) TXCMConfig {
	c.SignalQueueLen = signal
	c.TxQueueLen = tx
	return c
}

// WithSubmitTimeout 设置信号入队等待时间
func (c TXCMConfig) WithSubmitTimeout(d time.Duration) TXCMConfig {
	c.SubmitTimeout = Duration(d)
	return c
}

// WithMemoryLimit 设置载荷内存预算
func (c TXCMConfig) WithMemoryLimit(limit int64) TXCMConfig {
	c.MemoryLimit = limit
	return c
}

// Simple 返回简化策略：不限重试、不校验 ACK 地址
func (c TXCMConfig) Simple() TXCMConfig {
	c.MaxRetry = UnlimitedRetry
	c.MatchAckAddress = false
	return c
}
