package config

import (
	"errors"
	"time"
)

// RetransmitConfig ACK 超时重发配置
//
// 已发送的 ACKED 消息在 AckTimeout 内未收到确认时，
// 由重发定时器向 TXCM 提交 RESEND 信号。
type RetransmitConfig struct {
	// Enabled 是否启用重发定时器
	Enabled bool `json:"enabled"`

	// AckTimeout 等待 ACK 的时间
	AckTimeout Duration `json:"ack_timeout"`
}

// DefaultRetransmitConfig 返回默认重发配置
func DefaultRetransmitConfig() RetransmitConfig {
	return RetransmitConfig{
		Enabled:    true,
		AckTimeout: Duration(2 * time.Second),
	}
}

// Validate 验证重发配置
func (c RetransmitConfig) Validate() error {
	if c.Enabled && c.AckTimeout <= 0 {
		return errors.New("retransmit ack timeout must be positive")
	}
	return nil
}

// WithAckTimeout 设置 ACK 超时
func (c RetransmitConfig) WithAckTimeout(d time.Duration) RetransmitConfig {
	c.AckTimeout = Duration(d)
	return c
}
