package config

import (
	"errors"
	"fmt"
)

// ValidateAll 验证整个配置的有效性
//
// 这是 Config.Validate() 的别名，额外检查 nil。
func ValidateAll(c *Config) error {
	if c == nil {
		return errors.New("config is nil")
	}
	return c.Validate()
}

// ValidateAndFix 验证配置并尝试自动修复常见问题
//
// 可修复的问题：
//   - 队列长度非正 -> 使用默认值
//   - 启用重发但 ACK 超时非正 -> 使用默认值
//   - 指标命名空间为空 -> 使用默认值
func ValidateAndFix(c *Config) (*Config, error) {
	if c == nil {
		return NewConfig(), nil
	}

	def := NewConfig()
	if c.TXCM.SignalQueueLen <= 0 {
		c.TXCM.SignalQueueLen = def.TXCM.SignalQueueLen
	}
	if c.TXCM.TxQueueLen <= 0 {
		c.TXCM.TxQueueLen = def.TXCM.TxQueueLen
	}
	if c.Retransmit.Enabled && c.Retransmit.AckTimeout <= 0 {
		c.Retransmit.AckTimeout = def.Retransmit.AckTimeout
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = def.Metrics.Namespace
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed after fixes: %w", err)
	}
	return c, nil
}

// MustValidate 验证配置，如果失败则 panic
//
// 仅用于初始化阶段或测试代码。
func MustValidate(c *Config) {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("config validation failed: %v", err))
	}
}
