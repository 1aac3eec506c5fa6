package config

import "errors"

// EventBusConfig 控制任务事件总线配置
type EventBusConfig struct {
	// BufferSize 每个订阅的事件缓冲区大小
	BufferSize int `json:"buffer_size"`
}

// DefaultEventBusConfig 返回默认事件总线配置
func DefaultEventBusConfig() EventBusConfig {
	return EventBusConfig{
		BufferSize: 16,
	}
}

// Validate 验证事件总线配置
func (c EventBusConfig) Validate() error {
	if c.BufferSize < 0 {
		return errors.New("eventbus buffer size must be non-negative")
	}
	return nil
}
