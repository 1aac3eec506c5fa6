package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// FromJSON 从 JSON 数据创建配置
//
// 未出现的字段保持默认值。
//
// 示例 JSON:
//
//	{
//	  "txcm": {"max_retry": 5, "submit_timeout": "50ms"},
//	  "retransmit": {"ack_timeout": "1s"}
//	}
func FromJSON(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToJSON 将配置序列化为缩进 JSON
func ToJSON(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// LoadFile 从文件加载并验证配置
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg, err := FromJSON(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyPreset 应用预设配置
//
// 支持的预设：
//   - "default": 固件默认值
//   - "lossy": 高丢包链路（更大的重试预算和更长的 ACK 超时）
//   - "minimal": 最小配置（关闭指标与重发定时器）
func ApplyPreset(cfg *Config, presetName string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	switch presetName {
	case "default":
		*cfg = *NewConfig()
		return nil
	case "lossy":
		return applyLossyPreset(cfg)
	case "minimal":
		return applyMinimalPreset(cfg)
	case "":
		// 空预设，不做任何操作
		return nil
	default:
		return fmt.Errorf("unknown preset: %s", presetName)
	}
}

// applyLossyPreset 应用高丢包链路预设
func applyLossyPreset(cfg *Config) error {
	cfg.TXCM.MaxRetry = 6
	cfg.TXCM.SignalQueueLen = 32
	cfg.TXCM.TxQueueLen = 32
	cfg.Retransmit.Enabled = true
	cfg.Retransmit.AckTimeout = Duration(4 * time.Second)
	return nil
}

// applyMinimalPreset 应用最小配置预设
func applyMinimalPreset(cfg *Config) error {
	cfg.Metrics.Enabled = false
	cfg.Retransmit.Enabled = false
	return nil
}

// CloneConfig 克隆配置
func CloneConfig(cfg *Config) *Config {
	if cfg == nil {
		return nil
	}
	cloned := *cfg
	return &cloned
}
