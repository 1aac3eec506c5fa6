package config

import (
	"errors"
	"time"
)

// ClientConfig 客户端模型配置
type ClientConfig struct {
	// DedupCacheSize 重复状态过滤缓存条目数（0 表示关闭过滤）
	DedupCacheSize int `json:"dedup_cache_size"`

	// DedupTTL 状态消息 (源地址, TID) 的有效期
	DedupTTL Duration `json:"dedup_ttl"`
}

// DefaultClientConfig 返回默认客户端模型配置
//
// 6 秒与网格协议中 TID 的有效期一致。
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		DedupCacheSize: 64,
		DedupTTL:       Duration(6 * time.Second),
	}
}

// Validate 验证客户端模型配置
func (c ClientConfig) Validate() error {
	if c.DedupCacheSize < 0 {
		return errors.New("client dedup cache size must be non-negative")
	}
	if c.DedupCacheSize > 0 && c.DedupTTL <= 0 {
		return errors.New("client dedup ttl must be positive")
	}
	return nil
}
