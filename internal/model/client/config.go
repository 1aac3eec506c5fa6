package client

import (
	"time"

	"github.com/meshx/go-meshx/config"
)

// Config 客户端模型配置
type Config struct {
	// DedupCacheSize 重复状态过滤缓存条目数（0 表示关闭）
	DedupCacheSize int

	// DedupTTL (源地址, TID) 有效期
	DedupTTL time.Duration
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return ConfigFromUnified(nil)
}

// ConfigFromUnified 从统一配置创建客户端配置
func ConfigFromUnified(cfg *config.Config) Config {
	c := config.DefaultClientConfig()
	if cfg != nil {
		c = cfg.Client
	}
	return Config{
		DedupCacheSize: c.DedupCacheSize,
		DedupTTL:       c.DedupTTL.Duration(),
	}
}
