package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/meshx/go-meshx/config"
)

// ============================================================================
//                              环境变量覆盖（CLI 专用）
// ============================================================================

// 环境变量名
const (
	envPrefix     = "MESHX_"
	envMaxRetry   = "MAX_RETRY"
	envAckTimeout = "ACK_TIMEOUT"
	envQueueLen   = "QUEUE_LEN"
	envMetrics    = "METRICS"
)

// applyEnvOverrides 应用环境变量覆盖配置
//
// 环境变量优先级高于配置文件，但低于命令行参数。
// 支持的环境变量（均使用 MESHX_ 前缀）：
//   - MESHX_MAX_RETRY: 最大重发次数
//   - MESHX_ACK_TIMEOUT: ACK 等待时间（如 2s）
//   - MESHX_QUEUE_LEN: 两个队列的长度
//   - MESHX_METRICS: 是否启用指标
func applyEnvOverrides(cfg *config.Config) error {
	if v := os.Getenv(envPrefix + envMaxRetry); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envMaxRetry, err)
		}
		cfg.TXCM.MaxRetry = n
	}

	if v := os.Getenv(envPrefix + envAckTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envAckTimeout, err)
		}
		cfg.Retransmit.AckTimeout = config.Duration(d)
	}

	if v := os.Getenv(envPrefix + envQueueLen); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envQueueLen, err)
		}
		cfg.TXCM = cfg.TXCM.WithQueueLen(n, n)
	}

	if v := os.Getenv(envPrefix + envMetrics); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", envPrefix, envMetrics, err)
		}
		cfg.Metrics.Enabled = b
	}

	return cfg.Validate()
}
